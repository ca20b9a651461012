package session

import (
	"fmt"

	"github.com/lgbarn/alderchess-go/internal/chess"
)

// Phase is where a session stands within the current ply.
type Phase int

const (
	AwaitingSelection Phase = iota
	AwaitingDestination
	AwaitingPromotionChoice
	GameOver
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case AwaitingSelection:
		return "awaiting selection"
	case AwaitingDestination:
		return "awaiting destination"
	case AwaitingPromotionChoice:
		return "awaiting promotion choice"
	case GameOver:
		return "game over"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Result classifies how a game ended.
type Result int

const (
	Ongoing Result = iota
	Checkmate
	Stalemate
)

// String returns the string representation of a result.
func (r Result) String() string {
	switch r {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Outcome is the end state of a game. Winner is chess.Nobody unless Result
// is Checkmate.
type Outcome struct {
	Result Result
	Winner chess.Player
}

// String describes the outcome for display.
func (o Outcome) String() string {
	switch o.Result {
	case Checkmate:
		return fmt.Sprintf("%v wins by checkmate", o.Winner)
	case Stalemate:
		return "draw by stalemate"
	}
	return "game in progress"
}
