package output

import (
	"strings"

	"github.com/lgbarn/alderchess-go/internal/engine"
)

// JSONPosition represents a position in JSON format.
type JSONPosition struct {
	FEN        string   `json:"fen"`
	Turn       string   `json:"turn"`
	Status     string   `json:"status"`
	InCheck    bool     `json:"inCheck"`
	Promotion  string   `json:"promotion,omitempty"`
	Board      []string `json:"board"` // rank 8 first, '.' for empty squares
	LegalMoves []string `json:"legalMoves"`
}

// JSONOutput holds multiple positions for array output.
type JSONOutput struct {
	Positions []*JSONPosition `json:"positions"`
}

// PositionToJSON converts a board to JSON format.
func PositionToJSON(b *engine.BoardState) *JSONPosition {
	jp := &JSONPosition{
		FEN:        b.FEN(),
		Turn:       strings.ToLower(b.Turn().String()),
		Status:     Status(b),
		InCheck:    b.IsInCheck(b.Turn()),
		Board:      boardRows(b),
		LegalMoves: moveStrings(b.LegalMoves(b.Turn())),
	}
	if c, ok := b.PendingPromotion(); ok {
		jp.Promotion = c.String()
	}
	return jp
}

// boardRows returns the eight diagram rows of b without rank labels.
func boardRows(b *engine.BoardState) []string {
	lines := strings.Split(b.String(), "\n")
	rows := make([]string, 0, 8)
	for _, line := range lines {
		if len(line) == 10 && line[0] >= '1' && line[0] <= '8' {
			rows = append(rows, line[2:])
		}
	}
	return rows
}
