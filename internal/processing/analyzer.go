// Package processing replays move sequences and reports what happened in them.
package processing

import (
	"github.com/lgbarn/alderchess-go/internal/chess"
	"github.com/lgbarn/alderchess-go/internal/engine"
	"github.com/lgbarn/alderchess-go/internal/errors"
	"github.com/lgbarn/alderchess-go/internal/hashing"
)

// GameAnalysis holds analysis results from replaying a game.
type GameAnalysis struct {
	Plies             int
	Captures          int
	EnPassant         int
	Castles           int
	Checks            int
	Promotions        int
	HasUnderpromotion bool
	Checkmate         bool
	Stalemate         bool

	// Positions holds one Zobrist key per position, the start included.
	Positions []uint64

	// MaxRepetitions is the highest number of times any position occurred.
	MaxRepetitions int
}

// RepetitionDetected returns true if some position occurred three times.
func (ga *GameAnalysis) RepetitionDetected() bool {
	return ga.MaxRepetitions >= 3
}

// Finished returns true if the replay ended in checkmate or stalemate.
func (ga *GameAnalysis) Finished() bool {
	return ga.Checkmate || ga.Stalemate
}

// ValidationResult holds the result of game validation.
type ValidationResult struct {
	Valid    bool
	ErrorPly int // 1-based ply of the first rejected move
	Move     chess.Move
	Err      error
}

// AnalyzeGame replays moves on a copy of start and collects statistics.
// Replay stops at the first move that cannot be played; the returned board
// and analysis cover the plies before it and the error names the failing ply.
func AnalyzeGame(start *engine.BoardState, moves []chess.Move) (*engine.BoardState, *GameAnalysis, error) {
	board := start.Clone()
	analysis := &GameAnalysis{}

	key := hashing.Position(board)
	analysis.Positions = append(analysis.Positions, key)
	seen := map[uint64]int{key: 1}
	analysis.MaxRepetitions = 1

	for i, m := range moves {
		if err := playPly(board, m, analysis); err != nil {
			return board, analysis, errors.Wrapf(err, "ply %d (%v)", i+1, m)
		}

		key = hashing.Position(board)
		analysis.Positions = append(analysis.Positions, key)
		seen[key]++
		if seen[key] > analysis.MaxRepetitions {
			analysis.MaxRepetitions = seen[key]
		}
	}

	mover := board.Turn()
	analysis.Checkmate = board.IsCheckmate(mover)
	analysis.Stalemate = board.IsStalemate(mover)
	return board, analysis, nil
}

// playPly classifies m against the position before it, then plays it.
func playPly(board *engine.BoardState, m chess.Move, analysis *GameAnalysis) error {
	mover := board.Turn()
	if !board.CanAnyMove(mover) {
		return errors.ErrGameOver
	}

	piece := board.Piece(m.From)
	capture := board.Owner(m.To) == mover.Opponent()
	enPassant := piece == chess.Pawn && m.From.X != m.To.X && board.Owner(m.To) == chess.Nobody
	// Targets only exist two files from an unmoved king, so landing on one is castling.
	castle := piece == chess.King && board.CastlingTarget(m.To)
	promotes := piece == chess.Pawn && m.To.Y == mover.PromotionRow()

	if err := board.Play(m); err != nil {
		return err
	}

	analysis.Plies++
	if capture || enPassant {
		analysis.Captures++
	}
	if enPassant {
		analysis.EnPassant++
	}
	if castle {
		analysis.Castles++
	}
	if promotes {
		analysis.Promotions++
		if m.Promote != chess.NoPiece && m.Promote != chess.Queen {
			analysis.HasUnderpromotion = true
		}
	}
	if board.IsInCheck(board.Turn()) {
		analysis.Checks++
	}
	return nil
}

// ReplayGame replays moves on a copy of start and returns the final board.
func ReplayGame(start *engine.BoardState, moves []chess.Move) (*engine.BoardState, error) {
	board, _, err := AnalyzeGame(start, moves)
	return board, err
}

// ValidateGame checks that every move in the sequence can be played in turn.
func ValidateGame(start *engine.BoardState, moves []chess.Move) *ValidationResult {
	board := start.Clone()
	var scratch GameAnalysis
	for i, m := range moves {
		if err := playPly(board, m, &scratch); err != nil {
			return &ValidationResult{ErrorPly: i + 1, Move: m, Err: err}
		}
	}
	return &ValidationResult{Valid: true}
}

// CountPlies counts the moves that replay cleanly from start.
func CountPlies(start *engine.BoardState, moves []chess.Move) int {
	_, analysis, _ := AnalyzeGame(start, moves)
	return analysis.Plies
}
