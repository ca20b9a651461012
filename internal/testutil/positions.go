package testutil

import (
	"testing"

	"github.com/lgbarn/alderchess-go/internal/chess"
)

// Named positions used across package tests.
const (
	StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	// CastlingFEN has both sides free to castle either way.
	CastlingFEN = "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"

	// PromotionFEN has a white pawn one step from promoting.
	PromotionFEN = "8/4P3/8/8/8/8/8/k3K3 w - - 0 1"

	// StalemateFEN leaves Black with no move and no check.
	StalemateFEN = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"

	// EnPassantFEN lets White's e-pawn double step past Black's d4 pawn.
	EnPassantFEN = "4k3/8/8/8/3p4/8/4P3/4K3 w - - 0 1"
)

// FoolsMate is the shortest checkmate, Black mating on the fourth ply.
var FoolsMate = []string{"f2f3", "e7e5", "g2g4", "d8h4"}

// MustCoord parses a square name like "e4" or fails the test.
func MustCoord(t testing.TB, s string) chess.Coord {
	t.Helper()
	c, err := chess.ParseCoord(s)
	if err != nil {
		t.Fatalf("parse square %q: %v", s, err)
	}
	return c
}

// MustMove parses coordinate notation like "e2e4" or "e7e8q" or fails the test.
func MustMove(t testing.TB, s string) chess.Move {
	t.Helper()
	m, err := chess.ParseMove(s)
	if err != nil {
		t.Fatalf("parse move %q: %v", s, err)
	}
	return m
}

// MustMoves parses a sequence of moves.
func MustMoves(t testing.TB, moves ...string) []chess.Move {
	t.Helper()
	out := make([]chess.Move, 0, len(moves))
	for _, s := range moves {
		out = append(out, MustMove(t, s))
	}
	return out
}
