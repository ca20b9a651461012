// Package engine provides the chess rules engine: move legality, move
// application, check/checkmate/stalemate detection and the save format.
//
// A BoardState is not safe for concurrent use. Callers that share one
// between goroutines must serialise access themselves.
package engine

import (
	"strings"

	"github.com/lgbarn/alderchess-go/internal/chess"
)

// BoardState owns the squares, the side to move and any pending promotion.
type BoardState struct {
	squares chess.Squares
	turn    chess.Player

	// Castling targets are derived for one player at a time and rebuilt on
	// every turn change.
	castling    chess.Grid
	castlingFor chess.Player

	promotionPending bool
	promotion        chess.Coord
}

// New creates a board set up in the standard starting position.
func New() *BoardState {
	b := &BoardState{}
	b.Reset()
	return b
}

// Reset places the standard starting position with White to move.
func (b *BoardState) Reset() {
	b.squares = chess.StartingSquares()
	b.turn = chess.White
	b.promotionPending = false
	b.promotion = chess.NoCoord
	b.deriveCastlingEligibility(b.turn)
}

// Clone returns an independent copy of the board.
func (b *BoardState) Clone() *BoardState {
	c := *b
	return &c
}

// Turn returns the side to move.
func (b *BoardState) Turn() chess.Player {
	return b.turn
}

// Square returns a copy of the square at c. Off-board coordinates yield an empty square.
func (b *BoardState) Square(c chess.Coord) chess.Square {
	if !c.OnBoard() {
		return chess.Square{}
	}
	return *b.squares.At(c)
}

// Piece returns the piece type at c.
func (b *BoardState) Piece(c chess.Coord) chess.Piece {
	return b.Square(c).Piece
}

// Owner returns the owner of the piece at c.
func (b *BoardState) Owner(c chess.Coord) chess.Player {
	return b.Square(c).Owner
}

// Touched reports whether the square at c has been moved from or into.
func (b *BoardState) Touched(c chess.Coord) bool {
	return b.Square(c).Touched
}

// EnPassantTarget reports whether c is the square skipped by the last double step.
func (b *BoardState) EnPassantTarget(c chess.Coord) bool {
	return b.Square(c).EnPassantTarget
}

// CastlingTarget reports whether the side to move may castle its king onto c.
func (b *BoardState) CastlingTarget(c chess.Coord) bool {
	return b.castling.Has(c)
}

// CanSelect reports whether player owns the piece at c.
func (b *BoardState) CanSelect(player chess.Player, c chess.Coord) bool {
	if player != chess.White && player != chess.Black {
		return false
	}
	return c.OnBoard() && b.squares.At(c).Owner == player
}

// PromotionPending reports whether a pawn waits on its last row for a new piece.
func (b *BoardState) PromotionPending() bool {
	return b.promotionPending
}

// PendingPromotion returns the square of the waiting pawn.
// The coordinate is chess.NoCoord when nothing is pending.
func (b *BoardState) PendingPromotion() (chess.Coord, bool) {
	if !b.promotionPending {
		return chess.NoCoord, false
	}
	return b.promotion, true
}

// findKing returns the location of the player's king, or chess.NoCoord.
func (b *BoardState) findKing(player chess.Player) chess.Coord {
	for y := 0; y < chess.BoardSize; y++ {
		for x := 0; x < chess.BoardSize; x++ {
			sq := &b.squares[y][x]
			if sq.Owner == player && sq.Piece == chess.King {
				return chess.XY(x, y)
			}
		}
	}
	return chess.NoCoord
}

// String renders the board with Black's back rank on top.
// White pieces are uppercase, Black lowercase, empty squares '.'.
func (b *BoardState) String() string {
	var sb strings.Builder
	for y := 0; y < chess.BoardSize; y++ {
		sb.WriteByte(byte('8' - y))
		sb.WriteByte(' ')
		for x := 0; x < chess.BoardSize; x++ {
			sq := b.squares[y][x]
			if sq.Empty() {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(squareLetter(sq))
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}

// squareLetter returns the FEN letter of an occupied square.
func squareLetter(sq chess.Square) byte {
	letter := sq.Piece.Letter()
	if sq.Owner == chess.Black {
		letter += 'a' - 'A'
	}
	return letter
}
