//go:build debug

package engine

import "github.com/lgbarn/alderchess-go/internal/chess"

// SetPieceDebug overwrites the piece type at c without any legality check.
func (b *BoardState) SetPieceDebug(c chess.Coord, piece chess.Piece) {
	if !c.OnBoard() {
		return
	}
	b.squares.At(c).Piece = piece
	b.deriveCastlingEligibility(b.turn)
}

// SetOwnerDebug overwrites the owner at c without any legality check.
func (b *BoardState) SetOwnerDebug(c chess.Coord, owner chess.Player) {
	if !c.OnBoard() {
		return
	}
	b.squares.At(c).Owner = owner
	b.deriveCastlingEligibility(b.turn)
}
