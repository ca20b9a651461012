package engine

import "github.com/lgbarn/alderchess-go/internal/chess"

// CanAnyMove returns true if player has at least one legal move, castling
// and en passant included.
func (b *BoardState) CanAnyMove(player chess.Player) bool {
	for y := 0; y < chess.BoardSize; y++ {
		for x := 0; x < chess.BoardSize; x++ {
			c := chess.XY(x, y)
			if !b.CanSelect(player, c) {
				continue
			}
			opts := b.MoveOptions(player, c, LegalMoves)
			if opts.Any() {
				return true
			}
		}
	}
	return false
}

// IsCheckmate returns true if player is in check and cannot move.
func (b *BoardState) IsCheckmate(player chess.Player) bool {
	return b.IsInCheck(player) && !b.CanAnyMove(player)
}

// IsStalemate returns true if player is not in check but cannot move.
func (b *BoardState) IsStalemate(player chess.Player) bool {
	return !b.IsInCheck(player) && !b.CanAnyMove(player)
}
