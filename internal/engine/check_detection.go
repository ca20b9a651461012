package engine

import "github.com/lgbarn/alderchess-go/internal/chess"

// IsInCheck returns true if the player's king stands on a square the
// opponent attacks. A board without that king is never in check.
func (b *BoardState) IsInCheck(player chess.Player) bool {
	king := b.findKing(player)
	if king == chess.NoCoord {
		return false
	}
	coverage := b.AggregateMoveMap(player.Opponent(), AttackCoverage)
	return coverage.Has(king)
}

// exposesKing plays from-to on a copy of the board and reports whether the
// player's king is in check afterwards.
func (b *BoardState) exposesKing(player chess.Player, from, to chess.Coord) bool {
	sim := *b
	sim.shift(from, to)
	return sim.IsInCheck(player)
}

// shift moves the piece at from onto to, capturing whatever stands there,
// and removes the passed pawn when the move is an en passant capture.
// Both squares become touched. Castling rooks are not handled here.
func (b *BoardState) shift(from, to chess.Coord) (enPassant bool) {
	src := b.squares.At(from)
	if src.Piece == chess.Pawn && from.X != to.X {
		if victim := b.enPassantVictim(src.Owner, from, to); victim != chess.NoCoord {
			vs := b.squares.At(victim)
			vs.Owner = chess.Nobody
			vs.Piece = chess.NoPiece
			vs.Touched = true
			enPassant = true
		}
	}

	dst := b.squares.At(to)
	dst.Owner = src.Owner
	dst.Piece = src.Piece
	dst.Touched = true

	src.Owner = chess.Nobody
	src.Piece = chess.NoPiece
	src.Touched = true

	return enPassant
}
