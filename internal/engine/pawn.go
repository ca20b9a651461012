package engine

import "github.com/lgbarn/alderchess-go/internal/chess"

// pawnOptions builds the unfiltered map of a pawn: pushes, the double step
// from an untouched square, captures and, with special moves, en passant.
func (b *BoardState) pawnOptions(player chess.Player, c chess.Coord, q Query) chess.Grid {
	var g chess.Grid
	dy := player.Forward()

	// A pawn never threatens the squares it pushes to.
	if !q.AlwaysIncludePawnDiagonal {
		one := c.Add(chess.XY(0, dy))
		if one.OnBoard() && b.squares.At(one).Owner == chess.Nobody {
			g.Set(one)
			two := one.Add(chess.XY(0, dy))
			if two.OnBoard() && b.squares.At(two).Owner == chess.Nobody && !b.squares.At(c).Touched {
				g.Set(two)
			}
		}
	}

	for _, dx := range []int{-1, 1} {
		diag := c.Add(chess.XY(dx, dy))
		if !diag.OnBoard() {
			continue
		}
		owner := b.squares.At(diag).Owner
		if owner == player.Opponent() || (q.AlwaysIncludePawnDiagonal && owner != player) {
			g.Set(diag)
		}
		if q.IncludeSpecialMoves && b.enPassantVictim(player, c, diag) != chess.NoCoord {
			g.Set(diag)
		}
	}

	return g
}

// enPassantVictim returns the square of the pawn an en passant capture from
// c onto dst would remove, or chess.NoCoord if the capture is not available.
func (b *BoardState) enPassantVictim(player chess.Player, c, dst chess.Coord) chess.Coord {
	if !dst.OnBoard() || !b.squares.At(dst).EnPassantTarget || b.squares.At(dst).Owner != chess.Nobody {
		return chess.NoCoord
	}
	victim := chess.XY(dst.X, c.Y)
	vs := b.squares.At(victim)
	if vs.Owner != player.Opponent() || vs.Piece != chess.Pawn {
		return chess.NoCoord
	}
	return victim
}
