package engine

import "github.com/lgbarn/alderchess-go/internal/chess"

// Castling geometry on a home row.
const (
	kingHomeX      = 4
	queensideRookX = 0
	kingsideRookX  = 7
)

type castleSide struct {
	rookX       int
	kingTargetX int
	rookTargetX int
}

var castleSides = []castleSide{
	{rookX: queensideRookX, kingTargetX: 2, rookTargetX: 3},
	{rookX: kingsideRookX, kingTargetX: 6, rookTargetX: 5},
}

// deriveCastlingEligibility rebuilds the castling targets for player from
// scratch. A side is available when the king is not in check, king and rook
// stand untouched on their home squares, and every square strictly between
// them is empty and not attacked.
func (b *BoardState) deriveCastlingEligibility(player chess.Player) {
	b.castling = chess.Grid{}
	b.castlingFor = player

	if player != chess.White && player != chess.Black {
		return
	}
	if b.IsInCheck(player) {
		return
	}

	row := player.HomeRow()
	king := b.squares[row][kingHomeX]
	if king.Owner != player || king.Piece != chess.King || king.Touched {
		return
	}

	coverage := b.AggregateMoveMap(player.Opponent(), AttackCoverage)

	for _, side := range castleSides {
		rook := b.squares[row][side.rookX]
		if rook.Owner != player || rook.Piece != chess.Rook || rook.Touched {
			continue
		}

		lo, hi := side.rookX, kingHomeX
		if lo > hi {
			lo, hi = hi, lo
		}

		clear := true
		for x := lo + 1; x < hi; x++ {
			c := chess.XY(x, row)
			if b.squares.At(c).Owner != chess.Nobody || coverage.Has(c) {
				clear = false
				break
			}
		}
		if clear {
			b.castling.Set(chess.XY(side.kingTargetX, row))
		}
	}
}

// castleSideFor returns the side whose king target is x.
func castleSideFor(x int) (castleSide, bool) {
	for _, side := range castleSides {
		if side.kingTargetX == x {
			return side, true
		}
	}
	return castleSide{}, false
}
