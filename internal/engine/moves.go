package engine

import "github.com/lgbarn/alderchess-go/internal/chess"

// Query selects what MoveOptions and AggregateMoveMap compute. Computing
// check needs the opponent's attack map, which needs the opponent's moves,
// which must not in turn ask about check; the fields let nested calls cut
// that cycle.
type Query struct {
	// SubtractKingIllegal removes squares the opponent attacks from a king's map.
	SubtractKingIllegal bool

	// IncludeSpecialMoves adds en passant captures and castling targets.
	IncludeSpecialMoves bool

	// SkipCheckFilter keeps destinations that would leave the own king in check.
	SkipCheckFilter bool

	// IncludeKing computes the king's map; otherwise kings contribute nothing.
	IncludeKing bool

	// AlwaysIncludePawnDiagonal marks both pawn diagonals whether or not an
	// enemy stands there, and leaves out pawn pushes.
	AlwaysIncludePawnDiagonal bool
}

// Named queries.
var (
	// LegalMoves is what a player may actually play from a square.
	LegalMoves = Query{SubtractKingIllegal: true, IncludeSpecialMoves: true, IncludeKing: true}

	// AttackCoverage is every square a player's pieces threaten. It never
	// recurses into check detection.
	AttackCoverage = Query{SkipCheckFilter: true, IncludeKing: true, AlwaysIncludePawnDiagonal: true}

	// Mobility is the check-filtered map of every piece but the king.
	Mobility = Query{}
)

// MoveOptions returns the destinations available to the piece at c for player.
// The map is empty when player does not own the square.
func (b *BoardState) MoveOptions(player chess.Player, c chess.Coord, q Query) chess.Grid {
	var g chess.Grid
	if !b.CanSelect(player, c) {
		return g
	}

	piece := b.squares.At(c).Piece
	switch piece {
	case chess.Pawn:
		g = b.pawnOptions(player, c, q)
	case chess.Knight:
		g = b.travelAll(player, c, knightSteps, 1)
	case chess.Bishop:
		g = b.travelAll(player, c, diagonalSteps, Unlimited)
	case chess.Rook:
		g = b.travelAll(player, c, straightSteps, Unlimited)
	case chess.Queen:
		g = b.travelAll(player, c, royalSteps, Unlimited)
	case chess.King:
		if q.IncludeKing {
			g = b.travelAll(player, c, royalSteps, 1)
			if q.IncludeSpecialMoves && b.castlingFor == player {
				g.Union(b.castling)
			}
		}
	}

	if piece == chess.King && q.SubtractKingIllegal {
		g.Subtract(b.AggregateMoveMap(player.Opponent(), AttackCoverage))
	}

	if !q.SkipCheckFilter {
		for _, to := range g.Coords() {
			if b.exposesKing(player, c, to) {
				g.Clear(to)
			}
		}
	}

	return g
}

// AggregateMoveMap unions MoveOptions over every square player owns.
// Kings are never subtracted against and special moves are never included.
func (b *BoardState) AggregateMoveMap(player chess.Player, q Query) chess.Grid {
	q.SubtractKingIllegal = false
	q.IncludeSpecialMoves = false

	var g chess.Grid
	for y := 0; y < chess.BoardSize; y++ {
		for x := 0; x < chess.BoardSize; x++ {
			if b.squares[y][x].Owner == player {
				g.Union(b.MoveOptions(player, chess.XY(x, y), q))
			}
		}
	}
	return g
}

// LegalMoves lists every move player may make, one entry per promotion choice.
func (b *BoardState) LegalMoves(player chess.Player) []chess.Move {
	var moves []chess.Move
	for y := 0; y < chess.BoardSize; y++ {
		for x := 0; x < chess.BoardSize; x++ {
			from := chess.XY(x, y)
			if !b.CanSelect(player, from) {
				continue
			}
			opts := b.MoveOptions(player, from, LegalMoves)
			promotes := b.squares.At(from).Piece == chess.Pawn
			for _, to := range opts.Coords() {
				if promotes && to.Y == player.PromotionRow() {
					for _, p := range chess.PromotionChoices {
						moves = append(moves, chess.Move{From: from, To: to, Promote: p})
					}
					continue
				}
				moves = append(moves, chess.Move{From: from, To: to})
			}
		}
	}
	return moves
}
