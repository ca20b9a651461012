package engine

import "github.com/lgbarn/alderchess-go/internal/chess"

// Unlimited is the travel distance of sliding pieces.
const Unlimited = -1

// Step vectors for each piece family.
var (
	knightSteps = []chess.Coord{
		{X: -2, Y: -1}, {X: -2, Y: 1}, {X: -1, Y: -2}, {X: -1, Y: 2},
		{X: 1, Y: -2}, {X: 1, Y: 2}, {X: 2, Y: -1}, {X: 2, Y: 1},
	}
	diagonalSteps = []chess.Coord{{X: -1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: -1}, {X: 1, Y: 1}}
	straightSteps = []chess.Coord{{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1}}
	royalSteps    = append(append([]chess.Coord{}, diagonalSteps...), straightSteps...)
)

// TravelMap walks from the square at c along step for up to distance steps
// (Unlimited for no limit). The walk stops before a square owned by player
// and stops on the first square owned by the opponent, which is included.
func (b *BoardState) TravelMap(player chess.Player, c, step chess.Coord, distance int) chess.Grid {
	var g chess.Grid
	loc := c
	for n := 0; distance == Unlimited || n < distance; n++ {
		loc = loc.Add(step)
		if !loc.OnBoard() {
			break
		}
		owner := b.squares.At(loc).Owner
		if owner == player {
			break
		}
		g.Set(loc)
		if owner != chess.Nobody {
			break
		}
	}
	return g
}

// travelAll unions TravelMap over several step vectors.
func (b *BoardState) travelAll(player chess.Player, c chess.Coord, steps []chess.Coord, distance int) chess.Grid {
	var g chess.Grid
	for _, step := range steps {
		g.Union(b.TravelMap(player, c, step, distance))
	}
	return g
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
