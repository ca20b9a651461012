package chess

import "strings"

// Grid is an 8x8 binary map indexed [y][x], used for travel and attack maps.
// Queries take the grid by value so results of calls can be queried directly.
type Grid [BoardSize][BoardSize]bool

// Has reports whether c is marked. Off-board coordinates are never marked.
func (g Grid) Has(c Coord) bool {
	return c.OnBoard() && g[c.Y][c.X]
}

// Set marks c.
func (g *Grid) Set(c Coord) {
	if c.OnBoard() {
		g[c.Y][c.X] = true
	}
}

// Clear unmarks c.
func (g *Grid) Clear(c Coord) {
	if c.OnBoard() {
		g[c.Y][c.X] = false
	}
}

// Union marks every square marked in o.
func (g *Grid) Union(o Grid) {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			g[y][x] = g[y][x] || o[y][x]
		}
	}
}

// Subtract unmarks every square marked in o.
func (g *Grid) Subtract(o Grid) {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			g[y][x] = g[y][x] && !o[y][x]
		}
	}
}

// Any reports whether at least one square is marked.
func (g Grid) Any() bool {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if g[y][x] {
				return true
			}
		}
	}
	return false
}

// Count returns the number of marked squares.
func (g Grid) Count() int {
	n := 0
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if g[y][x] {
				n++
			}
		}
	}
	return n
}

// Coords lists the marked squares, row-major.
func (g Grid) Coords() []Coord {
	var out []Coord
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if g[y][x] {
				out = append(out, Coord{X: x, Y: y})
			}
		}
	}
	return out
}

// GridOf builds a grid with the named squares marked.
func GridOf(squares ...string) Grid {
	var g Grid
	for _, s := range squares {
		g.Set(MustParseCoord(s))
	}
	return g
}

// String renders the grid with row 0 on top, '1' for marked squares.
func (g Grid) String() string {
	var sb strings.Builder
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if g[y][x] {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
