package chess

import "fmt"

// Coord addresses a square. X is the file (0 = a), Y is the row with 0 being
// Black's back rank, so algebraic rank = 8 - Y.
type Coord struct {
	X int
	Y int
}

// NoCoord is returned where a coordinate is absent.
var NoCoord = Coord{X: -1, Y: -1}

// XY is shorthand for Coord{X: x, Y: y}.
func XY(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns the coordinate offset by v.
func (c Coord) Add(v Coord) Coord {
	return Coord{X: c.X + v.X, Y: c.Y + v.Y}
}

// Sub returns the vector from o to c.
func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

// OnBoard reports whether the coordinate lies on the 8x8 board.
func (c Coord) OnBoard() bool {
	return c.X >= 0 && c.X < BoardSize && c.Y >= 0 && c.Y < BoardSize
}

// String returns the algebraic name of the square ("e2"), or "-" when off board.
func (c Coord) String() string {
	if !c.OnBoard() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+c.X, '8'-c.Y)
}

// ParseCoord converts an algebraic square name to a coordinate.
func ParseCoord(s string) (Coord, error) {
	if len(s) != 2 {
		return NoCoord, fmt.Errorf("invalid square %q", s)
	}
	file, rank := s[0], s[1]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoCoord, fmt.Errorf("invalid square %q", s)
	}
	return Coord{X: int(file - 'a'), Y: int('8' - rank)}, nil
}

// MustParseCoord is ParseCoord for literals known to be valid.
func MustParseCoord(s string) Coord {
	c, err := ParseCoord(s)
	if err != nil {
		panic(err)
	}
	return c
}
