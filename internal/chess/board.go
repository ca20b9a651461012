package chess

// Square is one cell of the board.
type Square struct {
	Owner Player
	Piece Piece

	// Touched is set once the square's original occupant has moved or the
	// square has been moved into. Castling and the pawn double step need an
	// untouched square.
	Touched bool

	// EnPassantTarget marks the square a pawn skipped over on the previous ply.
	EnPassantTarget bool
}

// Empty reports whether no piece stands on the square.
func (s Square) Empty() bool {
	return s.Owner == Nobody || s.Piece == NoPiece
}

// Squares is the 8x8 board indexed [y][x].
type Squares [BoardSize][BoardSize]Square

// At returns the square at c. c must be on the board.
func (b *Squares) At(c Coord) *Square {
	return &b[c.Y][c.X]
}

// StartingSquares returns the standard initial position.
// Rows 2-5 begin touched: only squares that start with a piece can be untouched.
func StartingSquares() Squares {
	var sq Squares
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			sq[y][x].Touched = y >= 2 && y <= 5
		}
	}
	for _, p := range []Player{Black, White} {
		for x := 0; x < BoardSize; x++ {
			sq[p.HomeRow()][x].Owner = p
			sq[p.HomeRow()][x].Piece = BackRank[x]
			sq[p.PawnRow()][x].Owner = p
			sq[p.PawnRow()][x].Piece = Pawn
		}
	}
	return sq
}
