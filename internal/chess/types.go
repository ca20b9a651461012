// Package chess provides the core value types shared by the rules engine
// and its callers.
package chess

// Player identifies the owner of a square or the side to move.
// The numeric values are part of the save format.
type Player uint8

const (
	Nobody Player = iota
	Black
	White
)

// String returns the string representation of a player.
func (p Player) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "Nobody"
}

// Opponent returns the other player. Nobody has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case Black:
		return White
	case White:
		return Black
	}
	return Nobody
}

// Valid reports whether p fits the two bits reserved for it on disk.
func (p Player) Valid() bool {
	return p <= White
}

// HomeRow returns the row holding the player's king and rooks at the start.
func (p Player) HomeRow() int {
	if p == White {
		return BoardSize - 1
	}
	return 0
}

// PawnRow returns the row the player's pawns start on.
func (p Player) PawnRow() int {
	if p == White {
		return BoardSize - 2
	}
	return 1
}

// PromotionRow returns the row on which the player's pawns promote.
func (p Player) PromotionRow() int {
	if p == White {
		return 0
	}
	return BoardSize - 1
}

// Forward returns the row delta of a pawn step for the player.
// White moves towards row 0, Black towards row 7.
func (p Player) Forward() int {
	if p == White {
		return -1
	}
	return 1
}

// Piece represents a piece type. The numeric values are part of the save format.
type Piece uint8

const (
	NoPiece Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece.
func (p Piece) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece (uppercase).
func (p Piece) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// Valid reports whether p is a known piece type (NoPiece included).
func (p Piece) Valid() bool {
	return p <= King
}

// IsPromotionChoice reports whether a pawn may be promoted to p.
func (p Piece) IsPromotionChoice() bool {
	return p == Knight || p == Bishop || p == Rook || p == Queen
}

// PieceFromLetter converts a piece letter in either case to a piece type.
func PieceFromLetter(c byte) Piece {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	}
	return NoPiece
}

// PromotionChoices lists the pieces a pawn may become, strongest first.
var PromotionChoices = []Piece{Queen, Rook, Bishop, Knight}

// BoardSize is the number of files and rows.
const BoardSize = 8

// BackRank is the order of pieces on a home row from file a to file h.
var BackRank = [BoardSize]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
