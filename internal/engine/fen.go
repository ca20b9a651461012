package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/alderchess-go/internal/chess"
	"github.com/lgbarn/alderchess-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FromFEN creates a board from a FEN string. Castling rights leave the
// matching king and rook untouched, pawns on their starting row are
// untouched, every other square is touched. Move clocks are ignored.
func FromFEN(fen string) (*BoardState, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, &errors.ParseError{Err: errors.ErrInvalidFEN, Input: fen, Field: "placement", Got: "empty string"}
	}

	b := &BoardState{promotion: chess.NoCoord}

	if err := parsePiecePositions(b, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(b, parts); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(b, parts); err != nil {
		return nil, err
	}
	if err := parseEnPassant(b, parts); err != nil {
		return nil, err
	}

	b.restorePromotion()
	b.deriveCastlingEligibility(b.turn)
	return b, nil
}

// MustFromFEN is FromFEN for positions known to be valid.
func MustFromFEN(fen string) *BoardState {
	b, err := FromFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(b *BoardState, positions string) error {
	rows := strings.Split(positions, "/")
	if len(rows) != chess.BoardSize {
		return &errors.ParseError{
			Err:      errors.ErrInvalidFEN,
			Input:    positions,
			Field:    "placement",
			Expected: "8 rows",
			Got:      fmt.Sprintf("%d rows", len(rows)),
		}
	}

	for y, row := range rows {
		x := 0
		for _, c := range row {
			if c >= '1' && c <= '8' {
				n := int(c - '0')
				if x+n > chess.BoardSize {
					return &errors.ParseError{
						Err:      errors.ErrInvalidFEN,
						Input:    positions,
						Field:    "placement",
						Expected: "8 squares per row",
						Got:      row,
					}
				}
				for ; n > 0; n-- {
					b.squares[y][x] = chess.Square{Touched: true}
					x++
				}
				continue
			}

			piece := chess.PieceFromLetter(byte(c))
			if piece == chess.NoPiece || x >= chess.BoardSize {
				return &errors.ParseError{Err: errors.ErrInvalidFEN, Input: positions, Field: "placement", Got: string(c)}
			}

			owner := chess.White
			if c >= 'a' && c <= 'z' {
				owner = chess.Black
			}
			touched := !(piece == chess.Pawn && y == owner.PawnRow())
			b.squares[y][x] = chess.Square{Owner: owner, Piece: piece, Touched: touched}
			x++
		}
		if x != chess.BoardSize {
			return &errors.ParseError{
				Err:      errors.ErrInvalidFEN,
				Input:    row,
				Field:    "placement",
				Expected: "8 squares per row",
				Got:      fmt.Sprintf("%d", x),
			}
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(b *BoardState, parts []string) error {
	b.turn = chess.White
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		b.turn = chess.White
	case "b":
		b.turn = chess.Black
	default:
		return &errors.ParseError{Err: errors.ErrInvalidFEN, Field: "side to move", Expected: "w or b", Got: parts[1]}
	}
	return nil
}

// parseCastlingRights untouches the king and rook behind each right.
// A right whose pieces are not on their home squares is ignored.
func parseCastlingRights(b *BoardState, parts []string) error {
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	for _, c := range parts[2] {
		var player chess.Player
		var rookX int
		switch c {
		case 'K':
			player, rookX = chess.White, kingsideRookX
		case 'Q':
			player, rookX = chess.White, queensideRookX
		case 'k':
			player, rookX = chess.Black, kingsideRookX
		case 'q':
			player, rookX = chess.Black, queensideRookX
		default:
			return &errors.ParseError{Err: errors.ErrInvalidFEN, Field: "castling", Expected: "KQkq or -", Got: string(c)}
		}

		row := player.HomeRow()
		king := &b.squares[row][kingHomeX]
		rook := &b.squares[row][rookX]
		if king.Owner == player && king.Piece == chess.King && rook.Owner == player && rook.Piece == chess.Rook {
			king.Touched = false
			rook.Touched = false
		}
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(b *BoardState, parts []string) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	c, err := chess.ParseCoord(parts[3])
	if err != nil {
		return &errors.ParseError{Err: errors.ErrInvalidFEN, Field: "en passant", Expected: "square or -", Got: parts[3]}
	}
	b.squares.At(c).EnPassantTarget = true
	return nil
}

// FEN converts the board to a FEN string. Castling rights are those an
// untouched king and rook would still grant; clocks are always "0 1".
func (b *BoardState) FEN() string {
	var sb strings.Builder

	b.writePiecePositions(&sb)
	sb.WriteByte(' ')
	b.writeSideToMove(&sb)
	sb.WriteByte(' ')
	b.writeCastlingRights(&sb)
	sb.WriteByte(' ')
	b.writeEnPassant(&sb)
	sb.WriteString(" 0 1")

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func (b *BoardState) writePiecePositions(sb *strings.Builder) {
	for y := 0; y < chess.BoardSize; y++ {
		emptyCount := 0
		for x := 0; x < chess.BoardSize; x++ {
			sq := b.squares[y][x]
			if sq.Empty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(squareLetter(sq))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if y < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func (b *BoardState) writeSideToMove(sb *strings.Builder) {
	if b.turn == chess.Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func (b *BoardState) writeCastlingRights(sb *strings.Builder) {
	rights := []struct {
		player chess.Player
		rookX  int
		letter byte
	}{
		{chess.White, kingsideRookX, 'K'},
		{chess.White, queensideRookX, 'Q'},
		{chess.Black, kingsideRookX, 'k'},
		{chess.Black, queensideRookX, 'q'},
	}

	hasCastling := false
	for _, r := range rights {
		row := r.player.HomeRow()
		king := b.squares[row][kingHomeX]
		rook := b.squares[row][r.rookX]
		if king.Owner == r.player && king.Piece == chess.King && !king.Touched &&
			rook.Owner == r.player && rook.Piece == chess.Rook && !rook.Touched {
			sb.WriteByte(r.letter)
			hasCastling = true
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the en passant target square to the builder.
func (b *BoardState) writeEnPassant(sb *strings.Builder) {
	for y := 0; y < chess.BoardSize; y++ {
		for x := 0; x < chess.BoardSize; x++ {
			if b.squares[y][x].EnPassantTarget {
				sb.WriteString(chess.XY(x, y).String())
				return
			}
		}
	}
	sb.WriteByte('-')
}
