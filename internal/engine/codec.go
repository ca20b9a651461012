package engine

import (
	stderrors "errors"
	"io"

	"github.com/lgbarn/alderchess-go/internal/chess"
	"github.com/lgbarn/alderchess-go/internal/errors"
)

// Save layout: 4-byte magic, 1 turn byte, then one byte per square, row by row.
const (
	SaveMagic  = "ALD1"
	SaveSize   = len(SaveMagic) + 1 + chess.BoardSize*chess.BoardSize
	turnOffset = len(SaveMagic)
	gridOffset = turnOffset + 1
)

// Square byte layout (LSB first).
const (
	ownerMask    = 0x03
	pieceShift   = 2
	pieceMask    = 0x1C
	touchedBit   = 0x20
	enPassantBit = 0x40
)

// MarshalBinary encodes the board in the fixed save layout.
// Pending promotions and castling targets are not stored; both are derived on load.
func (b *BoardState) MarshalBinary() ([]byte, error) {
	buf := make([]byte, SaveSize)
	copy(buf, SaveMagic)
	buf[turnOffset] = byte(b.turn)
	for y := 0; y < chess.BoardSize; y++ {
		for x := 0; x < chess.BoardSize; x++ {
			buf[gridOffset+y*chess.BoardSize+x] = encodeSquare(b.squares[y][x])
		}
	}
	return buf, nil
}

// UnmarshalBinary replaces the board with an encoded one. The whole buffer
// is validated first; on error the board is unchanged. Bytes beyond
// SaveSize are ignored.
func (b *BoardState) UnmarshalBinary(data []byte) error {
	squares, turn, err := decodeSave(data)
	if err != nil {
		return err
	}

	b.squares = squares
	b.turn = turn
	b.promotionPending = false
	b.promotion = chess.NoCoord
	b.restorePromotion()
	b.deriveCastlingEligibility(b.turn)
	return nil
}

// Save writes the encoded board to w.
func (b *BoardState) Save(w io.Writer) error {
	data, err := b.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.WrapPersistence(err, "write save")
	}
	return nil
}

// Load reads one encoded board from r and replaces the current one.
func (b *BoardState) Load(r io.Reader) error {
	buf := make([]byte, SaveSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
			return errors.ErrTruncated
		}
		return errors.WrapPersistence(err, "read save")
	}
	return b.UnmarshalBinary(buf)
}

func encodeSquare(sq chess.Square) byte {
	v := byte(sq.Owner)&ownerMask | byte(sq.Piece)<<pieceShift&pieceMask
	if sq.Touched {
		v |= touchedBit
	}
	if sq.EnPassantTarget {
		v |= enPassantBit
	}
	return v
}

// decodeSave validates and decodes a save buffer without touching any board.
func decodeSave(data []byte) (chess.Squares, chess.Player, error) {
	var squares chess.Squares
	if len(data) < SaveSize {
		return squares, chess.Nobody, errors.ErrTruncated
	}
	if string(data[:len(SaveMagic)]) != SaveMagic {
		return squares, chess.Nobody, errors.ErrBadHeader
	}

	turn := chess.Player(data[turnOffset])
	if turn != chess.White && turn != chess.Black {
		return squares, chess.Nobody, errors.Wrapf(errors.ErrCorruptSquare, "turn byte %d", data[turnOffset])
	}

	for y := 0; y < chess.BoardSize; y++ {
		for x := 0; x < chess.BoardSize; x++ {
			v := data[gridOffset+y*chess.BoardSize+x]
			sq := chess.Square{
				Owner:           chess.Player(v & ownerMask),
				Piece:           chess.Piece(v & pieceMask >> pieceShift),
				Touched:         v&touchedBit != 0,
				EnPassantTarget: v&enPassantBit != 0,
			}
			if !sq.Owner.Valid() || !sq.Piece.Valid() {
				return squares, chess.Nobody, errors.Wrapf(errors.ErrCorruptSquare, "square %v byte %#02x", chess.XY(x, y), v)
			}
			squares[y][x] = sq
		}
	}
	return squares, turn, nil
}

// restorePromotion sets the pending promotion when a pawn stands on its last row.
func (b *BoardState) restorePromotion() {
	for x := 0; x < chess.BoardSize; x++ {
		for _, p := range []chess.Player{chess.White, chess.Black} {
			c := chess.XY(x, p.PromotionRow())
			sq := b.squares.At(c)
			if sq.Owner == p && sq.Piece == chess.Pawn {
				b.promotionPending = true
				b.promotion = c
				return
			}
		}
	}
}
