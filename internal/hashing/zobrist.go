// Package hashing provides position hashes and the transposition table
// used to share perft counts between transposed move orders.
package hashing

import (
	"github.com/lgbarn/alderchess-go/internal/chess"
	"github.com/lgbarn/alderchess-go/internal/engine"
)

// squareStates covers every owner, piece, touched and en passant combination.
const squareStates = 128

const (
	pieceShift   = 2
	touchedBit   = 1 << 5
	enPassantBit = 1 << 6
)

type zobristKeys struct {
	square      [chess.BoardSize * chess.BoardSize][squareStates]uint64
	blackToMove uint64
}

// Keys come from a fixed seed so hashes are stable between runs.
var keys = newZobristKeys(0x98F107A2BEEF1234)

// prng is xorshift64*.
type prng struct {
	state uint64
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func newZobristKeys(seed uint64) *zobristKeys {
	rng := &prng{state: seed}
	k := &zobristKeys{}
	for sq := range k.square {
		for state := range k.square[sq] {
			k.square[sq][state] = rng.next()
		}
	}
	k.blackToMove = rng.next()
	return k
}

// Position returns the Zobrist hash of b.
//
// Two boards share a hash when every future move list is the same for
// both: the touched flag only counts for pawns, rooks and kings, and
// empty squares only count while they carry the en passant flag.
func Position(b *engine.BoardState) uint64 {
	var h uint64
	for y := 0; y < chess.BoardSize; y++ {
		for x := 0; x < chess.BoardSize; x++ {
			sq := b.Square(chess.XY(x, y))
			if sq.Empty() && !sq.EnPassantTarget {
				continue
			}
			h ^= keys.square[y*chess.BoardSize+x][squareState(sq)]
		}
	}
	if b.Turn() == chess.Black {
		h ^= keys.blackToMove
	}
	return h
}

func squareState(sq chess.Square) int {
	if sq.Empty() {
		return enPassantBit
	}
	state := int(sq.Owner) | int(sq.Piece)<<pieceShift
	switch sq.Piece {
	case chess.Pawn, chess.Rook, chess.King:
		if sq.Touched {
			state |= touchedBit
		}
	}
	if sq.EnPassantTarget {
		state |= enPassantBit
	}
	return state
}
