package engine

import (
	"github.com/lgbarn/alderchess-go/internal/chess"
	"github.com/lgbarn/alderchess-go/internal/errors"
)

// ApplyMove moves the piece at src to dst if that is a legal move for the
// piece's owner. Castling also moves the rook, en passant removes the passed
// pawn, a double step marks the skipped square, and a pawn reaching its last
// row leaves a promotion pending. The turn does not change.
//
// On failure the board is left untouched and the error wraps
// errors.ErrIllegalMove or errors.ErrPromotionPending.
func (b *BoardState) ApplyMove(src, dst chess.Coord) error {
	if b.promotionPending {
		return &errors.MoveError{Err: errors.ErrPromotionPending, From: src.String(), To: dst.String()}
	}
	if !src.OnBoard() || !dst.OnBoard() {
		return &errors.MoveError{Err: errors.ErrIllegalMove, From: src.String(), To: dst.String()}
	}

	mover := b.squares.At(src).Owner
	if !b.CanSelect(mover, src) {
		return &errors.MoveError{Err: errors.ErrIllegalMove, From: src.String(), To: dst.String()}
	}

	opts := b.MoveOptions(mover, src, LegalMoves)
	if !opts.Has(dst) {
		return &errors.MoveError{
			Err:    errors.ErrIllegalMove,
			From:   src.String(),
			To:     dst.String(),
			Player: mover.String(),
		}
	}

	piece := b.squares.At(src).Piece
	castled := piece == chess.King && b.castlingFor == mover &&
		b.castling.Has(dst) && abs(dst.X-src.X) == 2

	b.shift(src, dst)

	if castled {
		if side, ok := castleSideFor(dst.X); ok {
			b.shift(chess.XY(side.rookX, dst.Y), chess.XY(side.rookTargetX, dst.Y))
		}
	}

	b.clearEnPassant()
	if piece == chess.Pawn && abs(dst.Y-src.Y) == 2 {
		b.squares[(src.Y+dst.Y)/2][src.X].EnPassantTarget = true
	}

	// Targets belong to the position before the move; AdvanceTurn rebuilds them.
	b.castling = chess.Grid{}

	if piece == chess.Pawn && dst.Y == mover.PromotionRow() {
		b.promotionPending = true
		b.promotion = dst
	}

	return nil
}

// clearEnPassant removes every en passant flag.
func (b *BoardState) clearEnPassant() {
	for y := 0; y < chess.BoardSize; y++ {
		for x := 0; x < chess.BoardSize; x++ {
			b.squares[y][x].EnPassantTarget = false
		}
	}
}

// ResolvePromotion replaces the waiting pawn with piece.
func (b *BoardState) ResolvePromotion(piece chess.Piece) error {
	if !b.promotionPending {
		return errors.ErrNoPromotionPending
	}
	if !piece.IsPromotionChoice() {
		return errors.Wrapf(errors.ErrInvalidPromotion, "promote to %v", piece)
	}
	b.squares.At(b.promotion).Piece = piece
	b.promotionPending = false
	b.promotion = chess.NoCoord
	return nil
}

// AdvanceTurn passes the move to the opponent and rebuilds castling targets.
// It fails while a promotion is pending.
func (b *BoardState) AdvanceTurn() error {
	if b.promotionPending {
		return errors.ErrPromotionPending
	}
	b.turn = b.turn.Opponent()
	b.deriveCastlingEligibility(b.turn)
	return nil
}

// Play makes a complete ply for the side to move: the move, its promotion
// (a queen when m names none) and the turn change.
func (b *BoardState) Play(m chess.Move) error {
	if m.Promote != chess.NoPiece && !m.Promote.IsPromotionChoice() {
		return errors.Wrapf(errors.ErrInvalidPromotion, "promote to %v", m.Promote)
	}
	if !b.CanSelect(b.turn, m.From) {
		return &errors.MoveError{
			Err:    errors.ErrIllegalMove,
			From:   m.From.String(),
			To:     m.To.String(),
			Player: b.turn.String(),
		}
	}
	if err := b.ApplyMove(m.From, m.To); err != nil {
		return err
	}
	if b.promotionPending {
		p := m.Promote
		if p == chess.NoPiece {
			p = chess.Queen
		}
		if err := b.ResolvePromotion(p); err != nil {
			return err
		}
	}
	return b.AdvanceTurn()
}
