// Package session drives a BoardState through the select, move and promote
// cycle of an interactive game and persists it through a storage.Store.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lgbarn/alderchess-go/internal/chess"
	"github.com/lgbarn/alderchess-go/internal/engine"
	"github.com/lgbarn/alderchess-go/internal/errors"
	"github.com/lgbarn/alderchess-go/internal/storage"
)

// Session is one game. All methods are safe for concurrent use; calls on
// the same session are serialised.
type Session struct {
	mu sync.Mutex

	id     uuid.UUID
	board  *engine.BoardState
	store  storage.Store
	slot   string
	logger *zap.Logger

	phase     Phase
	outcome   Outcome
	selected  chess.Coord
	options   chess.Grid
	spotlight chess.Grid
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore sets where Save and Load keep the board.
func WithStore(store storage.Store) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithSlot sets the save slot name. The default is storage.DefaultSlot.
func WithSlot(slot string) Option {
	return func(s *Session) {
		s.slot = slot
	}
}

// WithBoard starts the session from an existing position instead of the
// standard one.
func WithBoard(b *engine.BoardState) Option {
	return func(s *Session) {
		if b != nil {
			s.board = b
		}
	}
}

// WithID fixes the session ID instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(s *Session) {
		s.id = id
	}
}

// New creates a session on the standard starting position.
func New(opts ...Option) *Session {
	s := &Session{
		id:       uuid.New(),
		slot:     storage.DefaultSlot,
		logger:   zap.NewNop(),
		selected: chess.NoCoord,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.board == nil {
		s.board = engine.New()
	}
	s.logger = s.logger.With(zap.String("session_id", s.id.String()))
	s.settle()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Outcome returns how the game ended, or an Ongoing outcome.
func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Turn returns the side to move.
func (s *Session) Turn() chess.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Turn()
}

// Board returns a copy of the current position.
func (s *Session) Board() *engine.BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

// Selected returns the selected square, if any.
func (s *Session) Selected() (chess.Coord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.phase == AwaitingDestination
}

// Options returns the legal destinations of the selected piece.
func (s *Session) Options() chess.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options
}

// Spotlight returns the squares of the side to move holding a piece with at
// least one legal move. It is empty once the game is over.
func (s *Session) Spotlight() chess.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spotlight
}

// Click handles a square being picked. With nothing selected it selects a
// piece of the side to move. Picking the selected square again drops the
// selection; picking any other square tries to move there, and an illegal
// destination keeps the selection.
func (s *Session) Click(c chess.Coord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.click(c)
}

func (s *Session) click(c chess.Coord) error {
	switch s.phase {
	case GameOver:
		return errors.ErrGameOver
	case AwaitingPromotionChoice:
		return errors.ErrPromotionPending
	case AwaitingDestination:
		if c == s.selected {
			s.deselect()
			return nil
		}
		return s.moveSelected(c)
	}

	turn := s.board.Turn()
	if !s.board.CanSelect(turn, c) {
		return &errors.MoveError{Err: errors.ErrNotSelectable, From: c.String(), Player: turn.String()}
	}
	s.selected = c
	s.options = s.board.MoveOptions(turn, c, engine.LegalMoves)
	s.phase = AwaitingDestination
	s.logger.Debug("piece selected",
		zap.String("square", c.String()),
		zap.Int("options", s.options.Count()))
	return nil
}

func (s *Session) moveSelected(to chess.Coord) error {
	from := s.selected
	if err := s.board.ApplyMove(from, to); err != nil {
		s.logger.Debug("move rejected",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
			zap.Error(err))
		return err
	}

	s.logger.Info("move applied",
		zap.String("player", s.board.Owner(to).String()),
		zap.String("from", from.String()),
		zap.String("to", to.String()))

	s.deselect()
	if s.board.PromotionPending() {
		s.phase = AwaitingPromotionChoice
		s.spotlight = chess.Grid{}
		return nil
	}
	return s.afterTurn()
}

// Promote resolves a pending promotion and passes the turn.
func (s *Session) Promote(piece chess.Piece) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promote(piece)
}

func (s *Session) promote(piece chess.Piece) error {
	if s.phase != AwaitingPromotionChoice {
		return errors.ErrNoPromotionPending
	}
	if err := s.board.ResolvePromotion(piece); err != nil {
		return err
	}
	s.logger.Info("pawn promoted", zap.String("piece", piece.String()))
	return s.afterTurn()
}

// Move plays m in one call: selection, destination and, if m names one,
// the promotion choice. Without a choice a promoting move stops in
// AwaitingPromotionChoice.
func (s *Session) Move(m chess.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == AwaitingDestination {
		s.deselect()
	}
	if err := s.click(m.From); err != nil {
		return err
	}
	if m.To == m.From {
		s.deselect()
		return &errors.MoveError{Err: errors.ErrIllegalMove, From: m.From.String(), To: m.To.String()}
	}
	if err := s.click(m.To); err != nil {
		s.deselect()
		return err
	}
	if s.phase == AwaitingPromotionChoice && m.Promote != chess.NoPiece {
		return s.promote(m.Promote)
	}
	return nil
}

// afterTurn passes the move to the opponent and classifies the new position.
func (s *Session) afterTurn() error {
	if err := s.board.AdvanceTurn(); err != nil {
		return err
	}
	s.settle()
	return nil
}

// settle derives phase, outcome and spotlight from the board.
func (s *Session) settle() {
	s.deselect()
	s.outcome = Outcome{}

	if s.board.PromotionPending() {
		s.phase = AwaitingPromotionChoice
		s.spotlight = chess.Grid{}
		return
	}

	turn := s.board.Turn()
	switch {
	case s.board.IsCheckmate(turn):
		s.outcome = Outcome{Result: Checkmate, Winner: turn.Opponent()}
	case s.board.IsStalemate(turn):
		s.outcome = Outcome{Result: Stalemate, Winner: chess.Nobody}
	}

	if s.outcome.Result != Ongoing {
		s.phase = GameOver
		s.spotlight = chess.Grid{}
		s.logger.Info("game over",
			zap.String("result", s.outcome.Result.String()),
			zap.String("winner", s.outcome.Winner.String()))
		return
	}

	s.phase = AwaitingSelection
	s.spotlight = s.computeSpotlight(turn)
	if s.board.IsInCheck(turn) {
		s.logger.Info("check", zap.String("player", turn.String()))
	}
}

func (s *Session) computeSpotlight(player chess.Player) chess.Grid {
	var g chess.Grid
	for y := 0; y < chess.BoardSize; y++ {
		for x := 0; x < chess.BoardSize; x++ {
			c := chess.XY(x, y)
			if !s.board.CanSelect(player, c) {
				continue
			}
			opts := s.board.MoveOptions(player, c, engine.LegalMoves)
			if opts.Any() {
				g.Set(c)
			}
		}
	}
	return g
}

func (s *Session) deselect() {
	s.selected = chess.NoCoord
	s.options = chess.Grid{}
	if s.phase == AwaitingDestination {
		s.phase = AwaitingSelection
	}
}

// Restart sets up a new game on the same session.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.board.Reset()
	s.settle()
	s.logger.Info("game restarted")
}

// Save writes the board to the configured slot. It is refused while a
// promotion is pending or once the game is over.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == AwaitingPromotionChoice || s.phase == GameOver {
		return errors.Wrapf(errors.ErrSaveRefused, "phase %v", s.phase)
	}
	if s.store == nil {
		return errors.Wrap(errors.ErrPersistence, "no store configured")
	}

	data, err := s.board.MarshalBinary()
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, s.slot, data); err != nil {
		s.logger.Warn("save failed", zap.String("slot", s.slot), zap.Error(err))
		return err
	}
	s.logger.Info("game saved", zap.String("slot", s.slot))
	return nil
}

// Load replaces the board with the one in the configured slot. On failure
// the session is unchanged.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return errors.Wrap(errors.ErrPersistence, "no store configured")
	}

	data, err := s.store.Get(ctx, s.slot)
	if err != nil {
		s.logger.Warn("load failed", zap.String("slot", s.slot), zap.Error(err))
		return err
	}
	if err := s.board.UnmarshalBinary(data); err != nil {
		s.logger.Warn("load failed", zap.String("slot", s.slot), zap.Error(err))
		return err
	}

	s.phase = AwaitingSelection
	s.settle()
	s.logger.Info("game loaded",
		zap.String("slot", s.slot),
		zap.String("turn", s.board.Turn().String()))
	return nil
}
