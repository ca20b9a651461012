package session

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lgbarn/alderchess-go/internal/errors"
)

// Registry holds the live sessions of a process, keyed by ID.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	defaults []Option
	logger   *zap.Logger
}

// NewRegistry creates an empty registry. defaults are applied to every
// session it creates, before the per-call options.
func NewRegistry(logger *zap.Logger, defaults ...Option) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		defaults: defaults,
		logger:   logger,
	}
}

// Create starts a new session and registers it. Each session saves to a
// slot named after its ID unless an option says otherwise.
func (r *Registry) Create(opts ...Option) *Session {
	id := uuid.New()
	all := make([]Option, 0, len(r.defaults)+len(opts)+3)
	all = append(all, WithLogger(r.logger))
	all = append(all, r.defaults...)
	all = append(all, WithID(id), WithSlot(id.String()))
	all = append(all, opts...)
	s := New(all...)

	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()

	r.logger.Info("session created", zap.String("session_id", s.ID().String()))
	return s
}

// Get returns the session with id.
func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(errors.ErrSessionNotFound, "id %s", id)
	}
	return s, nil
}

// Remove drops the session with id.
func (r *Registry) Remove(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return errors.Wrapf(errors.ErrSessionNotFound, "id %s", id)
	}
	delete(r.sessions, id)
	r.logger.Info("session removed", zap.String("session_id", id.String()))
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// IDs lists the live session IDs in string order.
func (r *Registry) IDs() []uuid.UUID {
	r.mu.RLock()
	ids := make([]uuid.UUID, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}
