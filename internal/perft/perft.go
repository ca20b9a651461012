// Package perft counts move paths from a position, the standard way of
// checking a move generator against known totals.
package perft

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/alderchess-go/internal/chess"
	"github.com/lgbarn/alderchess-go/internal/engine"
	"github.com/lgbarn/alderchess-go/internal/hashing"
)

// Entry is the node count below one root move.
type Entry struct {
	Move  chess.Move
	Nodes uint64
}

// Option configures a count.
type Option func(*options)

type options struct {
	cache *hashing.ThreadSafeTable
}

// WithCache shares subtree counts through t. The same table may be used
// by concurrent counts and across calls.
func WithCache(t *hashing.ThreadSafeTable) Option {
	return func(o *options) {
		o.cache = t
	}
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Count returns the number of move paths of length depth from b for the
// side to move. Promotions count once per piece choice.
func Count(ctx context.Context, b *engine.BoardState, depth int, opts ...Option) (uint64, error) {
	return count(ctx, b, depth, collect(opts))
}

func count(ctx context.Context, b *engine.BoardState, depth int, o options) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if depth <= 0 {
		return 1, nil
	}

	moves := b.LegalMoves(b.Turn())
	if depth == 1 {
		return uint64(len(moves)), nil
	}

	var hash uint64
	if o.cache != nil {
		hash = hashing.Position(b)
		if nodes, ok := o.cache.Lookup(hash, depth); ok {
			return nodes, nil
		}
	}

	var nodes uint64
	for _, m := range moves {
		child := b.Clone()
		if err := child.Play(m); err != nil {
			return 0, err
		}
		n, err := count(ctx, child, depth-1, o)
		if err != nil {
			return 0, err
		}
		nodes += n
	}

	if o.cache != nil {
		o.cache.Store(hash, depth, nodes)
	}
	return nodes, nil
}

// Divide counts each root move separately, spreading root moves over at
// most workers goroutines. The entries are sorted by move text.
func Divide(ctx context.Context, b *engine.BoardState, depth, workers int, opts ...Option) ([]Entry, error) {
	if depth <= 0 {
		return nil, nil
	}
	if workers < 1 {
		workers = 1
	}
	o := collect(opts)

	moves := b.LegalMoves(b.Turn())
	entries := make([]Entry, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, m := range moves {
		g.Go(func() error {
			child := b.Clone()
			if err := child.Play(m); err != nil {
				return err
			}
			n, err := count(ctx, child, depth-1, o)
			if err != nil {
				return err
			}
			entries[i] = Entry{Move: m, Nodes: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Move.String() < entries[j].Move.String()
	})
	return entries, nil
}

// Parallel is Count with the root moves spread over workers goroutines.
func Parallel(ctx context.Context, b *engine.BoardState, depth, workers int, opts ...Option) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}
	entries, err := Divide(ctx, b, depth, workers, opts...)
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, e := range entries {
		total += e.Nodes
	}
	return total, nil
}
