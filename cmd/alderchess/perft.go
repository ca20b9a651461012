package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/lgbarn/alderchess-go/internal/engine"
	"github.com/lgbarn/alderchess-go/internal/errors"
	"github.com/lgbarn/alderchess-go/internal/hashing"
	"github.com/lgbarn/alderchess-go/internal/perft"
)

// runPerft counts move paths to the requested depth. With -divide the count
// below each root move is printed as well; with -suite every position of an
// EPD perft suite is checked instead.
func runPerft(ctx context.Context, a *app, args []string) error {
	fs := a.newFlagSet("perft")
	depth := fs.Int("depth", a.cfg.Perft.Depth, "Depth in plies (with -suite: deepest depth checked, 0 = all)")
	fen := fs.String("fen", engine.InitialFEN, "Start position")
	divide := fs.Bool("divide", false, "Print the count below each root move")
	suite := fs.String("suite", "", "Check the positions of an EPD perft suite file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *depth < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "perft depth %d", *depth)
	}

	var opts []perft.Option
	var cache *hashing.ThreadSafeTable
	if a.cfg.Perft.CacheEntries > 0 {
		cache = hashing.NewThreadSafeTable(a.cfg.Perft.CacheEntries)
		opts = append(opts, perft.WithCache(cache))
	}
	defer logCache(a, cache)

	if *suite != "" {
		return runSuite(ctx, a, *suite, *depth, opts)
	}

	b, err := engine.FromFEN(*fen)
	if err != nil {
		return err
	}

	start := time.Now()
	var nodes uint64
	if *divide {
		entries, err := perft.Divide(ctx, b, *depth, a.cfg.Perft.Workers, opts...)
		if err != nil {
			return err
		}
		for _, e := range entries {
			a.printf("%s: %d\n", e.Move, e.Nodes)
			nodes += e.Nodes
		}
		if *depth == 0 {
			nodes = 1
		}
		a.printf("\n")
	} else {
		nodes, err = perft.Parallel(ctx, b, *depth, a.cfg.Perft.Workers, opts...)
		if err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	a.printf("Nodes searched: %d\n", nodes)
	a.logger.Info("perft finished",
		zap.Int("depth", *depth),
		zap.Uint64("nodes", nodes),
		zap.Int("workers", a.cfg.Perft.Workers),
		zap.Duration("elapsed", elapsed),
	)
	return nil
}

func runSuite(ctx context.Context, a *app, path string, maxDepth int, opts []perft.Option) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open suite")
	}
	defer f.Close()

	cases, err := perft.ParseSuite(f)
	if err != nil {
		return err
	}

	results, err := perft.RunSuite(ctx, cases, maxDepth, a.cfg.Perft.Workers, opts...)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		c := cases[r.Case]
		switch {
		case r.Err != nil:
			failed++
			a.printf("ERR  line %d D%d: %v\n", c.Line, r.Depth, r.Err)
		case !r.Passed():
			failed++
			a.printf("FAIL line %d D%d: got %d, want %d  %s\n", c.Line, r.Depth, r.Got, r.Want, c.FEN)
		default:
			a.printf("ok   line %d D%d: %d\n", c.Line, r.Depth, r.Got)
		}
	}
	a.printf("%d of %d checks passed\n", len(results)-failed, len(results))

	if failed > 0 {
		return fmt.Errorf("%d suite checks failed", failed)
	}
	return nil
}

func logCache(a *app, cache *hashing.ThreadSafeTable) {
	if cache == nil {
		return
	}
	probes, hits := cache.Stats()
	a.logger.Debug("perft cache",
		zap.Int("entries", cache.Len()),
		zap.Int("probes", probes),
		zap.Int("hits", hits),
	)
}
