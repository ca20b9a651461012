package main

import (
	"bufio"
	"context"

	"go.uber.org/zap"

	"github.com/lgbarn/alderchess-go/internal/chess"
	"github.com/lgbarn/alderchess-go/internal/engine"
	"github.com/lgbarn/alderchess-go/internal/errors"
	"github.com/lgbarn/alderchess-go/internal/processing"
)

// runReplay plays a list of coordinate moves, given as arguments or as
// whitespace-separated words on stdin, and summarises the game.
func runReplay(_ context.Context, a *app, args []string) error {
	fs := a.newFlagSet("replay")
	fen := fs.String("fen", engine.InitialFEN, "Starting position")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start, err := engine.FromFEN(*fen)
	if err != nil {
		return err
	}
	moves, err := replayMoves(a, fs.Args())
	if err != nil {
		return err
	}

	board, analysis, err := processing.AnalyzeGame(start, moves)
	if err != nil {
		a.logger.Debug("replay stopped", zap.Int("plies", analysis.Plies), zap.Error(err))
		return err
	}

	if !a.cfg.Output.JSONFormat {
		a.printf("Plies:      %d\n", analysis.Plies)
		a.printf("Captures:   %d (en passant %d)\n", analysis.Captures, analysis.EnPassant)
		a.printf("Castles:    %d\n", analysis.Castles)
		a.printf("Checks:     %d\n", analysis.Checks)
		a.printf("Promotions: %d\n", analysis.Promotions)
		a.printf("Repeats:    %d\n\n", analysis.MaxRepetitions)
	}
	return a.writePosition(board)
}

func replayMoves(a *app, args []string) ([]chess.Move, error) {
	words := args
	if len(words) == 0 {
		sc := bufio.NewScanner(a.stdin)
		sc.Split(bufio.ScanWords)
		for sc.Scan() {
			words = append(words, sc.Text())
		}
		if err := sc.Err(); err != nil {
			return nil, errors.Wrap(err, "read moves")
		}
	}

	moves := make([]chess.Move, 0, len(words))
	for _, w := range words {
		m, err := chess.ParseMove(w)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}
