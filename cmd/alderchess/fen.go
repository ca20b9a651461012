package main

import (
	"bufio"
	"context"
	"strings"

	"github.com/lgbarn/alderchess-go/internal/engine"
	"github.com/lgbarn/alderchess-go/internal/errors"
	"github.com/lgbarn/alderchess-go/internal/output"
)

// runFEN parses the position given on the command line, or read from stdin
// when the only argument is "-", and describes it.
func runFEN(_ context.Context, a *app, args []string) error {
	fs := a.newFlagSet("fen")
	moves := fs.Bool("moves", false, "List the legal moves of the side to move")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fen, err := fenArgument(a, fs.Args())
	if err != nil {
		return err
	}
	b, err := engine.FromFEN(fen)
	if err != nil {
		return err
	}

	if err := a.writePosition(b); err != nil {
		return err
	}
	if *moves && !a.cfg.Output.JSONFormat {
		a.printf("%s\n", output.FormatMoves(b.LegalMoves(b.Turn())))
	}
	return nil
}

func fenArgument(a *app, args []string) (string, error) {
	switch {
	case len(args) == 0:
		return engine.InitialFEN, nil
	case len(args) == 1 && args[0] == "-":
		sc := bufio.NewScanner(a.stdin)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", errors.Wrap(err, "read FEN")
			}
			return "", errors.Wrap(errors.ErrInvalidFEN, "no FEN on stdin")
		}
		return strings.TrimSpace(sc.Text()), nil
	}
	return strings.Join(args, " "), nil
}
