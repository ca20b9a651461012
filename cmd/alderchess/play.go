package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lgbarn/alderchess-go/internal/chess"
	"github.com/lgbarn/alderchess-go/internal/engine"
	"github.com/lgbarn/alderchess-go/internal/errors"
	"github.com/lgbarn/alderchess-go/internal/output"
	"github.com/lgbarn/alderchess-go/internal/session"
)

const playHelp = `Commands:
  e2e4, e7e8q     play a move in coordinate notation
  click <square>  select a piece, pick a destination, or drop the selection
  promote <piece> choose q, r, b or n for a waiting pawn
  board           show the position
  moves           list the legal moves of the side to move
  spotlight       list the pieces that can move
  fen             print the position as FEN
  save, load      write or read the configured slot
  restart         start a new game
  help, quit
`

// runPlay drives a session from stdin, one command per line. Errors from a
// command are reported and the game continues unless -strict is set.
func runPlay(ctx context.Context, a *app, args []string) error {
	fs := a.newFlagSet("play")
	fen := fs.String("fen", "", "Start from this position instead of the standard one")
	load := fs.Bool("load", false, "Load the configured slot before reading commands")
	strict := fs.Bool("strict", false, "Stop at the first failing command")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := []session.Option{
		session.WithLogger(a.logger),
		session.WithSlot(a.cfg.Storage.Slot),
	}
	if *fen != "" {
		b, err := engine.FromFEN(*fen)
		if err != nil {
			return err
		}
		opts = append(opts, session.WithBoard(b))
	}

	store, err := openStore(a)
	if err != nil {
		return err
	}
	defer store.Close()
	opts = append(opts, session.WithStore(store))

	s := session.New(opts...)
	a.logger.Debug("session started", zap.String("session_id", s.ID().String()))

	if *load {
		if err := s.Load(ctx); err != nil {
			return err
		}
	}
	a.printf("%s\n", statusLine(s))

	sc := bufio.NewScanner(a.stdin)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		quit, err := playCommand(ctx, a, s, line)
		if err != nil {
			if *strict {
				return errors.Wrap(err, line)
			}
			a.printf("error: %v\n", err)
			continue
		}
		if quit {
			return nil
		}
	}
	return sc.Err()
}

// playCommand executes one line. It reports whether the session should end.
func playCommand(ctx context.Context, a *app, s *session.Session, line string) (bool, error) {
	fields := strings.Fields(line)
	verb, rest := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "quit", "exit":
		return true, nil
	case "help":
		a.printf("%s", playHelp)
		return false, nil
	case "board":
		return false, a.writePosition(s.Board())
	case "fen":
		a.printf("%s\n", s.Board().FEN())
		return false, nil
	case "moves":
		b := s.Board()
		a.printf("%s\n", output.FormatMoves(b.LegalMoves(b.Turn())))
		return false, nil
	case "spotlight":
		a.printf("%s\n", formatGrid(s.Spotlight()))
		return false, nil
	case "restart":
		s.Restart()
	case "save":
		if err := s.Save(ctx); err != nil {
			return false, err
		}
		a.printf("saved\n")
		return false, nil
	case "load":
		if err := s.Load(ctx); err != nil {
			return false, err
		}
	case "click":
		c, err := oneSquare(rest)
		if err != nil {
			return false, err
		}
		if err := s.Click(c); err != nil {
			return false, err
		}
	case "promote":
		piece, err := promotionPiece(rest)
		if err != nil {
			return false, err
		}
		if err := s.Promote(piece); err != nil {
			return false, err
		}
	default:
		if len(rest) > 0 {
			return false, fmt.Errorf("unknown command %q", verb)
		}
		m, err := chess.ParseMove(verb)
		if err != nil {
			return false, fmt.Errorf("unknown command %q", verb)
		}
		if err := s.Move(m); err != nil {
			return false, err
		}
	}

	a.printf("%s\n", statusLine(s))
	return false, nil
}

func oneSquare(args []string) (chess.Coord, error) {
	if len(args) != 1 {
		return chess.NoCoord, fmt.Errorf("click takes one square")
	}
	return chess.ParseCoord(args[0])
}

func promotionPiece(args []string) (chess.Piece, error) {
	if len(args) != 1 || args[0] == "" {
		return chess.NoPiece, fmt.Errorf("promote takes one piece")
	}
	name := strings.ToLower(args[0])
	piece := chess.PieceFromLetter(name[0])
	if name == "knight" {
		piece = chess.Knight
	}
	if len(name) > 1 && !strings.EqualFold(name, piece.String()) {
		piece = chess.NoPiece
	}
	if !piece.IsPromotionChoice() {
		return chess.NoPiece, errors.Wrapf(errors.ErrInvalidPromotion, "%q", args[0])
	}
	return piece, nil
}

// statusLine summarises the session in one line.
func statusLine(s *session.Session) string {
	turn := s.Turn()
	switch s.Phase() {
	case session.GameOver:
		return s.Outcome().String()
	case session.AwaitingPromotionChoice:
		b := s.Board()
		c, _ := b.PendingPromotion()
		return fmt.Sprintf("%v to choose a promotion for %s", b.Owner(c), c)
	case session.AwaitingDestination:
		c, _ := s.Selected()
		return fmt.Sprintf("%v to move, %s selected", turn, c)
	}
	if s.Board().IsInCheck(turn) {
		return fmt.Sprintf("%v to move, in check", turn)
	}
	return fmt.Sprintf("%v to move", turn)
}
