// alderchess is a two-player chess rules engine with a line-oriented
// front end, perft counting and save-file tooling.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/lgbarn/alderchess-go/internal/config"
	"github.com/lgbarn/alderchess-go/internal/engine"
	"github.com/lgbarn/alderchess-go/internal/output"
)

const programVersion = "0.1.0"

// app carries what every subcommand needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{"play", "play a game from stdin, one command per line", runPlay},
	{"perft", "count move paths from a position", runPerft},
	{"fen", "validate a FEN string and describe the position", runFEN},
	{"dump", "decode a saved game", runDump},
	{"replay", "replay a move list and summarise it", runReplay},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses the global flags, builds the configuration and dispatches to
// a subcommand. It returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("alderchess", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(fs, stderr) }

	defaults := config.NewConfig()
	backend := fs.String("backend", defaults.Storage.Backend, "Save backend: file or badger")
	dataDir := fs.String("datadir", "", "Data directory (default: platform data dir)")
	slot := fs.String("slot", defaults.Storage.Slot, "Save slot name")
	logLevel := fs.String("loglevel", defaults.Logging.Level, "Log level: debug, info, warn, error")
	devLog := fs.Bool("devlog", false, "Human-readable development logging")
	workers := fs.Int("workers", defaults.Perft.Workers, "Perft worker goroutines")
	cache := fs.Int("cache", defaults.Perft.CacheEntries, "Perft transposition table entries (0 disables)")
	jsonOutput := fs.Bool("json", false, "Report positions as JSON")
	version := fs.Bool("version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *version {
		fmt.Fprintf(stdout, "alderchess version %s\n", programVersion)
		return 0
	}

	rest := fs.Args()
	if len(rest) == 0 {
		usage(fs, stderr)
		return 2
	}

	cfg := config.NewConfigBuilder().
		WithBackend(*backend).
		WithDataDir(*dataDir).
		WithSlot(*slot).
		WithLogLevel(*logLevel).
		WithDevelopmentLogging(*devLog).
		WithPerftWorkers(*workers).
		WithPerftCache(*cache).
		WithJSONOutput(*jsonOutput).
		Build()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "alderchess: %v\n", err)
		return 2
	}

	logger, err := cfg.Logging.Logger(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "alderchess: %v\n", err)
		return 2
	}
	defer logger.Sync() //nolint:errcheck // nothing to report a failed flush to

	a := &app{cfg: cfg, logger: logger, stdin: stdin, stdout: stdout, stderr: stderr}

	cmd, ok := lookupCommand(rest[0])
	if !ok {
		fmt.Fprintf(stderr, "alderchess: unknown command %q\n", rest[0])
		usage(fs, stderr)
		return 2
	}

	if err := cmd.run(ctx, a, rest[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		logger.Debug("command failed", zap.String("command", cmd.name), zap.Error(err))
		fmt.Fprintf(stderr, "alderchess %s: %v\n", cmd.name, err)
		return 1
	}
	return 0
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: alderchess [options] <command> [command options]\n\n")
	fmt.Fprintf(w, "A two-player chess rules engine.\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-6s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "\nOptions:\n")
	fs.PrintDefaults()
}

// newFlagSet returns a subcommand flag set that reports to a.stderr.
func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("alderchess "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// writePosition reports b in the configured output format.
func (a *app) writePosition(b *engine.BoardState) error {
	w := output.New(a.stdout, a.cfg.Output.JSONFormat)
	if err := w.WritePosition(b); err != nil {
		return err
	}
	return w.Close()
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.stdout, format, args...)
}
