package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lgbarn/alderchess-go/internal/engine"
	"github.com/lgbarn/alderchess-go/internal/output"
	"github.com/lgbarn/alderchess-go/internal/testutil"
)

const foolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"

// runCLI runs the command line with a quiet logger and returns the exit
// code together with everything written to stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"-loglevel", "error"}, args...)
	code := run(context.Background(), full, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_GlobalFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{"version", []string{"-version"}, 0, "alderchess version " + programVersion, ""},
		{"no command", nil, 2, "", "Usage: alderchess"},
		{"unknown command", []string{"dance"}, 2, "", `unknown command "dance"`},
		{"unknown backend", []string{"-backend", "sqlite", "fen"}, 2, "", "invalid configuration"},
		{"bad slot", []string{"-slot", "../x", "fen"}, 2, "", "invalid configuration"},
		{"no workers", []string{"-workers", "0", "perft"}, 2, "", "invalid configuration"},
		{"bad flag", []string{"-nosuchflag"}, 2, "", "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, "", tt.args...)
			testutil.AssertEqual(t, code, tt.wantCode)
			testutil.AssertContains(t, out, tt.wantOut)
			testutil.AssertContains(t, errOut, tt.wantErr)
		})
	}
}

func TestRun_UsageListsCommands(t *testing.T) {
	_, _, errOut := runCLI(t, "")
	for _, c := range commands {
		testutil.AssertContains(t, errOut, c.name)
	}
}

func TestFEN(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  []string
	}{
		{
			name: "default position",
			args: []string{"fen"},
			want: []string{"FEN:    " + engine.InitialFEN, "Turn:   White", "Status: in progress", "Moves:  20"},
		},
		{
			name: "checkmate",
			args: []string{"fen", foolsMateFEN},
			want: []string{"Status: checkmate", "Moves:  0"},
		},
		{
			name: "stalemate",
			args: []string{"fen", testutil.StalemateFEN},
			want: []string{"Turn:   Black", "Status: stalemate"},
		},
		{
			name:  "from stdin",
			stdin: testutil.CastlingFEN + "\n",
			args:  []string{"fen", "-"},
			want:  []string{"FEN:    r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"},
		},
		{
			name: "move list",
			args: []string{"fen", "-moves", testutil.PromotionFEN},
			want: []string{"e7e8q", "e7e8n", "e1d1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, tt.stdin, tt.args...)
			testutil.AssertEqual(t, code, 0, errOut)
			for _, w := range tt.want {
				testutil.AssertContains(t, out, w)
			}
		})
	}
}

func TestFEN_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"bad placement", "", []string{"fen", "rnbqkbnr/pppppppp/8/8 w - - 0 1"}},
		{"bad side", "", []string{"fen", "8/8/8/8/8/8/8/8", "x"}},
		{"empty stdin", "", []string{"fen", "-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, tt.stdin, tt.args...)
			testutil.AssertEqual(t, code, 1)
			testutil.AssertContains(t, errOut, "alderchess fen:")
		})
	}
}

func TestPerft(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"depth 2", []string{"perft", "-depth", "2"}, []string{"Nodes searched: 400"}},
		{"depth 0", []string{"perft", "-depth", "0"}, []string{"Nodes searched: 1"}},
		{"divide", []string{"-workers", "2", "perft", "-depth", "1", "-divide"}, []string{"a2a3: 1", "g1f3: 1", "Nodes searched: 20"}},
		{"position", []string{"perft", "-depth", "1", "-fen", testutil.PromotionFEN}, []string{"Nodes searched: 9"}},
		{"cached", []string{"-cache", "4096", "perft", "-depth", "3"}, []string{"Nodes searched: 8902"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, "", tt.args...)
			testutil.AssertEqual(t, code, 0, errOut)
			for _, w := range tt.want {
				testutil.AssertContains(t, out, w)
			}
		})
	}
}

func TestPerft_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative depth", []string{"perft", "-depth", "-1"}},
		{"bad fen", []string{"perft", "-fen", "nonsense"}},
		{"missing suite", []string{"perft", "-suite", "/nonexistent/suite.epd"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, "", tt.args...)
			testutil.AssertEqual(t, code, 1)
			testutil.AssertContains(t, errOut, "alderchess perft:")
		})
	}
}

func TestPlay(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		script  string
		want    []string
		notWant []string
	}{
		{
			name:   "opening moves",
			script: "e2e4\ne7e5\nquit\n",
			want:   []string{"White to move", "Black to move"},
		},
		{
			name:   "fools mate",
			script: strings.Join(testutil.FoolsMate, "\n") + "\n",
			want:   []string{"Black wins by checkmate"},
		},
		{
			name:   "moves after game over",
			script: strings.Join(testutil.FoolsMate, "\n") + "\ne2e4\n",
			want:   []string{"error: game over"},
		},
		{
			name:   "click flow",
			script: "click e2\nclick e2\nclick g1\nclick f3\n",
			want:   []string{"White to move, e2 selected", "White to move, g1 selected", "Black to move"},
		},
		{
			name:   "illegal move keeps going",
			script: "e2e5\ne2e4\n",
			want:   []string{"error:", "Black to move"},
		},
		{
			name:   "unknown command",
			script: "dance\n",
			want:   []string{`error: unknown command "dance"`},
		},
		{
			name:   "promotion",
			args:   []string{"-fen", testutil.PromotionFEN},
			script: "e7e8\npromote king\npromote queen\nfen\n",
			want:   []string{"White to choose a promotion for e8", "invalid promotion piece", "Black to move", "4Q3/8/8/8/8/8/8/k3K3 b"},
		},
		{
			name:   "promotion in one move",
			args:   []string{"-fen", testutil.PromotionFEN},
			script: "e7e8n\n",
			want:   []string{"Black to move"},
		},
		{
			name:   "check",
			args:   []string{"-fen", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1"},
			script: "a1a8\n",
			want:   []string{"Black to move, in check"},
		},
		{
			name:    "comments and blanks",
			script:  "# opening\n\nspotlight\nmoves\nboard\nhelp\n",
			want:    []string{"h2 b1 g1", "g1f3", "  abcdefgh", "promote <piece>"},
			notWant: []string{"error:"},
		},
		{
			name:   "restart",
			script: "e2e4\nrestart\nfen\n",
			want:   []string{engine.InitialFEN},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-datadir", t.TempDir(), "play"}, tt.args...)
			code, out, errOut := runCLI(t, tt.script, args...)
			testutil.AssertEqual(t, code, 0, errOut)
			for _, w := range tt.want {
				testutil.AssertContains(t, out, w)
			}
			for _, w := range tt.notWant {
				testutil.AssertNotContains(t, out, w)
			}
		})
	}
}

func TestPlay_Strict(t *testing.T) {
	code, out, errOut := runCLI(t, "e2e4\ne7e4\ne7e5\n", "-datadir", t.TempDir(), "play", "-strict")
	testutil.AssertEqual(t, code, 1)
	testutil.AssertContains(t, errOut, "alderchess play: e7e4")
	testutil.AssertNotContains(t, out, "error:")
}

func TestPlay_BadStartPosition(t *testing.T) {
	code, _, errOut := runCLI(t, "", "-datadir", t.TempDir(), "play", "-fen", "8/8 w")
	testutil.AssertEqual(t, code, 1)
	testutil.AssertContains(t, errOut, "invalid FEN")
}

func TestPlay_SaveAndDump(t *testing.T) {
	for _, backend := range []string{"file", "badger"} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			global := []string{"-datadir", dir, "-backend", backend}

			code, out, errOut := runCLI(t, "e2e4\nsave\nquit\n", append(global, "play")...)
			testutil.AssertEqual(t, code, 0, errOut)
			testutil.AssertContains(t, out, "saved")

			code, out, errOut = runCLI(t, "", append(global, "dump")...)
			testutil.AssertEqual(t, code, 0, errOut)
			testutil.AssertContains(t, out, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq")
			testutil.AssertContains(t, out, "Turn:   Black")

			code, out, _ = runCLI(t, "", append(global, "dump", "-slots")...)
			testutil.AssertEqual(t, code, 0)
			testutil.AssertEqual(t, strings.TrimSpace(out), "saved_game")

			code, out, errOut = runCLI(t, "fen\n", append(global, "play", "-load")...)
			testutil.AssertEqual(t, code, 0, errOut)
			testutil.AssertContains(t, out, "Black to move")
		})
	}
}

func TestPlay_SaveRefusedDuringPromotion(t *testing.T) {
	code, out, _ := runCLI(t, "e7e8\nsave\n", "-datadir", t.TempDir(), "play", "-fen", testutil.PromotionFEN)
	testutil.AssertEqual(t, code, 0)
	testutil.AssertContains(t, out, "save refused")
}

func TestPlay_LoadMissingSlot(t *testing.T) {
	code, _, errOut := runCLI(t, "", "-datadir", t.TempDir(), "-slot", "nothing", "play", "-load")
	testutil.AssertEqual(t, code, 1)
	testutil.AssertContains(t, errOut, "save slot not found")
}

func TestDump_File(t *testing.T) {
	data, err := engine.New().MarshalBinary()
	testutil.AssertNoError(t, err)
	path := filepath.Join(t.TempDir(), "start.alderchess")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCLI(t, "", "dump", "-hex", path)
	testutil.AssertEqual(t, code, 0, errOut)
	testutil.AssertContains(t, out, "41 4c 44 31")
	testutil.AssertContains(t, out, "FEN:    "+engine.InitialFEN)
}

func TestDump_Rejects(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.alderchess")
	if err := os.WriteFile(corrupt, []byte("ALD1"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"dump", filepath.Join(dir, "absent")}, "persistence failure"},
		{"truncated file", []string{"dump", corrupt}, "truncated save"},
		{"missing slot", []string{"-datadir", dir, "dump"}, "save slot not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, "", tt.args...)
			testutil.AssertEqual(t, code, 1)
			testutil.AssertContains(t, errOut, tt.want)
		})
	}
}

func TestPromotionPiece(t *testing.T) {
	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{"q", "Queen", false},
		{"Queen", "Queen", false},
		{"n", "Knight", false},
		{"knight", "Knight", false},
		{"rook", "Rook", false},
		{"B", "Bishop", false},
		{"k", "", true},
		{"king", "", true},
		{"p", "", true},
		{"quest", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := promotionPiece([]string{tt.arg})
			if tt.wantErr {
				testutil.AssertError(t, err)
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got.String(), tt.want)
		})
	}
}

func TestPerft_Suite(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.epd")
	bad := filepath.Join(dir, "bad.epd")
	suite := engine.InitialFEN + " ;D1 20 ;D2 400\n" +
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - ;D1 14 ;D2 191\n"
	if err := os.WriteFile(good, []byte(suite), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(engine.InitialFEN+" ;D1 21\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCLI(t, "", "-cache", "1024", "perft", "-suite", good, "-depth", "0")
	testutil.AssertEqual(t, code, 0, errOut)
	testutil.AssertContains(t, out, "ok   line 1 D2: 400")
	testutil.AssertContains(t, out, "4 of 4 checks passed")

	code, out, _ = runCLI(t, "", "perft", "-suite", good, "-depth", "1")
	testutil.AssertEqual(t, code, 0)
	testutil.AssertContains(t, out, "2 of 2 checks passed")

	code, out, errOut = runCLI(t, "", "perft", "-suite", bad)
	testutil.AssertEqual(t, code, 1)
	testutil.AssertContains(t, out, "FAIL line 1 D1: got 20, want 21")
	testutil.AssertContains(t, errOut, "1 suite checks failed")
}

func TestFEN_JSON(t *testing.T) {
	code, out, errOut := runCLI(t, "", "-json", "fen", "-moves", foolsMateFEN)
	testutil.AssertEqual(t, code, 0, errOut)

	var got output.JSONPosition
	testutil.AssertNoError(t, json.Unmarshal([]byte(out), &got))
	testutil.AssertEqual(t, got.Status, "checkmate")
	testutil.AssertTrue(t, got.InCheck)
	testutil.AssertEqual(t, got.Turn, "white")
	testutil.AssertEqual(t, got.LegalMoves, []string{})
}

func TestReplay(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  []string
	}{
		{
			name: "moves as arguments",
			args: append([]string{"replay"}, testutil.FoolsMate...),
			want: []string{"Plies:      4", "Checks:     1", "Status: checkmate", "Turn:   White"},
		},
		{
			name:  "moves on stdin",
			stdin: "e2e4 d7d5\ne4d5 d8d5\n",
			args:  []string{"replay"},
			want:  []string{"Plies:      4", "Captures:   2 (en passant 0)", "Status: in progress"},
		},
		{
			name: "from a position",
			args: []string{"replay", "-fen", testutil.EnPassantFEN, "e2e4", "d4e3"},
			want: []string{"Captures:   1 (en passant 1)", "FEN:    4k3/8/8/8/8/4p3/8/4K3 w - - 0 1"},
		},
		{
			name: "repetition",
			args: []string{"replay", "g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"},
			want: []string{"Repeats:    3", "FEN:    " + engine.InitialFEN},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, tt.stdin, tt.args...)
			testutil.AssertEqual(t, code, 0, errOut)
			for _, want := range tt.want {
				testutil.AssertContains(t, out, want)
			}
		})
	}
}

func TestReplay_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"illegal move", []string{"replay", "e2e4", "e2e4"}, "ply 2 (e2e4)"},
		{"after checkmate", append(append([]string{"replay"}, testutil.FoolsMate...), "a2a3"), "game over"},
		{"bad notation", []string{"replay", "castle"}, "replay"},
		{"bad position", []string{"replay", "-fen", "8/8/8 w - - 0 1", "e2e4"}, "invalid FEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, "", tt.args...)
			testutil.AssertEqual(t, code, 1)
			testutil.AssertEqual(t, out, "")
			testutil.AssertContains(t, errOut, tt.wantErr)
		})
	}
}

func TestReplay_JSON(t *testing.T) {
	args := append([]string{"-json", "replay"}, testutil.FoolsMate...)
	code, out, errOut := runCLI(t, "", args...)
	testutil.AssertEqual(t, code, 0, errOut)

	var got output.JSONPosition
	testutil.AssertNoError(t, json.Unmarshal([]byte(out), &got))
	testutil.AssertEqual(t, got.FEN, foolsMateFEN[:len(foolsMateFEN)-3]+"0 1")
	testutil.AssertEqual(t, got.Status, "checkmate")
}

func TestRun_LogsToStderr(t *testing.T) {
	code, out, errOut := runCLI(t, "", "-loglevel", "info", "perft", "-depth", "1")
	testutil.AssertEqual(t, code, 0, errOut)
	testutil.AssertContains(t, out, "Nodes searched: 20")
	testutil.AssertContains(t, errOut, "perft finished")
	testutil.AssertNotContains(t, out, "perft finished")

	_, _, errOut = runCLI(t, "", "perft", "-depth", "1")
	testutil.AssertNotContains(t, errOut, "perft finished")
}
