package perft

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/lgbarn/alderchess-go/internal/engine"
	"github.com/lgbarn/alderchess-go/internal/errors"
	"github.com/lgbarn/alderchess-go/internal/worker"
)

// Case is one position of a perft suite with its expected counts.
type Case struct {
	Line  int
	FEN   string
	Board *engine.BoardState

	// Nodes maps depth to the expected count.
	Nodes map[int]uint64
}

// Depths returns the depths of c in increasing order.
func (c Case) Depths() []int {
	depths := make([]int, 0, len(c.Nodes))
	for d := range c.Nodes {
		depths = append(depths, d)
	}
	sort.Ints(depths)
	return depths
}

// ParseSuite reads a suite in the common EPD perft layout, one position
// per line:
//
//	rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 ;D1 20 ;D2 400
//
// Blank lines and lines starting with '#' are skipped.
func ParseSuite(r io.Reader) ([]Case, error) {
	var cases []Case
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		c, err := parseCase(line, text)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read suite")
	}
	return cases, nil
}

func parseCase(line int, text string) (Case, error) {
	fields := strings.Split(text, ";")
	fen := strings.TrimSpace(fields[0])
	b, err := engine.FromFEN(fen)
	if err != nil {
		return Case{}, errors.Wrapf(err, "suite line %d", line)
	}

	c := Case{Line: line, FEN: fen, Board: b, Nodes: make(map[int]uint64)}
	for _, f := range fields[1:] {
		parts := strings.Fields(f)
		if len(parts) != 2 || len(parts[0]) < 2 || (parts[0][0] != 'D' && parts[0][0] != 'd') {
			return Case{}, suiteError(line, f)
		}
		depth, err := strconv.Atoi(parts[0][1:])
		if err != nil || depth < 1 {
			return Case{}, suiteError(line, f)
		}
		nodes, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return Case{}, suiteError(line, f)
		}
		c.Nodes[depth] = nodes
	}
	if len(c.Nodes) == 0 {
		return Case{}, suiteError(line, text)
	}
	return c, nil
}

func suiteError(line int, field string) error {
	return &errors.ParseError{
		Err:      errors.ErrInvalidSuite,
		Input:    field,
		Field:    fmt.Sprintf("suite line %d", line),
		Expected: "';D<depth> <nodes>'",
		Got:      strings.TrimSpace(field),
	}
}

// Result is the outcome of one (position, depth) check.
type Result struct {
	Case  int
	Depth int
	Want  uint64
	Got   uint64
	Err   error
}

// Passed reports whether the count matched.
func (r Result) Passed() bool {
	return r.Err == nil && r.Got == r.Want
}

type suiteJob struct {
	caseIndex int
	depth     int
	want      uint64
	board     *engine.BoardState
}

// RunSuite checks every depth of every case up to maxDepth (0 means all)
// on a pool of workers goroutines. Results are ordered by case then depth.
// The returned error is the context's if it ended the run early.
func RunSuite(ctx context.Context, cases []Case, maxDepth, workers int, opts ...Option) ([]Result, error) {
	var jobs []suiteJob
	for i, c := range cases {
		for _, d := range c.Depths() {
			if maxDepth > 0 && d > maxDepth {
				continue
			}
			jobs = append(jobs, suiteJob{caseIndex: i, depth: d, want: c.Nodes[d], board: c.Board})
		}
	}
	o := collect(opts)

	pool := worker.NewPoolWithOptions(func(j suiteJob) Result {
		got, err := count(ctx, j.board.Clone(), j.depth, o)
		return Result{Case: j.caseIndex, Depth: j.depth, Want: j.want, Got: got, Err: err}
	}, worker.WithWorkers(workers), worker.WithBufferSize(len(jobs)))
	pool.Start()

	stop := context.AfterFunc(ctx, pool.Stop)
	defer stop()

	go func() {
		for _, j := range jobs {
			pool.Submit(j)
		}
		pool.Close()
	}()

	results := make([]Result, 0, len(jobs))
	for r := range pool.Results() {
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Case != results[j].Case {
			return results[i].Case < results[j].Case
		}
		return results[i].Depth < results[j].Depth
	})
	return results, ctx.Err()
}
