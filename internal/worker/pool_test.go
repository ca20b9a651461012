package worker

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/lgbarn/alderchess-go/internal/engine"
	"github.com/lgbarn/alderchess-go/internal/testutil"
)

type job struct {
	Index int
	FEN   string
}

type result struct {
	Index int
	Moves int
}

func noopProcessFunc() ProcessFunc[job, result] {
	return func(item job) result {
		return result{Index: item.Index}
	}
}

// countingProcessFunc returns a process function that increments a counter.
func countingProcessFunc(counter *int32) ProcessFunc[job, result] {
	return func(item job) result {
		atomic.AddInt32(counter, 1)
		return result{Index: item.Index}
	}
}

// collectResults drains the result channel and returns the count.
func collectResults[T, R any](pool *Pool[T, R]) int {
	count := 0
	for range pool.Results() {
		count++
	}
	return count
}

func TestPoolBasic(t *testing.T) {
	var processed int32
	pool := NewPool(4, 10, countingProcessFunc(&processed))
	pool.Start()

	const numItems = 10
	for i := 0; i < numItems; i++ {
		pool.Submit(job{Index: i})
	}

	go pool.Close()

	if got := collectResults(pool); got != numItems {
		t.Errorf("results = %d; want %d", got, numItems)
	}
	if got := atomic.LoadInt32(&processed); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

// TestPoolLegalMoveCounts runs real engine work through the pool.
func TestPoolLegalMoveCounts(t *testing.T) {
	fens := []string{
		engine.InitialFEN,
		testutil.PromotionFEN,
		testutil.StalemateFEN,
		testutil.CastlingFEN,
	}
	want := []int{20, 9, 0, 26}

	pool := NewPoolWithOptions(func(item job) result {
		b := engine.MustFromFEN(item.FEN)
		return result{Index: item.Index, Moves: len(b.LegalMoves(b.Turn()))}
	}, WithWorkers(3), WithBufferSize(len(fens)))
	pool.Start()

	for i, fen := range fens {
		pool.Submit(job{Index: i, FEN: fen})
	}
	go pool.Close()

	got := make([]int, len(fens))
	for r := range pool.Results() {
		got[r.Index] = r.Moves
	}
	testutil.AssertEqual(t, got, want)
}

func TestPoolStopSkipsQueuedItems(t *testing.T) {
	gate := make(chan struct{})
	var processed int32
	pool := NewPool(1, 10, func(item job) result {
		<-gate
		atomic.AddInt32(&processed, 1)
		return result{Index: item.Index}
	})
	pool.Start()

	for i := 0; i < 5; i++ {
		pool.Submit(job{Index: i})
	}
	pool.Stop()
	close(gate)

	go pool.Close()
	got := collectResults(pool)

	// At most the item the worker already held runs to completion.
	testutil.AssertTrue(t, got <= 1, "results = %d", got)
	testutil.AssertEqual(t, int(atomic.LoadInt32(&processed)), got)
}

func TestPoolIsStopped(t *testing.T) {
	pool := NewPool(2, 10, noopProcessFunc())
	pool.Start()

	if pool.IsStopped() {
		t.Error("pool should not be stopped initially")
	}

	pool.Stop()

	if !pool.IsStopped() {
		t.Error("pool should be stopped after Stop()")
	}

	pool.Close()
}

func TestPoolTrySubmit(t *testing.T) {
	slowProcessFunc := func(item job) result {
		time.Sleep(100 * time.Millisecond)
		return result{}
	}

	pool := NewPool(1, 2, slowProcessFunc)
	pool.Start()

	if !pool.TrySubmit(job{Index: 0}) {
		t.Error("first TrySubmit should succeed")
	}
	if !pool.TrySubmit(job{Index: 1}) {
		t.Error("second TrySubmit should succeed")
	}

	// The buffer holds two; a third may or may not fit depending on whether
	// the worker has taken one yet.
	pool.TrySubmit(job{Index: 2})

	pool.Stop()
	if pool.TrySubmit(job{Index: 3}) {
		t.Error("TrySubmit after Stop should return false")
	}

	go pool.Close()
	collectResults(pool)
}

func TestPoolNumWorkers(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"valid workers", 4, 4},
		{"minimum workers", 1, 1},
		{"zero defaults to 1", 0, 1},
		{"negative defaults to 1", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(tt.input, 10, noopProcessFunc())
			if got := pool.NumWorkers(); got != tt.expected {
				t.Errorf("NumWorkers() = %d; want %d", got, tt.expected)
			}
		})
	}
}

// TestPoolConcurrentSubmit is meant to be run with -race.
func TestPoolConcurrentSubmit(t *testing.T) {
	var counter int32
	pool := NewPool(8, 5, countingProcessFunc(&counter))
	pool.Start()

	const numItems = 100
	go func() {
		for i := 0; i < numItems; i++ {
			pool.Submit(job{Index: i, FEN: engine.InitialFEN})
		}
		pool.Close()
	}()

	seen := make(map[int]bool)
	for r := range pool.Results() {
		seen[r.Index] = true
	}
	testutil.AssertEqual(t, len(seen), numItems)
	testutil.AssertEqual(t, atomic.LoadInt32(&counter), int32(numItems))
}

func TestNewPoolWithOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        []PoolOption
		wantWorkers int
		wantBuffer  int
	}{
		{"defaults", nil, 1, 10},
		{"with workers", []PoolOption{WithWorkers(4)}, 4, 10},
		{"with buffer size", []PoolOption{WithBufferSize(50)}, 1, 50},
		{"with multiple options", []PoolOption{WithWorkers(8), WithBufferSize(100)}, 8, 100},
		{"invalid workers ignored", []PoolOption{WithWorkers(0)}, 1, 10},
		{"invalid buffer size ignored", []PoolOption{WithBufferSize(-5)}, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPoolWithOptions(noopProcessFunc(), tt.opts...)
			if pool.NumWorkers() != tt.wantWorkers {
				t.Errorf("NumWorkers() = %d; want %d", pool.NumWorkers(), tt.wantWorkers)
			}
			if pool.bufferSize != tt.wantBuffer {
				t.Errorf("bufferSize = %d; want %d", pool.bufferSize, tt.wantBuffer)
			}
		})
	}
}
