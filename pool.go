package mdblog

import (
	"context"
	"runtime"
	"sync"

	"github.com/alnah/go-mdblog/internal/source"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent renders; rendering is CPU bound.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for the caller (HTTP server, CLI output).
	cpuDivisor = 2
)

// ResolvePoolSize returns workers when positive. Otherwise it sizes the pool
// from GOMAXPROCS, which automaxprocs fits to the container quota, clamped
// to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	return min(max(runtime.GOMAXPROCS(0)/cpuDivisor, MinPoolSize), MaxPoolSize)
}

// renderResult holds the outcome of rendering one source file.
type renderResult struct {
	entry source.Entry
	post  *Post
	err   error
}

// renderFunc renders a single listed source file.
type renderFunc func(ctx context.Context, entry source.Entry) (*Post, error)

// renderBatch renders entries concurrently with at most workers goroutines.
// Results keep the order of entries.
func renderBatch(ctx context.Context, workers int, entries []source.Entry, render renderFunc) []renderResult {
	if len(entries) == 0 {
		return nil
	}

	jobs := make(chan int, len(entries))
	for i := range entries {
		jobs <- i
	}
	close(jobs)

	results := make([]renderResult, len(entries))
	var wg sync.WaitGroup
	for range min(max(workers, MinPoolSize), len(entries)) {
		wg.Go(func() {
			for idx := range jobs {
				r := &results[idx]
				r.entry = entries[idx]
				if r.err = ctx.Err(); r.err != nil {
					continue
				}
				r.post, r.err = render(ctx, r.entry)
			}
		})
	}
	wg.Wait()
	return results
}
