// Package cppdeps composes the P1689r5 parser (p1689/parser), the online
// topological orderer (order), and the concurrent worker pool (worker) into
// a single pipeline: feed dep-files in any order, in any shape, from any
// number of producers, and receive them back out in a valid compile order.
package cppdeps

import (
	"context"

	"github.com/silvanshade/cppdeps/p1689"
	"github.com/silvanshade/cppdeps/worker"
)

// Builder configures and starts a dependency-ordering pipeline: a handful of
// fields with sane defaults, plus a set of inputs to process.
type Builder struct {
	// Parallelism bounds the number of dep-files parsed concurrently. If
	// unspecified or non-positive, host parallelism is used (the same
	// min(NumCPU, GOMAXPROCS) computation worker.NewPool performs).
	Parallelism int
	// Compiler, if set, lets the pipeline service CppPath sources by
	// compiling them into a dep-file first. Invoking a real compiler is out
	// of scope for this core; this is only the seam a caller may fill in.
	Compiler worker.Compiler
	// QueueSize bounds the internal item and event channels, providing
	// backpressure to producers using the Sink returned from Build.
	// Defaults to 64 if <= 0.
	QueueSize int

	sources []worker.Item
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithParallelism sets Parallelism and returns the Builder for chaining.
func (b *Builder) WithParallelism(n int) *Builder {
	b.Parallelism = n
	return b
}

// WithCompiler sets Compiler and returns the Builder for chaining.
func (b *Builder) WithCompiler(c worker.Compiler) *Builder {
	b.Compiler = c
	return b
}

// WithQueueSize sets QueueSize and returns the Builder for chaining.
func (b *Builder) WithQueueSize(n int) *Builder {
	b.QueueSize = n
	return b
}

// AddCppPath registers a C++ source file to be compiled (via Compiler) and
// parsed once the pipeline starts.
func (b *Builder) AddCppPath(path string) *Builder {
	b.sources = append(b.sources, worker.CppPath(path))
	return b
}

// AddDepPath registers an on-disk dep-file to be read and parsed once the
// pipeline starts.
func (b *Builder) AddDepPath(path string) *Builder {
	b.sources = append(b.sources, worker.DepPath(path))
	return b
}

// AddDepData registers an in-memory dep-file, labeled path for diagnostics,
// to be parsed once the pipeline starts.
func (b *Builder) AddDepData(path string, data []byte) *Builder {
	b.sources = append(b.sources, worker.DepData(path, data))
	return b
}

// AddDepInfo registers an already-parsed DepInfo to be forwarded directly
// to the orderer.
func (b *Builder) AddDepInfo(info p1689.DepInfo) *Builder {
	b.sources = append(b.sources, worker.DepInfoItem(info))
	return b
}

// Expects announces the total number of DepInfo values the pipeline should
// expect across all of its sources and any later Sink use, letting the
// pipeline terminate deterministically instead of waiting for the Sink to
// be closed. It is advisory, per SPEC_FULL.md §4.3/§9.
func (b *Builder) Expects(n int) *Builder {
	b.sources = append(b.sources, worker.Expects(n))
	return b
}

// Build starts the pipeline's worker pool and orderer goroutines and
// returns an Iter for pulling ordered results plus a Sink that external
// producers may use to feed additional items while the Iter is being
// drained.
//
// The returned Iter and Sink share the pipeline's lifetime: canceling ctx,
// calling Iter.Close, or exhausting input (Sink.Close, or an Expects count
// being reached) all lead to the same shutdown path.
func (b *Builder) Build(ctx context.Context) (*Iter, *Sink) {
	queueSize := b.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}

	ctx, cancel := context.WithCancel(ctx)

	items := make(chan worker.Item, queueSize)
	events := make(chan worker.Event, queueSize)
	results := make(chan Result, queueSize)

	pool := worker.NewPool(b.Parallelism)
	pool.Compiler = b.Compiler

	poolErrs := make(chan error, 1)
	go func() {
		defer close(poolErrs)
		if err := pool.Run(ctx, items, events); err != nil && ctx.Err() == nil {
			select {
			case poolErrs <- err:
			default:
			}
		}
	}()

	go func() {
		runOrderer(ctx, events, poolErrs, results)
		cancel()
	}()

	sink := &Sink{items: items}
	sink.seeding.Add(1)
	sources := b.sources
	go func() {
		defer sink.seeding.Done()
		for _, item := range sources {
			select {
			case items <- item:
			case <-ctx.Done():
				return
			}
		}
	}()

	return &Iter{results: results, cancel: cancel}, sink
}
