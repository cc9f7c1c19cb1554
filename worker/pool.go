// Package worker parallelizes parsing of P1689r5 dep-files and funnels the
// resulting DepInfo values to a single consumer (typically an order.Order),
// bounding concurrency with a weighted semaphore the same way a parallel
// file-compilation executor would.
package worker

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/silvanshade/cppdeps/p1689/parser"
)

// Compiler is the seam left for an external collaborator to invoke a C++
// compiler and produce a dep-file from source. Compiling is out of scope
// for this core, which ships no implementation; when one is set on
// Pool.Compiler, the Pool calls it for each KindCppPath item and then reads
// and parses the dep-file it returns.
type Compiler interface {
	CompileDepFile(ctx context.Context, srcPath string) (depPath string, err error)
}

// Pool parses Items concurrently, bounded by Parallelism, and emits Events
// to a single output channel.
type Pool struct {
	// Parallelism bounds the number of dep-files parsed concurrently.
	// Defaults to host parallelism if <= 0.
	Parallelism int
	// Compiler, if set, lets the Pool service KindCppPath items by
	// compiling a dep-file before parsing it. Left nil, CppPath items fail
	// as a per-item error; compiling is otherwise out of scope for this
	// core (SPEC_FULL.md §1).
	Compiler Compiler
}

// NewPool creates a Pool with the given parallelism; a non-positive value
// is replaced with host parallelism (min of GOMAXPROCS and NumCPU).
func NewPool(parallelism int) *Pool {
	if parallelism <= 0 {
		parallelism = defaultParallelism()
	}
	return &Pool{Parallelism: parallelism}
}

func defaultParallelism() int {
	n := runtime.GOMAXPROCS(-1)
	if cpus := runtime.NumCPU(); cpus < n {
		n = cpus
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Run consumes items until the items channel is closed or ctx is canceled,
// emitting Events to out. It blocks until all in-flight work completes (or
// ctx is canceled) and then closes out. The first worker error cancels ctx
// via the returned error and stops accepting new items; already in-flight
// items are allowed to finish.
func (p *Pool) Run(ctx context.Context, items <-chan Item, out chan<- Event) error {
	defer close(out)

	sem := semaphore.NewWeighted(int64(max(p.Parallelism, 1)))
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errs := make(chan error, 1)

	reportErr := func(err error) {
		select {
		case errs <- err:
			cancel()
		default:
		}
	}

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case item, ok := <-items:
			if !ok {
				break loop
			}
			if err := sem.Acquire(ctx, 1); err != nil {
				break loop
			}
			wg.Add(1)
			go func(item Item) {
				defer wg.Done()
				defer sem.Release(1)
				if err := p.process(ctx, item, out); err != nil {
					reportErr(err)
				}
			}(item)
		}
	}
	wg.Wait()

	select {
	case err := <-errs:
		return err
	default:
		return ctx.Err()
	}
}

// process handles one Item. Only pipeline-level failures (an unrecognized
// item kind, or a blocked send/receive) are returned as errors that stop the
// pool; a dep-file's own read or parse failure is reported as a soft
// EventError so unrelated items keep flowing, matching the per-item parse
// error semantics in SPEC_FULL.md §7.
func (p *Pool) process(ctx context.Context, item Item, out chan<- Event) error {
	switch item.Kind {
	case KindCppPath:
		if p.Compiler == nil {
			return sendEvent(ctx, out, Event{Kind: EventError, Path: item.Path, Err: fmt.Errorf("no compiler configured for c++ source %q", item.Path)})
		}
		depPath, err := p.Compiler.CompileDepFile(ctx, item.Path)
		if err != nil {
			return sendEvent(ctx, out, Event{Kind: EventError, Path: item.Path, Err: fmt.Errorf("compiling %q: %w", item.Path, err)})
		}
		data, err := os.ReadFile(depPath)
		if err != nil {
			return sendEvent(ctx, out, Event{Kind: EventError, Path: depPath, Err: fmt.Errorf("reading dep-file %q: %w", depPath, err)})
		}
		return p.parseAndEmit(ctx, depPath, data, out)
	case KindDepPath:
		data, err := os.ReadFile(item.Path)
		if err != nil {
			return sendEvent(ctx, out, Event{Kind: EventError, Path: item.Path, Err: fmt.Errorf("reading dep-file %q: %w", item.Path, err)})
		}
		return p.parseAndEmit(ctx, item.Path, data, out)
	case KindDepData:
		return p.parseAndEmit(ctx, item.Path, item.Data, out)
	case KindDepInfo:
		return sendEvent(ctx, out, Event{Kind: EventInfo, Info: item.Info})
	case KindExpects:
		return sendEvent(ctx, out, Event{Kind: EventExpects, Expects: item.Count})
	default:
		return fmt.Errorf("unrecognized item kind %d", item.Kind)
	}
}

// parseAndEmit parses one dep-file and emits its rules. It releases the
// parse's Cartridge exactly once, after every rule has either been sent or
// abandoned (ctx canceled), handing off the batch the way SPEC_FULL.md §3's
// lifecycle notes describe a single owner doing once it is finished
// producing from a dep-file's buffer.
func (p *Pool) parseAndEmit(ctx context.Context, path string, data []byte, out chan<- Event) error {
	state := parser.NewState()
	df, err := parser.Parse(path, data, state)
	defer state.Cartridge().Release()
	if err != nil {
		return sendEvent(ctx, out, Event{Kind: EventError, Path: path, Err: err})
	}
	for _, rule := range df.Rules {
		if err := sendEvent(ctx, out, Event{Kind: EventInfo, Info: rule}); err != nil {
			return err
		}
	}
	return nil
}

func sendEvent(ctx context.Context, out chan<- Event, ev Event) error {
	select {
	case out <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
