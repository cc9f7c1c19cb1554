package cppdeps

import (
	"context"
	"errors"
	"sync"

	"github.com/silvanshade/cppdeps/p1689"
	"github.com/silvanshade/cppdeps/worker"
)

// ErrSinkClosed is returned by a Push*/Expect call made after Close.
var ErrSinkClosed = errors.New("cppdeps: sink closed")

// Sink lets external producers feed additional items into a running
// pipeline asynchronously, independent of the static sources passed to
// Builder before Build. This is the "public sink handle" of SPEC_FULL.md
// §4.5. Safe for concurrent use by multiple producer goroutines, including
// concurrently with Close.
type Sink struct {
	items chan<- worker.Item

	// mu guards closed against the §4.5/§5 concurrent-producer model: Close
	// takes the write lock, which drains any send already past its closed
	// check and holding an items send in flight, then blocks every send that
	// arrives afterward before it ever touches items, so items is closed
	// only once nothing can still be writing to it.
	mu     sync.RWMutex
	closed bool

	// seeding tracks Builder's own goroutine enqueueing the static sources
	// passed to it before Build returned. Close waits for it to finish
	// before closing items, so a caller that closes immediately after Build
	// never races the static sources out of the pipeline; seeding writes
	// directly to items rather than through send, so this wait can never
	// deadlock against the mu lock above.
	seeding sync.WaitGroup
}

// PushCppPath forwards a C++ source file for the pipeline's Compiler to
// turn into a dep-file and parse.
func (s *Sink) PushCppPath(ctx context.Context, path string) error {
	return s.send(ctx, worker.CppPath(path))
}

// PushDepPath forwards an on-disk dep-file path for a worker to read and
// parse.
func (s *Sink) PushDepPath(ctx context.Context, path string) error {
	return s.send(ctx, worker.DepPath(path))
}

// PushDepData forwards an in-memory dep-file for a worker to parse.
func (s *Sink) PushDepData(ctx context.Context, path string, data []byte) error {
	return s.send(ctx, worker.DepData(path, data))
}

// PushDepInfo forwards an already-parsed DepInfo directly to the orderer.
func (s *Sink) PushDepInfo(ctx context.Context, info p1689.DepInfo) error {
	return s.send(ctx, worker.DepInfoItem(info))
}

// Expect announces the total number of DepInfo values the caller intends to
// submit across the whole pipeline, letting it terminate deterministically
// instead of waiting on Close.
func (s *Sink) Expect(ctx context.Context, count int) error {
	return s.send(ctx, worker.Expects(count))
}

func (s *Sink) send(ctx context.Context, item worker.Item) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrSinkClosed
	}
	select {
	case s.items <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close signals that no further items will be submitted. Safe to call more
// than once, and safe to call concurrently with any Push*/Expect call. It
// blocks until Builder's own static-source seeding has finished enqueuing,
// so a caller may close a freshly built Sink immediately without racing
// those sources out of the pipeline.
func (s *Sink) Close() {
	s.seeding.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.items)
}
