package cppdeps

import (
	"context"
	"errors"
	"log/slog"

	"github.com/silvanshade/cppdeps/order"
	"github.com/silvanshade/cppdeps/worker"
)

// ErrDuplicateExpects is a Pipeline-taxonomy error (SPEC_FULL.md §7): a
// second Expects control message arrived after one had already been
// accepted. It fuses the pipeline, since the expected-count contract has
// been violated and the orderer can no longer trust either count.
var ErrDuplicateExpects = errors.New("pipeline: duplicate Expects control message")

// runOrderer is the pipeline's single mutating goroutine: it owns an
// order.Order and is the only thing that ever touches it, per
// SPEC_FULL.md §4.3/§5. It selects over the worker pool's failure signal
// and its analyze (event) input, exactly as §5 specifies, converting
// whichever it sees first into Result values on results.
func runOrderer(ctx context.Context, events <-chan worker.Event, poolErrs <-chan error, results chan<- Result) {
	defer close(results)

	ord := order.New()
	var (
		expectsSeen bool
		expects     int
		analyzed    int
	)

	emitReady := func() bool {
		for {
			info, ok := ord.Next()
			if !ok {
				return true
			}
			select {
			case results <- Result{Info: info}:
			case <-ctx.Done():
				return false
			}
		}
	}

	sendErr := func(err error) {
		select {
		case results <- Result{Err: err}:
		case <-ctx.Done():
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case err, ok := <-poolErrs:
			if !ok {
				// The pool finished (successfully or by cancellation); stop
				// selecting on it and keep draining events until closed.
				poolErrs = nil
				continue
			}
			sendErr(err)
			return

		case ev, ok := <-events:
			if !ok {
				if err := ord.Finish(); err != nil {
					sendErr(err)
					return
				}
				emitReady()
				return
			}

			switch ev.Kind {
			case worker.EventInfo:
				ord.Push(ev.Info)
				analyzed++
			case worker.EventError:
				slog.Debug("dep-file item failed", "path", ev.Path, "error", ev.Err)
				sendErr(ev.Err)
			case worker.EventExpects:
				if expectsSeen {
					slog.Error("bug: duplicate Expects control message received", "count", ev.Expects)
					sendErr(ErrDuplicateExpects)
					return
				}
				expectsSeen = true
				expects = ev.Expects
			}

			if !emitReady() {
				return
			}
			if expectsSeen && analyzed >= expects && ord.Pending() == 0 {
				return
			}
		}
	}
}
