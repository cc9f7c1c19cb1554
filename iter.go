package cppdeps

import "github.com/silvanshade/cppdeps/p1689"

// Result is one output of the pipeline: either a DepInfo ready for
// emission, in a valid compile order, or an error. A Result carrying a
// parse or compile error (an item-level failure) does not end the
// pipeline; the next call to Iter.Next may still succeed. A Result carrying
// an ordering or pipeline failure does end it: Next returns false
// thereafter.
type Result struct {
	Info p1689.DepInfo
	Err  error
}

// Iter pulls ordered DepInfo values out of the pipeline one at a time,
// Scanner-style: call Next until it returns false, inspecting Info/Err
// after each successful call.
type Iter struct {
	results <-chan Result
	cancel  func()
	cur     Result
}

// Next advances to the next Result and reports whether one was available.
// It returns false once the pipeline has been fully drained, whether that
// is because input was exhausted and ordering completed cleanly, or
// because a hard error fused the pipeline after reporting it through one
// final Result.
func (it *Iter) Next() bool {
	r, ok := <-it.results
	if !ok {
		return false
	}
	it.cur = r
	return true
}

// Info returns the DepInfo produced by the most recent successful call to
// Next. It is the zero value if the most recent Result carried an error.
func (it *Iter) Info() p1689.DepInfo {
	return it.cur.Info
}

// Err returns the error, if any, carried by the most recent Result.
func (it *Iter) Err() error {
	return it.cur.Err
}

// Close shuts the pipeline down: it cancels the worker pool and orderer
// goroutines and drains any already-queued output so they can exit. Safe to
// call before the iterator is exhausted (drop-early semantics) and safe to
// call more than once.
func (it *Iter) Close() {
	it.cancel()
	for range it.results {
	}
}
