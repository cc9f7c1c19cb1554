// Package order implements an online topological ordering engine for
// P1689r5 module dependency information: it consumes DepInfo records in
// arbitrary order and releases them in an order where every provider
// precedes every consumer.
package order

import (
	art "github.com/plar/go-adaptive-radix-tree"

	"github.com/silvanshade/cppdeps/p1689"
)

type graphState int

const (
	stateAwaiting graphState = iota
	stateFinished
)

// graphEntry is the state of a single logical module name in the graph.
type graphEntry struct {
	state   graphState
	pending []*sharedInfo
}

// sharedInfo wraps a DepInfo with an explicit reference count: the number
// of Awaiting graph entries still holding it pending, plus one for the
// orderer's own bookkeeping reference. It reaches a "ready" state when refs
// drops to 1 (only the orderer's reference remains), mirroring the
// reference-counted release the original design performs with Rc/Arc.
type sharedInfo struct {
	info p1689.DepInfo
	refs int
}

// Order is a single-owner, sequential topological ordering engine. It is
// not safe for concurrent use; callers parallelizing parsing must funnel
// results to a single goroutine that owns an Order (see package worker).
type Order struct {
	tree         art.Tree
	readyQueue   []*sharedInfo
	blockedCount int
	ended        bool
}

// New creates an empty Order.
func New() *Order {
	return &Order{tree: art.New()}
}

func (o *Order) getEntry(key string) *graphEntry {
	k := art.Key(key)
	if v, found := o.tree.Search(k); found {
		return v.(*graphEntry)
	}
	e := &graphEntry{state: stateAwaiting}
	o.tree.Insert(k, e)
	return e
}

// Push admits a new DepInfo into the graph. If all of its requirements are
// already satisfied, it (and any dependents this unblocks) become
// immediately available from Next.
func (o *Order) Push(info p1689.DepInfo) {
	shared := &sharedInfo{info: info, refs: 1}

	for _, r := range info.Requires {
		key := r.View().Key
		entry := o.getEntry(key)
		if entry.state == stateAwaiting {
			entry.pending = append(entry.pending, shared)
			shared.refs++
		}
	}

	if shared.refs == 1 {
		o.release(shared)
	} else {
		o.blockedCount++
	}
}

// release marks shared (and anything it transitively unblocks) ready,
// appending each to the FIFO output queue in the order it became ready.
func (o *Order) release(shared *sharedInfo) {
	queue := []*sharedInfo{shared}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		o.readyQueue = append(o.readyQueue, cur)

		for _, p := range cur.info.Provides {
			key := p.View().Key
			entry := o.getEntry(key)
			if entry.state == stateFinished {
				continue
			}
			pending := entry.pending
			entry.state = stateFinished
			entry.pending = nil
			for _, dependent := range pending {
				dependent.refs--
				if dependent.refs == 1 {
					o.blockedCount--
					queue = append(queue, dependent)
				}
			}
		}
	}
}

// Next returns the next DepInfo ready for emission, in FIFO order of
// readiness, and whether one was available.
func (o *Order) Next() (p1689.DepInfo, bool) {
	if len(o.readyQueue) == 0 {
		return p1689.DepInfo{}, false
	}
	cur := o.readyQueue[0]
	o.readyQueue = o.readyQueue[1:]
	return cur.info, true
}

// Pending reports how many previously-pushed infos are still waiting on at
// least one unresolved requirement.
func (o *Order) Pending() int {
	return o.blockedCount
}

// Finish signals that no further DepInfo values will be pushed. It returns
// a *Error if any pushed info never became ready (a cycle, or a
// requirement nothing provides).
func (o *Order) Finish() error {
	o.ended = true
	if o.blockedCount == 0 {
		return nil
	}
	return &Error{Kind: KindOrderingSolutionBlocked, Report: o.Diagnose()}
}

// Diagnose reports the module names that remain Awaiting, in radix-tree
// key order (grouping module-interface-partition names by their shared
// prefix). It is safe to call at any time, not only after Finish.
func (o *Order) Diagnose() BlockedReport {
	var names []string
	o.tree.ForEach(func(node art.Node) bool {
		entry := node.Value().(*graphEntry)
		if entry.state == stateAwaiting && len(entry.pending) > 0 {
			names = append(names, string(node.Key()))
		}
		return true
	})
	return BlockedReport{Names: names}
}
