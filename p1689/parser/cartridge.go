package parser

import (
	"sync/atomic"
	"unsafe"
)

// Cartridge is a refcounted handle on the byte buffer a single Parse call
// reads from. Every borrowed (unescaped) string or path produced during
// that parse aliases this buffer directly instead of copying; Retain and
// Release let a caller that owns a batch of parsed DepInfo values
// (typically worker.Pool, one Cartridge per dep-file read) track when no
// borrowed string from the parse is still claimed, the same explicit,
// narrowly-scoped bookkeeping order.sharedInfo uses for DepInfo values
// pending multiple requires, rather than relying on Go's GC to answer "is
// anyone still borrowing this" the way it answers "is this still alive".
type Cartridge struct {
	buf  []byte
	refs int32
}

// NewCartridge wraps buf in a Cartridge with an initial reference count of
// one, held by the parse that created it.
func NewCartridge(buf []byte) *Cartridge {
	return &Cartridge{buf: buf, refs: 1}
}

// Retain increments the reference count for an additional owner of strings
// borrowed from this buffer (for example, a caller forwarding a DepInfo to
// another goroutine before the parse's own reference is released).
func (c *Cartridge) Retain() {
	atomic.AddInt32(&c.refs, 1)
}

// Release decrements the reference count and returns the result. Go's
// garbage collector remains the actual authority over when buf's backing
// array is freed, since a borrowed string keeps it alive on its own
// regardless of this count; Release exists so a batch owner can tell when
// every consumer it handed strings to has said it is done with them.
func (c *Cartridge) Release() int32 {
	return atomic.AddInt32(&c.refs, -1)
}

// Refs reports the current reference count.
func (c *Cartridge) Refs() int32 {
	return atomic.LoadInt32(&c.refs)
}

// borrow returns a string aliasing buf[start:end] with no allocation and no
// copy. The caller must guarantee buf[start:end] will not be mutated for as
// long as the returned string (or anything derived from it) is reachable.
func (c *Cartridge) borrow(start, end int) string {
	if start == end {
		return ""
	}
	b := c.buf[start:end]
	return unsafe.String(unsafe.SliceData(b), len(b))
}
