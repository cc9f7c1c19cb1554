package worker

import "github.com/silvanshade/cppdeps/p1689"

// ItemKind tags the payload carried by an Item.
type ItemKind int

const (
	// KindCppPath is a C++ source file that must first be compiled (via the
	// Pool's Compiler) to produce a dep-file, which is then parsed. Rejected
	// as a per-item error if the Pool has no Compiler configured.
	KindCppPath ItemKind = iota
	// KindDepPath is a dep-file on disk, identified by path, to be read and
	// parsed by a worker.
	KindDepPath
	// KindDepData is an in-memory dep-file, labeled by path for diagnostics,
	// to be parsed by a worker.
	KindDepData
	// KindDepInfo is an already-parsed DepInfo, forwarded directly without
	// going through the parser.
	KindDepInfo
	// KindExpects announces the total number of DepInfo values the producer
	// intends to submit. It is advisory: if never sent, end-of-input is
	// detected by channel closure instead.
	KindExpects
)

// Item is a tagged unit of pipeline input.
type Item struct {
	Kind  ItemKind
	Path  string
	Data  []byte
	Info  p1689.DepInfo
	Count int
}

// CppPath creates an Item referring to a C++ source file that must be
// compiled into a dep-file before it can be parsed.
func CppPath(path string) Item {
	return Item{Kind: KindCppPath, Path: path}
}

// DepPath creates an Item referring to an on-disk dep-file.
func DepPath(path string) Item {
	return Item{Kind: KindDepPath, Path: path}
}

// DepData creates an Item wrapping an in-memory dep-file.
func DepData(path string, data []byte) Item {
	return Item{Kind: KindDepData, Path: path, Data: data}
}

// DepInfoItem creates an Item wrapping an already-parsed DepInfo.
func DepInfoItem(info p1689.DepInfo) Item {
	return Item{Kind: KindDepInfo, Info: info}
}

// Expects creates a control Item announcing the total expected count.
func Expects(count int) Item {
	return Item{Kind: KindExpects, Count: count}
}

// EventKind tags the payload carried by an Event emitted by a Pool.
type EventKind int

const (
	// EventInfo carries a parsed or forwarded DepInfo.
	EventInfo EventKind = iota
	// EventExpects forwards a control Expects message.
	EventExpects
	// EventError reports a per-item failure (a single dep-file's read or
	// parse error). It does not stop the pool: unrelated items continue to
	// be processed, per the per-item parse-error semantics in SPEC_FULL.md
	// §7.
	EventError
)

// Event is a unit of pipeline output: a parsed/forwarded DepInfo, a
// forwarded Expects control message, or a per-item error.
type Event struct {
	Kind    EventKind
	Info    p1689.DepInfo
	Expects int
	Path    string
	Err     error
}
