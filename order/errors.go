package order

import "strings"

// ErrorKind classifies an ordering failure.
type ErrorKind int

const (
	// KindOrderingSolutionBlocked means at least one pushed DepInfo still had
	// unsatisfied requirements when the input stream ended: either a cycle
	// among provides/requires, or a required module that nothing provides.
	// The orderer cannot cheaply distinguish the two without the residual
	// name report below.
	KindOrderingSolutionBlocked ErrorKind = iota
)

// BlockedReport enumerates the module names that remained unresolved when
// ordering could not complete, in radix-tree key order (which groups
// module-interface-partition names together).
type BlockedReport struct {
	Names []string
}

// Error reports a failed ordering.
type Error struct {
	Kind   ErrorKind
	Report BlockedReport
}

func (e *Error) Error() string {
	return "ordering solution blocked: unresolved module names: " + strings.Join(e.Report.Names, ", ")
}
