// Package foldertree contains the core domain types and interfaces for a concurrent
// in-memory folder namespace
package foldertree

// Code classifies the outcome of a namespace operation. It is what callers compare
// when they only care about the kind of result and not the wrapped path details.
type Code int

const (
	OK Code = iota
	InvalidArgument
	NotFound
	AlreadyExists
	Busy
	NotEmpty
	MoveIntoOwnSubtree
	// Unknown is returned by [CodeOf] for errors that did not come from an Operator
	Unknown
)

func (c Code) String() string {
	switch c {
	case OK:
		return "0"
	case InvalidArgument:
		return "EINVAL"
	case NotFound:
		return "ENOENT"
	case AlreadyExists:
		return "EEXIST"
	case Busy:
		return "EBUSY"
	case NotEmpty:
		return "ENOTEMPTY"
	case MoveIntoOwnSubtree:
		return "ESRCSUBTRGT"
	default:
		return "UNKNOWN"
	}
}
