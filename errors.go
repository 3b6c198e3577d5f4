package foldertree

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidArgument means a path does not match the path grammar
	ErrInvalidArgument = errors.New("invalid path")
	// ErrNotFound means a component on the resolution path does not exist
	ErrNotFound = errors.New("no such folder")
	// ErrAlreadyExists means the name is taken at the destination, or the
	// operation targets "/" which always exists
	ErrAlreadyExists = errors.New("folder already exists")
	// ErrBusy means the operation is forbidden on the root
	ErrBusy = errors.New("root folder is busy")
	// ErrNotEmpty means the folder to remove still has children
	ErrNotEmpty = errors.New("folder not empty")
	// ErrMoveIntoOwnSubtree means the move target lies inside the source
	ErrMoveIntoOwnSubtree = errors.New("cannot move folder into its own subtree")
)

// PathError records a failed operation and the path(s) it was called with.
type PathError struct {
	Op     string
	Path   string
	Target string // only set for move
	Err    error
}

func (e *PathError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	sb.WriteString(" ")
	sb.WriteString(e.Path)
	if e.Target != "" {
		sb.WriteString(" -> ")
		sb.WriteString(e.Target)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *PathError) Unwrap() error { return e.Err }

// CodeOf maps an error returned by an [Operator] to its [Code]. nil maps to [OK].
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, ErrInvalidArgument):
		return InvalidArgument
	case errors.Is(err, ErrNotFound):
		return NotFound
	case errors.Is(err, ErrAlreadyExists):
		return AlreadyExists
	case errors.Is(err, ErrBusy):
		return Busy
	case errors.Is(err, ErrNotEmpty):
		return NotEmpty
	case errors.Is(err, ErrMoveIntoOwnSubtree):
		return MoveIntoOwnSubtree
	default:
		return Unknown
	}
}
