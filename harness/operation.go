package harness

import (
	"fmt"
	"strings"

	"github.com/brettbedarf/foldertree"
)

// Kind is one of the four tree operations.
type Kind int

const (
	List Kind = iota
	Create
	Remove
	Move
)

func (k Kind) String() string {
	switch k {
	case List:
		return "list"
	case Create:
		return "create"
	case Remove:
		return "remove"
	case Move:
		return "move"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind is the inverse of [Kind.String].
func ParseKind(s string) (Kind, error) {
	for k := List; k <= Move; k++ {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}

// Mask selects a set of operation kinds for random generation.
type Mask int

const (
	MaskList   Mask = 1 << List
	MaskCreate Mask = 1 << Create
	MaskRemove Mask = 1 << Remove
	MaskMove   Mask = 1 << Move
	MaskAll         = MaskList | MaskCreate | MaskRemove | MaskMove
)

// Has reports whether k is in the mask
func (m Mask) Has(k Kind) bool {
	return m&(1<<k) != 0
}

// Operation is one call against a tree. Target is only used by Move.
type Operation struct {
	Kind   Kind
	Path   string
	Target string
}

// String renders the call, e.g. move("/a/", "/b/").
func (o Operation) String() string {
	if o.Kind == Move {
		return fmt.Sprintf("%s(%q, %q)", o.Kind, o.Path, o.Target)
	}
	return fmt.Sprintf("%s(%q)", o.Kind, o.Path)
}

// Result is what running an Operation produced.
type Result struct {
	Code    foldertree.Code
	Listing string // only set by a successful List
}

func (r Result) String() string {
	if r.Listing != "" {
		return fmt.Sprintf("%s %q", r.Code, r.Listing)
	}
	return r.Code.String()
}

// RandomOperation draws an operation whose kind is in mask, over small paths.
// mask must be non-empty.
func RandomOperation(r *RNG, mask Mask) Operation {
	if mask&MaskAll == 0 {
		panic("harness: empty operation mask")
	}
	var op Operation
	for {
		op.Kind = Kind(r.Between(0, 3))
		if mask.Has(op.Kind) {
			break
		}
	}
	op.Path = r.SmallPath()
	if op.Kind == Move {
		op.Target = r.SmallPath()
	}
	return op
}

// Run executes o against tree.
func Run(tree foldertree.Operator, o Operation) Result {
	var err error
	switch o.Kind {
	case List:
		var listing string
		listing, err = tree.List(o.Path)
		if err == nil {
			return Result{Code: foldertree.OK, Listing: listing}
		}
	case Create:
		err = tree.Create(o.Path)
	case Remove:
		err = tree.Remove(o.Path)
	case Move:
		err = tree.Move(o.Path, o.Target)
	default:
		panic(fmt.Sprintf("harness: run of unknown %s", o.Kind))
	}
	return Result{Code: foldertree.CodeOf(err)}
}

// RunSomeCreates populates tree with 100 random small folders.
func RunSomeCreates(r *RNG, tree foldertree.Operator) {
	for range 100 {
		_ = tree.Create(r.SmallPath())
	}
}
