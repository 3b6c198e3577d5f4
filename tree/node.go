package tree

import (
	"slices"
	"strings"

	"github.com/brettbedarf/foldertree/internal/nodelock"
	"github.com/puzpuzpuz/xsync/v4"
)

// Node is a single folder.
//
// children is only read while holding at least the reader role on the node and
// only changed while holding its writer role. parent changes only under the
// mover role, which guarantees nothing is active below the node.
type Node struct {
	parent   *Node                     // nil for the root
	children *xsync.Map[string, *Node] // child folders by name
	lock     *nodelock.Lock
}

// newNode creates an empty folder below parent.
//
// NOTE: the parent is responsible for linking the returned node as its child
func newNode(parent *Node) *Node {
	return &Node{
		parent:   parent,
		children: xsync.NewMap[string, *Node](),
		lock:     nodelock.New(),
	}
}

// child returns the named child
func (n *Node) child(name string) (*Node, bool) {
	return n.children.Load(name)
}

// empty reports whether the node has no children
func (n *Node) empty() bool {
	return n.children.Size() == 0
}

// listing returns the child names sorted and joined with commas
func (n *Node) listing() string {
	names := make([]string, 0, n.children.Size())
	n.children.Range(func(name string, _ *Node) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return strings.Join(names, ",")
}
