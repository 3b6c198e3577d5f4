package tree

import (
	"github.com/brettbedarf/foldertree"
	"github.com/brettbedarf/foldertree/internal/nodelock"
	"github.com/brettbedarf/foldertree/pathutil"
)

// lockPath walks from anchor to the folder at rel, marking every folder on the
// way, and returns that folder holding role. Readers are taken hand over hand:
// a folder's reader is released only once its child has been marked and its
// child's role is held.
//
// When owned is false, anchor is marked and its role taken here, and the
// caller unwinds up to and including anchor when done. When owned is true the
// caller already holds a mark and a role on anchor, both left untouched, and
// rel must not be the root.
//
// If a folder along rel is missing, everything taken here is released and
// [foldertree.ErrNotFound] is returned.
func (t *Tree) lockPath(anchor *Node, rel string, role nodelock.Role, owned bool) (*Node, error) {
	if !owned {
		anchor.lock.Mark()
		if rel == pathutil.Root {
			t.enter(anchor, role)
			return anchor, nil
		}
		t.enter(anchor, nodelock.Reader)
	}

	cur := anchor
	for {
		name, rest, _ := pathutil.Split(rel)
		child, ok := cur.child(name)
		if !ok {
			// an owned anchor holds nothing taken here
			if cur != anchor || !owned {
				t.release(cur, nodelock.Reader, anchor, !owned)
			}
			return nil, foldertree.ErrNotFound
		}

		child.lock.Mark()
		next := nodelock.Reader
		if rest == pathutil.Root {
			next = role
		}
		t.enter(child, next)
		if cur != anchor || !owned {
			cur.lock.Exit(nodelock.Reader, false)
		}

		if rest == pathutil.Root {
			return child, nil
		}
		cur, rel = child, rest
	}
}

// unwind drops one mark from every folder between n and stop, walking up.
// stop itself is included only when inclusive is set.
func (t *Tree) unwind(n, stop *Node, inclusive bool) {
	for n != nil {
		// Read before unmarking: once unmarked, n may be moved.
		parent := n.parent
		if n == stop {
			if inclusive {
				n.lock.Unmark()
			}
			return
		}
		n.lock.Unmark()
		n = parent
	}
	panic("tree: unwind fell off the root")
}

// release gives up role on n together with n's own mark, then unwinds the
// marks above it up to stop, as [Tree.unwind] does.
func (t *Tree) release(n *Node, role nodelock.Role, stop *Node, inclusive bool) {
	if n == stop {
		n.lock.Exit(role, inclusive)
		return
	}
	parent := n.parent
	n.lock.Exit(role, true)
	t.unwind(parent, stop, inclusive)
}
