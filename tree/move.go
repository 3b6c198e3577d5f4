package tree

import (
	"github.com/brettbedarf/foldertree"
	"github.com/brettbedarf/foldertree/internal/nodelock"
	"github.com/brettbedarf/foldertree/pathutil"
)

// Move relinks the folder at source, with everything below it, as target.
// The parent of target must exist and target itself must not.
//
// Locks are taken top down from the lowest common ancestor of the two parent
// folders: a writer on that ancestor first, then writers on the source parent
// and the target parent, then the mover role on the source itself once every
// operation inside it has drained.
func (t *Tree) Move(source, target string) (err error) {
	done := t.track(opMove)
	defer func() { done(err) }()

	if !t.limits.Valid(source) || !t.limits.Valid(target) {
		return moveError(source, target, foldertree.ErrInvalidArgument)
	}
	if source == pathutil.Root {
		return moveError(source, target, foldertree.ErrBusy)
	}
	if target == pathutil.Root {
		return moveError(source, target, foldertree.ErrAlreadyExists)
	}
	if pathutil.IsStrictAncestor(source, target) {
		return moveError(source, target, foldertree.ErrMoveIntoOwnSubtree)
	}

	srcParentPath, srcName, _ := pathutil.Parent(source)
	tgtParentPath, tgtName, _ := pathutil.Parent(target)
	lcaPath := pathutil.LCA(source, target)

	lca, err := t.lockPath(t.root, lcaPath, nodelock.Writer, false)
	if err != nil {
		return moveError(source, target, err)
	}

	srcParent := lca
	if srcParentPath != lcaPath {
		if srcParent, err = t.lockPath(lca, pathutil.Rel(lcaPath, srcParentPath), nodelock.Writer, true); err != nil {
			t.release(lca, nodelock.Writer, t.root, true)
			return moveError(source, target, err)
		}
	}
	// unlockSource undoes everything taken so far
	unlockSource := func() {
		if srcParent != lca {
			t.release(srcParent, nodelock.Writer, lca, false)
		}
		t.release(lca, nodelock.Writer, t.root, true)
	}

	src, ok := srcParent.child(srcName)
	if !ok {
		unlockSource()
		return moveError(source, target, foldertree.ErrNotFound)
	}
	if source == target {
		unlockSource()
		return nil
	}

	tgtParent := lca
	if tgtParentPath != lcaPath {
		if tgtParent, err = t.lockPath(lca, pathutil.Rel(lcaPath, tgtParentPath), nodelock.Writer, true); err != nil {
			unlockSource()
			return moveError(source, target, err)
		}
	}

	// Both parents are held, so nothing new can enter around them through the ancestor.
	if srcParent != lca && tgtParent != lca {
		lca.lock.Exit(nodelock.Writer, false)
	}

	t.enter(src, nodelock.Mover)
	if _, exists := tgtParent.children.LoadOrStore(tgtName, src); exists {
		err = moveError(source, target, foldertree.ErrAlreadyExists)
	} else {
		srcParent.children.Delete(srcName)
		src.parent = tgtParent
	}
	src.lock.Exit(nodelock.Mover, false)
	if err == nil {
		t.logger.Debug().Str("source", source).Str("target", target).Msg("Moved folder")
	}

	// Each parent below the ancestor unwinds up to it. The ancestor's own
	// mark is dropped exactly once, by whichever unwind continues to the root.
	if srcParent == lca {
		if tgtParent != lca {
			t.release(tgtParent, nodelock.Writer, lca, false)
		}
		t.release(srcParent, nodelock.Writer, t.root, true)
		return err
	}
	t.release(srcParent, nodelock.Writer, lca, false)
	t.release(tgtParent, nodelock.Writer, t.root, true)
	return err
}
