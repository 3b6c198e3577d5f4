package tree

import (
	"github.com/brettbedarf/foldertree"
	"github.com/brettbedarf/foldertree/internal/nodelock"
	"github.com/brettbedarf/foldertree/pathutil"
)

// List returns the names of the folders directly inside path, sorted and
// separated by commas. An empty folder lists as "".
func (t *Tree) List(path string) (listing string, err error) {
	done := t.track(opList)
	defer func() { done(err) }()

	if !t.limits.Valid(path) {
		return "", pathError(opList, path, foldertree.ErrInvalidArgument)
	}
	n, err := t.lockPath(t.root, path, nodelock.Reader, false)
	if err != nil {
		return "", pathError(opList, path, err)
	}
	defer t.release(n, nodelock.Reader, t.root, true)

	return n.listing(), nil
}

// Create adds an empty folder at path. Its parent must exist.
func (t *Tree) Create(path string) (err error) {
	done := t.track(opCreate)
	defer func() { done(err) }()

	if !t.limits.Valid(path) {
		return pathError(opCreate, path, foldertree.ErrInvalidArgument)
	}
	parentPath, name, ok := pathutil.Parent(path)
	if !ok {
		return pathError(opCreate, path, foldertree.ErrAlreadyExists)
	}

	parent, err := t.lockPath(t.root, parentPath, nodelock.Writer, false)
	if err != nil {
		return pathError(opCreate, path, err)
	}
	defer t.release(parent, nodelock.Writer, t.root, true)

	if _, exists := parent.child(name); exists {
		return pathError(opCreate, path, foldertree.ErrAlreadyExists)
	}
	parent.children.Store(name, newNode(parent))
	t.logger.Debug().Str("path", path).Msg("Created folder")
	return nil
}

// Remove deletes the empty folder at path.
func (t *Tree) Remove(path string) (err error) {
	done := t.track(opRemove)
	defer func() { done(err) }()

	if !t.limits.Valid(path) {
		return pathError(opRemove, path, foldertree.ErrInvalidArgument)
	}
	parentPath, name, ok := pathutil.Parent(path)
	if !ok {
		return pathError(opRemove, path, foldertree.ErrBusy)
	}

	parent, err := t.lockPath(t.root, parentPath, nodelock.Writer, false)
	if err != nil {
		return pathError(opRemove, path, err)
	}
	defer t.release(parent, nodelock.Writer, t.root, true)

	child, exists := parent.child(name)
	if !exists {
		return pathError(opRemove, path, foldertree.ErrNotFound)
	}

	// Wait out anything still working inside the child.
	t.enter(child, nodelock.Writer)
	defer child.lock.Exit(nodelock.Writer, false)

	if !child.empty() {
		return pathError(opRemove, path, foldertree.ErrNotEmpty)
	}
	parent.children.Delete(name)
	t.logger.Debug().Str("path", path).Msg("Removed folder")
	return nil
}
