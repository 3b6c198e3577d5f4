package harness

import (
	"testing"

	"github.com/brettbedarf/foldertree"
	"github.com/brettbedarf/foldertree/tree"
	"github.com/rs/zerolog"
)

func newTree() foldertree.Operator {
	return tree.New(nil, tree.WithLogger(zerolog.Nop()))
}

// newTestTree returns a tree that is closed on cleanup; Close panics if anything is still active
func newTestTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr := tree.New(nil, tree.WithLogger(zerolog.Nop()))
	t.Cleanup(tr.Close)
	return tr
}

// iterations scales a loop count down under -short
func iterations(full int) int {
	if testing.Short() {
		return max(1, full/10)
	}
	return full
}
