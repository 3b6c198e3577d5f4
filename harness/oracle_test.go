package harness

import (
	"testing"

	"github.com/brettbedarf/foldertree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequentialOrder_Found(t *testing.T) {
	t.Parallel()

	ops := []Operation{
		{Kind: Create, Path: "/a/b/"},
		{Kind: Create, Path: "/a/"},
	}
	results := []Result{{Code: foldertree.OK}, {Code: foldertree.OK}}

	order, ok := SequentialOrder(ops, results, newTree)
	require.True(t, ok)
	assert.Equal(t, []int{1, 0}, order)
}

func TestSequentialOrder_Impossible(t *testing.T) {
	t.Parallel()

	// only the second call could have created /a/, and it needs /a/ to exist
	ops := []Operation{
		{Kind: Create, Path: "/a/"},
		{Kind: Create, Path: "/a/b/"},
	}
	results := []Result{{Code: foldertree.AlreadyExists}, {Code: foldertree.OK}}

	_, ok := SequentialOrder(ops, results, newTree)
	assert.False(t, ok)
}

// Every concurrent run of a handful of random operations must match some
// sequential order of the same operations.
func TestConcurrentSameAsSomeSequential(t *testing.T) {
	t.Parallel()

	const goroutines = 6
	for iter := range iterations(1000) {
		r := NewRNG(iter)
		ops := make([]Operation, goroutines)
		for i := range ops {
			ops[i] = RandomOperation(r, MaskAll)
		}

		tr := newTree()
		results := RunConcurrently(tr, ops)
		closeTree(tr)

		_, ok := SequentialOrder(ops, results, newTree)
		require.True(t, ok, "iteration %d: no sequential order explains %v -> %v", iter, ops, results)
	}
}

func TestRunConcurrently_ResultOrder(t *testing.T) {
	t.Parallel()
	tr := newTestTree(t)
	require.NoError(t, tr.Create("/a/"))

	ops := []Operation{
		{Kind: List, Path: "/a/"},
		{Kind: Create, Path: "/"},
		{Kind: Remove, Path: "/"},
	}
	results := RunConcurrently(tr, ops)
	assert.Equal(t, []Result{
		{Code: foldertree.OK},
		{Code: foldertree.AlreadyExists},
		{Code: foldertree.Busy},
	}, results)
}
