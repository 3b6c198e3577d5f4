package harness

import (
	"sync"

	"github.com/brettbedarf/foldertree"
)

// RunConcurrently starts every operation in its own goroutine at once and
// returns the results in the order of ops.
func RunConcurrently(tree foldertree.Operator, ops []Operation) []Result {
	results := make([]Result, len(ops))
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, op := range ops {
		wg.Go(func() {
			<-start
			results[i] = Run(tree, op)
		})
	}
	close(start)
	wg.Wait()
	return results
}

// SequentialOrder searches for an order in which running ops one at a time on
// a fresh tree yields exactly results, the way a linearizable tree must for
// any concurrent run. It returns the first such order as indexes into ops.
//
// Every permutation may be tried, so keep ops short.
func SequentialOrder(ops []Operation, results []Result, newTree Factory) ([]int, bool) {
	order := make([]int, 0, len(ops))
	taken := make([]bool, len(ops))

	var search func() bool
	search = func() bool {
		if len(order) == len(ops) {
			return replay(ops, results, order, newTree)
		}
		for i := range ops {
			if taken[i] {
				continue
			}
			taken[i] = true
			order = append(order, i)
			if search() {
				return true
			}
			order = order[:len(order)-1]
			taken[i] = false
		}
		return false
	}

	if !search() {
		return nil, false
	}
	return order, true
}

// replay runs ops in order and reports whether every result matches
func replay(ops []Operation, results []Result, order []int, newTree Factory) bool {
	tree := newTree()
	defer closeTree(tree)
	for _, i := range order {
		if Run(tree, ops[i]) != results[i] {
			return false
		}
	}
	return true
}
