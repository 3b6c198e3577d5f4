// Package harness drives folder trees with scripted and randomized workloads
// and checks their results.
//
// Everything here works through [foldertree.Operator], so it can exercise any
// implementation. Randomized workloads are reproducible from their seeds.
package harness

import (
	"slices"
	"strings"

	"github.com/brettbedarf/foldertree"
	"github.com/brettbedarf/foldertree/pathutil"
)

// Factory builds a fresh, empty tree.
type Factory func() foldertree.Operator

// closer is implemented by trees that need explicit teardown
type closer interface {
	Close()
}

func closeTree(tree foldertree.Operator) {
	if c, ok := tree.(closer); ok {
		c.Close()
	}
}

// Snapshot lists every folder below the root, sorted. It makes one List call
// per folder, so it is only a consistent picture of a tree nobody else is changing.
func Snapshot(tree foldertree.Operator) ([]string, error) {
	var paths []string
	queue := []string{pathutil.Root}
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		listing, err := tree.List(dir)
		if err != nil {
			return nil, err
		}
		if listing == "" {
			continue
		}
		for _, name := range strings.Split(listing, ",") {
			child := dir + name + "/"
			paths = append(paths, child)
			queue = append(queue, child)
		}
	}
	slices.Sort(paths)
	return paths, nil
}
