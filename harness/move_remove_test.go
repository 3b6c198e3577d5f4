package harness

import (
	"sync"
	"testing"

	"github.com/brettbedarf/foldertree"
	"github.com/stretchr/testify/assert"
)

// One goroutine repeatedly moves /a/ to /b/ while another creates /a/ and
// removes whichever of /a/ or /b/ it finds. Both must agree on how many moves
// happened, which only holds if every move is atomic.
func TestMoveRemove_AgreeOnMoveCount(t *testing.T) {
	t.Parallel()
	tr := newTestTree(t)
	n := iterations(10000)

	var moved, observed int
	var wg sync.WaitGroup
	wg.Go(func() {
		for range n {
			if tr.Move("/a/", "/b/") == nil {
				moved++
			}
		}
	})
	wg.Go(func() {
		for range n {
			if !assert.NoError(t, tr.Create("/a/")) {
				return
			}
			err := tr.Remove("/a/")
			if err == nil {
				assert.ErrorIs(t, tr.Remove("/b/"), foldertree.ErrNotFound)
				continue
			}
			// moved out from under us
			observed++
			assert.ErrorIs(t, err, foldertree.ErrNotFound)
			assert.NoError(t, tr.Remove("/b/"))
		}
	})
	wg.Wait()

	assert.Equal(t, moved, observed)
}

// Moves that can never succeed must not disturb create/remove of /a/.
func TestMoveRemove_FailingMovesAreHarmless(t *testing.T) {
	t.Parallel()
	tr := newTestTree(t)
	n := iterations(10000)

	var wg sync.WaitGroup
	wg.Go(func() {
		for range n {
			assert.NoError(t, tr.Create("/a/"))
			assert.NoError(t, tr.Remove("/a/"))
		}
	})
	wg.Go(func() {
		for range n {
			assert.ErrorIs(t, tr.Move("/b/", "/a/b/"), foldertree.ErrNotFound)
			assert.Error(t, tr.Move("/a/", "/b/a/"))
		}
	})
	wg.Wait()
}

// Removing a folder kept non-empty must keep failing with ErrNotEmpty while a
// sibling is moved in and out of it.
func TestMoveRemove_NotEmptyAgainstMoves(t *testing.T) {
	t.Parallel()
	tr := newTestTree(t)
	for _, p := range []string{"/a/", "/a/a/", "/b/"} {
		if err := tr.Create(p); err != nil {
			t.Fatal(err)
		}
	}
	n := iterations(10000)

	var wg sync.WaitGroup
	wg.Go(func() {
		for range n {
			assert.ErrorIs(t, tr.Remove("/a/"), foldertree.ErrNotEmpty)
		}
	})
	wg.Go(func() {
		for range n {
			assert.NoError(t, tr.Move("/b/", "/a/b/"))
			assert.NoError(t, tr.Move("/a/b/", "/b/"))
		}
	})
	wg.Wait()
}
