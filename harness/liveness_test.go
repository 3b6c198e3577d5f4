package harness

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brettbedarf/foldertree/pathutil"
	"github.com/stretchr/testify/require"
)

// A goroutine issuing a few spaced-out calls must not starve behind a flood of
// the opposite kind: writers behind readers on the root, or readers behind writers.
func TestLiveness(t *testing.T) {
	t.Parallel()

	const (
		flooders = 7
		rounds   = 5
		pause    = 100 * time.Millisecond
		bound    = 10 * time.Second
	)

	for _, floodWithCreates := range []bool{false, true} {
		name := "lists_flood"
		if floodWithCreates {
			name = "creates_flood"
		}
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tr := newTestTree(t)

			var stop atomic.Bool
			var wg sync.WaitGroup
			for i := range flooders {
				seed := 101 + i
				wg.Go(func() {
					r := NewRNG(seed)
					for !stop.Load() {
						if !floodWithCreates {
							_, _ = tr.List(pathutil.Root)
							continue
						}
						// remove again so the root does not grow without bound
						p := r.LongName(pathutil.DefaultMaxNameLength)
						if tr.Create(p) == nil {
							_ = tr.Remove(p)
						}
					}
				})
			}

			done := make(chan struct{})
			go func() {
				defer close(done)
				r := NewRNG(100)
				for range rounds {
					time.Sleep(pause)
					if floodWithCreates {
						_, _ = tr.List(pathutil.Root)
					} else {
						_ = tr.Create(r.LongName(pathutil.DefaultMaxNameLength))
					}
				}
			}()

			select {
			case <-done:
			case <-time.After(bound):
				stop.Store(true)
				require.FailNow(t, "slow goroutine starved", "did not finish %d calls within %s", rounds, bound)
			}
			stop.Store(true)
			wg.Wait()
		})
	}
}
