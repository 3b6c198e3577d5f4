package harness

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brettbedarf/foldertree"
	"github.com/brettbedarf/foldertree/config"
	"github.com/brettbedarf/foldertree/internal/util"
	"github.com/google/uuid"
)

// ErrDeadlock is returned when a stress run does not finish within its timeout.
var ErrDeadlock = errors.New("stress run did not finish in time")

// Report summarizes a stress run.
type Report struct {
	ID       uuid.UUID
	Workers  int
	Mask     Mask
	Ops      int64                     // operations that completed
	Codes    map[foldertree.Code]int64 // outcomes of the workers that finished
	Duration time.Duration
}

// Stress runs cfg.Workers goroutines against tree, each drawing cfg.OpsPerWorker
// random operations from cfg.Mask with its own RNG seeded cfg.Seed+i.
//
// If the run outlives cfg.Timeout or ctx, the partial report is returned with
// ErrDeadlock. Workers stuck inside the tree cannot be reclaimed and are left
// running; the others stop at their next operation.
func Stress(ctx context.Context, tree foldertree.Operator, cfg config.StressConfig) (*Report, error) {
	logger := util.GetLogger("harness")

	report := &Report{
		ID:      uuid.New(),
		Workers: cfg.Workers,
		Mask:    Mask(cfg.Mask),
		Codes:   make(map[foldertree.Code]int64),
	}
	logger.Info().
		Str("run", report.ID.String()).
		Int("workers", cfg.Workers).
		Int("ops_per_worker", cfg.OpsPerWorker).
		Int("mask", cfg.Mask).
		Msg("Stress run starting")

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	start := time.Now()
	var (
		mu    sync.Mutex
		codes = make(map[foldertree.Code]int64)
		total atomic.Int64
		wg    sync.WaitGroup
	)
	// finish fills in the report from whatever has completed so far
	finish := func() {
		report.Duration = time.Since(start)
		report.Ops = total.Load()
		mu.Lock()
		for code, n := range codes {
			report.Codes[code] = n
		}
		mu.Unlock()
	}
	for i := range cfg.Workers {
		wg.Go(func() {
			r := NewRNG(cfg.Seed + i)
			counts := make(map[foldertree.Code]int64)
			for range cfg.OpsPerWorker {
				if ctx.Err() != nil {
					break
				}
				res := Run(tree, RandomOperation(r, report.Mask))
				counts[res.Code]++
				total.Add(1)
			}
			mu.Lock()
			for code, n := range counts {
				codes[code] += n
			}
			mu.Unlock()
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		finish()
		logger.Error().
			Str("run", report.ID.String()).
			Int64("ops", report.Ops).
			Dur("elapsed", report.Duration).
			Msg("Stress run timed out")
		return report, fmt.Errorf("%w: %d of %d operations after %s",
			ErrDeadlock, report.Ops, int64(cfg.Workers)*int64(cfg.OpsPerWorker), report.Duration)
	}

	finish()
	logger.Info().
		Str("run", report.ID.String()).
		Int64("ops", report.Ops).
		Dur("elapsed", report.Duration).
		Msg("Stress run finished")
	return report, nil
}
