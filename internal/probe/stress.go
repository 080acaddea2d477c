package probe

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// stressOp identifies one of the random operations a stress worker can pick.
type stressOp int

const (
	opState stressOp = iota
	opHealth
	opSessions
	opRepositoryDetail
	numStressOps
)

// stressLoop runs the configured number of concurrent stress workers for
// the run duration. Workers share nothing but the operation tally.
func (r *Runner) stressLoop(ctx context.Context) {
	r.logger.Info("starting stress test",
		"workers", r.opts.Workers,
		"duration", r.opts.Duration)

	var wg sync.WaitGroup
	for i := 0; i < r.opts.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			r.stressWorker(ctx, id)
		}(i)
	}
	wg.Wait()
}

// stressWorker repeatedly performs a uniformly random operation, records
// the outcome, and sleeps a uniformly random interval in [100ms, 1s).
func (r *Runner) stressWorker(ctx context.Context, id int) {
	start := time.Now()
	for time.Since(start) < r.opts.Duration {
		op := stressOp(rand.IntN(int(numStressOps)))
		r.record(r.doStressOp(ctx, id, op))

		delay := 100*time.Millisecond + rand.N(900*time.Millisecond)
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// doStressOp performs one randomly chosen operation and reports whether it
// succeeded. The repository-detail variant depends on a fresh state fetch;
// if that fetch fails or lists no repositories, the whole attempt counts as
// one failure with no substitute operation.
func (r *Runner) doStressOp(ctx context.Context, id int, op stressOp) bool {
	switch op {
	case opState:
		if _, err := r.client.GetState(ctx); err != nil {
			r.logger.Error("stress worker: get state", "worker", id, "error", err)
			return false
		}
		return true

	case opHealth:
		if _, err := r.client.GetHealth(ctx); err != nil {
			r.logger.Error("stress worker: get health", "worker", id, "error", err)
			return false
		}
		return true

	case opSessions:
		if _, err := r.client.GetSessions(ctx); err != nil {
			r.logger.Error("stress worker: get sessions", "worker", id, "error", err)
			return false
		}
		return true

	case opRepositoryDetail:
		state, err := r.client.GetState(ctx)
		if err != nil {
			r.logger.Error("stress worker: get state for repository pick", "worker", id, "error", err)
			return false
		}
		if len(state.Repositories) == 0 {
			return false
		}
		name := state.Repositories[rand.IntN(len(state.Repositories))].Name
		if _, err := r.client.GetRepository(ctx, name); err != nil {
			r.logger.Error("stress worker: get repository details", "worker", id, "repo", name, "error", err)
			return false
		}
		return true
	}
	return false
}
