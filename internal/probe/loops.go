package probe

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dm/regprobe/internal/format"
	"github.com/dm/regprobe/internal/model"
)

// longRunningSession is the duration above which an active upload session
// is flagged as long-running.
const longRunningSession = 5 * time.Minute

// runLoop repeats work every interval until the run duration elapses.
// Iterations within a loop are strictly sequential; the duration check sits
// at the loop head, so expiry is the only scheduled exit. Context
// cancellation (an interrupt) also stops the loop.
func (r *Runner) runLoop(ctx context.Context, interval time.Duration, work func(context.Context)) {
	start := time.Now()
	for time.Since(start) < r.opts.Duration {
		work(ctx)

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

// monitorLoop polls the aggregate registry state, appending each successful
// snapshot to the shared history.
func (r *Runner) monitorLoop(ctx context.Context) {
	r.logger.Info("starting registry state monitoring", "duration", r.opts.Duration)

	r.runLoop(ctx, r.opts.MonitorInterval, func(ctx context.Context) {
		state, err := r.client.GetState(ctx)
		if err != nil {
			r.logger.Error("get registry state", "error", err)
			return
		}

		snap := model.SnapshotFromState(state)
		r.history.Append(snap)
		r.publish(SnapshotEvent{Snapshot: snap})
		r.logger.Info("state",
			"repos", snap.Repositories,
			"manifests", snap.Manifests,
			"blobs", snap.Blobs,
			"sessions", snap.ActiveSessions,
			"health", string(snap.Health))
	})
}

// healthLoop polls the health endpoint and raises a warning with the full
// detail payload whenever the registry reports anything but healthy.
func (r *Runner) healthLoop(ctx context.Context) {
	r.logger.Info("starting health checks", "duration", r.opts.Duration)

	r.runLoop(ctx, r.opts.HealthInterval, func(ctx context.Context) {
		health, err := r.client.GetHealth(ctx)
		if err != nil {
			r.logger.Error("get health", "error", err)
			return
		}

		status := model.ParseHealthStatus(health.Status)
		if status != model.HealthHealthy {
			detail, _ := json.Marshal(health.Details)
			r.logger.Warn("registry health degraded", "status", string(status), "detail", string(detail))
			return
		}
		r.logger.Debug("registry health", "status", string(status))
	})
}

// consistencyLoop cross-checks every repository listed in the state
// snapshot against its detail endpoint. Tag-count mismatches and manifests
// without digests are recorded as failed operations; each passing check is
// recorded as a success. The snapshot feeding the check also lands in the
// shared history.
func (r *Runner) consistencyLoop(ctx context.Context) {
	r.logger.Info("starting repository consistency checks", "duration", r.opts.Duration)

	r.runLoop(ctx, r.opts.ConsistencyInterval, func(ctx context.Context) {
		state, err := r.client.GetState(ctx)
		if err != nil {
			r.logger.Error("get registry state", "error", err)
			return
		}

		snap := model.SnapshotFromState(state)
		r.history.Append(snap)
		r.publish(SnapshotEvent{Snapshot: snap})

		for _, repo := range state.Repositories {
			detail, err := r.client.GetRepository(ctx, repo.Name)
			if err != nil {
				r.logger.Error("get repository details", "repo", repo.Name, "error", err)
				continue
			}

			if repo.TagCount != detail.TagCount {
				r.logger.Error("inconsistent tag count",
					"repo", repo.Name,
					"state", repo.TagCount,
					"details", detail.TagCount)
				r.record(false)
			} else {
				r.record(true)
			}

			for _, tag := range detail.Tags {
				if tag.HasManifest && tag.Digest == "" {
					r.logger.Error("manifest without digest", "repo", repo.Name, "tag", tag.Name)
					r.record(false)
				} else {
					r.record(true)
				}
			}
		}
	})
}

// sessionLoop polls the active upload sessions, flagging any session older
// than longRunningSession.
func (r *Runner) sessionLoop(ctx context.Context) {
	r.logger.Info("starting session monitoring", "duration", r.opts.Duration)

	r.runLoop(ctx, r.opts.SessionInterval, func(ctx context.Context) {
		report, err := r.client.GetSessions(ctx)
		if err != nil {
			r.logger.Error("get active sessions", "error", err)
			return
		}

		r.logger.Info("active sessions", "count", report.TotalActiveSessions)
		r.publish(SessionsEvent{Total: report.TotalActiveSessions})

		for _, s := range report.ActiveSessions {
			r.logger.Debug("session", "id", s.ID, "duration", format.FormatMillis(s.Duration), "blobs", s.BlobCount)
			if time.Duration(s.Duration)*time.Millisecond > longRunningSession {
				r.logger.Warn("long-running session detected", "id", s.ID, "duration", format.FormatMillis(s.Duration))
			}
		}
	})
}
