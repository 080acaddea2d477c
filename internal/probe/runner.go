package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dm/regprobe/internal/client"
	"github.com/dm/regprobe/internal/model"
)

// TestType selects which optional probe loops a run starts. The health-check
// and session-monitor loops always run.
type TestType string

const (
	TestMonitor     TestType = "monitor"
	TestConsistency TestType = "consistency"
	TestStress      TestType = "stress"
	TestAll         TestType = "all"
)

// ParseTestType validates a test-type string.
func ParseTestType(s string) (TestType, error) {
	switch TestType(s) {
	case TestMonitor, TestConsistency, TestStress, TestAll:
		return TestType(s), nil
	default:
		return "", fmt.Errorf("invalid test type %q (monitor|consistency|stress|all)", s)
	}
}

// Options configures a Runner.
type Options struct {
	Duration time.Duration
	Workers  int
	TestType TestType

	MonitorInterval     time.Duration
	HealthInterval      time.Duration
	ConsistencyInterval time.Duration
	SessionInterval     time.Duration
}

func (o *Options) setDefaults() {
	if o.Duration <= 0 {
		o.Duration = 60 * time.Second
	}
	if o.Workers <= 0 {
		o.Workers = 10
	}
	if o.TestType == "" {
		o.TestType = TestAll
	}
	if o.MonitorInterval <= 0 {
		o.MonitorInterval = 5 * time.Second
	}
	if o.HealthInterval <= 0 {
		o.HealthInterval = 10 * time.Second
	}
	if o.ConsistencyInterval <= 0 {
		o.ConsistencyInterval = 15 * time.Second
	}
	if o.SessionInterval <= 0 {
		o.SessionInterval = 20 * time.Second
	}
}

// Report is the final run summary.
type Report struct {
	Operations  int64
	Failures    int64
	SuccessRate float64
	Snapshots   int
	First       model.Snapshot
	Last        model.Snapshot
	Anomalies   []model.Anomaly
}

// Runner orchestrates the probe loops of one verification run against a
// single registry target. The tally and the snapshot history are the only
// state shared between loops.
type Runner struct {
	client  client.RegistryClient
	logger  *slog.Logger
	opts    Options
	tally   *model.Tally
	history *model.History
	events  chan<- Event
}

// NewRunner constructs a Runner. Zero-valued Options fields are replaced
// with defaults.
func NewRunner(c client.RegistryClient, logger *slog.Logger, opts Options) *Runner {
	opts.setDefaults()
	return &Runner{
		client:  c,
		logger:  logger,
		opts:    opts,
		tally:   &model.Tally{},
		history: model.NewHistory(),
	}
}

// Subscribe registers the event channel consumed by the live dashboard.
// Must be called before Run.
func (r *Runner) Subscribe(ch chan<- Event) {
	r.events = ch
}

// Tally exposes the shared operation counters.
func (r *Runner) Tally() *model.Tally {
	return r.tally
}

// History exposes the shared snapshot history.
func (r *Runner) History() *model.History {
	return r.history
}

// record stores one operation outcome and notifies the subscriber.
func (r *Runner) record(success bool) {
	r.tally.Record(success)
	if r.events != nil {
		attempts, failures := r.tally.Counts()
		r.publish(TallyEvent{
			Attempts:    attempts,
			Failures:    failures,
			SuccessRate: r.tally.SuccessRate(),
		})
	}
}

// Run starts the configured subset of probe loops concurrently, waits for
// all of them to expire, analyzes the snapshot history, and emits the final
// summary. Probe and consistency failures never fail the run; Run returns
// an error only when it cannot start at all.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if r.client == nil {
		return nil, fmt.Errorf("run: no registry client configured")
	}

	r.logger.Info("starting torture test",
		"target", r.client.BaseURL(),
		"type", string(r.opts.TestType),
		"duration", r.opts.Duration)

	g, gctx := errgroup.WithContext(ctx)

	if r.opts.TestType == TestMonitor || r.opts.TestType == TestAll {
		g.Go(func() error { r.monitorLoop(gctx); return nil })
	}
	if r.opts.TestType == TestConsistency || r.opts.TestType == TestAll {
		g.Go(func() error { r.consistencyLoop(gctx); return nil })
	}
	if r.opts.TestType == TestStress || r.opts.TestType == TestAll {
		g.Go(func() error { r.stressLoop(gctx); return nil })
	}

	// Health checks and session monitoring run for every test type.
	g.Go(func() error { r.healthLoop(gctx); return nil })
	g.Go(func() error { r.sessionLoop(gctx); return nil })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}

	report := r.buildReport()
	r.logSummary(report)
	r.publish(DoneEvent{Report: report})
	return report, nil
}

// buildReport runs the history analysis and assembles the final report.
func (r *Runner) buildReport() *Report {
	r.logger.Info("analyzing state history for anomalies")

	anomalies, err := r.history.Analyze()
	switch {
	case errors.Is(err, model.ErrInsufficientHistory):
		r.logger.Warn("insufficient state history for analysis", "snapshots", r.history.Len())
	case err != nil:
		r.logger.Warn("state history analysis failed", "error", err)
	default:
		for _, a := range anomalies {
			r.logger.Warn(a.String())
		}
	}

	attempts, failures := r.tally.Counts()
	report := &Report{
		Operations:  attempts,
		Failures:    failures,
		SuccessRate: r.tally.SuccessRate(),
		Snapshots:   r.history.Len(),
		Anomalies:   anomalies,
	}
	if first, ok := r.history.First(); ok {
		report.First = first
	}
	if last, ok := r.history.Last(); ok {
		report.Last = last
	}
	return report
}

// logSummary emits the terminal summary block.
func (r *Runner) logSummary(report *Report) {
	r.logger.Info("=== torture test summary ===")
	r.logger.Info("total operations", "count", report.Operations)
	r.logger.Info("errors", "count", report.Failures)
	r.logger.Info("success rate", "percent", fmt.Sprintf("%.2f", report.SuccessRate))
	r.logger.Info("state snapshots collected", "count", report.Snapshots)
	if report.Snapshots > 0 {
		r.logger.Info("initial state", "digest", report.First.Digest())
		r.logger.Info("final state", "digest", report.Last.Digest())
	}
}
