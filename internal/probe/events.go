package probe

import (
	"github.com/dm/regprobe/internal/model"
)

// Event is a progress notification published by the Runner for live
// consumers (the TUI dashboard). Headless runs have no subscriber and no
// events are produced.
type Event interface{ isEvent() }

// SnapshotEvent carries a freshly appended state snapshot.
type SnapshotEvent struct {
	Snapshot model.Snapshot
}

// TallyEvent carries the operation counters after an outcome was recorded.
type TallyEvent struct {
	Attempts    int64
	Failures    int64
	SuccessRate float64
}

// SessionsEvent carries the latest active-session count.
type SessionsEvent struct {
	Total int
}

// DoneEvent signals run completion and carries the final report.
type DoneEvent struct {
	Report *Report
}

func (SnapshotEvent) isEvent() {}
func (TallyEvent) isEvent()    {}
func (SessionsEvent) isEvent() {}
func (DoneEvent) isEvent()     {}

// publish delivers an event to the subscriber without blocking a probe
// loop. Events are dropped when the subscriber lags; the log stream is the
// authoritative record.
func (r *Runner) publish(ev Event) {
	if r.events == nil {
		return
	}
	select {
	case r.events <- ev:
	default:
	}
}
