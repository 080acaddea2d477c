package model

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInsufficientHistory is returned by Analyze when fewer than two
// snapshots were collected during the run.
var ErrInsufficientHistory = errors.New("insufficient state history for analysis")

// AnomalyKind classifies a cross-snapshot regression.
type AnomalyKind string

const (
	AnomalyRepositoryDrop AnomalyKind = "repository-count-decreased"
	AnomalyManifestDrop   AnomalyKind = "manifest-count-decreased"
	AnomalyHealthDegraded AnomalyKind = "health-degraded"
)

// Anomaly is a regression detected between two consecutive snapshots.
// Anomalies are report artifacts: logged as warnings, never counted in the
// operation tally.
type Anomaly struct {
	Kind AnomalyKind
	Prev Snapshot
	Curr Snapshot
}

// String renders the anomaly as a log-ready message.
func (a Anomaly) String() string {
	switch a.Kind {
	case AnomalyRepositoryDrop:
		return fmt.Sprintf("repository count decreased: %d -> %d", a.Prev.Repositories, a.Curr.Repositories)
	case AnomalyManifestDrop:
		return fmt.Sprintf("manifest count decreased: %d -> %d", a.Prev.Manifests, a.Curr.Manifests)
	case AnomalyHealthDegraded:
		return fmt.Sprintf("health status degraded: %s -> %s", a.Prev.Health, a.Curr.Health)
	default:
		return string(a.Kind)
	}
}

// History is the append-only, time-ordered snapshot sequence shared by the
// monitor and consistency-check loops. Insertion order is preserved; no
// snapshot is ever removed or reordered.
type History struct {
	mu    sync.Mutex
	snaps []Snapshot
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{}
}

// Append adds a snapshot at the end of the sequence. Safe for concurrent
// callers; each append is atomic.
func (h *History) Append(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snaps = append(h.snaps, s)
}

// Len returns the number of collected snapshots.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.snaps)
}

// Snapshots returns a copy of the collected sequence in arrival order.
func (h *History) Snapshots() []Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Snapshot, len(h.snaps))
	copy(out, h.snaps)
	return out
}

// First returns the earliest snapshot, or false when the history is empty.
func (h *History) First() (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.snaps) == 0 {
		return Snapshot{}, false
	}
	return h.snaps[0], true
}

// Last returns the most recent snapshot, or false when the history is empty.
func (h *History) Last() (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.snaps) == 0 {
		return Snapshot{}, false
	}
	return h.snaps[len(h.snaps)-1], true
}

// Analyze walks adjacent snapshot pairs in arrival order and flags
// repository-count decreases, manifest-count decreases, and transitions
// from healthy to any non-healthy status. Runs after all producers have
// stopped. With fewer than two snapshots it returns ErrInsufficientHistory.
func (h *History) Analyze() ([]Anomaly, error) {
	snaps := h.Snapshots()
	if len(snaps) < 2 {
		return nil, ErrInsufficientHistory
	}

	var anomalies []Anomaly
	for i := 1; i < len(snaps); i++ {
		prev, curr := snaps[i-1], snaps[i]

		if curr.Repositories < prev.Repositories {
			anomalies = append(anomalies, Anomaly{Kind: AnomalyRepositoryDrop, Prev: prev, Curr: curr})
		}
		if curr.Manifests < prev.Manifests {
			anomalies = append(anomalies, Anomaly{Kind: AnomalyManifestDrop, Prev: prev, Curr: curr})
		}
		if prev.Health == HealthHealthy && curr.Health != HealthHealthy {
			anomalies = append(anomalies, Anomaly{Kind: AnomalyHealthDegraded, Prev: prev, Curr: curr})
		}
	}
	return anomalies, nil
}
