package model

import (
	"fmt"
	"time"

	"github.com/dm/regprobe/internal/client"
)

// HealthStatus is the normalized registry health state.
type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthDegraded  HealthStatus = "degraded"
	HealthUnhealthy HealthStatus = "unhealthy"
	HealthUnknown   HealthStatus = "unknown"
)

// ParseHealthStatus maps a wire status string onto the known set.
// Anything unrecognized becomes HealthUnknown.
func ParseHealthStatus(s string) HealthStatus {
	switch HealthStatus(s) {
	case HealthHealthy, HealthDegraded, HealthUnhealthy:
		return HealthStatus(s)
	default:
		return HealthUnknown
	}
}

// Snapshot is one point-in-time capture of the aggregate registry counters
// and per-repository summaries. Immutable once created; owned by History
// after Append.
type Snapshot struct {
	Timestamp      int64 // seconds since epoch, as reported by the registry
	Repositories   int
	Manifests      int
	Blobs          int
	ActiveSessions int
	Health         HealthStatus
	RepoSummaries  []client.RepositorySummary
	FetchedAt      time.Time
}

// SnapshotFromState converts a state response into a Snapshot, stamping it
// with the local fetch time.
func SnapshotFromState(s *client.State) Snapshot {
	return Snapshot{
		Timestamp:      s.Timestamp,
		Repositories:   s.Summary.TotalRepositories,
		Manifests:      s.Summary.TotalManifests,
		Blobs:          s.Summary.TotalBlobs,
		ActiveSessions: s.ActiveSessions.Count,
		Health:         ParseHealthStatus(s.Health.Status),
		RepoSummaries:  s.Repositories,
		FetchedAt:      time.Now(),
	}
}

// Digest returns the one-line counter digest used by the monitor loop and
// the run summary.
func (s Snapshot) Digest() string {
	return fmt.Sprintf("repos=%d manifests=%d blobs=%d sessions=%d health=%s",
		s.Repositories, s.Manifests, s.Blobs, s.ActiveSessions, s.Health)
}
