package client

import "encoding/json"

// State represents the response from /api/registry/state.
type State struct {
	Timestamp      int64               `json:"timestamp"`
	Summary        StateSummary        `json:"summary"`
	ActiveSessions SessionCount        `json:"activeSessions"`
	Health         HealthIndicator     `json:"health"`
	Repositories   []RepositorySummary `json:"repositories"`
}

// StateSummary holds the aggregate registry counters.
type StateSummary struct {
	TotalRepositories int `json:"totalRepositories"`
	TotalManifests    int `json:"totalManifests"`
	TotalBlobs        int `json:"totalBlobs"`
}

// SessionCount holds the active session counter embedded in the state response.
type SessionCount struct {
	Count int `json:"count"`
}

// HealthIndicator holds the health status embedded in the state response.
type HealthIndicator struct {
	Status string `json:"status"`
}

// RepositorySummary is a single per-repository entry in the state response.
type RepositorySummary struct {
	Name     string `json:"name"`
	TagCount int    `json:"tagCount"`
}

// Health represents the response from /api/registry/health. Status is the
// well-known field; Details retains the full decoded payload so degraded
// states can be logged with whatever diagnostics the registry attaches.
type Health struct {
	Status  string
	Details map[string]any
}

// UnmarshalJSON decodes the free-form health payload, extracting the status
// field and defaulting it to "unknown" when absent or empty.
func (h *Health) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	h.Status = "unknown"
	if s, ok := raw["status"].(string); ok && s != "" {
		h.Status = s
	}
	h.Details = raw
	return nil
}

// RepositoryDetail represents the response from /api/registry/repositories/{name}.
type RepositoryDetail struct {
	Name     string `json:"name"`
	TagCount int    `json:"tagCount"`
	Tags     []Tag  `json:"tags"`
}

// Tag is a single tag entry in a repository detail response. Digest is
// optional on the wire; HasManifest is required.
type Tag struct {
	Name        string
	Digest      string
	HasManifest bool
}

// tagPayload mirrors the wire shape of a tag entry. HasManifest is a pointer
// so a missing required field is distinguishable from an explicit false.
type tagPayload struct {
	Tag         string `json:"tag"`
	Digest      string `json:"digest"`
	HasManifest *bool  `json:"hasManifest"`
}

// SessionReport represents the response from /api/registry/sessions.
type SessionReport struct {
	TotalActiveSessions int           `json:"totalActiveSessions"`
	ActiveSessions      []SessionInfo `json:"activeSessions"`
}

// SessionInfo is a single active upload session. Duration is in milliseconds.
type SessionInfo struct {
	ID        string `json:"id"`
	Duration  int64  `json:"duration"`
	BlobCount int    `json:"blobCount"`
}
