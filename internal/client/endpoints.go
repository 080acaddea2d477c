package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

const (
	endpointState        = "/api/registry/state"
	endpointHealth       = "/api/registry/health"
	endpointRepositories = "/api/registry/repositories/"
	endpointSessions     = "/api/registry/sessions"
)

// GetState fetches the aggregate registry state from /api/registry/state.
func (c *DefaultClient) GetState(ctx context.Context) (*State, error) {
	body, err := c.doGet(ctx, endpointState)
	if err != nil {
		return nil, fmt.Errorf("GetState: %w", err)
	}

	var result State
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("GetState decode: %w", err)
	}
	if result.Timestamp == 0 {
		return nil, fmt.Errorf("GetState decode: missing required field timestamp")
	}
	return &result, nil
}

// GetHealth fetches the health report from /api/registry/health.
func (c *DefaultClient) GetHealth(ctx context.Context) (*Health, error) {
	body, err := c.doGet(ctx, endpointHealth)
	if err != nil {
		return nil, fmt.Errorf("GetHealth: %w", err)
	}

	var result Health
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("GetHealth decode: %w", err)
	}
	return &result, nil
}

// GetRepository fetches detailed tag information for a single repository from
// /api/registry/repositories/{name}. Tag entries missing the required
// hasManifest field are rejected as a decode error rather than defaulted.
func (c *DefaultClient) GetRepository(ctx context.Context, name string) (*RepositoryDetail, error) {
	if name == "" {
		return nil, fmt.Errorf("GetRepository: name must not be empty")
	}
	body, err := c.doGet(ctx, endpointRepositories+url.PathEscape(name))
	if err != nil {
		return nil, fmt.Errorf("GetRepository %s: %w", name, err)
	}

	var payload struct {
		Name     string       `json:"name"`
		TagCount int          `json:"tagCount"`
		Tags     []tagPayload `json:"tags"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("GetRepository %s decode: %w", name, err)
	}

	result := RepositoryDetail{
		Name:     payload.Name,
		TagCount: payload.TagCount,
		Tags:     make([]Tag, 0, len(payload.Tags)),
	}
	if result.Name == "" {
		result.Name = name
	}
	for _, t := range payload.Tags {
		if t.Tag == "" {
			return nil, fmt.Errorf("GetRepository %s decode: tag entry missing tag name", name)
		}
		if t.HasManifest == nil {
			return nil, fmt.Errorf("GetRepository %s decode: tag %q missing required field hasManifest", name, t.Tag)
		}
		result.Tags = append(result.Tags, Tag{
			Name:        t.Tag,
			Digest:      t.Digest,
			HasManifest: *t.HasManifest,
		})
	}
	return &result, nil
}

// GetSessions fetches the active upload sessions from /api/registry/sessions.
func (c *DefaultClient) GetSessions(ctx context.Context) (*SessionReport, error) {
	body, err := c.doGet(ctx, endpointSessions)
	if err != nil {
		return nil, fmt.Errorf("GetSessions: %w", err)
	}

	var result SessionReport
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("GetSessions decode: %w", err)
	}
	return &result, nil
}
