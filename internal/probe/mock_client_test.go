package probe

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/dm/regprobe/internal/client"
)

// MockRegistryClient implements client.RegistryClient for testing. Call
// counters are atomic because stress workers hit the mock concurrently.
type MockRegistryClient struct {
	StateFn      func(ctx context.Context) (*client.State, error)
	HealthFn     func(ctx context.Context) (*client.Health, error)
	RepositoryFn func(ctx context.Context, name string) (*client.RepositoryDetail, error)
	SessionsFn   func(ctx context.Context) (*client.SessionReport, error)

	StateCalls      atomic.Int64
	HealthCalls     atomic.Int64
	RepositoryCalls atomic.Int64
	SessionsCalls   atomic.Int64
}

func (m *MockRegistryClient) GetState(ctx context.Context) (*client.State, error) {
	m.StateCalls.Add(1)
	if m.StateFn != nil {
		return m.StateFn(ctx)
	}
	return &client.State{
		Timestamp: 1700000000,
		Summary:   client.StateSummary{TotalRepositories: 1, TotalManifests: 2, TotalBlobs: 3},
		Health:    client.HealthIndicator{Status: "healthy"},
		Repositories: []client.RepositorySummary{
			{Name: "app", TagCount: 1},
		},
	}, nil
}

func (m *MockRegistryClient) GetHealth(ctx context.Context) (*client.Health, error) {
	m.HealthCalls.Add(1)
	if m.HealthFn != nil {
		return m.HealthFn(ctx)
	}
	return &client.Health{Status: "healthy", Details: map[string]any{"status": "healthy"}}, nil
}

func (m *MockRegistryClient) GetRepository(ctx context.Context, name string) (*client.RepositoryDetail, error) {
	m.RepositoryCalls.Add(1)
	if m.RepositoryFn != nil {
		return m.RepositoryFn(ctx, name)
	}
	return &client.RepositoryDetail{
		Name:     name,
		TagCount: 1,
		Tags:     []client.Tag{{Name: "latest", Digest: "sha256:abc", HasManifest: true}},
	}, nil
}

func (m *MockRegistryClient) GetSessions(ctx context.Context) (*client.SessionReport, error) {
	m.SessionsCalls.Add(1)
	if m.SessionsFn != nil {
		return m.SessionsFn(ctx)
	}
	return &client.SessionReport{TotalActiveSessions: 0}, nil
}

func (m *MockRegistryClient) Ping(ctx context.Context) error {
	return nil
}

func (m *MockRegistryClient) BaseURL() string {
	return "http://mock:7000"
}

var errMockFailure = errors.New("mock failure")

// Failing endpoint stubs shared across tests.
func failingState(_ context.Context) (*client.State, error) { return nil, errMockFailure }

func failingHealth(_ context.Context) (*client.Health, error) { return nil, errMockFailure }

func failingSessions(_ context.Context) (*client.SessionReport, error) {
	return nil, errMockFailure
}
