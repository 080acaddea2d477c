package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestClient creates a DefaultClient pointed at the given test server URL.
func newTestClient(t *testing.T, baseURL string) *DefaultClient {
	t.Helper()
	c, err := NewDefaultClient(ClientConfig{
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewDefaultClient: %v", err)
	}
	return c
}

func TestGetState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/registry/state" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept = %q, want application/json", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"timestamp": 1700000000,
			"summary": {"totalRepositories": 4, "totalManifests": 12, "totalBlobs": 37},
			"activeSessions": {"count": 2},
			"health": {"status": "healthy"},
			"repositories": [{"name": "app", "tagCount": 3}, {"name": "base", "tagCount": 1}]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	state, err := c.GetState(context.Background())
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if state.Timestamp != 1700000000 {
		t.Errorf("Timestamp = %d, want 1700000000", state.Timestamp)
	}
	if state.Summary.TotalRepositories != 4 {
		t.Errorf("TotalRepositories = %d, want 4", state.Summary.TotalRepositories)
	}
	if state.Summary.TotalManifests != 12 {
		t.Errorf("TotalManifests = %d, want 12", state.Summary.TotalManifests)
	}
	if state.Summary.TotalBlobs != 37 {
		t.Errorf("TotalBlobs = %d, want 37", state.Summary.TotalBlobs)
	}
	if state.ActiveSessions.Count != 2 {
		t.Errorf("ActiveSessions.Count = %d, want 2", state.ActiveSessions.Count)
	}
	if state.Health.Status != "healthy" {
		t.Errorf("Health.Status = %q, want %q", state.Health.Status, "healthy")
	}
	if len(state.Repositories) != 2 {
		t.Fatalf("len(Repositories) = %d, want 2", len(state.Repositories))
	}
	if state.Repositories[0].Name != "app" || state.Repositories[0].TagCount != 3 {
		t.Errorf("Repositories[0] = %+v, want {app 3}", state.Repositories[0])
	}
}

func TestGetState_MissingTimestamp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"summary": {"totalRepositories": 1}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetState(context.Background())
	if err == nil {
		t.Fatal("GetState: expected error for missing timestamp, got nil")
	}
	if !strings.Contains(err.Error(), "timestamp") {
		t.Errorf("error %q does not mention timestamp", err)
	}
}

func TestGetHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/registry/health" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status": "degraded", "storage": {"errors": 3}, "uptime": 9000}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	health, err := c.GetHealth(context.Background())
	if err != nil {
		t.Fatalf("GetHealth: %v", err)
	}
	if health.Status != "degraded" {
		t.Errorf("Status = %q, want %q", health.Status, "degraded")
	}
	if _, ok := health.Details["storage"]; !ok {
		t.Error("Details missing storage key")
	}
	if health.Details["uptime"].(float64) != 9000 {
		t.Errorf("Details[uptime] = %v, want 9000", health.Details["uptime"])
	}
}

func TestGetHealth_MissingStatusDefaultsToUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"uptime": 12}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	health, err := c.GetHealth(context.Background())
	if err != nil {
		t.Fatalf("GetHealth: %v", err)
	}
	if health.Status != "unknown" {
		t.Errorf("Status = %q, want %q", health.Status, "unknown")
	}
}

func TestGetRepository(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/registry/repositories/app" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"name": "app",
			"tagCount": 2,
			"tags": [
				{"tag": "latest", "digest": "sha256:abc", "hasManifest": true},
				{"tag": "v1", "hasManifest": false}
			]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	detail, err := c.GetRepository(context.Background(), "app")
	if err != nil {
		t.Fatalf("GetRepository: %v", err)
	}
	if detail.Name != "app" {
		t.Errorf("Name = %q, want %q", detail.Name, "app")
	}
	if detail.TagCount != 2 {
		t.Errorf("TagCount = %d, want 2", detail.TagCount)
	}
	if len(detail.Tags) != 2 {
		t.Fatalf("len(Tags) = %d, want 2", len(detail.Tags))
	}
	if detail.Tags[0].Name != "latest" || detail.Tags[0].Digest != "sha256:abc" || !detail.Tags[0].HasManifest {
		t.Errorf("Tags[0] = %+v, want {latest sha256:abc true}", detail.Tags[0])
	}
	if detail.Tags[1].Digest != "" || detail.Tags[1].HasManifest {
		t.Errorf("Tags[1] = %+v, want empty digest and hasManifest=false", detail.Tags[1])
	}
}

func TestGetRepository_EscapesName(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"name": "team/app", "tagCount": 0, "tags": []}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.GetRepository(context.Background(), "team/app"); err != nil {
		t.Fatalf("GetRepository: %v", err)
	}
	if gotPath != "/api/registry/repositories/team%2Fapp" {
		t.Errorf("request path = %q, want escaped repository name", gotPath)
	}
}

func TestGetRepository_MissingHasManifest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "app", "tagCount": 1, "tags": [{"tag": "latest", "digest": "sha256:abc"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetRepository(context.Background(), "app")
	if err == nil {
		t.Fatal("GetRepository: expected error for missing hasManifest, got nil")
	}
	if !strings.Contains(err.Error(), "hasManifest") {
		t.Errorf("error %q does not mention hasManifest", err)
	}
}

func TestGetRepository_EmptyName(t *testing.T) {
	c := newTestClient(t, "http://localhost:1")
	if _, err := c.GetRepository(context.Background(), ""); err == nil {
		t.Fatal("GetRepository: expected error for empty name, got nil")
	}
}

func TestGetSessions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/registry/sessions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"totalActiveSessions": 2,
			"activeSessions": [
				{"id": "s-1", "duration": 1500, "blobCount": 3},
				{"id": "s-2", "duration": 400000, "blobCount": 0}
			]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	report, err := c.GetSessions(context.Background())
	if err != nil {
		t.Fatalf("GetSessions: %v", err)
	}
	if report.TotalActiveSessions != 2 {
		t.Errorf("TotalActiveSessions = %d, want 2", report.TotalActiveSessions)
	}
	if len(report.ActiveSessions) != 2 {
		t.Fatalf("len(ActiveSessions) = %d, want 2", len(report.ActiveSessions))
	}
	if report.ActiveSessions[1].ID != "s-2" || report.ActiveSessions[1].Duration != 400000 {
		t.Errorf("ActiveSessions[1] = %+v, want {s-2 400000 0}", report.ActiveSessions[1])
	}
}

func TestDoGet_BasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			t.Error("expected basic auth header")
		}
		if user != "admin" || pass != "hunter2" {
			t.Errorf("basic auth = %q/%q, want admin/hunter2", user, pass)
		}
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	}))
	defer srv.Close()

	c, err := NewDefaultClient(ClientConfig{
		BaseURL:  srv.URL,
		Username: "admin",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("NewDefaultClient: %v", err)
	}
	if _, err := c.GetHealth(context.Background()); err != nil {
		t.Fatalf("GetHealth: %v", err)
	}
}

func TestDoGet_AnonymousOmitsAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := r.BasicAuth(); ok {
			t.Error("unexpected basic auth header in anonymous mode")
		}
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if !c.Anonymous() {
		t.Error("Anonymous() = false, want true")
	}
	if _, err := c.GetHealth(context.Background()); err != nil {
		t.Fatalf("GetHealth: %v", err)
	}
}

func TestDoGet_Non200Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "storage offline"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetState(context.Background())
	if err == nil {
		t.Fatal("GetState: expected error for 503, got nil")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error %q does not mention status 503", err)
	}
}

func TestNewDefaultClient_RequiresBaseURL(t *testing.T) {
	if _, err := NewDefaultClient(ClientConfig{}); err == nil {
		t.Fatal("NewDefaultClient: expected error for empty BaseURL, got nil")
	}
}

func TestSelfSignedCertificateAccepted(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	}))
	defer srv.Close()

	// The test server's certificate chains to nothing; a verifying client
	// would fail the handshake before Ping ever saw a response.
	c := newTestClient(t, srv.URL)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping over self-signed TLS: %v", err)
	}

	health, err := c.GetHealth(context.Background())
	if err != nil {
		t.Fatalf("GetHealth over self-signed TLS: %v", err)
	}
	if health.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", health.Status)
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/registry/health" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
