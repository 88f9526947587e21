// A shared test server setup utility, which simplifies all API tests.

package testutil

import (
	"testing"
	"time"

	"github.com/vrsandeep/ugc-console/internal/api"
	"github.com/vrsandeep/ugc-console/internal/config"
	"github.com/vrsandeep/ugc-console/internal/core"
)

// TestConfig points the console at backendURL. Poll intervals are long so
// tests only see the immediate fetch plus whatever they trigger.
func TestConfig(backendURL string) *config.Config {
	cfg := &config.Config{Port: 0}
	cfg.Backend.BaseURL = backendURL
	cfg.Database.Path = ":memory:"
	cfg.Polling = config.PollingConfig{
		JobsInterval:          time.Hour,
		StatsInterval:         time.Hour,
		NotificationsInterval: time.Hour,
		MetricsInterval:       time.Hour,
		JobsLimit:             200,
		NotificationsLimit:    10,
	}
	cfg.History.Retention = 24 * time.Hour
	return cfg
}

// SetupTestApp wires a full core.App against a fake backend and an
// in-memory database. Polling is not started.
func SetupTestApp(t *testing.T) (*core.App, *FakeBackend) {
	t.Helper()
	backend := NewFakeBackend(t)
	db := SetupTestDB(t)

	app, err := core.Build(TestConfig(backend.URL()), db, "test")
	if err != nil {
		t.Fatalf("Failed to build app: %v", err)
	}
	go app.WsHub.Run()
	t.Cleanup(func() {
		app.Monitor.Stop()
		app.WsHub.Close()
	})
	return app, backend
}

// SetupTestServer initializes a full core.App and api.Server for integration testing.
func SetupTestServer(t *testing.T) (*api.Server, *core.App, *FakeBackend) {
	t.Helper()
	app, backend := SetupTestApp(t)
	return api.NewServer(app), app, backend
}
