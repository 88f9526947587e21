package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults when no config file", func(t *testing.T) {
		// Ensure no config file exists for this test
		os.Remove("config.yml")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}

		if cfg.Port != 8080 {
			t.Errorf("Expected default port 8080, got %d", cfg.Port)
		}
		if cfg.Backend.BaseURL != "http://localhost:8000" {
			t.Errorf("Expected default backend URL, got '%s'", cfg.Backend.BaseURL)
		}
		if cfg.Polling.JobsInterval != 5*time.Second {
			t.Errorf("Expected jobs interval 5s, got %s", cfg.Polling.JobsInterval)
		}
		if cfg.Polling.StatsInterval != 8*time.Second {
			t.Errorf("Expected stats interval 8s, got %s", cfg.Polling.StatsInterval)
		}
		if cfg.Polling.NotificationsInterval != 30*time.Second {
			t.Errorf("Expected notifications interval 30s, got %s", cfg.Polling.NotificationsInterval)
		}
		if cfg.Polling.JobsLimit != 200 || cfg.Polling.NotificationsLimit != 10 {
			t.Errorf("Unexpected job limits: %d/%d", cfg.Polling.JobsLimit, cfg.Polling.NotificationsLimit)
		}
	})

	t.Run("Loads from config file", func(t *testing.T) {
		configContent := `
port: 9999
backend:
  base_url: "http://backend:8000/"
database:
  path: "/tmp/test.db"
polling:
  jobs_interval: 2s
unknown_setting: "should be ignored"
`
		// Viper looks in the CWD, so t.TempDir() is not used here.
		configPath := "config.yml"
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			t.Fatalf("Failed to write test config file: %v", err)
		}
		defer os.Remove(configPath)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}

		if cfg.Port != 9999 {
			t.Errorf("Expected port 9999, got %d", cfg.Port)
		}
		if cfg.Backend.BaseURL != "http://backend:8000" {
			t.Errorf("Expected trailing slash to be trimmed, got '%s'", cfg.Backend.BaseURL)
		}
		if cfg.Database.Path != "/tmp/test.db" {
			t.Errorf("Expected db path '/tmp/test.db', got '%s'", cfg.Database.Path)
		}
		if cfg.Polling.JobsInterval != 2*time.Second {
			t.Errorf("Expected jobs interval 2s, got %s", cfg.Polling.JobsInterval)
		}
		if cfg.Polling.StatsInterval != 8*time.Second {
			t.Errorf("Expected default stats interval of 8s, got %s", cfg.Polling.StatsInterval)
		}
	})

	t.Run("Environment overrides", func(t *testing.T) {
		os.Remove("config.yml")
		t.Setenv("UGC_BACKEND_BASE_URL", "http://env-backend:9000")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}
		if cfg.Backend.BaseURL != "http://env-backend:9000" {
			t.Errorf("Expected env override, got '%s'", cfg.Backend.BaseURL)
		}
	})
}
