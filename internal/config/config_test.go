package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Engine.DefaultSize != 6 || cfg.Engine.MaxSize != 12 {
		t.Errorf("unexpected engine sizes %+v", cfg.Engine)
	}
	if cfg.Redis.CacheTTL != 10*time.Minute {
		t.Errorf("expected 10m cache ttl, got %v", cfg.Redis.CacheTTL)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.Addr())
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "server:\n  port: 9000\nengine:\n  freshness_window_days: 7\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PORT", "9100")
	t.Setenv("CACHE_TTL", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("env should win over file, got port %d", cfg.Server.Port)
	}
	if cfg.Engine.FreshnessWindowDays != 7 {
		t.Errorf("expected freshness window 7 from file, got %d", cfg.Engine.FreshnessWindowDays)
	}
	if cfg.Redis.CacheTTL != 90*time.Second {
		t.Errorf("expected 90s cache ttl, got %v", cfg.Redis.CacheTTL)
	}
}

func TestValidateRejectsBadEngineSizes(t *testing.T) {
	cfg := defaultConfig()
	cfg.Engine.DefaultSize = 10
	cfg.Engine.MaxSize = 8
	if err := cfg.Validate(); err == nil {
		t.Error("expected max_size < default_size to fail validation")
	}

	cfg = defaultConfig()
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected unknown log level to fail validation")
	}
}

func TestEnvTransformIgnoresUnknownKeys(t *testing.T) {
	if got := envTransformFunc("HOME"); got != "" {
		t.Errorf("expected HOME to be ignored, got %q", got)
	}
	if got := envTransformFunc("DATABASE_URL"); got != "database.url" {
		t.Errorf("expected database.url, got %q", got)
	}
}
