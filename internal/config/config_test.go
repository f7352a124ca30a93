package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "queueless")
	t.Setenv("DB_USER", "queueless")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DBPort != "5432" {
		t.Errorf("DBPort = %q, want 5432", cfg.DBPort)
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("DBSSLMode = %q, want disable", cfg.DBSSLMode)
	}
	if cfg.ReferenceCacheTTL != 300*time.Second {
		t.Errorf("ReferenceCacheTTL = %v, want 5m", cfg.ReferenceCacheTTL)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
}

func TestLoadMissingDatabase(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_USER", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a configuration without database settings")
	}
}

func TestLoadDurationOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REFERENCE_CACHE_TTL_SECONDS", "60")
	t.Setenv("SESSION_TTL_SECONDS", "3600")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ReferenceCacheTTL != time.Minute {
		t.Errorf("ReferenceCacheTTL = %v, want 1m", cfg.ReferenceCacheTTL)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.SessionTTL)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REFERENCE_CACHE_TTL_SECONDS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ReferenceCacheTTL != 300*time.Second {
		t.Errorf("ReferenceCacheTTL = %v, want fallback 5m", cfg.ReferenceCacheTTL)
	}
}
