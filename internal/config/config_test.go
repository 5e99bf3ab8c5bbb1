package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_NAME", "CANDIDATE_STATUS_STRICT", "CACHE_TTL", "GEMINI_API_KEY", "QDRANT_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Server.Port != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.Server.Port)
	}
	if cfg.Database.DBName != "enterprise_ats" {
		t.Fatalf("expected default db name, got %q", cfg.Database.DBName)
	}
	if cfg.Candidate.StrictStatus {
		t.Fatalf("expected lenient status mode by default")
	}
	if cfg.Redis.TTL != 60*time.Second {
		t.Fatalf("expected 60s cache ttl, got %s", cfg.Redis.TTL)
	}
	if cfg.SemanticSearchEnabled() {
		t.Fatalf("semantic search must be disabled without credentials")
	}
	if cfg.Database.MaxOpenConns != 25 || cfg.Database.MaxIdleConns != 10 || cfg.Database.ConnMaxLifetime != 5*time.Minute {
		t.Fatalf("unexpected pool defaults %+v", cfg.Database)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CANDIDATE_STATUS_STRICT", "true")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("WORKER_CONCURRENCY", "not-a-number")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("QDRANT_URL", "http://localhost:6333")
	t.Setenv("DB_MAX_OPEN_CONNS", "40")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90s")

	cfg := Load()

	if cfg.Database.MaxOpenConns != 40 || cfg.Database.ConnMaxLifetime != 90*time.Second {
		t.Fatalf("expected pool overrides, got %+v", cfg.Database)
	}

	if cfg.Server.Port != "8080" {
		t.Fatalf("expected port override, got %q", cfg.Server.Port)
	}
	if !cfg.Candidate.StrictStatus {
		t.Fatalf("expected strict status mode")
	}
	if cfg.Redis.TTL != 5*time.Minute {
		t.Fatalf("expected 5m ttl, got %s", cfg.Redis.TTL)
	}
	if cfg.Worker.Concurrency != 2 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.Worker.Concurrency)
	}
	if !cfg.SemanticSearchEnabled() {
		t.Fatalf("expected semantic search enabled")
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5433", User: "u", Password: "p", DBName: "ats",
	}}

	want := "host=db port=5433 user=u password=p dbname=ats sslmode=disable"
	if got := cfg.GetDatabaseDSN(); got != want {
		t.Fatalf("unexpected dsn: %s", got)
	}
}
