package app

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DBPath == "" {
		t.Fatalf("expected a default database path")
	}
	if cfg.ServiceName != "docgraph-backend" {
		t.Fatalf("unexpected service name %q", cfg.ServiceName)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("KUZU_DB_PATH", "/tmp/test.kuzu")
	t.Setenv("LOG_MODE", "production")

	cfg := LoadConfig()
	if cfg.Port != "9999" || cfg.DBPath != "/tmp/test.kuzu" || cfg.LogMode != "production" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}
