package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, "ENV", "development")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Storage != StorageMemory {
		t.Errorf("expected default storage %q, got %q", StorageMemory, cfg.Storage)
	}
	if cfg.TaxRate != 0.10 {
		t.Errorf("expected default tax rate 0.10, got %v", cfg.TaxRate)
	}
	if !cfg.SeedDemoData {
		t.Error("expected demo data seeding to default on")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	setEnv(t, "PORT", "9090")
	setEnv(t, "STORAGE", "postgres")
	setEnv(t, "DATABASE_URL", "postgres://localhost/hms")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.Storage != StoragePostgres {
		t.Errorf("expected storage postgres, got %s", cfg.Storage)
	}
}

func TestValidate_UnknownStorage(t *testing.T) {
	cfg := &Config{Env: "development", Storage: "redis", TaxRate: 0.1}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown storage backend")
	}
}

func TestValidate_PostgresNeedsURL(t *testing.T) {
	cfg := &Config{Env: "development", Storage: StoragePostgres, TaxRate: 0.1}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing DATABASE_URL")
	}
}

func TestValidate_ProductionNeedsSigningKey(t *testing.T) {
	cfg := &Config{Env: "production", Storage: StorageMemory, TaxRate: 0.1}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing AUTH_SIGNING_KEY in production")
	}
	cfg.AuthSigningKey = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_TaxRateRange(t *testing.T) {
	cfg := &Config{Env: "development", Storage: StorageMemory, TaxRate: 1.5}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for tax rate out of range")
	}
}
