package config_test

import (
	"testing"

	"github.com/carbonledger/carbonledger/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "4000" {
		t.Errorf("Expected default port 4000, got %q", cfg.Port)
	}
	if cfg.DBType != "sqlite" {
		t.Errorf("Expected default sqlite, got %q", cfg.DBType)
	}
	if cfg.TokenExpireMinutes != 1440 {
		t.Errorf("Expected default expiry 1440, got %d", cfg.TokenExpireMinutes)
	}
	if !cfg.SeedOnStart {
		t.Error("Expected seeding on by default")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := config.Load(); err == nil {
		t.Error("Expected error without JWT_SECRET")
	}
}

func TestLoadRequiresDBUserForServerDatabases(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_USER", "")

	if _, err := config.Load(); err == nil {
		t.Error("Expected error without DB_USER for postgres")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "8080")
	t.Setenv("SEED_ON_START", "false")
	t.Setenv("TOKEN_EXPIRE_MINUTES", "30")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port 8080, got %q", cfg.Port)
	}
	if cfg.SeedOnStart {
		t.Error("Expected seeding disabled")
	}
	if cfg.TokenExpireMinutes != 30 {
		t.Errorf("Expected expiry 30, got %d", cfg.TokenExpireMinutes)
	}
}
