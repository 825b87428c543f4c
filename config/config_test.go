package config

import (
	"errors"
	"testing"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	if !errors.Is(err, ErrMissingDatabaseURL) {
		t.Fatalf("Load() error = %v, want ErrMissingDatabaseURL", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/panorama")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.PoolMax != 10 {
		t.Errorf("pool max = %d, want 10", cfg.Database.PoolMax)
	}
	if cfg.JWT.AccessExpireMinutes != 15 {
		t.Errorf("access expire = %d, want 15", cfg.JWT.AccessExpireMinutes)
	}
	if cfg.JWT.RefreshExpireHours != 168 {
		t.Errorf("refresh expire = %d, want 168", cfg.JWT.RefreshExpireHours)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("redis addr = %q", cfg.Redis.Addr)
	}
	if cfg.AWS.DocumentsBucket != "panorama-documentos" {
		t.Errorf("documents bucket = %q", cfg.AWS.DocumentsBucket)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/panorama")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_POOL_MAX", "25")
	t.Setenv("JWT_ACCESS_EXPIRE_MINUTES", "5")
	t.Setenv("DB_POOL_IDLE_TIMEOUT", "garbage")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Database.PoolMax != 25 {
		t.Errorf("pool max = %d, want 25", cfg.Database.PoolMax)
	}
	if cfg.JWT.AccessExpireMinutes != 5 {
		t.Errorf("access expire = %d, want 5", cfg.JWT.AccessExpireMinutes)
	}
	// unparsable ints fall back to the default
	if cfg.Database.PoolIdleTimeoutSec != 300 {
		t.Errorf("idle timeout = %d, want 300", cfg.Database.PoolIdleTimeoutSec)
	}
}
