package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.App.Name != "labtracker" {
		t.Fatalf("unexpected default app name: %q", cfg.App.Name)
	}
	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected default addr: %q", cfg.App.Addr())
	}
	if cfg.Auth.JWTAlgorithm != "HS256" {
		t.Fatalf("unexpected default algorithm: %q", cfg.Auth.JWTAlgorithm)
	}
	if cfg.Auth.AccessTokenTTL() != time.Hour {
		t.Fatalf("unexpected default token ttl: %v", cfg.Auth.AccessTokenTTL())
	}
	if !cfg.Postgres.RunMigrations {
		t.Fatalf("migrations should default to enabled")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.App.Addr() != "127.0.0.1:9090" {
		t.Fatalf("unexpected addr: %q", cfg.App.Addr())
	}
	if cfg.Auth.AccessTokenTTL() != 15*time.Minute {
		t.Fatalf("unexpected token ttl: %v", cfg.Auth.AccessTokenTTL())
	}
	if cfg.App.RequestTimeout() != 5*time.Second {
		t.Fatalf("unexpected request timeout: %v", cfg.App.RequestTimeout())
	}
	if cfg.Postgres.RunMigrations {
		t.Fatalf("migrations override ignored")
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "soon")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "perhaps")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Auth.AccessTokenTTLMinutes != 60 {
		t.Fatalf("expected fallback ttl, got %d", cfg.Auth.AccessTokenTTLMinutes)
	}
	if !cfg.Postgres.RunMigrations {
		t.Fatalf("expected fallback migrations flag")
	}
}

func TestAccessTokenTTL_NonPositive(t *testing.T) {
	a := AuthConfig{AccessTokenTTLMinutes: 0}
	if a.AccessTokenTTL() != time.Hour {
		t.Fatalf("zero ttl must clamp to an hour, got %v", a.AccessTokenTTL())
	}
	a.AccessTokenTTLMinutes = -5
	if a.AccessTokenTTL() != time.Hour {
		t.Fatalf("negative ttl must clamp to an hour, got %v", a.AccessTokenTTL())
	}
}
