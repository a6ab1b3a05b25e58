package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")
	t.Setenv("CORS_DEV_BYPASS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Address() != ":5000" {
		t.Fatalf("expected :5000, got %q", cfg.Server.Address())
	}
	if cfg.Server.BodyLimit != DefaultBodyLimit {
		t.Fatalf("expected body limit %d, got %d", DefaultBodyLimit, cfg.Server.BodyLimit)
	}
	if cfg.DB.Driver != "mysql" || cfg.DB.Name != "codevimarsh" || cfg.DB.MaxOpenConns != 10 {
		t.Fatalf("unexpected db defaults: %+v", cfg.DB)
	}
	if cfg.DB.AcquireTimeout != 0 {
		t.Fatalf("expected unbounded acquire by default, got %s", cfg.DB.AcquireTimeout)
	}
	if cfg.CORS.DevBypass {
		t.Fatalf("dev bypass must be off outside development")
	}
	if len(cfg.CORS.TrustedSubstrings) != 2 {
		t.Fatalf("expected default trusted substrings, got %v", cfg.CORS.TrustedSubstrings)
	}
	if len(cfg.Upstreams) != 0 {
		t.Fatalf("expected no upstreams, got %v", cfg.Upstreams)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_ACQUIRE_TIMEOUT", "3s")
	t.Setenv("FRONTEND_URL", "https://club.example")
	t.Setenv("VERCEL_URL", "club-git-main.vercel.app")
	t.Setenv("UPSTREAM_EVENTS_URL", "http://events:8080")
	t.Setenv("CORS_TRUSTED_SUBSTRINGS", "preview.example,staging.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DB.Driver != "postgres" || cfg.DB.Host != "db.internal" || cfg.DB.Port != 6543 {
		t.Fatalf("unexpected db config: %+v", cfg.DB)
	}
	if cfg.DB.AcquireTimeout != 3*time.Second {
		t.Fatalf("expected 3s acquire timeout, got %s", cfg.DB.AcquireTimeout)
	}
	if cfg.CORS.FrontendURL != "https://club.example" || cfg.CORS.DeploymentURL != "club-git-main.vercel.app" {
		t.Fatalf("unexpected cors config: %+v", cfg.CORS)
	}
	if got := cfg.Upstreams["events"]; got != "http://events:8080" {
		t.Fatalf("expected events upstream, got %q", got)
	}
	if len(cfg.CORS.TrustedSubstrings) != 2 || cfg.CORS.TrustedSubstrings[0] != "preview.example" {
		t.Fatalf("unexpected trusted substrings: %v", cfg.CORS.TrustedSubstrings)
	}
}

func TestLoad_DevBypassFollowsNodeEnvUnlessExplicit(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.CORS.DevBypass {
		t.Fatalf("expected dev bypass derived from NODE_ENV=development")
	}

	t.Setenv("CORS_DEV_BYPASS", "false")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CORS.DevBypass {
		t.Fatalf("explicit CORS_DEV_BYPASS=false must win over NODE_ENV")
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestValidate_RateLimitNeedsPositiveValues(t *testing.T) {
	cfg := Config{
		DB:        DBConfig{Driver: "sqlite", MaxOpenConns: 10},
		Server:    ServerConfig{BodyLimit: DefaultBodyLimit},
		RateLimit: RateLimitConfig{Enabled: true, RPS: 0, Burst: 1},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}
