package config

import (
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Run("memory driver needs no database block", func(t *testing.T) {
		t.Setenv("RESSOURCERIE_PRIMARY__ENV", "local")
		t.Setenv("RESSOURCERIE_STORAGE__DRIVER", "memory")
		t.Setenv("RESSOURCERIE_SERVER__PORT", "9090")
		t.Setenv("RESSOURCERIE_SERVER__CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Server.Port != "9090" {
			t.Fatalf("expected port 9090, got %s", cfg.Server.Port)
		}
		if len(cfg.Server.CORSAllowedOrigins) != 2 || cfg.Server.CORSAllowedOrigins[1] != "http://b.test" {
			t.Fatalf("unexpected cors origins %v", cfg.Server.CORSAllowedOrigins)
		}
		if cfg.Observability.ServiceName != ServiceName {
			t.Fatalf("expected service name %s, got %s", ServiceName, cfg.Observability.ServiceName)
		}
		if cfg.Observability.Environment != "local" {
			t.Fatalf("expected environment local, got %s", cfg.Observability.Environment)
		}
	})

	t.Run("postgres driver requires database credentials", func(t *testing.T) {
		t.Setenv("RESSOURCERIE_STORAGE__DRIVER", "postgres")
		t.Setenv("RESSOURCERIE_DATABASE__HOST", "")

		if _, err := LoadConfig(); err == nil {
			t.Fatalf("expected validation error for missing database config")
		}
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		t.Setenv("RESSOURCERIE_STORAGE__DRIVER", "sqlite")

		if _, err := LoadConfig(); err == nil {
			t.Fatalf("expected validation error for unknown driver")
		}
	})

	t.Run("partial observability block keeps defaults", func(t *testing.T) {
		t.Setenv("RESSOURCERIE_STORAGE__DRIVER", "memory")
		t.Setenv("RESSOURCERIE_OBSERVABILITY__LOGGING__LEVEL", "warn")
		t.Setenv("RESSOURCERIE_OBSERVABILITY__HEALTH_CHECKS__INTERVAL", "10s")

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Observability.Logging.Level != "warn" {
			t.Fatalf("expected level warn, got %s", cfg.Observability.Logging.Level)
		}
		if cfg.Observability.Logging.Format != "json" {
			t.Fatalf("expected default format json, got %s", cfg.Observability.Logging.Format)
		}
		if cfg.Observability.HealthChecks.Interval != 10*time.Second {
			t.Fatalf("expected interval 10s, got %s", cfg.Observability.HealthChecks.Interval)
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Setenv("RESSOURCERIE_STORAGE__DRIVER", "memory")
		t.Setenv("RESSOURCERIE_OBSERVABILITY__LOGGING__LEVEL", "loud")

		if _, err := LoadConfig(); err == nil {
			t.Fatalf("expected error for invalid log level")
		}
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", Name: "exchange", SSLMode: "disable"}

	want := "postgres://app:p%40ss%3Aword@db:5432/exchange?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestObservabilityConfig_CheckEnabled(t *testing.T) {
	c := DefaultObservabilityConfig()
	if !c.CheckEnabled("redis") {
		t.Fatalf("expected redis check enabled by default")
	}
	c.HealthChecks.Enabled = false
	if c.CheckEnabled("database") {
		t.Fatalf("expected checks disabled")
	}
}
