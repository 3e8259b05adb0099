package config

import (
	"testing"
	"time"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Storage.Driver != StorageDriverFile {
		t.Fatalf("expected file storage by default, got %q", cfg.Storage.Driver)
	}
	if cfg.Events.Mode != EventsModeNone {
		t.Fatalf("expected events mode none by default, got %q", cfg.Events.Mode)
	}
	if cfg.CatalogAPI.Timeout != 5*time.Second {
		t.Fatalf("expected 5s catalog timeout, got %s", cfg.CatalogAPI.Timeout)
	}
	if cfg.NeedsRedis() || cfg.NeedsMongo() || cfg.NeedsRabbitMQ() {
		t.Fatal("default config should not need any external infrastructure")
	}
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("CATALOG_API_URL", "http://catalog:3333")
	t.Setenv("CATALOG_API_TIMEOUT", "750ms")
	t.Setenv("STORAGE_DRIVER", "mongo")
	t.Setenv("EVENTS_MODE", "direct")
	t.Setenv("NOTIFY_LOCALE", "pt-BR")
	t.Setenv("RATE_LIMIT_ENABLED", "true")

	cfg := NewConfig()

	if cfg.CatalogAPI.URL != "http://catalog:3333" {
		t.Fatalf("unexpected catalog url %q", cfg.CatalogAPI.URL)
	}
	if cfg.CatalogAPI.Timeout != 750*time.Millisecond {
		t.Fatalf("expected 750ms, got %s", cfg.CatalogAPI.Timeout)
	}
	if cfg.Notify.Locale != "pt-BR" {
		t.Fatalf("unexpected locale %q", cfg.Notify.Locale)
	}
	if !cfg.NeedsMongo() || !cfg.NeedsRabbitMQ() || !cfg.NeedsRedis() {
		t.Fatal("expected mongo, rabbitmq and redis to be required")
	}
}

func TestGetDurationEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "valid", value: "2s", want: 2 * time.Second},
		{name: "invalid falls back", value: "soon", want: time.Minute},
		{name: "negative falls back", value: "-1s", want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := getDurationEnv("TEST_DURATION", time.Minute); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
