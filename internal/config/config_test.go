package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_ConfigYAML(t *testing.T) {
	path := filepath.Join("..", "..", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.Host == "" {
		t.Fatalf("expected database.host to be set")
	}
	if cfg.RabbitMQ.Port == 0 {
		t.Fatalf("expected rabbitmq.port to be set")
	}
	if cfg.Polling.IntervalSeconds == 0 {
		t.Fatalf("expected polling.interval_seconds to be set")
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := filepath.Join("testdata", "minimal.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := cfg.Polling.IntervalSeconds; got != 3 {
		t.Errorf("default interval_seconds = %d, want 3", got)
	}
	if got := cfg.Polling.StatusWindow; got != 5 {
		t.Errorf("default status_window = %d, want 5", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join("testdata", "does-not-exist.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
