package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DBPath != ":memory:" {
		t.Errorf("DBPath = %q, want :memory:", cfg.DBPath)
	}
	if cfg.CatalogPath != "" {
		t.Errorf("CatalogPath = %q, want empty", cfg.CatalogPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.ReadTimeout != 10*time.Second {
		t.Errorf("ReadTimeout = %v, want 10s", cfg.ReadTimeout)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("WARIKAN_PORT", "9090")
	t.Setenv("WARIKAN_DB_PATH", "/tmp/orders.db")
	t.Setenv("WARIKAN_LOG_LEVEL", "debug")
	t.Setenv("WARIKAN_WRITE_TIMEOUT", "1m")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Port != 9090 || cfg.DBPath != "/tmp/orders.db" || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.WriteTimeout != time.Minute {
		t.Errorf("WriteTimeout = %v, want 1m", cfg.WriteTimeout)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "not a number", value: "eighty", want: "parse env:"},
		{name: "out of range", value: "70000", want: "invalid port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("WARIKAN_PORT", tt.value)
			_, err := Parse()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("WARIKAN_CATALOG_PATH=menu.json\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Chdir(dir)
	// godotenv sets the variable process-wide; register it so it is cleared afterwards.
	t.Setenv("WARIKAN_CATALOG_PATH", "")
	os.Unsetenv("WARIKAN_CATALOG_PATH")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CatalogPath != "menu.json" {
		t.Errorf("CatalogPath = %q, want menu.json", cfg.CatalogPath)
	}
}

func TestLoadWithoutDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load(); err != nil {
		t.Errorf("Load() error = %v", err)
	}
}
