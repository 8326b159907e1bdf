package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Collection.IntervalSeconds != 60 {
		t.Fatalf("unexpected IntervalSeconds: %d", cfg.Collection.IntervalSeconds)
	}
	if cfg.Collection.TimestampMode != "local-z" {
		t.Fatalf("unexpected TimestampMode: %q", cfg.Collection.TimestampMode)
	}
	if len(cfg.Devices.Batteries) != 0 || len(cfg.Devices.Backlights) != 0 {
		t.Fatalf("unexpected explicit devices: %v / %v", cfg.Devices.Batteries, cfg.Devices.Backlights)
	}
	if cfg.Log.Path != "" {
		t.Fatalf("unexpected Log.Path: %q", cfg.Log.Path)
	}
}

func TestLoad_OverridesAndKeepsDefaults(t *testing.T) {
	path := writeTempConfig(t, `
[collection]
interval_seconds = 30

[devices]
batteries = ["/sys/class/power_supply/BAT0"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Collection.IntervalSeconds != 30 {
		t.Fatalf("IntervalSeconds = %d, want 30", cfg.Collection.IntervalSeconds)
	}
	if cfg.Collection.TimestampMode != "local-z" {
		t.Fatalf("TimestampMode = %q, want default local-z", cfg.Collection.TimestampMode)
	}
	if len(cfg.Devices.Batteries) != 1 || cfg.Devices.Batteries[0] != "/sys/class/power_supply/BAT0" {
		t.Fatalf("Batteries = %v, want one explicit path", cfg.Devices.Batteries)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Fatal("Load() error = nil, want missing file error")
	}
	if !os.IsNotExist(err) {
		t.Fatalf("Load() error = %v, want not-exist error", err)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeTempConfig(t, "not = [valid")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil, want TOML parse error")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		contents   string
		wantErrSub string
	}{
		{
			name: "zero interval",
			contents: `
[collection]
interval_seconds = 0
`,
			wantErrSub: "collection.interval_seconds must be between",
		},
		{
			name: "negative interval",
			contents: `
[collection]
interval_seconds = -5
`,
			wantErrSub: "collection.interval_seconds must be between",
		},
		{
			name: "unknown timestamp mode",
			contents: `
[collection]
timestamp_mode = "unix"
`,
			wantErrSub: "collection.timestamp_mode must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.contents)

			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load() error = nil, want error containing %q", tt.wantErrSub)
			}
			if !strings.Contains(err.Error(), tt.wantErrSub) {
				t.Fatalf("Load() error = %q, want contains %q", err.Error(), tt.wantErrSub)
			}
		})
	}
}

func TestLogPath_Explicit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Path = "/tmp/test.log"

	path, err := cfg.LogPath()
	if err != nil {
		t.Fatalf("LogPath() error = %v", err)
	}
	if path != "/tmp/test.log" {
		t.Fatalf("LogPath() = %q, want /tmp/test.log", path)
	}
}

func TestLogPath_DefaultsToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := DefaultConfig().LogPath()
	if err != nil {
		t.Fatalf("LogPath() error = %v", err)
	}
	if path != filepath.Join(home, "batterylogd.log") {
		t.Fatalf("LogPath() = %q, want %q", path, filepath.Join(home, "batterylogd.log"))
	}
}
