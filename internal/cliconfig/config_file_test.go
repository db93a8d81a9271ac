package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfig(t, `
file = "/tmp/quotes.pcl"
follow_debounce = "250ms"
max_dump = 32
verbose = true
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fc.File != "/tmp/quotes.pcl" || fc.FollowDebounce != "250ms" || fc.MaxDump != 32 {
		t.Fatalf("unexpected config: %+v", fc)
	}
	if fc.Verbose == nil || !*fc.Verbose {
		t.Fatalf("verbose not parsed: %+v", fc.Verbose)
	}
}

func TestLoadFileConfigRejectsGarbage(t *testing.T) {
	path := writeConfig(t, "max_dump = [not toml")
	if _, err := LoadFileConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyFileConfigRespectsChangedFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.File = "/from/flag.pcl"
	cfg.MaxDump = 16

	fc := FileConfig{File: "/from/file.pcl", FollowDebounce: "1s", MaxDump: 128}
	changed := map[string]bool{"file": true}

	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.File != "/from/flag.pcl" {
		t.Fatalf("explicit flag overridden: %s", cfg.File)
	}
	if cfg.FollowDebounce != time.Second {
		t.Fatalf("debounce not applied: %v", cfg.FollowDebounce)
	}
	if cfg.MaxDump != 128 {
		t.Fatalf("max dump not applied: %d", cfg.MaxDump)
	}
}

func TestApplyFileConfigBadDuration(t *testing.T) {
	cfg := DefaultConfig()
	fc := FileConfig{FollowDebounce: "soon"}
	if err := ApplyFileConfig(&cfg, fc, nil); err == nil {
		t.Fatal("expected duration parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PARCEL_FILE", "/from/env.pcl")
	t.Setenv("PARCEL_FOLLOW_DEBOUNCE", "2s")
	t.Setenv("PARCEL_VERBOSE", "1")

	cfg := DefaultConfig()
	cfg.File = "" // DefaultConfig already read the env; reset to prove ApplyEnv does too
	if err := ApplyEnv(&cfg, nil); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.File != "/from/env.pcl" || cfg.FollowDebounce != 2*time.Second || !cfg.Verbose {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cfg.FollowDebounce = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero debounce")
	}
	cfg = DefaultConfig()
	cfg.MaxDump = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative max dump")
	}
}
