package config

import (
	"bytes"
	"encoding/json"
	"flag"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Sim != "life" || cfg.Life.Width != 64 || cfg.Life.Height != 64 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := "life:\n  width: 100\nrun:\n  max_generations: 250\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Life.Width != 100 || cfg.Life.Height != 64 {
		t.Fatalf("size = %dx%d, want 100x64", cfg.Life.Width, cfg.Life.Height)
	}
	if cfg.Run.MaxGenerations != 250 || cfg.Run.StatsWindow != 100 {
		t.Fatalf("run = %+v", cfg.Run)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestBindOverrides(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-width", "9", "-seed", "5", "-log-format", "json"}); err != nil {
		t.Fatal(err)
	}
	opts := cfg.SimOptions()
	if opts["w"] != "9" || opts["h"] != "64" || opts["seed"] != "5" {
		t.Fatalf("SimOptions = %v", opts)
	}
	if cfg.Log.Format != "json" {
		t.Fatalf("format = %q", cfg.Log.Format)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Life.Width = 0 }, "grid size"},
		{"negative scale", func(c *Config) { c.Display.Scale = -1 }, "scale"},
		{"bad colour", func(c *Config) { c.Display.OnColor = "white" }, "on_color"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
		{"frames without output", func(c *Config) { c.Run.FrameEvery = 10 }, "frame_every needs output_dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	got, err := ParseColor("#ff8001")
	if err != nil {
		t.Fatal(err)
	}
	if got != (color.RGBA{R: 0xff, G: 0x80, B: 0x01, A: 0xff}) {
		t.Fatalf("ParseColor = %+v", got)
	}
	for _, bad := range []string{"ff8001", "#ff80", "#gg0000"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) succeeded", bad)
		}
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Life.Seed = 1234
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *back != *cfg {
		t.Fatalf("round trip = %+v, want %+v", back, cfg)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "generation", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["msg"] != "shown" || rec["generation"] != float64(3) {
		t.Fatalf("record = %v", rec)
	}
}

func TestParseFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("life:\n  width: 80\n  height: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Parse(fs, []string{"-config", path, "-height", "12"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Life.Width != 80 || cfg.Life.Height != 12 {
		t.Fatalf("size = %dx%d, want 80x12", cfg.Life.Width, cfg.Life.Height)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if _, err := Parse(fs, []string{"-width", "0"}); err == nil {
		t.Fatal("expected validation error")
	}
}
