// Package config loads run settings from embedded YAML defaults, an optional
// user file and command-line flags, in that order.
package config

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all run configuration.
type Config struct {
	Sim     string        `yaml:"sim"`
	Life    LifeConfig    `yaml:"life"`
	Display DisplayConfig `yaml:"display"`
	Run     RunConfig     `yaml:"run"`
	Log     LogConfig     `yaml:"log"`
}

// LifeConfig holds the grid dimensions and seed.
type LifeConfig struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"` // 0 = time-based
}

// DisplayConfig holds rendering settings shared by the GUI and frame export.
type DisplayConfig struct {
	Scale    int    `yaml:"scale"`     // pixels per cell
	TPS      int    `yaml:"tps"`       // generations per second
	OnColor  string `yaml:"on_color"`  // #rrggbb
	OffColor string `yaml:"off_color"` // #rrggbb
}

// RunConfig holds headless run settings.
type RunConfig struct {
	MaxGenerations int    `yaml:"max_generations"` // 0 = unlimited
	StatsWindow    int    `yaml:"stats_window"`    // generations per logged summary
	FrameEvery     int    `yaml:"frame_every"`     // 0 = no PNG frames
	OutputDir      string `yaml:"output_dir"`      // empty = no CSV/PNG output
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Bind attaches the most commonly overridden settings to fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Life.Width, "width", c.Life.Width, "grid width in cells")
	fs.IntVar(&c.Life.Height, "height", c.Life.Height, "grid height in cells")
	fs.Int64Var(&c.Life.Seed, "seed", c.Life.Seed, "seed for simulation reset (0 = time-based)")
	fs.IntVar(&c.Display.Scale, "scale", c.Display.Scale, "pixel scale multiplier")
	fs.IntVar(&c.Display.TPS, "tps", c.Display.TPS, "generations per second")
	fs.IntVar(&c.Run.MaxGenerations, "max-generations", c.Run.MaxGenerations, "stop after N generations (0 = unlimited)")
	fs.IntVar(&c.Run.StatsWindow, "stats-window", c.Run.StatsWindow, "generations per logged summary")
	fs.IntVar(&c.Run.FrameEvery, "frame-every", c.Run.FrameEvery, "write a PNG frame every N generations (0 = never)")
	fs.StringVar(&c.Run.OutputDir, "output-dir", c.Run.OutputDir, "directory for CSV and PNG output")
	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "log level: debug, info, warn, error")
	fs.StringVar(&c.Log.Format, "log-format", c.Log.Format, "log format: text or json")
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Sim == "" {
		errs = append(errs, errors.New("sim must be set"))
	}
	if c.Life.Width <= 0 || c.Life.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid size %dx%d must be positive", c.Life.Width, c.Life.Height))
	}
	if c.Display.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale %d must be positive", c.Display.Scale))
	}
	if c.Display.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps %d must be positive", c.Display.TPS))
	}
	if _, err := ParseColor(c.Display.OnColor); err != nil {
		errs = append(errs, fmt.Errorf("on_color: %w", err))
	}
	if _, err := ParseColor(c.Display.OffColor); err != nil {
		errs = append(errs, fmt.Errorf("off_color: %w", err))
	}
	if c.Run.MaxGenerations < 0 || c.Run.StatsWindow < 0 || c.Run.FrameEvery < 0 {
		errs = append(errs, errors.New("run counters must not be negative"))
	}
	if c.Run.FrameEvery > 0 && c.Run.OutputDir == "" {
		errs = append(errs, errors.New("frame_every needs output_dir"))
	}
	if _, err := c.Log.level(); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// ResolveSeed replaces a zero seed with a time-based one and returns it.
func (c *Config) ResolveSeed() int64 {
	if c.Life.Seed == 0 {
		c.Life.Seed = time.Now().UnixNano()
	}
	return c.Life.Seed
}

// SimOptions converts the life settings into the registry's option map.
func (c *Config) SimOptions() map[string]string {
	return map[string]string{
		"w":    strconv.Itoa(c.Life.Width),
		"h":    strconv.Itoa(c.Life.Height),
		"seed": strconv.FormatInt(c.Life.Seed, 10),
	}
}

// Colors returns the parsed alive and dead colours. Call Validate first.
func (c *Config) Colors() (on, off color.RGBA) {
	on, _ = ParseColor(c.Display.OnColor)
	off, _ = ParseColor(c.Display.OffColor)
	return on, off
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ParseColor parses an opaque #rrggbb colour.
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("colour %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func (l LogConfig) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", l.Level)
	}
	return lvl, nil
}

// NewLogger builds a slog logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := l.level()
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Parse registers -config and the Bind flags on fs, parses args, and returns
// the defaults overlaid by the config file and then by explicit flags.
// Callers register their own extra flags on fs first.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	var path string
	cfg := Default()
	fs.StringVar(&path, "config", "", "path to a YAML config file (empty = defaults)")
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		*cfg = *loaded
		// Flags win over the file.
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
