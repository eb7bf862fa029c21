package scrollsync

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Config configures an Engine and the window that hosts it.
type Config struct {
	Path PathConfig `yaml:"path"`

	// QuietPeriod is the resize debounce window.
	QuietPeriod time.Duration `yaml:"quiet_period"`

	// ScrubSmooth is the lag, in seconds, of the path reveal behind the
	// scroll position. 0 follows the scroll exactly.
	ScrubSmooth float64 `yaml:"scrub_smooth"`

	// PathColor is the stroke color of the connector curve, "#rrggbb" or
	// "#rrggbbaa".
	PathColor string `yaml:"path_color"`

	Debug bool `yaml:"debug"`

	Window WindowConfig `yaml:"window"`
}

// WindowConfig sizes the Ebitengine window used by Run.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	ShowFPS    bool   `yaml:"show_fps"`
	Background string `yaml:"background"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		Path:        DefaultPathConfig(),
		QuietPeriod: DefaultQuietPeriod,
		ScrubSmooth: 1,
		PathColor:   "#00d2ff",
		Window: WindowConfig{
			Title:      "scrollsync",
			Width:      1280,
			Height:     720,
			Background: "#0b0c10",
		},
	}
}

// LoadConfig parses YAML on top of DefaultConfig. Keys missing from data
// keep their defaults; explicit zero values that make no sense are replaced
// with defaults too.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("scrollsync: parse config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("scrollsync: read config: %w", err)
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	def := DefaultConfig()
	if c.Path.Breakpoint <= 0 {
		c.Path.Breakpoint = def.Path.Breakpoint
	}
	if c.Path.LateralBudget < 0 || c.Path.LateralFraction < 0 {
		return fmt.Errorf("scrollsync: config: negative lateral offset (budget %g, fraction %g)",
			c.Path.LateralBudget, c.Path.LateralFraction)
	}
	if c.QuietPeriod <= 0 {
		c.QuietPeriod = def.QuietPeriod
	}
	if c.ScrubSmooth < 0 {
		return fmt.Errorf("scrollsync: config: negative scrub_smooth %g", c.ScrubSmooth)
	}
	if c.PathColor == "" {
		c.PathColor = def.PathColor
	}
	if _, err := ParseHexColor(c.PathColor); err != nil {
		return fmt.Errorf("scrollsync: config: path_color: %w", err)
	}
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Window.Title == "" {
		c.Window.Title = def.Window.Title
	}
	if c.Window.Background == "" {
		c.Window.Background = def.Window.Background
	}
	if _, err := ParseHexColor(c.Window.Background); err != nil {
		return fmt.Errorf("scrollsync: config: window.background: %w", err)
	}
	return nil
}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (Color, error) {
	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: alpha: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// MustHexColor is ParseHexColor for constants; it panics on bad input.
func MustHexColor(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func (c Color) Hex() string {
	h := colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hex()
	if c.A >= 1 {
		return h
	}
	return fmt.Sprintf("%s%02x", h, uint8(clamp01(c.A)*255+0.5))
}
