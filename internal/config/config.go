// Package config loads the strip and cycle settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-dotstrip/internal/cycle"
	"github.com/coreman2200/funtimes-dotstrip/internal/strip"
)

// Range mirrors strip.Range for YAML.
type Range struct {
	First int `yaml:"first"`
	Last  int `yaml:"last"`
}

// SPI selects the bus device.
type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0; empty picks the first port
	SpeedHz int    `yaml:"speed_hz"` // e.g. 8000000
}

type Config struct {
	NumLED         int     `yaml:"num_led"`
	Brightness     int     `yaml:"brightness"`      // global ceiling, 0..100
	Order          string  `yaml:"order"`           // rgb | rbg | grb | gbr | brg | bgr
	BrightnessMode string  `yaml:"brightness_mode"` // color | header
	LedOrder       []Range `yaml:"led_order,omitempty"`

	TickMs        int     `yaml:"tick_ms"`
	StepsPerCycle int     `yaml:"steps_per_cycle"`
	Cycles        int     `yaml:"cycles"` // <= 0 runs forever
	DurationS     float64 `yaml:"duration_s"`

	Transport string `yaml:"transport"` // spi | term
	Pattern   string `yaml:"pattern"`
	SPI       SPI    `yaml:"spi,omitempty"`
}

// Default is the working out-of-the-box setup: an 80-LED strip
// emulated on the terminal, running the rainbow.
func Default() Config {
	return Config{
		NumLED:         80,
		Brightness:     100,
		Order:          "rgb",
		BrightnessMode: "color",
		TickMs:         30,
		StepsPerCycle:  255,
		Cycles:         cycle.Forever,
		Transport:      "term",
		Pattern:        "rainbow",
	}
}

// Load reads path and overlays it onto the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes c to path.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Mode resolves the brightness strategy name.
func (c *Config) Mode() (strip.BrightnessMode, error) {
	switch c.BrightnessMode {
	case "", "color":
		return strip.ScaleViaColor, nil
	case "header":
		return strip.ScaleViaHeader, nil
	default:
		return 0, fmt.Errorf("%w: unknown brightness mode %q", strip.ErrConfiguration, c.BrightnessMode)
	}
}

// Ranges converts the YAML led order to strip ranges; nil when the
// physical order is the logical order.
func (c *Config) Ranges() []strip.Range {
	if len(c.LedOrder) == 0 {
		return nil
	}
	out := make([]strip.Range, len(c.LedOrder))
	for i, r := range c.LedOrder {
		out[i] = strip.Range{First: r.First, Last: r.Last}
	}
	return out
}

// Options converts the cycle settings.
func (c *Config) Options() cycle.Options {
	return cycle.Options{
		StepsPerCycle: c.StepsPerCycle,
		Cycles:        c.Cycles,
		Tick:          time.Duration(c.TickMs) * time.Millisecond,
		Duration:      time.Duration(c.DurationS * float64(time.Second)),
	}
}
