package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-dotstrip/internal/strip"
)

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dotstrip.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
num_led: 144
transport: spi
brightness_mode: header
led_order:
  - {first: 72, last: 143}
  - {first: 71, last: 0}
spi:
  dev: /dev/spidev0.0
  speed_hz: 4000000
`), 0644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 144, c.NumLED)
	assert.Equal(t, "spi", c.Transport)
	assert.Equal(t, "/dev/spidev0.0", c.SPI.Dev)
	assert.Equal(t, 4000000, c.SPI.SpeedHz)
	assert.Equal(t, []strip.Range{{First: 72, Last: 143}, {First: 71, Last: 0}}, c.Ranges())

	// Untouched keys keep their defaults.
	assert.Equal(t, "rgb", c.Order)
	assert.Equal(t, 255, c.StepsPerCycle)
	assert.Equal(t, 100, c.Brightness)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dotstrip.yaml")
	c := Default()
	c.NumLED = 60
	c.Pattern = "larson"
	require.NoError(t, Save(path, &c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, *got)
}

func TestMode(t *testing.T) {
	c := Default()

	m, err := c.Mode()
	require.NoError(t, err)
	assert.Equal(t, strip.ScaleViaColor, m)

	c.BrightnessMode = ""
	m, err = c.Mode()
	require.NoError(t, err)
	assert.Equal(t, strip.ScaleViaColor, m)

	c.BrightnessMode = "header"
	m, err = c.Mode()
	require.NoError(t, err)
	assert.Equal(t, strip.ScaleViaHeader, m)

	c.BrightnessMode = "bogus"
	_, err = c.Mode()
	assert.ErrorIs(t, err, strip.ErrConfiguration)
}

func TestOptions(t *testing.T) {
	c := Default()
	c.TickMs = 40
	c.StepsPerCycle = 60
	c.Cycles = 5
	c.DurationS = 1.5

	opts := c.Options()
	assert.Equal(t, 40*time.Millisecond, opts.Tick)
	assert.Equal(t, 60, opts.StepsPerCycle)
	assert.Equal(t, 5, opts.Cycles)
	assert.Equal(t, 1500*time.Millisecond, opts.Duration)
}

func TestRangesEmpty(t *testing.T) {
	c := Default()
	assert.Nil(t, c.Ranges())
}
