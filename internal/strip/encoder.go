package strip

import (
	"errors"
	"fmt"
	"math"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Sentinel errors for the package's failure modes. All of them are
// raised before any bus traffic happens: configuration faults at
// construction, input faults at the call site.
var (
	ErrConfiguration = errors.New("invalid configuration")
	ErrOutOfRange    = errors.New("led index out of range")
	ErrBadColor      = errors.New("malformed color value")
)

const (
	// ledStart marks bits 7..5 of the command header. The LED latches a
	// 4-byte frame only when these three bits are set.
	ledStart = 0b11100000
	// maxHeader is the 5-bit hardware brightness ceiling.
	maxHeader = 0b00011111

	// encoderCacheSize bounds the pixel->command memoization. Pattern
	// generators re-emit identical pixels constantly (solid fills,
	// blanks), so a small LRU covers nearly every frame.
	encoderCacheSize = 1024
)

// BrightnessMode selects how a pixel's brightness percentage is
// applied to the 4-byte command.
type BrightnessMode int

const (
	// ScaleViaColor scales the RGB payload and pins the 5-bit header at
	// its maximum. The LED then dims via color resolution instead of
	// the slow header PWM (19.2kHz vs 582Hz), which avoids visible
	// flicker. This is the default.
	ScaleViaColor BrightnessMode = iota
	// ScaleViaHeader keeps the RGB payload untouched and encodes
	// brightness into the 5-bit header field.
	ScaleViaHeader
)

func (m BrightnessMode) String() string {
	switch m {
	case ScaleViaColor:
		return "color"
	case ScaleViaHeader:
		return "header"
	default:
		return fmt.Sprintf("BrightnessMode(%d)", int(m))
	}
}

// wireOrders maps an order name to the byte position (1..3) of the
// red, green and blue channels within a 4-byte command. Positions are
// 1-indexed because byte 0 is the brightness header.
var wireOrders = map[string][3]int{
	"rgb": {3, 2, 1},
	"rbg": {3, 1, 2},
	"grb": {2, 3, 1},
	"gbr": {2, 1, 3},
	"brg": {1, 3, 2},
	"bgr": {1, 2, 3},
}

// ParseOrder resolves one of the six wire-order names ("rgb", "grb",
// ...) to channel byte positions.
func ParseOrder(name string) ([3]int, error) {
	order, ok := wireOrders[strings.ToLower(name)]
	if !ok {
		return [3]int{}, fmt.Errorf("%w: unknown color order %q", ErrConfiguration, name)
	}
	return order, nil
}

// Encoder converts a Pixel into the 4-byte command the LED chain
// expects. The wire order, global brightness ceiling and brightness
// mode are fixed at construction, which makes Encode a pure function
// of the pixel and therefore safe to memoize.
type Encoder struct {
	order         [3]int // byte positions of R, G, B
	maxBrightness int    // global ceiling, 0..100
	mode          BrightnessMode
	cache         *lru.Cache[Pixel, [4]byte]
}

// NewEncoder builds an encoder. order holds the command byte positions
// of the red, green and blue channels and must be a permutation of
// {1,2,3}; use ParseOrder for the usual names. maxBrightness is
// clamped to 0..100.
func NewEncoder(order [3]int, maxBrightness int, mode BrightnessMode) (*Encoder, error) {
	var seen [4]bool
	for _, pos := range order {
		if pos < 1 || pos > 3 || seen[pos] {
			return nil, fmt.Errorf("%w: color order %v is not a permutation of byte positions 1..3", ErrConfiguration, order)
		}
		seen[pos] = true
	}
	if mode != ScaleViaColor && mode != ScaleViaHeader {
		return nil, fmt.Errorf("%w: unknown brightness mode %d", ErrConfiguration, int(mode))
	}
	cache, err := lru.New[Pixel, [4]byte](encoderCacheSize)
	if err != nil {
		return nil, err
	}
	return &Encoder{
		order:         order,
		maxBrightness: clamp(maxBrightness, 0, 100),
		mode:          mode,
		cache:         cache,
	}, nil
}

// Encode returns the 4-byte command for p. Out-of-range color or
// brightness values never fail; they saturate into hardware range.
func (e *Encoder) Encode(p Pixel) [4]byte {
	if cmd, ok := e.cache.Get(p); ok {
		return cmd
	}

	r, g, b := p.R, p.G, p.B
	var header int
	switch e.mode {
	case ScaleViaHeader:
		// The two modes deliberately round differently (ceil here,
		// round-to-nearest below); unifying them would change output.
		header = clamp(int(math.Ceil(float64(p.Brightness)*float64(e.maxBrightness)*maxHeader/10000.0)), 0, maxHeader)
	case ScaleViaColor:
		scale := float64(p.Brightness) * float64(e.maxBrightness) / 10000.0
		r = int(math.Round(float64(r) * scale))
		g = int(math.Round(float64(g) * scale))
		b = int(math.Round(float64(b) * scale))
		header = maxHeader
	}

	var cmd [4]byte
	cmd[0] = byte(ledStart | header)
	cmd[e.order[0]] = byte(clamp(r, 0, 255))
	cmd[e.order[1]] = byte(clamp(g, 0, 255))
	cmd[e.order[2]] = byte(clamp(b, 0, 255))

	e.cache.Add(p, cmd)
	return cmd
}

// Order exposes the channel byte positions, needed by transports that
// decode commands back into colors (the terminal emulator).
func (e *Encoder) Order() [3]int { return e.order }

// Mode reports the configured brightness strategy.
func (e *Encoder) Mode() BrightnessMode { return e.mode }
