package strip

// Pixel is the color and brightness of a single LED. Red, green and
// blue are nominally 0..255 and Brightness is a 0..100 percentage.
// Values are not validated here; the encoder clamps everything into
// hardware range at encode time, so a Pixel built from out-of-range
// input is harmless.
//
// Pixel is a comparable value type: the encoder uses it directly as a
// cache key.
type Pixel struct {
	R, G, B    int
	Brightness int
}

// Named colors, full brightness except Black which is fully off.
var (
	Red     = Pixel{255, 0, 0, 100}
	Yellow  = Pixel{255, 255, 0, 100}
	Green   = Pixel{0, 255, 0, 100}
	Cyan    = Pixel{0, 255, 255, 100}
	Blue    = Pixel{0, 0, 255, 100}
	Magenta = Pixel{255, 0, 255, 100}
	Black   = Pixel{0, 0, 0, 0}
	White   = Pixel{255, 255, 255, 100}
)

// clamp returns v limited to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CombineColor packs three 8-bit channels into one 24-bit color value.
func CombineColor(r, g, b int) uint32 {
	return uint32(clamp(r, 0, 255))<<16 | uint32(clamp(g, 0, 255))<<8 | uint32(clamp(b, 0, 255))
}

// Wheel maps a position 0..255 onto a color wheel:
// green -> red -> blue -> green. Positions above 255 saturate.
func Wheel(pos int) uint32 {
	if pos > 255 {
		pos = 255
	}
	if pos < 0 {
		pos = 0
	}
	switch {
	case pos <= 85: // green -> red
		return CombineColor(pos*3, 255-pos*3, 0)
	case pos <= 170: // red -> blue
		pos -= 85
		return CombineColor(255-pos*3, 0, pos*3)
	default: // blue -> green
		pos -= 170
		return CombineColor(0, pos*3, 255-pos*3)
	}
}
