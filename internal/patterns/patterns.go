// Package patterns holds example update callbacks for the cycle
// runner. Each factory returns a cycle.UpdateFunc closed over its own
// state, so several patterns can share one strip on disjoint ranges.
package patterns

import (
	"github.com/coreman2200/funtimes-dotstrip/internal/cycle"
	"github.com/coreman2200/funtimes-dotstrip/internal/strip"
)

// SolidFill paints the whole strip once and holds it.
func SolidFill(p strip.Pixel) cycle.UpdateFunc {
	return func(buf *strip.Buffer, numLED, steps, step, cyc int) bool {
		if step != 0 || cyc != 0 {
			return false
		}
		buf.SetAll(p)
		return true
	}
}

// Solid paints the inclusive range [first,last] once and holds it.
func Solid(first, last int, p strip.Pixel) cycle.UpdateFunc {
	return func(buf *strip.Buffer, numLED, steps, step, cyc int) bool {
		if step != 0 || cyc != 0 {
			return false
		}
		for i := first; i <= last; i++ {
			_ = buf.Set(i, p)
		}
		return true
	}
}

// Rainbow sweeps the color wheel across [first,last], advancing one
// wheel step per tick. Looks best with 255 steps per cycle.
func Rainbow(first, last int) cycle.UpdateFunc {
	return func(buf *strip.Buffer, numLED, steps, step, cyc int) bool {
		width := last - first + 1
		if width < 1 {
			return false
		}
		offset := step * 256 / steps
		for i := 0; i < width; i++ {
			pos := (i*255/width + offset) % 256
			_ = buf.SetRGB(first+i, strip.Wheel(pos), 100)
		}
		return true
	}
}

// StrandTest walks a single bright dot down the strip, changing color
// every cycle: red, then green, then blue.
func StrandTest() cycle.UpdateFunc {
	colors := []strip.Pixel{strip.Red, strip.Green, strip.Blue}
	return func(buf *strip.Buffer, numLED, steps, step, cyc int) bool {
		head := step % numLED
		prev := ((head-1)%numLED + numLED) % numLED
		_ = buf.Set(prev, strip.Black)
		_ = buf.Set(head, colors[cyc%len(colors)])
		return true
	}
}

// RoundAndRoundInit lights a white head with a two-pixel fading tail;
// pair it with RoundAndRound, which spins the buffer one position per
// tick. Set steps per cycle to the LED count for full revolutions.
func RoundAndRoundInit(buf *strip.Buffer, numLED int) {
	_ = buf.Set(0, strip.White)
	_ = buf.Set(1, strip.Pixel{R: 255, G: 255, B: 255, Brightness: 30})
	_ = buf.Set(2, strip.Pixel{R: 255, G: 255, B: 255, Brightness: 6})
}

// RoundAndRound rotates whatever is on the strip by one position each
// tick.
func RoundAndRound() cycle.UpdateFunc {
	return func(buf *strip.Buffer, numLED, steps, step, cyc int) bool {
		buf.Rotate(1)
		return true
	}
}
