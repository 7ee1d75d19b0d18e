package patterns

import (
	"github.com/coreman2200/funtimes-dotstrip/internal/cycle"
	"github.com/coreman2200/funtimes-dotstrip/internal/strip"
)

// Larson is the classic back-and-forth scanner in a tasteful red,
// bounded to [first,last]. width is the length of the fading tail;
// width <= 0 picks one tenth of the range, capped at 8.
func Larson(first, last, width int) cycle.UpdateFunc {
	span := last - first + 1
	if width <= 0 {
		width = (span + 9) / 10
		if width > 8 {
			width = 8
		}
	}
	if width < 1 {
		width = 1
	}
	bStep := 100 / width
	led := first - 1
	dir := 1
	return func(buf *strip.Buffer, numLED, steps, step, cyc int) bool {
		for i := first; i <= last; i++ {
			_ = buf.Set(i, strip.Black)
		}
		led += dir
		// The head overshoots by the tail width before reversing, so
		// the tail fully leaves the range at each end.
		if led == last+width {
			dir = -1
			led = last
		}
		if led == first-width {
			dir = 1
			led = first
		}
		bright := 100
		i := led
		for k := 0; k < width; k++ {
			if i >= first && i <= last {
				_ = buf.Set(i, strip.Pixel{R: 255, Brightness: bright})
			}
			bright -= bStep
			if bright < 0 {
				bright = 0
			}
			i -= dir
		}
		return true
	}
}
