package patterns

import (
	"math/rand"

	"github.com/coreman2200/funtimes-dotstrip/internal/cycle"
	"github.com/coreman2200/funtimes-dotstrip/internal/strip"
)

// Fire flickers [first,last] with warm random embers. rng may be nil
// for the shared global source; pass a seeded one for reproducible
// output.
func Fire(first, last int, rng *rand.Rand) cycle.UpdateFunc {
	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}
	return func(buf *strip.Buffer, numLED, steps, step, cyc int) bool {
		for i := first; i <= last; i++ {
			heat := intn(156)
			_ = buf.Set(i, strip.Pixel{
				R:          100 + heat,
				G:          heat / 3,
				B:          0,
				Brightness: 40 + intn(61),
			})
		}
		return true
	}
}
