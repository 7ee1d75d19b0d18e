package patterns

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-dotstrip/internal/strip"
)

func newTestStrip(t *testing.T, n int) *strip.Buffer {
	t.Helper()
	order, err := strip.ParseOrder("bgr")
	require.NoError(t, err)
	enc, err := strip.NewEncoder(order, 100, strip.ScaleViaColor)
	require.NoError(t, err)
	buf, err := strip.NewBuffer(n, enc, nil)
	require.NoError(t, err)
	return buf
}

func pixelAt(t *testing.T, buf *strip.Buffer, i int) strip.Pixel {
	t.Helper()
	p, err := buf.Get(i)
	require.NoError(t, err)
	return p
}

func TestSolidFillPaintsOnce(t *testing.T) {
	buf := newTestStrip(t, 5)
	fill := SolidFill(strip.Cyan)

	assert.True(t, fill(buf, 5, 10, 0, 0))
	for i := 0; i < 5; i++ {
		assert.Equal(t, strip.Cyan, pixelAt(t, buf, i))
	}
	assert.False(t, fill(buf, 5, 10, 1, 0))
	assert.False(t, fill(buf, 5, 10, 0, 1))
}

func TestSolidRespectsRange(t *testing.T) {
	buf := newTestStrip(t, 6)
	assert.True(t, Solid(2, 4, strip.Red)(buf, 6, 10, 0, 0))
	for i := 0; i < 6; i++ {
		want := strip.Black
		if i >= 2 && i <= 4 {
			want = strip.Red
		}
		assert.Equal(t, want, pixelAt(t, buf, i), "led %d", i)
	}
}

func TestStrandTestWalksAndChangesColorPerCycle(t *testing.T) {
	buf := newTestStrip(t, 8)
	st := StrandTest()

	assert.True(t, st(buf, 8, 8, 0, 0))
	assert.Equal(t, strip.Red, pixelAt(t, buf, 0))

	assert.True(t, st(buf, 8, 8, 1, 0))
	assert.Equal(t, strip.Black, pixelAt(t, buf, 0), "the dot leaves no trail")
	assert.Equal(t, strip.Red, pixelAt(t, buf, 1))

	assert.True(t, st(buf, 8, 8, 1, 1))
	assert.Equal(t, strip.Green, pixelAt(t, buf, 1), "second cycle is green")

	assert.True(t, st(buf, 8, 8, 1, 2))
	assert.Equal(t, strip.Blue, pixelAt(t, buf, 1), "third cycle is blue")
}

func TestRainbowStaysInRange(t *testing.T) {
	buf := newTestStrip(t, 8)
	rb := Rainbow(2, 5)

	assert.True(t, rb(buf, 8, 255, 17, 0))
	for _, i := range []int{0, 1, 6, 7} {
		assert.Equal(t, strip.Black, pixelAt(t, buf, i), "led %d is outside the range", i)
	}
	lit := 0
	for i := 2; i <= 5; i++ {
		p := pixelAt(t, buf, i)
		assert.Equal(t, 100, p.Brightness)
		if p.R+p.G+p.B > 0 {
			lit++
		}
	}
	assert.Greater(t, lit, 0, "the range is painted")
}

func TestRoundAndRoundKeepsLitCountConstant(t *testing.T) {
	buf := newTestStrip(t, 10)
	RoundAndRoundInit(buf, 10)
	rr := RoundAndRound()

	countLit := func() int {
		n := 0
		for i := 0; i < 10; i++ {
			if pixelAt(t, buf, i) != strip.Black {
				n++
			}
		}
		return n
	}
	require.Equal(t, 3, countLit(), "init lights the head and a two-pixel tail")

	for step := 0; step < 25; step++ {
		assert.True(t, rr(buf, 10, 10, step%10, step/10))
		assert.Equal(t, 3, countLit(), "step %d", step)
	}
	// After a full revolution the head is back at the start.
	// 25 rotations of 10 leds leave it shifted by 5.
	assert.Equal(t, strip.White, pixelAt(t, buf, 5))
}

func TestLarsonStaysInRange(t *testing.T) {
	buf := newTestStrip(t, 20)
	scan := Larson(5, 14, 3)

	for step := 0; step < 120; step++ {
		assert.True(t, scan(buf, 20, 60, step%60, step/60))
		for _, i := range []int{0, 4, 15, 19} {
			assert.Equal(t, strip.Black, pixelAt(t, buf, i), "step %d led %d stays dark", step, i)
		}
	}
}

func TestLarsonHeadIsBrightest(t *testing.T) {
	buf := newTestStrip(t, 10)
	scan := Larson(0, 9, 4)

	// A few steps in, the head leads a fading tail.
	for step := 0; step < 5; step++ {
		scan(buf, 10, 60, step, 0)
	}
	head := pixelAt(t, buf, 4)
	tail := pixelAt(t, buf, 3)
	assert.Equal(t, 100, head.Brightness)
	assert.Less(t, tail.Brightness, head.Brightness)
}

func TestFireStaysWarmAndInRange(t *testing.T) {
	buf := newTestStrip(t, 12)
	rng := rand.New(rand.NewSource(1))
	fire := Fire(3, 8, rng)

	for step := 0; step < 50; step++ {
		assert.True(t, fire(buf, 12, 60, step, 0))
		for _, i := range []int{0, 2, 9, 11} {
			assert.Equal(t, strip.Black, pixelAt(t, buf, i))
		}
		for i := 3; i <= 8; i++ {
			p := pixelAt(t, buf, i)
			assert.GreaterOrEqual(t, p.R, 100, "embers stay red")
			assert.LessOrEqual(t, p.R, 255)
			assert.LessOrEqual(t, p.G, 85, "no green flames")
			assert.Zero(t, p.B)
			assert.GreaterOrEqual(t, p.Brightness, 40)
			assert.LessOrEqual(t, p.Brightness, 100)
		}
	}
}
