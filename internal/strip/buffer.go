package strip

import (
	"fmt"
	"sort"
	"strconv"
)

// DefaultChunkSize matches the common SPI write ceiling of 4096 bytes,
// enough for a bit over 1000 LEDs per chunk.
const DefaultChunkSize = 4096

// startFrameLen is the 32-bit all-zero marker that precedes every
// repaint; the first LED latches the next 4 bytes as its own command.
const startFrameLen = 4

// Range is one physically contiguous run of LED indices, inclusive on
// both ends. First > Last traverses the run backwards, so a strip
// wired 5-6-7-8-0-1-2-3-12-11-10-9 is described as
// {5,8}, {0,3}, {12,9}.
type Range struct {
	First int
	Last  int
}

// Buffer is the pixel state of one LED strip plus the logical-to-
// physical traversal used when rendering. Mutating calls touch only
// the in-memory state; Render produces the wire bytes but writes
// nothing, transports are the caller's concern.
type Buffer struct {
	enc       *Encoder
	leds      []Pixel
	order     []int // cached traversal, always len(leds) entries
	chunkSize int
}

// NewBuffer creates a buffer of numLED black pixels. ledOrder may be
// nil for identity traversal; otherwise its expansion must visit every
// index in [0,numLED) exactly once, validated here and never again.
func NewBuffer(numLED int, enc *Encoder, ledOrder []Range) (*Buffer, error) {
	if numLED <= 0 {
		return nil, fmt.Errorf("%w: led count must be positive, got %d", ErrConfiguration, numLED)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: nil encoder", ErrConfiguration)
	}
	order, err := expandOrder(numLED, ledOrder)
	if err != nil {
		return nil, err
	}
	b := &Buffer{
		enc:       enc,
		leds:      make([]Pixel, numLED),
		order:     order,
		chunkSize: DefaultChunkSize,
	}
	b.Blank()
	return b, nil
}

// expandOrder flattens the range list into a full traversal and
// verifies it is a bijection onto [0,numLED).
func expandOrder(numLED int, ledOrder []Range) ([]int, error) {
	order := make([]int, 0, numLED)
	if ledOrder == nil {
		for i := 0; i < numLED; i++ {
			order = append(order, i)
		}
		return order, nil
	}
	for _, r := range ledOrder {
		if r.First <= r.Last {
			for i := r.First; i <= r.Last; i++ {
				order = append(order, i)
			}
		} else {
			for i := r.First; i >= r.Last; i-- {
				order = append(order, i)
			}
		}
	}

	seen := make(map[int]int, len(order))
	for _, i := range order {
		seen[i]++
	}
	var bad []int
	for i := 0; i < numLED; i++ {
		if seen[i] != 1 {
			bad = append(bad, i)
		}
	}
	for i := range seen {
		if i < 0 || i >= numLED {
			bad = append(bad, i)
		}
	}
	if len(order) != numLED || len(bad) > 0 {
		sort.Ints(bad)
		return nil, fmt.Errorf("%w: led order has gap and/or extra indices: %v", ErrConfiguration, bad)
	}
	return order, nil
}

// NumLED returns the strip length.
func (b *Buffer) NumLED() int { return len(b.leds) }

// SetChunkSize overrides the transport write ceiling used by Render.
func (b *Buffer) SetChunkSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrConfiguration, n)
	}
	b.chunkSize = n
	return nil
}

// Set stores p at index i. The buffer is untouched on error.
func (b *Buffer) Set(i int, p Pixel) error {
	if i < 0 || i >= len(b.leds) {
		return fmt.Errorf("%w: %d (strip has %d leds)", ErrOutOfRange, i, len(b.leds))
	}
	b.leds[i] = p
	return nil
}

// Get returns the pixel at index i.
func (b *Buffer) Get(i int) (Pixel, error) {
	if i < 0 || i >= len(b.leds) {
		return Pixel{}, fmt.Errorf("%w: %d (strip has %d leds)", ErrOutOfRange, i, len(b.leds))
	}
	return b.leds[i], nil
}

// SetRGB stores a packed 24-bit color (0xRRGGBB) at index i.
func (b *Buffer) SetRGB(i int, rgb uint32, brightness int) error {
	return b.Set(i, Pixel{
		R:          int(rgb >> 16 & 0xFF),
		G:          int(rgb >> 8 & 0xFF),
		B:          int(rgb & 0xFF),
		Brightness: brightness,
	})
}

// SetHex stores a hex color string at index i. The string length must
// be divisible by three; each third is one channel, so both "f80" and
// "ff8800" work.
func (b *Buffer) SetHex(i int, hexColor string, brightness int) error {
	if len(hexColor) == 0 || len(hexColor)%3 != 0 {
		return fmt.Errorf("%w: hex color %q must have a length divisible by 3", ErrBadColor, hexColor)
	}
	w := len(hexColor) / 3
	var ch [3]int
	for n := 0; n < 3; n++ {
		v, err := strconv.ParseUint(hexColor[n*w:(n+1)*w], 16, 32)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrBadColor, hexColor, err)
		}
		ch[n] = int(v)
	}
	return b.Set(i, Pixel{R: ch[0], G: ch[1], B: ch[2], Brightness: brightness})
}

// SetAll paints every LED with p.
func (b *Buffer) SetAll(p Pixel) {
	for i := range b.leds {
		b.leds[i] = p
	}
}

// Blank turns the whole strip off (zero-brightness black).
func (b *Buffer) Blank() {
	b.SetAll(Black)
}

// Rotate shifts the buffer circularly by k positions; k may be
// negative or larger than the strip.
func (b *Buffer) Rotate(k int) {
	n := len(b.leds)
	k = ((k % n) + n) % n
	if k == 0 {
		return
	}
	rotated := make([]Pixel, 0, n)
	rotated = append(rotated, b.leds[k:]...)
	rotated = append(rotated, b.leds[:k]...)
	b.leds = rotated
}

// LogicalOrder returns the physical index traversal computed at
// construction. Callers must not modify it.
func (b *Buffer) LogicalOrder() []int { return b.order }

// Render assembles the full wire frame (start marker, one command per
// LED in logical order, then ceil(N/16) zero bytes so the clock
// reaches the far end of the chain) and splits it into chunks no
// larger than the configured chunk size.
func (b *Buffer) Render() [][]byte {
	n := len(b.leds)
	endFrameLen := (n + 15) / 16
	frame := make([]byte, 0, startFrameLen+4*n+endFrameLen)
	frame = append(frame, make([]byte, startFrameLen)...)
	for _, i := range b.order {
		cmd := b.enc.Encode(b.leds[i])
		frame = append(frame, cmd[:]...)
	}
	frame = append(frame, make([]byte, endFrameLen)...)

	chunks := make([][]byte, 0, (len(frame)+b.chunkSize-1)/b.chunkSize)
	for len(frame) > b.chunkSize {
		chunks = append(chunks, frame[:b.chunkSize])
		frame = frame[b.chunkSize:]
	}
	return append(chunks, frame)
}
