package transport

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"
)

const (
	cmdStartMask = 0b11100000
	cmdBrightMax = 0b00011111
)

// Term emulates the strip on a terminal. It accepts the same chunked
// byte stream a real bus would, reassembles full frames, decodes each
// 4-byte command back into a color (header level times channel bytes,
// undoing the wire-order permutation) and draws the result as one row
// of ANSI cells.
type Term struct {
	numLED   int
	order    [3]int // byte positions of R, G, B within a command
	frameLen int
	drawer   display.Drawer
	img      *image.NRGBA
	pending  []byte
}

// NewTerm builds an emulator for a strip of numLED pixels encoded
// with the given wire order.
func NewTerm(numLED int, order [3]int) (*Term, error) {
	if numLED <= 0 {
		return nil, fmt.Errorf("invalid led count: %d", numLED)
	}
	return &Term{
		numLED:   numLED,
		order:    order,
		frameLen: 4 + 4*numLED + (numLED+15)/16,
		drawer:   screen.New(numLED),
		img:      image.NewNRGBA(image.Rect(0, 0, numLED, 1)),
	}, nil
}

// Write buffers one chunk and draws every complete frame it finishes.
func (t *Term) Write(p []byte) error {
	t.pending = append(t.pending, p...)
	for len(t.pending) >= t.frameLen {
		if err := t.drawFrame(t.pending[:t.frameLen]); err != nil {
			return err
		}
		t.pending = t.pending[t.frameLen:]
	}
	return nil
}

func (t *Term) drawFrame(frame []byte) error {
	cmds := frame[4 : 4+4*t.numLED]
	for i := 0; i < t.numLED; i++ {
		cmd := cmds[i*4 : i*4+4]
		if cmd[0]&cmdStartMask != cmdStartMask {
			continue
		}
		level := float64(cmd[0]&cmdBrightMax) / cmdBrightMax
		t.img.SetNRGBA(i, 0, color.NRGBA{
			R: scaleByte(cmd[t.order[0]], level),
			G: scaleByte(cmd[t.order[1]], level),
			B: scaleByte(cmd[t.order[2]], level),
			A: 255,
		})
	}
	return t.drawer.Draw(t.drawer.Bounds(), t.img, image.Point{})
}

func scaleByte(v byte, level float64) byte {
	return byte(math.Round(level * float64(v)))
}

// Close resets the terminal row.
func (t *Term) Close() error {
	return t.drawer.Halt()
}
