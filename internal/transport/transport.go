// Package transport carries rendered frames to an LED bus. The core
// render path only depends on the Transport interface; the concrete
// implementations here are the SPI bus (hardware) and a terminal
// emulator that draws the strip with ANSI colors.
package transport

// Transport is one write sink for frame chunks. Write is called once
// per chunk produced by a render, in order; Close is called exactly
// once when the run drains.
type Transport interface {
	Write(p []byte) error
	Close() error
}
