package transport

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// DefaultSPISpeedHz is plenty for APA102 chains of a few hundred LEDs.
const DefaultSPISpeedHz = 8_000_000

// SPI writes frames to a spidev bus.
type SPI struct {
	port spi.PortCloser
	conn spi.Conn
}

// NewSPI initializes the host, opens the named SPI port ("" picks the
// first available one) and connects at speedHz (0 selects the
// default).
func NewSPI(dev string, speedHz int) (*SPI, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	port, err := spireg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", dev, err)
	}
	return NewSPIFromPort(port, speedHz)
}

// NewSPIFromPort connects an already-open port. It takes ownership of
// the port and closes it on Close.
func NewSPIFromPort(port spi.PortCloser, speedHz int) (*SPI, error) {
	if speedHz <= 0 {
		speedHz = DefaultSPISpeedHz
	}
	c, err := port.Connect(physic.Frequency(speedHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("spi connect: %w", err)
	}
	return &SPI{port: port, conn: c}, nil
}

// MaxTxSize reports the bus write ceiling, or 0 if the driver doesn't
// publish one. Callers use it to size render chunks.
func (s *SPI) MaxTxSize() int {
	if l, ok := s.conn.(conn.Limits); ok {
		return l.MaxTxSize()
	}
	return 0
}

// Write sends one chunk down the bus.
func (s *SPI) Write(p []byte) error {
	return s.conn.Tx(p, nil)
}

// Close releases the bus.
func (s *SPI) Close() error {
	return s.port.Close()
}
