package transport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/spi/spitest"
)

func TestSPIFromPortWritesRaw(t *testing.T) {
	var buf bytes.Buffer
	sp, err := NewSPIFromPort(spitest.NewRecordRaw(&buf), 0)
	require.NoError(t, err)

	require.NoError(t, sp.Write([]byte{0x00, 0x00, 0x00, 0x00, 0xFF, 0x01, 0x02, 0x03}))
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00, 0xFF, 0x01, 0x02, 0x03}, buf.Bytes())

	require.NoError(t, sp.Close())
}

func TestSPIFromPortBadConnect(t *testing.T) {
	var buf bytes.Buffer
	// Negative speed falls back to the default instead of failing.
	sp, err := NewSPIFromPort(spitest.NewRecordRaw(&buf), -1)
	require.NoError(t, err)
	require.NoError(t, sp.Close())
}
