// Package fake provides a recording transport for headless tests.
package fake

import "errors"

// Transport records every chunk written to it.
type Transport struct {
	Writes [][]byte
	Closed int
	// WriteErr, when set, is returned by every Write.
	WriteErr error
}

func (t *Transport) Write(p []byte) error {
	if t.WriteErr != nil {
		return t.WriteErr
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	t.Writes = append(t.Writes, cp)
	return nil
}

func (t *Transport) Close() error {
	t.Closed++
	if t.Closed > 1 {
		return errors.New("transport closed twice")
	}
	return nil
}
