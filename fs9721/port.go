package fs9721

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// Port is a serial port configured for an FS9721-family meter: 8 data bits,
// no parity, one stop bit, with a read timeout so a silent meter surfaces as
// a zero-byte read instead of blocking forever.
//
// Port implements ByteSource and io.Closer.
type Port struct {
	inner serial.Port
}

// OpenPort opens the named serial port (e.g. /dev/ttyUSB0, COM3) with the
// FS9721 line settings and the given read timeout.
func OpenPort(name string, baudRate int, timeout time.Duration) (*Port, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("fs9721: open port %s: %w", name, err)
	}

	if err := port.SetReadTimeout(timeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("fs9721: set read timeout on %s: %w", name, err)
	}

	return &Port{inner: port}, nil
}

// Read reads up to len(buf) bytes, returning 0 with a nil error on timeout.
func (p *Port) Read(buf []byte) (int, error) {
	return p.inner.Read(buf)
}

// Close closes the serial port.
func (p *Port) Close() error {
	return p.inner.Close()
}
