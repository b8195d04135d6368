package fs9721

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/go-dmm/logger"
	"github.com/arloliu/go-dmm/measure"
)

// ByteSource is the transport contract the client requires: a standard
// io.Reader whose Read respects a configured timeout and never blocks forever.
// A timeout surfaces as a short or zero-byte read, not an error.
type ByteSource interface {
	io.Reader
}

// Client takes readings off a byte source carrying the FS9721 wire protocol.
//
// Client is NOT goroutine-safe. Frame position is only meaningful relative to
// the stream cursor, so there must be exactly one reader; interrupting a read
// mid-frame loses synchronization.
type Client struct {
	src    ByteSource
	cfg    *Config
	logger logger.Logger

	metrics ClientMetrics
}

// NewClient creates a Client on an already open byte source and synchronizes
// with the frame boundary.
//
// The source's read timeout is the caller's responsibility; WithTimeout has no
// effect here. Use Open to let the client own the serial port.
func NewClient(src ByteSource, opts ...Option) (*Client, error) {
	if src == nil {
		return nil, errors.New("fs9721: byte source is nil")
	}

	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	c := &Client{
		src:    src,
		cfg:    cfg,
		logger: cfg.logger,
	}

	if err := c.synchronize(); err != nil {
		return nil, err
	}

	return c, nil
}

// Open opens the named serial port at the FS9721 line settings (2400 8N1 by
// default) and returns a synchronized Client that owns the port.
func Open(portName string, opts ...Option) (*Client, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	port, err := OpenPort(portName, cfg.baudRate, cfg.timeout)
	if err != nil {
		return nil, err
	}

	c := &Client{
		src:    port,
		cfg:    cfg,
		logger: cfg.logger,
	}

	if err := c.synchronize(); err != nil {
		_ = port.Close()
		return nil, err
	}

	return c, nil
}

// Close closes the underlying byte source if it is closable.
func (c *Client) Close() error {
	if closer, ok := c.src.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

// Metrics returns the client's metrics collector.
func (c *Client) Metrics() *ClientMetrics {
	return &c.metrics
}

// Read takes one reading from the meter.
//
// Structural failures (silence, desynchronization beyond the retry limit)
// return an error wrapping ErrNoData, ErrInvalidSyncValue or ErrReadFailure.
// Display anomalies never fail a Read; they are reported through the returned
// Value's Sane field.
func (c *Client) Read() (*Value, error) {
	frame, readErrors, err := c.readFrame()
	if err != nil {
		return nil, err
	}

	reading := DecodeFrame(frame)
	reading.ReadErrors = readErrors

	val := InterpretReading(reading)

	c.metrics.incReadCount()
	if !val.Sane {
		c.metrics.incInsaneValueCount()
		c.logger.Debug("fs9721: reading failed sanity checks",
			"display", val.RawVal,
			"flags", val.Flags,
		)
	}

	return val, nil
}

// GetMeasurement takes one reading and converts it to a typed physical
// quantity. The result is nil when the reading has no numeric value.
func (c *Client) GetMeasurement() (measure.Measurement, error) {
	val, err := c.Read()
	if err != nil {
		return nil, err
	}

	return val.Measurement(), nil
}

// readFrame reads and validates one 14-byte frame, re-synchronizing and
// retrying up to the configured limit.
//
// On success it returns the frame and the 0-indexed attempt number, i.e. the
// number of failed attempts that preceded it. Synchronization errors during
// recovery are structural and propagate immediately.
func (c *Client) readFrame() (*Frame, int, error) {
	buf := make([]byte, FrameSize)

	for attempt := 0; attempt < c.cfg.retries; attempt++ {
		n, err := c.readFull(buf)
		if err != nil {
			return nil, 0, err
		}

		if n != FrameSize {
			c.logger.Debug("fs9721: short frame read", "got", n, "attempt", attempt)
			c.metrics.incReadRetryCount()
			if err := c.synchronize(); err != nil {
				return nil, 0, err
			}

			continue
		}

		frame, err := ParseFrame(buf)
		if err != nil {
			c.logger.Debug("fs9721: frame validation failed", "error", err, "attempt", attempt)
			c.metrics.incReadRetryCount()
			if err := c.synchronize(); err != nil {
				return nil, 0, err
			}

			continue
		}

		return frame, attempt, nil
	}

	c.metrics.incReadFailureCount()

	return nil, 0, fmt.Errorf("%w: %d attempts", ErrReadFailure, c.cfg.retries)
}

// synchronize aligns the stream cursor with the next frame boundary.
//
// It reads a single byte, trusts its position marker, and discards the rest of
// the current frame. The discarded bytes are not validated: the read loop
// tolerates an occasional invalid frame without failing, so checking them here
// would be stricter than the protocol itself.
func (c *Client) synchronize() error {
	var b [1]byte

	n, err := c.readFull(b[:])
	if err != nil {
		return err
	}
	if n != 1 {
		return ErrNoData
	}

	pos := highNibble(b[0])
	if pos == 0 || pos == 15 {
		return fmt.Errorf("%w: byte 0x%02X", ErrInvalidSyncValue, b[0])
	}

	if skip := FrameSize - int(pos); skip > 0 {
		if _, err := c.readFull(make([]byte, skip)); err != nil {
			return err
		}
	}

	c.metrics.incSyncCount()
	c.logger.Debug("fs9721: synchronized", "position", pos)

	return nil
}

// readFull reads len(buf) bytes from the source, accumulating partial reads.
//
// A zero-byte read (the transport's timeout signal) or EOF ends the read
// early and surfaces as a short count; any other transport error propagates.
func (c *Client) readFull(buf []byte) (int, error) {
	read := 0
	for read < len(buf) {
		n, err := c.src.Read(buf[read:])
		read += n

		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return read, nil
			}

			return read, fmt.Errorf("fs9721: transport read: %w", err)
		}
		if n == 0 {
			return read, nil
		}
	}

	return read, nil
}
