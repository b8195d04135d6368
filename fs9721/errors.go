package fs9721

import "errors"

var (
	// ErrNoData indicates that the byte source returned no bytes during a
	// synchronization read. The meter is silent, disconnected, or the read
	// timeout is too short.
	ErrNoData = errors.New("no data from meter")

	// ErrInvalidSyncValue indicates that the byte read during synchronization
	// carries a position marker outside the valid 1-14 frame range.
	ErrInvalidSyncValue = errors.New("invalid position marker during synchronization")

	// ErrReadFailure indicates that no fully validated frame could be read
	// within the configured retry limit.
	ErrReadFailure = errors.New("unable to read a valid frame within the retry limit")
)

var (
	// ErrFrameSize indicates that a frame buffer is not exactly 14 bytes.
	ErrFrameSize = errors.New("frame is not 14 bytes")

	// ErrFramePosition indicates that a frame byte's high nibble does not
	// match its position within the frame.
	ErrFramePosition = errors.New("frame byte has wrong position marker")
)
