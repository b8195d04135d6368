package fs9721

import (
	"fmt"

	"github.com/arloliu/go-dmm/internal/util"
)

// FrameSize is the number of bytes in one complete display snapshot.
const FrameSize = 14

// highNibble returns the upper 4 bits of b: the position marker on the wire.
func highNibble(b byte) byte { return b >> 4 }

// lowNibble returns the lower 4 bits of b: the data bits on the wire.
func lowNibble(b byte) byte { return b & 0x0F }

// Frame is a fully validated 14-byte multimeter frame.
//
// A Frame is only ever constructed by ParseFrame after every byte's position
// marker has been checked; an improperly positioned byte set is never promoted
// to a Frame.
type Frame struct {
	data [FrameSize]byte
}

// ParseFrame validates buf as a complete frame.
//
// ParseFrame validates:
//   - buf is exactly FrameSize bytes.
//   - The byte at 1-indexed position p carries p in its high nibble, for all
//     fourteen positions.
//
// On the first violation it returns an error wrapping ErrFrameSize or
// ErrFramePosition and no Frame.
func ParseFrame(buf []byte) (*Frame, error) {
	if len(buf) != FrameSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrFrameSize, len(buf))
	}

	for i, b := range buf {
		pos := byte(i + 1)
		if highNibble(b) != pos {
			return nil, fmt.Errorf("%w: byte %d has marker %d", ErrFramePosition, pos, highNibble(b))
		}
	}

	f := &Frame{}
	copy(f.data[:], buf)

	return f, nil
}

// Nibble returns the low data nibble of the byte at 1-indexed position pos.
// Panics if pos is outside 1-14.
func (f *Frame) Nibble(pos int) byte {
	if pos < 1 || pos > FrameSize {
		panic(fmt.Sprintf("fs9721: frame position %d out of range [1, %d]", pos, FrameSize))
	}

	return lowNibble(f.data[pos-1])
}

// Bytes returns a copy of the raw frame bytes.
func (f *Frame) Bytes() []byte {
	return util.CloneSlice(f.data[:], 0)
}
