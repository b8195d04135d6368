package fs9721

// Helpers to compose wire frames for tests.

// segmentBits is the reverse of digitTable: display character to segment key.
var segmentBits = map[byte][2]byte{
	'1': {0, 5},
	'2': {5, 11},
	'3': {1, 15},
	'4': {2, 7},
	'5': {3, 14},
	'6': {7, 14},
	'7': {1, 5},
	'8': {7, 15},
	'9': {3, 15},
	'0': {7, 13},
	'L': {6, 8},
	' ': {0, 0},
}

// Flag nibble values for the test frames, named by byte position.
const (
	nibAC       = 0x08 // byte 1
	nibDC       = 0x04 // byte 1
	nibMicro    = 0x08 // byte 10
	nibKilo     = 0x02 // byte 10
	nibMilli    = 0x08 // byte 11
	nibRelDelta = 0x02 // byte 12
	nibVolt     = 0x04 // byte 13
	nibOhm      = 0x04 // byte 12
)

// frameBytes builds a 14-byte wire frame carrying the given low data nibbles,
// indexed by 0-based frame position. Position markers are always valid.
func frameBytes(nibbles [FrameSize]byte) []byte {
	buf := make([]byte, FrameSize)
	for i, n := range nibbles {
		buf[i] = byte(i+1)<<4 | n&0x0F
	}

	return buf
}

// displayFrame builds a valid wire frame showing the given four digit
// characters. marks selects which 1-indexed digits carry the high flag bit
// (sign for digit 1, leading decimal point for 2-4). flagNibbles sets the low
// nibbles of flag bytes by 1-indexed position.
func displayFrame(digits [4]byte, marks map[int]bool, flagNibbles map[int]byte) []byte {
	var nib [FrameSize]byte

	for i, ch := range digits {
		seg, ok := segmentBits[ch]
		if !ok {
			panic("displayFrame: no segment pattern for " + string(ch))
		}

		b1 := seg[0]
		if marks[i+1] {
			b1 |= 0x08
		}

		// Digit i+1 occupies byte pair (2+2i, 3+2i).
		nib[1+2*i] = b1
		nib[2+2*i] = seg[1]
	}

	for pos, v := range flagNibbles {
		nib[pos-1] = v
	}

	return frameBytes(nib)
}

// voltageFrame is a frame showing "-12.34" with the V unit flag and nothing
// else: the round-trip fixture.
func voltageFrame() []byte {
	return displayFrame(
		[4]byte{'1', '2', '3', '4'},
		map[int]bool{1: true, 3: true},
		map[int]byte{13: nibVolt},
	)
}
