package fs9721

import (
	"slices"
	"strings"

	"github.com/arloliu/go-dmm/internal/util"
)

// InvalidDigit is the sentinel character produced when a digit's segment bits
// match no known 7-segment pattern. Its presence marks the reading as not sane
// downstream.
const InvalidDigit = 'X'

// digitTable maps a 7-segment bit pattern to its display character.
//
// The key is (first nibble with the sign/decimal bit stripped, second nibble).
// These are the only segment combinations the chipset produces; anything else
// decodes to InvalidDigit.
var digitTable = map[[2]byte]byte{
	{0, 5}:  '1',
	{5, 11}: '2',
	{1, 15}: '3',
	{2, 7}:  '4',
	{3, 14}: '5',
	{7, 14}: '6',
	{1, 5}:  '7',
	{7, 15}: '8',
	{3, 15}: '9',
	{7, 13}: '0',
	{6, 8}:  'L',
	{0, 0}:  ' ',
}

// digitPairs lists the byte-pair positions of the four display digits and the
// character prepended when the pair's high flag bit is set: the minus sign for
// the first digit, a leading decimal point for the rest.
var digitPairs = [4]struct {
	b1, b2 int
	mark   byte
}{
	{2, 3, '-'},
	{4, 5, '.'},
	{6, 7, '.'},
	{8, 9, '.'},
}

// FlagCategory names one of the four groups of display annunciators.
type FlagCategory uint8

const (
	// CategoryFlags holds mode flags: AC, DC, AUTO, RS232, REL delta, Hold, beep.
	CategoryFlags FlagCategory = iota
	// CategoryScale holds SI prefix flags: micro, nano, milli, kilo, mega.
	CategoryScale
	// CategoryMeasure holds unit flags: F, Ω, A, V, Hz, C, % (duty-cycle), diode.
	CategoryMeasure
	// CategoryOther holds bits that are reserved or unmapped on this meter.
	CategoryOther
)

// flagDef binds one bit position to its category and display tag.
type flagDef struct {
	cat FlagCategory
	tag string
}

// flagBits maps each flag byte position to the four tags carried by its low
// nibble, ordered MSB to LSB (bit weights 8, 4, 2, 1).
var flagBits = map[int][4]flagDef{
	1: {
		{CategoryFlags, "AC"},
		{CategoryFlags, "DC"},
		{CategoryFlags, "AUTO"},
		{CategoryFlags, "RS232"},
	},
	10: {
		{CategoryScale, "micro"},
		{CategoryScale, "nano"},
		{CategoryScale, "kilo"},
		{CategoryMeasure, "diode"},
	},
	11: {
		{CategoryScale, "milli"},
		{CategoryMeasure, "% (duty-cycle)"},
		{CategoryScale, "mega"},
		{CategoryFlags, "beep"},
	},
	12: {
		{CategoryMeasure, "F"},
		{CategoryMeasure, "Ω"},
		{CategoryFlags, "REL delta"},
		{CategoryFlags, "Hold"},
	},
	13: {
		{CategoryMeasure, "A"},
		{CategoryMeasure, "V"},
		{CategoryMeasure, "Hz"},
		{CategoryOther, "other_13_1"},
	},
	14: {
		{CategoryOther, "other_14_4"},
		{CategoryMeasure, "C"},
		{CategoryOther, "other_14_2"},
		{CategoryOther, "other_14_1"},
	},
}

// FlagSet groups the instrument flags decoded from a frame, one unordered tag
// set per category.
type FlagSet struct {
	// Flags holds mode flags (AC, DC, AUTO, RS232, REL delta, Hold, beep).
	Flags []string
	// Scale holds SI prefix flags (micro, nano, milli, kilo, mega).
	Scale []string
	// Measure holds unit flags (F, Ω, A, V, Hz, C, % (duty-cycle), diode).
	Measure []string
	// Other holds reserved/unmapped bits that were set.
	Other []string
}

// Has reports whether tag is present in the Flags category.
func (fs *FlagSet) Has(tag string) bool {
	return slices.Contains(fs.Flags, tag)
}

// add appends tag to the category's tag set.
func (fs *FlagSet) add(cat FlagCategory, tag string) {
	switch cat {
	case CategoryFlags:
		fs.Flags = append(fs.Flags, tag)
	case CategoryScale:
		fs.Scale = append(fs.Scale, tag)
	case CategoryMeasure:
		fs.Measure = append(fs.Measure, tag)
	case CategoryOther:
		fs.Other = append(fs.Other, tag)
	}
}

// Reading is the decoded form of a single validated frame: the display string
// with sign and decimal markers inline, the instrument flags, the number of
// failed read attempts that preceded it, and a copy of the raw bytes.
//
// A Reading is immutable once produced; DecodeFrame is a pure function of the
// frame contents.
type Reading struct {
	// Display is the four digit characters with '-' and '.' markers inline,
	// e.g. "-12.34". It may contain InvalidDigit for unrecognized patterns.
	Display string

	// Flags holds the decoded annunciators.
	Flags FlagSet

	// ReadErrors is the number of failed frame-read attempts before this
	// reading was obtained.
	ReadErrors int

	// RawBytes is a copy of the 14 raw frame bytes.
	RawBytes []byte
}

// DecodeFrame decodes a validated frame into a Reading.
//
// DecodeFrame never fails: an unrecognized segment pattern becomes
// InvalidDigit and unrecognized flag bits land in the Other category. Every
// defined bit position is checked, no bit is dropped.
func DecodeFrame(f *Frame) Reading {
	var display strings.Builder

	for _, p := range digitPairs {
		mark, digit := decodeDigit(f.Nibble(p.b1), f.Nibble(p.b2))
		if mark {
			display.WriteByte(p.mark)
		}
		display.WriteByte(digit)
	}

	var flags FlagSet
	for pos := 1; pos <= FrameSize; pos++ {
		defs, ok := flagBits[pos]
		if !ok {
			continue
		}

		nib := f.Nibble(pos)
		for i, def := range defs {
			if nib&(0x08>>i) != 0 {
				flags.add(def.cat, def.tag)
			}
		}
	}

	return Reading{
		Display:  display.String(),
		Flags:    flags,
		RawBytes: util.CloneSlice(f.data[:], 0),
	}
}

// decodeDigit decodes one digit byte pair from its two data nibbles.
//
// The top bit of the first nibble is the sign/decimal flag; the remaining
// three bits plus the second nibble index the 7-segment table.
func decodeDigit(n1, n2 byte) (mark bool, digit byte) {
	mark = n1&0x08 != 0

	digit, ok := digitTable[[2]byte{n1 & 0x07, n2}]
	if !ok {
		digit = InvalidDigit
	}

	return mark, digit
}
