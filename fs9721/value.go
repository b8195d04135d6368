package fs9721

import (
	"strconv"
	"strings"

	"github.com/arloliu/go-dmm/measure"
)

// invalidText is the Text of a Value that failed a sanity check.
const invalidText = "Invalid Value"

// Value is the interpreted form of a Reading: the measurement the meter's
// display represents, with every sanity rule applied.
//
// A Value is constructed once per successfully read frame and never mutated.
// When a sanity rule fails, Sane is false and the affected derived fields are
// left at their zero values, but the raw fields remain available for
// diagnostics.
type Value struct {
	// Sane is true when no sanity check failed.
	Sane bool

	// Text is the human-readable rendering, e.g. "delta -12.34 milliV DC".
	// It is only computed when Sane is true; otherwise it is "Invalid Value".
	Text string

	// NumericValue is the display value with the SI multiplier applied, or
	// nil when the display is non-numeric or the multiplier is undefined.
	NumericValue *float64

	// Unit is the measurement unit tag (V, A, Ω, F, Hz, C, ...), or empty
	// when the unit flags were missing or conflicting.
	Unit string

	// Scale is the SI prefix in effect (micro, nano, milli, kilo, mega), or
	// empty when none.
	Scale string

	// ACDC is "AC", "DC" or empty.
	ACDC string

	// Delta is true when the meter is in relative (REL delta) mode.
	Delta bool

	// ReadErrors is the number of failed read attempts before this value was
	// obtained.
	ReadErrors int

	// Val is the cleaned-up display value (leading zeros and padding
	// stripped). Equal to RawVal when the display did not parse as a number.
	Val string

	// RawVal is the display string exactly as decoded.
	RawVal string

	// Flags holds the raw decoded annunciator sets.
	Flags FlagSet

	// RawBytes is the raw 14-byte frame that produced this value.
	RawBytes []byte
}

// InterpretReading applies the sanity rules to a decoded Reading and derives
// the numeric value and text rendering.
//
// It is a pure function of the Reading. Rule violations never abort
// interpretation: each one clears Sane and leaves its derived field undefined,
// and all remaining rules still run.
func InterpretReading(r Reading) *Value {
	v := &Value{
		Sane:       true,
		Text:       invalidText,
		ReadErrors: r.ReadErrors,
		Val:        r.Display,
		RawVal:     r.Display,
		Flags:      r.Flags,
		RawBytes:   r.RawBytes,
	}

	deltaPrefix := v.processFlags()
	multiplier, multiplierOK := v.processScale()
	v.processMeasure()
	v.processVal(multiplier, multiplierOK)

	if v.Sane {
		var text strings.Builder
		text.WriteString(deltaPrefix)
		text.WriteString(v.Val)
		text.WriteString(" ")
		text.WriteString(v.Scale)
		text.WriteString(v.Unit)
		if v.ACDC != "" {
			text.WriteString(" ")
			text.WriteString(v.ACDC)
		}
		v.Text = text.String()
	}

	return v
}

// processFlags applies the AC/DC and delta rules and returns the text prefix
// for delta mode.
func (v *Value) processFlags() (deltaPrefix string) {
	flags := &v.Flags

	if flags.Has("AC") && flags.Has("DC") {
		v.Sane = false
	}
	if flags.Has("AC") {
		v.ACDC = "AC"
	}
	if flags.Has("DC") {
		v.ACDC = "DC"
	}
	if flags.Has("REL delta") {
		v.Delta = true
		deltaPrefix = "delta "
	}

	return deltaPrefix
}

// processScale resolves the SI prefix. Zero scale flags means multiplier 1;
// more than one is a sanity violation and leaves the multiplier undefined.
func (v *Value) processScale() (multiplier float64, ok bool) {
	s := v.Flags.Scale

	switch len(s) {
	case 0:
		return 1, true
	case 1:
		m, known := measure.SIMagnitude(s[0])
		if !known {
			v.Sane = false
			return 0, false
		}
		v.Scale = s[0]

		return m, true
	default:
		v.Sane = false
		return 0, false
	}
}

// processMeasure requires exactly one unit flag.
func (v *Value) processMeasure() {
	m := v.Flags.Measure
	if len(m) != 1 {
		v.Sane = false
		return
	}

	v.Unit = m[0]
}

// processVal validates and parses the display string.
//
// An invalid-digit sentinel or a second decimal point is a sanity violation.
// A display that merely fails to parse as a number (e.g. " L  " during an
// open-circuit resistance reading) is NOT: the value stays non-numeric but the
// reading remains sane, matching the chipset's documented behavior.
func (v *Value) processVal(multiplier float64, multiplierOK bool) {
	raw := v.RawVal

	if strings.ContainsRune(raw, InvalidDigit) {
		v.Sane = false
		return
	}
	if strings.Count(raw, ".") > 1 {
		v.Sane = false
		return
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return
	}

	v.Val = strconv.FormatFloat(n, 'g', -1, 64)
	if multiplierOK {
		val := n * multiplier
		v.NumericValue = &val
	}
}

// Measurement converts the value into a typed physical quantity via the
// measure package.
//
// It returns nil when no numeric value is available, and a measure.Raw when
// the unit has no registered conversion.
func (v *Value) Measurement() measure.Measurement {
	if v.NumericValue == nil {
		return nil
	}

	return measure.Convert(v.Unit, *v.NumericValue)
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	return "<DmmValue: " + v.Text + ">"
}
