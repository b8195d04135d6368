// Package measure provides typed physical quantities for multimeter readings
// and the SI prefix magnitudes used to scale them.
//
// The unit-tag to quantity mapping is an open registry: the standard
// multimeter units (V, A, Ω, F, Hz, C) are preloaded, and callers may register
// conversions for additional units. The registry is safe for concurrent use,
// so registration can happen while readings are being interpreted.
package measure

import (
	"math"
	"strconv"

	"github.com/puzpuzpuz/xsync/v3"
)

// Measurement is a typed physical quantity derived from a meter reading.
type Measurement interface {
	// Unit returns the quantity's unit symbol.
	Unit() string
	// Value returns the numeric magnitude in base units.
	Value() float64
	// String returns a human-readable rendering, e.g. "-12.34 V".
	String() string
}

// Voltage is an electric potential in volts.
type Voltage float64

func (v Voltage) Unit() string   { return "V" }
func (v Voltage) Value() float64 { return float64(v) }
func (v Voltage) String() string { return format(float64(v), "V") }

// Current is an electric current in amperes.
type Current float64

func (c Current) Unit() string   { return "A" }
func (c Current) Value() float64 { return float64(c) }
func (c Current) String() string { return format(float64(c), "A") }

// Resistance is an electrical resistance in ohms.
type Resistance float64

func (r Resistance) Unit() string   { return "Ω" }
func (r Resistance) Value() float64 { return float64(r) }
func (r Resistance) String() string { return format(float64(r), "Ω") }

// Capacitance is an electrical capacitance in farads.
type Capacitance float64

func (c Capacitance) Unit() string   { return "F" }
func (c Capacitance) Value() float64 { return float64(c) }
func (c Capacitance) String() string { return format(float64(c), "F") }

// Frequency is a frequency in hertz.
type Frequency float64

func (f Frequency) Unit() string   { return "Hz" }
func (f Frequency) Value() float64 { return float64(f) }
func (f Frequency) String() string { return format(float64(f), "Hz") }

// Temperature is a temperature in degrees Celsius.
type Temperature float64

func (t Temperature) Unit() string   { return "C" }
func (t Temperature) Value() float64 { return float64(t) }
func (t Temperature) String() string { return format(float64(t), "C") }

// Raw is a bare numeric measurement for unit tags without a registered
// conversion (e.g. diode test or duty-cycle readings).
type Raw float64

func (r Raw) Unit() string   { return "" }
func (r Raw) Value() float64 { return float64(r) }
func (r Raw) String() string { return strconv.FormatFloat(float64(r), 'g', -1, 64) }

// Converter builds a Measurement from a numeric magnitude.
type Converter func(v float64) Measurement

var converters = func() *xsync.MapOf[string, Converter] {
	m := xsync.NewMapOf[string, Converter]()
	m.Store("V", func(v float64) Measurement { return Voltage(v) })
	m.Store("A", func(v float64) Measurement { return Current(v) })
	m.Store("Ω", func(v float64) Measurement { return Resistance(v) })
	m.Store("F", func(v float64) Measurement { return Capacitance(v) })
	m.Store("Hz", func(v float64) Measurement { return Frequency(v) })
	m.Store("C", func(v float64) Measurement { return Temperature(v) })

	return m
}()

// Register adds or replaces the conversion for a unit tag.
func Register(unit string, fn Converter) {
	converters.Store(unit, fn)
}

// Convert turns a unit tag and numeric magnitude into a typed Measurement.
//
// An unknown unit yields the bare number as a Raw; a NaN magnitude yields nil
// (no measurement available).
func Convert(unit string, v float64) Measurement {
	if math.IsNaN(v) {
		return nil
	}

	fn, ok := converters.Load(unit)
	if !ok {
		return Raw(v)
	}

	return fn(v)
}

func format(v float64, unit string) string {
	return strconv.FormatFloat(v, 'g', -1, 64) + " " + unit
}
