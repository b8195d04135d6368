package fs9721

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/go-dmm/measure"
)

// interpret decodes and interprets a wire frame in one step.
func interpret(t *testing.T, buf []byte) *Value {
	t.Helper()

	frame, err := ParseFrame(buf)
	require.NoError(t, err)

	return InterpretReading(DecodeFrame(frame))
}

func TestInterpretReading_RoundTrip(t *testing.T) {
	require := require.New(t)

	val := interpret(t, voltageFrame())

	require.True(val.Sane)
	require.NotNil(val.NumericValue)
	require.InDelta(-12.34, *val.NumericValue, 1e-9)
	require.Equal("-12.34 V", val.Text)
	require.Equal("V", val.Unit)
	require.Equal("", val.Scale)
	require.Equal("", val.ACDC)
	require.False(val.Delta)
}

func TestInterpretReading_ACDC(t *testing.T) {
	tests := []struct {
		desc     string
		nib1     byte
		wantSane bool
		wantACDC string
	}{
		{desc: "AC only", nib1: nibAC, wantSane: true, wantACDC: "AC"},
		{desc: "DC only", nib1: nibDC, wantSane: true, wantACDC: "DC"},
		{desc: "both AC and DC", nib1: nibAC | nibDC, wantSane: false, wantACDC: "DC"},
		{desc: "neither", nib1: 0, wantSane: true, wantACDC: ""},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			buf := displayFrame([4]byte{'1', '2', '3', '4'}, nil, map[int]byte{1: tt.nib1, 13: nibVolt})
			val := interpret(t, buf)

			assert.Equal(t, tt.wantSane, val.Sane)
			assert.Equal(t, tt.wantACDC, val.ACDC)
		})
	}
}

func TestInterpretReading_ACDCSuffix(t *testing.T) {
	buf := displayFrame([4]byte{'1', '2', '3', '4'}, nil, map[int]byte{1: nibDC, 13: nibVolt})
	val := interpret(t, buf)

	require.True(t, val.Sane)
	require.Equal(t, "1234 V DC", val.Text)
}

func TestInterpretReading_Delta(t *testing.T) {
	buf := displayFrame(
		[4]byte{'1', '2', '3', '4'},
		map[int]bool{2: true},
		map[int]byte{12: nibRelDelta | nibOhm},
	)
	val := interpret(t, buf)

	require.True(t, val.Sane)
	require.True(t, val.Delta)
	require.Equal(t, "delta 1.234 Ω", val.Text)
}

func TestInterpretReading_Scale(t *testing.T) {
	tests := []struct {
		desc        string
		flagNibbles map[int]byte
		wantSane    bool
		wantScale   string
		wantNumeric *float64
		wantText    string
	}{
		{
			desc:        "no scale",
			flagNibbles: map[int]byte{13: nibVolt},
			wantSane:    true,
			wantScale:   "",
			wantNumeric: f64(1234),
			wantText:    "1234 V",
		},
		{
			desc:        "milli",
			flagNibbles: map[int]byte{11: nibMilli, 13: nibVolt},
			wantSane:    true,
			wantScale:   "milli",
			wantNumeric: f64(1.234),
			wantText:    "1234 milliV",
		},
		{
			desc:        "kilo",
			flagNibbles: map[int]byte{10: nibKilo, 13: nibVolt},
			wantSane:    true,
			wantScale:   "kilo",
			wantNumeric: f64(1234000),
			wantText:    "1234 kiloV",
		},
		{
			desc:        "two scale flags",
			flagNibbles: map[int]byte{10: nibKilo, 11: nibMilli, 13: nibVolt},
			wantSane:    false,
			wantScale:   "",
			wantNumeric: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			buf := displayFrame([4]byte{'1', '2', '3', '4'}, nil, tt.flagNibbles)
			val := interpret(t, buf)

			assert.Equal(t, tt.wantSane, val.Sane)
			assert.Equal(t, tt.wantScale, val.Scale)
			if tt.wantNumeric == nil {
				assert.Nil(t, val.NumericValue)
			} else {
				require.NotNil(t, val.NumericValue)
				assert.InDelta(t, *tt.wantNumeric, *val.NumericValue, 1e-9)
			}
			if tt.wantSane {
				assert.Equal(t, tt.wantText, val.Text)
			} else {
				assert.Equal(t, "Invalid Value", val.Text)
			}
		})
	}
}

func TestInterpretReading_MeasureFlags(t *testing.T) {
	tests := []struct {
		desc        string
		flagNibbles map[int]byte
		wantSane    bool
		wantUnit    string
	}{
		{desc: "no unit", flagNibbles: nil, wantSane: false, wantUnit: ""},
		{desc: "one unit", flagNibbles: map[int]byte{13: nibVolt}, wantSane: true, wantUnit: "V"},
		{desc: "two units", flagNibbles: map[int]byte{12: nibOhm, 13: nibVolt}, wantSane: false, wantUnit: ""},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			buf := displayFrame([4]byte{'1', '2', '3', '4'}, nil, tt.flagNibbles)
			val := interpret(t, buf)

			assert.Equal(t, tt.wantSane, val.Sane)
			assert.Equal(t, tt.wantUnit, val.Unit)
		})
	}
}

func TestInterpretReading_InvalidDigit(t *testing.T) {
	require := require.New(t)

	var nib [FrameSize]byte
	nib[1] = 0x04 // undefined segment pattern in digit 1
	nib[12] = nibVolt

	frame, err := ParseFrame(frameBytes(nib))
	require.NoError(err)

	val := InterpretReading(DecodeFrame(frame))
	require.False(val.Sane)
	require.Nil(val.NumericValue)
	require.Equal("Invalid Value", val.Text)
	require.Equal("X   ", val.RawVal)
}

func TestInterpretReading_MultipleDecimalPoints(t *testing.T) {
	buf := displayFrame(
		[4]byte{'1', '2', '3', '4'},
		map[int]bool{2: true, 3: true},
		map[int]byte{13: nibVolt},
	)
	val := interpret(t, buf)

	require.False(t, val.Sane)
	require.Nil(t, val.NumericValue)
	require.Equal(t, "1.2.34", val.RawVal)
}

// A display that merely fails to parse as a number keeps the reading sane:
// the overload indicator "0L" and blank displays are valid per the protocol.
func TestInterpretReading_NonNumericDisplayStaysSane(t *testing.T) {
	require := require.New(t)

	buf := displayFrame([4]byte{' ', '0', 'L', ' '}, nil, map[int]byte{12: nibOhm})
	val := interpret(t, buf)

	require.True(val.Sane, "unparseable display must not fail sanity checks")
	require.Nil(val.NumericValue)
	require.Equal(" 0L ", val.Val, "display stays raw when it does not parse")
	require.Equal(" 0L  Ω", val.Text)
}

func TestInterpretReading_NormalizesDisplayValue(t *testing.T) {
	// "0.100" parses to 0.1; the rendered value drops the padding zeros.
	buf := displayFrame([4]byte{'0', '1', '0', '0'}, map[int]bool{2: true}, map[int]byte{13: nibVolt})
	val := interpret(t, buf)

	require.True(t, val.Sane)
	require.Equal(t, "0.100", val.RawVal)
	require.Equal(t, "0.1", val.Val)
	require.Equal(t, "0.1 V", val.Text)
}

func TestValue_Measurement(t *testing.T) {
	tests := []struct {
		desc string
		buf  []byte
		want measure.Measurement
	}{
		{
			desc: "voltage",
			buf:  voltageFrame(),
			want: measure.Voltage(-12.34),
		},
		{
			desc: "unknown unit falls back to raw",
			buf: displayFrame([4]byte{'5', '0', ' ', ' '}, nil,
				map[int]byte{11: 0x04 /* % (duty-cycle) */}),
			want: measure.Raw(50),
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			val := interpret(t, tt.buf)
			require.NotNil(t, val.NumericValue)
			assert.Equal(t, tt.want, val.Measurement())
		})
	}
}

func TestValue_Measurement_NoNumericValue(t *testing.T) {
	buf := displayFrame([4]byte{' ', '0', 'L', ' '}, nil, map[int]byte{12: nibOhm})
	val := interpret(t, buf)

	require.Nil(t, val.NumericValue)
	require.Nil(t, val.Measurement())
}

func f64(v float64) *float64 { return &v }
