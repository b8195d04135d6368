package measure

// siMagnitudes maps SI prefix names to their decimal magnitudes.
// The FS9721 display only ever announces micro, nano, milli, kilo and mega,
// but the table carries the neighboring prefixes for registered conversions
// that want them.
var siMagnitudes = map[string]float64{
	"pico":  1e-12,
	"nano":  1e-9,
	"micro": 1e-6,
	"milli": 1e-3,
	"kilo":  1e3,
	"mega":  1e6,
	"giga":  1e9,
}

// SIMagnitude returns the decimal magnitude of an SI prefix name, and whether
// the prefix is known.
func SIMagnitude(prefix string) (float64, bool) {
	m, ok := siMagnitudes[prefix]
	return m, ok
}
