// Package units scales raw counts into bit or byte units for display.
package units

// System picks a display unit for a value.
type System interface {
	// Auto returns v in the largest unit it reaches at least one of.
	Auto(v float64) (float64, string)
	// Rate is Auto for a per-second value, with a rate suffix.
	Rate(v float64) (float64, string)
	// In returns v expressed in the named unit. Unknown names return v.
	In(v float64, unit string) float64
}

type scale struct {
	name string
	rate string
	size float64
}

func auto(v float64, scales []scale, threshold func(scale) float64) (float64, scale) {
	for i := len(scales) - 1; i > 0; i-- {
		if v >= threshold(scales[i]) {
			return v / scales[i].size, scales[i]
		}
	}

	return v, scales[0]
}

func in(v float64, unit string, scales []scale) float64 {
	for _, s := range scales {
		if s.name == unit || s.rate == unit {
			return v / s.size
		}
	}

	return v
}

func bySize(s scale) float64 { return s.size }

var bitScales = []scale{
	{name: "b", rate: "bps", size: 1},
	{name: "kb", rate: "kbps", size: 1e3},
	{name: "mb", rate: "mbps", size: 1e6},
	{name: "gb", rate: "gbps", size: 1e9},
	{name: "tb", rate: "tbps", size: 1e12},
}

// Bits uses decimal bit units: b, kb, mb, gb, tb.
type Bits struct{}

func (Bits) Auto(v float64) (float64, string) {
	scaled, s := auto(v, bitScales, bySize)
	return scaled, s.name
}

func (Bits) Rate(v float64) (float64, string) {
	scaled, s := auto(v, bitScales, bySize)
	return scaled, s.rate
}

func (Bits) In(v float64, unit string) float64 {
	return in(v, unit, bitScales)
}

var byteScales = []scale{
	{name: "B", rate: "B/s", size: 1},
	{name: "KiB", rate: "KiB/s", size: 1 << 10},
	{name: "MiB", rate: "MiB/s", size: 1 << 20},
	{name: "GiB", rate: "GiB/s", size: 1 << 30},
	{name: "TiB", rate: "TiB/s", size: 1 << 40},
}

// thousands promotes at powers of 1000 so a scaled value never needs four
// integer digits.
var thousands = map[string]float64{
	"KiB": 1e3,
	"MiB": 1e6,
	"GiB": 1e9,
	"TiB": 1e12,
}

func byThousands(s scale) float64 { return thousands[s.name] }

// Bytes uses binary byte units: B, KiB, MiB, GiB, TiB.
type Bytes struct{}

func (Bytes) Auto(v float64) (float64, string) {
	scaled, s := auto(v, byteScales, bySize)
	return scaled, s.name
}

// AutoNoThousands is Auto, except the next unit is used from 1000 of the
// current one on, so 1000 bytes is 0.98 KiB.
func (Bytes) AutoNoThousands(v float64) (float64, string) {
	scaled, s := auto(v, byteScales, byThousands)
	return scaled, s.name
}

// Rate promotes like AutoNoThousands.
func (Bytes) Rate(v float64) (float64, string) {
	scaled, s := auto(v, byteScales, byThousands)
	return scaled, s.rate
}

func (Bytes) In(v float64, unit string) float64 {
	return in(v, unit, byteScales)
}

// None leaves values unscaled.
type None struct{}

func (None) Auto(v float64) (float64, string) { return v, "" }

func (None) Rate(v float64) (float64, string) { return v, "/s" }

func (None) In(v float64, _ string) float64 { return v }
