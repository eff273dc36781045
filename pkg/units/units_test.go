package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NamanBalaji/etaprogress/pkg/units"
)

func TestBits(t *testing.T) {
	tests := []struct {
		in       float64
		want     float64
		unit     string
		rateUnit string
	}{
		{0, 0, "b", "bps"},
		{1, 1, "b", "bps"},
		{999, 999, "b", "bps"},
		{1000, 1, "kb", "kbps"},
		{1_000_000, 1, "mb", "mbps"},
		{1_000_000_000, 1, "gb", "gbps"},
		{1_000_000_000_000, 1, "tb", "tbps"},
		{1_000_000_000_000_000, 1000, "tb", "tbps"},
	}

	var b units.Bits

	for _, tt := range tests {
		v, unit := b.Auto(tt.in)
		assert.InDelta(t, tt.want, v, 1e-9, "value %v", tt.in)
		assert.Equal(t, tt.unit, unit)

		v, unit = b.Rate(tt.in)
		assert.InDelta(t, tt.want, v, 1e-9, "rate %v", tt.in)
		assert.Equal(t, tt.rateUnit, unit)
	}
}

func TestBytes(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
		unit string
	}{
		{0, 0, "B"},
		{1, 1, "B"},
		{1000, 1000, "B"},
		{1024, 1, "KiB"},
		{1280, 1.25, "KiB"},
		{1_048_576, 1, "MiB"},
		{1_073_741_824, 1, "GiB"},
		{1_099_511_627_776, 1, "TiB"},
		{1_099_511_627_776_000, 1000, "TiB"},
	}

	var b units.Bytes

	for _, tt := range tests {
		v, unit := b.Auto(tt.in)
		assert.InDelta(t, tt.want, v, 1e-9, "value %v", tt.in)
		assert.Equal(t, tt.unit, unit)
	}
}

func TestBytes_AutoNoThousands(t *testing.T) {
	var b units.Bytes

	v, unit := b.AutoNoThousands(999)
	assert.Equal(t, 999.0, v)
	assert.Equal(t, "B", unit)

	v, unit = b.AutoNoThousands(1000)
	assert.InDelta(t, 0.9765625, v, 1e-12)
	assert.Equal(t, "KiB", unit)

	v, unit = b.AutoNoThousands(1_000_000)
	assert.InDelta(t, 0.95367, v, 1e-5)
	assert.Equal(t, "MiB", unit)

	v, unit = b.Rate(1_954_727)
	assert.InDelta(t, 1.864, v, 1e-3)
	assert.Equal(t, "MiB/s", unit)
}

func TestIn(t *testing.T) {
	assert.InDelta(t, 0.2744, units.Bytes{}.In(281, "KiB"), 1e-4)
	assert.Equal(t, 281.0, units.Bytes{}.In(281, "B"))
	assert.Equal(t, 2.5, units.Bits{}.In(2500, "kb"))
	assert.Equal(t, 42.0, units.Bits{}.In(42, "parsec"))
	assert.Equal(t, 42.0, units.None{}.In(42, "KiB"))
}

func TestNone(t *testing.T) {
	v, unit := units.None{}.Auto(1_000_000)
	assert.Equal(t, 1_000_000.0, v)
	assert.Equal(t, "", unit)

	_, unit = units.None{}.Rate(5)
	assert.Equal(t, "/s", unit)
}
