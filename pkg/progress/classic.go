package progress

import (
	"fmt"
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/NamanBalaji/etaprogress/pkg/bar"
	"github.com/NamanBalaji/etaprogress/pkg/timefmt"
	"github.com/NamanBalaji/etaprogress/pkg/units"
)

// classic renders
//
//	 90% ( 90/100) [##############      ] eta 01:00 \
//	100 [     ?                         ] eta --:-- /
//
// With a unit system the counts are scaled, as in (0.27/1.95 KiB).
type classic struct {
	units units.System
	eta   timefmt.Formatter
}

// NewClassic returns a bar showing plain counts. A zero denominator makes an
// undefined bar.
func NewClassic(denominator float64, opts ...Option) (*Bar, error) {
	return newBar(denominator, newClassic(nil), solid, animated, bar.DefaultStyle(), opts)
}

// NewBits returns a classic bar with counts in decimal bit units.
func NewBits(denominator float64, opts ...Option) (*Bar, error) {
	return newBar(denominator, newClassic(units.Bits{}), solid, animated, bar.DefaultStyle(), opts)
}

// NewBytes returns a classic bar with counts in binary byte units.
func NewBytes(denominator float64, opts ...Option) (*Bar, error) {
	return newBar(denominator, newClassic(units.Bytes{}), solid, animated, bar.DefaultStyle(), opts)
}

func newClassic(system units.System) classic {
	return classic{
		units: system,
		eta:   timefmt.HMSOptions{AlwaysShowMinutes: true},
	}
}

func (c classic) render(b *Bar, width int) string {
	spin := b.spinner.Next()

	if b.est.Undefined() {
		return b.compose(width, c.numerator(b)+" ", " eta --:-- "+spin)
	}

	etaText := "--:--"
	if s, ok := b.etaSeconds(); ok {
		etaText = c.eta.Format(s)
	}

	left := fmt.Sprintf("%3d%% (%s) ", int(b.est.Percent()), c.fraction(b))

	return b.compose(width, left, " eta "+etaText+" "+spin)
}

func (c classic) fraction(b *Bar) string {
	d, n := b.est.Denominator(), b.est.Numerator()

	if c.units == nil {
		den := b.printer.Sprintf("%d", int64(d))
		return padLeft(b.printer.Sprintf("%d", int64(n)), runewidth.StringWidth(den)) + "/" + den
	}

	scaled, unit := c.units.Auto(d)
	whole := scaled == d

	format := func(v float64) string {
		if whole {
			return b.printer.Sprintf("%d", int64(v))
		}
		return b.printer.Sprintf("%.2f", v)
	}

	num := c.units.In(n, unit)
	if !b.est.Done() {
		// Never show the task complete before it is.
		num = math.Floor(num*100) / 100
	}

	den := format(scaled)

	return padLeft(format(num), runewidth.StringWidth(den)) + "/" + den + " " + unit
}

func (c classic) numerator(b *Bar) string {
	n := b.est.Numerator()

	if c.units == nil {
		return b.printer.Sprintf("%d", int64(n))
	}

	scaled, unit := c.units.Auto(n)
	if scaled == n {
		return b.printer.Sprintf("%d %s", int64(scaled), unit)
	}

	return b.printer.Sprintf("%.2f %s", scaled, unit)
}
