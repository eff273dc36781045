package progress

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/NamanBalaji/etaprogress/pkg/bar"
	"github.com/NamanBalaji/etaprogress/pkg/timefmt"
	"github.com/NamanBalaji/etaprogress/pkg/units"
)

// yum renders
//
//	file.iso  29% [==-       ]   491 B/s |   593 B  00:00:03 ETA
//	file.iso                             | 2.0 KiB  00:00:03
type yum struct {
	name string
	eta  timefmt.HMSOptions
}

// NewYum returns a bar modelled on the one yum prints per package. The
// denominator is in bytes.
func NewYum(name string, denominator float64, opts ...Option) (*Bar, error) {
	l := yum{
		name: name,
		eta:  timefmt.HMSOptions{AlwaysShowHours: true, HoursLeadingZero: true},
	}

	return newBar(denominator, l, doubled, blank, bar.DoubledStyle(), opts)
}

const (
	yumNameWidth = 8
	yumRateWidth = 9
	yumSizeWidth = 7
	yumTailWidth = 14
)

func (y yum) render(b *Bar, width int) string {
	v, unit := units.Bytes{}.AutoNoThousands(b.est.Numerator())
	size := padLeft(short(b, v)+" "+unit, yumSizeWidth)

	if b.est.Done() {
		tail := "| " + size + "  " + padRight(y.eta.Format(b.est.Elapsed().Seconds()), yumTailWidth-2)
		return padRight(y.name, width-runewidth.StringWidth(tail)) + tail
	}

	name := padRight(runewidth.Truncate(y.name, yumNameWidth, ""), yumNameWidth)

	percent := "    "
	if !b.est.Undefined() {
		percent = fmt.Sprintf("%3d%%", int(b.est.Percent()))
	}

	rateText := "--- KiB/s"
	if rate := b.Rate(); rate > 0 {
		rv, runit := units.Bytes{}.Rate(rate)
		rateText = short(b, rv) + " " + runit
	}

	tail := strings.Repeat(" ", yumTailWidth)
	if s, ok := b.etaSeconds(); ok && !b.est.Stalled() {
		tail = "  " + y.eta.Format(s) + " ETA"
	}

	right := " " + padLeft(rateText, yumRateWidth) + " | " + size + tail

	return b.compose(width, name+" "+percent+" ", right)
}

// short fits v in three columns: one decimal below ten, whole numbers above.
func short(b *Bar, v float64) string {
	if v < 10 {
		return b.printer.Sprintf("%.1f", v)
	}

	return b.printer.Sprintf("%d", int64(v))
}
