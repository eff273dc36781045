package progress

import (
	"fmt"
	"math"
	"strings"

	"github.com/NamanBalaji/etaprogress/pkg/bar"
	"github.com/NamanBalaji/etaprogress/pkg/timefmt"
	"github.com/NamanBalaji/etaprogress/pkg/units"
)

// wget renders
//
//	33% [========>             ] 35,248,370  9.46MiB/s  eta 2m 10s
//	100%[=====================>] 104,874,307 14.3MiB/s   in 9s
//	    [      <=>             ] 35,248,370  --.-KiB/s
type wget struct {
	eta timefmt.LettersOptions
}

// NewWget returns a bar modelled on the one wget prints while downloading.
// The denominator is in bytes.
func NewWget(denominator float64, opts ...Option) (*Bar, error) {
	return newBar(denominator, wget{eta: timefmt.LettersOptions{MaxUnits: 2}}, solid, animated, bar.WgetStyle(), opts)
}

const (
	wgetNumeratorWidth = 12
	wgetRateWidth      = 9
	wgetTailWidth      = 14
)

func (w wget) render(b *Bar, width int) string {
	percent := "    "
	if !b.est.Undefined() {
		percent = padRight(fmt.Sprintf("%2d%%", int(b.est.Percent())), 4)
	}

	done := b.est.Done()

	rate := b.Rate()
	if done {
		rate = b.est.RateOverall()
	}

	rateText := "--.-KiB/s"
	if rate > 0 {
		v, unit := units.Bytes{}.Rate(rate)
		rateText = threeDigits(b, v) + unit
	}

	tail := strings.Repeat(" ", wgetTailWidth)
	if done {
		tail = "   in " + padRight(w.eta.Format(b.est.Elapsed().Seconds()), wgetTailWidth-6)
	} else if s, ok := b.etaSeconds(); ok && !b.est.Stalled() {
		tail = "  eta " + padRight(w.eta.Format(s), wgetTailWidth-6)
	}

	// Counts of a gigabyte and more outgrow the column; keep one space
	// before the rate.
	numerator := b.printer.Sprintf("%d", int64(b.est.Numerator()))

	right := " " +
		padRight(numerator, max(wgetNumeratorWidth, len(numerator)+1)) +
		padLeft(rateText, wgetRateWidth) +
		tail

	return b.compose(width, percent, right)
}

// threeDigits shows v with three significant digits, truncating rather than
// rounding so a rate never reads higher than measured.
func threeDigits(b *Bar, v float64) string {
	switch {
	case v >= 100:
		return b.printer.Sprintf("%d", int64(v))
	case v >= 10:
		return b.printer.Sprintf("%.1f", math.Floor(v*10)/10)
	default:
		return b.printer.Sprintf("%.2f", math.Floor(v*100)/100)
	}
}
