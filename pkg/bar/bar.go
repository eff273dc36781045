// Package bar draws the bracketed part of a progress line.
//
// Every Filler takes the width of the whole bar, borders included, and
// returns a string of exactly that many display columns. A width too small
// to hold the borders yields an empty string.
package bar

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Filler draws a bar of the given width for percent in [0, 100].
type Filler interface {
	Fill(width int, percent float64) string
}

// Style holds the characters a bar is drawn with. Empty, Full, Leading and
// Half must each occupy a single column.
type Style struct {
	LeftBorder  string
	RightBorder string
	Empty       string
	Full        string
	Leading     string
	Half        string
	Marker      string
}

// DefaultStyle is "[###   ]" with a "?" marker for undefined bars.
func DefaultStyle() Style {
	return Style{
		LeftBorder:  "[",
		RightBorder: "]",
		Empty:       " ",
		Full:        "#",
		Leading:     "#",
		Half:        "-",
		Marker:      "?",
	}
}

// DoubledStyle is "[===-  ]".
func DoubledStyle() Style {
	s := DefaultStyle()
	s.Full = "="
	s.Leading = "="
	s.Half = "-"

	return s
}

// WgetStyle is "[===>  ]" with a bouncing "<=>" for undefined bars.
func WgetStyle() Style {
	s := DefaultStyle()
	s.Full = "="
	s.Leading = ">"
	s.Marker = "<=>"

	return s
}

func (s Style) borders() int {
	return runewidth.StringWidth(s.LeftBorder) + runewidth.StringWidth(s.RightBorder)
}

func (s Style) wrap(inner string) string {
	return s.LeftBorder + inner + s.RightBorder
}

// Bar fills whole units and draws the last one with Leading.
type Bar struct {
	Style Style
}

func NewBar(style Style) *Bar {
	return &Bar{Style: style}
}

func (b *Bar) Fill(width int, percent float64) string {
	inner := width - b.Style.borders()
	if inner < 0 {
		return ""
	}

	units := int(clamp(percent) * 0.01 * float64(inner))
	if units == 0 {
		return b.Style.wrap(strings.Repeat(b.Style.Empty, inner))
	}

	return b.Style.wrap(
		strings.Repeat(b.Style.Full, units-1) +
			b.Style.Leading +
			strings.Repeat(b.Style.Empty, inner-units),
	)
}

// Doubled draws a Half character for a remaining fraction of at least half
// a unit.
type Doubled struct {
	Style Style
}

func NewDoubled(style Style) *Doubled {
	return &Doubled{Style: style}
}

func (d *Doubled) Fill(width int, percent float64) string {
	inner := width - d.Style.borders()
	if inner < 0 {
		return ""
	}

	exact := clamp(percent) * 0.01 * float64(inner)
	if exact < 0.5 {
		return d.Style.wrap(strings.Repeat(d.Style.Empty, inner))
	}

	units := int(exact)
	if exact-float64(units) >= 0.5 {
		return d.Style.wrap(
			strings.Repeat(d.Style.Full, units) +
				d.Style.Half +
				strings.Repeat(d.Style.Empty, inner-units-1),
		)
	}

	return d.Style.wrap(
		strings.Repeat(d.Style.Full, units) +
			strings.Repeat(d.Style.Empty, inner-units),
	)
}

// UndefinedEmpty is a blank bar for tasks of unknown size.
type UndefinedEmpty struct {
	Style Style
}

func NewUndefinedEmpty(style Style) *UndefinedEmpty {
	return &UndefinedEmpty{Style: style}
}

func (u *UndefinedEmpty) Fill(width int, _ float64) string {
	inner := width - u.Style.borders()
	if inner < 0 {
		return ""
	}

	return u.Style.wrap(strings.Repeat(u.Style.Empty, inner))
}

// UndefinedAnimated bounces Marker between the borders, one column per call.
// It keeps its position between calls, so an instance belongs to a single
// bar.
type UndefinedAnimated struct {
	Style Style

	position  int
	direction int
}

func NewUndefinedAnimated(style Style) *UndefinedAnimated {
	return &UndefinedAnimated{
		Style:     style,
		position:  -1,
		direction: 1,
	}
}

func (u *UndefinedAnimated) Fill(width int, _ float64) string {
	free := width - u.Style.borders() - runewidth.StringWidth(u.Style.Marker)
	if free < 0 {
		return ""
	}

	u.position += u.direction

	switch {
	case u.position <= 0 && u.direction < 0:
		u.position = 0
		u.direction = 1
	case u.position > free:
		u.position = max(free-1, 0)
		u.direction = -1
	}

	if u.position < 0 {
		u.position = 0
	}

	return u.Style.wrap(
		strings.Repeat(u.Style.Empty, u.position) +
			u.Style.Marker +
			strings.Repeat(u.Style.Empty, free-u.position),
	)
}

func clamp(percent float64) float64 {
	switch {
	case percent < 0 || math.IsNaN(percent):
		return 0
	case percent > 100:
		return 100
	default:
		return percent
	}
}
