// Package progress renders one-line progress bars backed by an ETA
// estimator.
//
// A Bar owns its Estimator and every strategy it renders with: fill styles,
// ETA text, units, number formatting and the spinner. String always returns
// exactly Width() display columns; the bar segment takes whatever room the
// surrounding text leaves and is dropped when that room cannot hold its
// borders.
package progress

import (
	"os"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/NamanBalaji/etaprogress/pkg/bar"
	"github.com/NamanBalaji/etaprogress/pkg/eta"
)

// DefaultWidth is used when the terminal size cannot be read.
const DefaultWidth = 80

type settings struct {
	width      int
	maxWidth   int
	widthFunc  func() int
	lang       language.Tag
	every      int
	windowSize int
	clock      func() time.Time
	style      *bar.Style
}

// Option configures a Bar.
type Option func(*settings)

// WithWidth fixes the rendered width instead of following the terminal.
func WithWidth(n int) Option {
	return func(s *settings) { s.width = n }
}

// WithMaxWidth caps the rendered width.
func WithMaxWidth(n int) Option {
	return func(s *settings) { s.maxWidth = n }
}

// WithWidthFunc reads the available width from f on every render.
func WithWidthFunc(f func() int) Option {
	return func(s *settings) { s.widthFunc = f }
}

// WithLanguage selects the locale used to group digits, e.g. 1,954,727 for
// English or 1.954.727 for German.
func WithLanguage(tag language.Tag) Option {
	return func(s *settings) { s.lang = tag }
}

// WithEvery recomputes the ETA every n-th update only. The rate shown in
// between is the rate over the last two updates.
func WithEvery(n int) Option {
	return func(s *settings) { s.every = n }
}

func WithWindowSize(n int) Option {
	return func(s *settings) { s.windowSize = n }
}

func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.clock = now }
}

// WithStyle overrides the characters of both the defined and undefined bar.
func WithStyle(style bar.Style) Option {
	return func(s *settings) { s.style = &style }
}

// TerminalWidth returns the width of stdout, or DefaultWidth when stdout is
// not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}

	return w
}

// layout formats everything around the bar segment.
type layout interface {
	render(b *Bar, width int) string
}

// Bar is a progress line for one task.
type Bar struct {
	est       *eta.Estimator
	layout    layout
	defined   bar.Filler
	undefined bar.Filler
	spinner   *Spinner
	printer   *message.Printer
	every     int
	clock     func() time.Time

	width     int
	maxWidth  int
	widthFunc func() int
}

func newBar(denominator float64, l layout, defined, undefined func(bar.Style) bar.Filler, style bar.Style, opts []Option) (*Bar, error) {
	s := settings{
		lang:  language.AmericanEnglish,
		every: 1,
		clock: time.Now,
	}

	for _, opt := range opts {
		opt(&s)
	}

	if s.style != nil {
		style = *s.style
	}

	estOpts := []eta.Option{eta.WithClock(s.clock), eta.WithEvery(s.every)}
	if s.windowSize > 0 {
		estOpts = append(estOpts, eta.WithWindowSize(s.windowSize))
	}

	est, err := eta.New(denominator, estOpts...)
	if err != nil {
		return nil, err
	}

	widthFunc := s.widthFunc
	if widthFunc == nil {
		widthFunc = TerminalWidth
	}

	return &Bar{
		est:       est,
		layout:    l,
		defined:   defined(style),
		undefined: undefined(style),
		spinner:   NewSpinner(),
		printer:   message.NewPrinter(s.lang),
		every:     max(s.every, 1),
		clock:     s.clock,
		width:     s.width,
		maxWidth:  s.maxWidth,
		widthFunc: widthFunc,
	}, nil
}

// Set records a new numerator at the current time.
func (b *Bar) Set(numerator float64) error {
	return b.est.Record(numerator)
}

// SetAt records a numerator observed at the given time.
func (b *Bar) SetAt(numerator float64, at time.Time) error {
	return b.est.RecordAt(numerator, at)
}

// ForceDone marks the task complete. Undefined tasks only finish this way.
func (b *Bar) ForceDone() {
	b.est.ForceDone()
}

func (b *Bar) Done() bool {
	return b.est.Done()
}

// Estimator exposes the underlying estimator for reading.
func (b *Bar) Estimator() *eta.Estimator {
	return b.est
}

// Rate is the rate the bar displays.
func (b *Bar) Rate() float64 {
	if b.every > 1 {
		return b.est.RateUnstable()
	}

	return b.est.Rate()
}

// Width returns the number of columns String renders.
func (b *Bar) Width() int {
	w := b.width
	if w <= 0 {
		w = b.widthFunc()
	}

	if b.maxWidth > 0 && w > b.maxWidth {
		w = b.maxWidth
	}

	return max(w, 0)
}

// String renders the bar. Each call advances the spinner and the animation
// of undefined bars.
func (b *Bar) String() string {
	width := b.Width()
	return fit(b.layout.render(b, width), width)
}

func (b *Bar) filler() bar.Filler {
	if b.est.Undefined() {
		return b.undefined
	}

	return b.defined
}

// compose places the bar segment between left and right, sized to fill
// width.
func (b *Bar) compose(width int, left, right string) string {
	room := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	return left + b.filler().Fill(room, b.est.Percent()) + right
}

// etaSeconds returns the seconds left when the estimate should be shown.
func (b *Bar) etaSeconds() (float64, bool) {
	if b.est.Undefined() {
		return 0, false
	}

	return b.est.ETASeconds()
}

func fit(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "")
	}

	return runewidth.FillRight(s, width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
