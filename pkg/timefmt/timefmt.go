// Package timefmt turns a number of seconds remaining into short human
// readable strings.
package timefmt

import (
	"fmt"
	"math"
	"strings"
)

const (
	minute = 60
	hour   = 60 * minute
	day    = 24 * hour
	week   = 7 * day
)

// Formatter renders seconds remaining.
type Formatter interface {
	Format(seconds float64) string
}

// FormatterFunc adapts a plain function to Formatter.
type FormatterFunc func(seconds float64) string

func (f FormatterFunc) Format(seconds float64) string { return f(seconds) }

type HMSOptions struct {
	AlwaysShowHours   bool
	AlwaysShowMinutes bool
	HoursLeadingZero  bool
}

func (o HMSOptions) Format(seconds float64) string { return HMS(seconds, o) }

// HMS renders seconds as h:mm:ss, mm:ss or ss. Hours are not wrapped into
// days, so a week is 168:00:00.
func HMS(seconds float64, opts HMSOptions) string {
	hours, minutes, secs := split(seconds, hour, minute)

	switch {
	case hours > 0 || opts.AlwaysShowHours:
		if opts.HoursLeadingZero {
			return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
		}
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	case minutes > 0 || opts.AlwaysShowMinutes:
		return fmt.Sprintf("%02d:%02d", minutes, secs)
	default:
		return fmt.Sprintf("%02d", secs)
	}
}

type LettersOptions struct {
	// Shortest keeps only the largest non-zero unit.
	Shortest bool
	// LeadingZero pads minutes and seconds to two digits.
	LeadingZero bool
	// MaxUnits keeps at most this many of the largest units. Zero keeps all.
	MaxUnits int
}

func (o LettersOptions) Format(seconds float64) string { return Letters(seconds, o) }

// Letters renders seconds as "1w 2d 3h 4m 5s". Zero units are left out, so an
// hour and a second is "1h 1s".
func Letters(seconds float64, opts LettersOptions) string {
	if seconds == 0 {
		if opts.LeadingZero {
			return "00s"
		}
		return "0s"
	}

	weeks, days, hours, minutes, secs := splitLetters(seconds)

	pad := func(v int) string {
		if opts.LeadingZero {
			return fmt.Sprintf("%02d", v)
		}
		return fmt.Sprintf("%d", v)
	}

	if opts.Shortest {
		switch {
		case weeks > 0:
			return fmt.Sprintf("%dw", weeks)
		case days > 0:
			return fmt.Sprintf("%dd", days)
		case hours > 0:
			return fmt.Sprintf("%dh", hours)
		case minutes > 0:
			return pad(minutes) + "m"
		default:
			return pad(secs) + "s"
		}
	}

	var parts []string
	if weeks > 0 {
		parts = append(parts, fmt.Sprintf("%dw", weeks))
	}
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, pad(minutes)+"m")
	}
	if secs > 0 || len(parts) == 0 {
		parts = append(parts, pad(secs)+"s")
	}

	if opts.MaxUnits > 0 && len(parts) > opts.MaxUnits {
		parts = parts[:opts.MaxUnits]
	}

	return strings.Join(parts, " ")
}

// split peels whole units off seconds largest first. The remainder is rounded
// up, so 0.2 seconds left still shows as one.
func split(seconds float64, sizes ...int) (int, int, int) {
	parts := peel(seconds, sizes...)
	return parts[0], parts[1], parts[2]
}

func splitLetters(seconds float64) (int, int, int, int, int) {
	p := peel(seconds, week, day, hour, minute)
	return p[0], p[1], p[2], p[3], p[4]
}

func peel(seconds float64, sizes ...int) []int {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}

	parts := make([]int, len(sizes)+1)
	rest := seconds

	for i, size := range sizes {
		if rest >= float64(size) {
			parts[i] = int(rest / float64(size))
			rest -= float64(parts[i] * size)
		}
	}

	parts[len(sizes)] = int(math.Ceil(rest))

	return parts
}
