package timefmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NamanBalaji/etaprogress/pkg/timefmt"
)

var seconds = []float64{0, 9, 59, 60, 61, 3599, 3600, 3601, 3661, 604799, 604800, 604801}

func TestHMS(t *testing.T) {
	tests := []struct {
		name string
		opts timefmt.HMSOptions
		want []string
	}{
		{
			name: "default",
			want: []string{"00", "09", "59", "01:00", "01:01", "59:59", "1:00:00", "1:00:01", "1:01:01", "167:59:59", "168:00:00", "168:00:01"},
		},
		{
			name: "always show minutes",
			opts: timefmt.HMSOptions{AlwaysShowMinutes: true},
			want: []string{"00:00", "00:09", "00:59", "01:00", "01:01", "59:59", "1:00:00", "1:00:01", "1:01:01", "167:59:59", "168:00:00", "168:00:01"},
		},
		{
			name: "always show hours",
			opts: timefmt.HMSOptions{AlwaysShowHours: true},
			want: []string{"0:00:00", "0:00:09", "0:00:59", "0:01:00", "0:01:01", "0:59:59", "1:00:00", "1:00:01", "1:01:01", "167:59:59", "168:00:00", "168:00:01"},
		},
		{
			name: "hours leading zero",
			opts: timefmt.HMSOptions{HoursLeadingZero: true},
			want: []string{"00", "09", "59", "01:00", "01:01", "59:59", "01:00:00", "01:00:01", "01:01:01", "167:59:59", "168:00:00", "168:00:01"},
		},
		{
			name: "always show hours with leading zero",
			opts: timefmt.HMSOptions{AlwaysShowHours: true, HoursLeadingZero: true},
			want: []string{"00:00:00", "00:00:09", "00:00:59", "00:01:00", "00:01:01", "00:59:59", "01:00:00", "01:00:01", "01:01:01", "167:59:59", "168:00:00", "168:00:01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, s := range seconds {
				assert.Equal(t, tt.want[i], timefmt.HMS(s, tt.opts), "seconds %v", s)
				assert.Equal(t, tt.want[i], tt.opts.Format(s), "seconds %v", s)
			}
		})
	}
}

func TestHMS_RoundsRemainderUp(t *testing.T) {
	assert.Equal(t, "01", timefmt.HMS(0.2, timefmt.HMSOptions{}))
	assert.Equal(t, "05", timefmt.HMS(4.01, timefmt.HMSOptions{}))
	assert.Equal(t, "00", timefmt.HMS(-3, timefmt.HMSOptions{}))
}

func TestLetters(t *testing.T) {
	tests := []struct {
		name string
		opts timefmt.LettersOptions
		want []string
	}{
		{
			name: "default",
			want: []string{"0s", "9s", "59s", "1m", "1m 1s", "59m 59s", "1h", "1h 1s", "1h 1m 1s", "6d 23h 59m 59s", "1w", "1w 1s"},
		},
		{
			name: "leading zero",
			opts: timefmt.LettersOptions{LeadingZero: true},
			want: []string{"00s", "09s", "59s", "01m", "01m 01s", "59m 59s", "1h", "1h 01s", "1h 01m 01s", "6d 23h 59m 59s", "1w", "1w 01s"},
		},
		{
			name: "shortest",
			opts: timefmt.LettersOptions{Shortest: true},
			want: []string{"0s", "9s", "59s", "1m", "1m", "59m", "1h", "1h", "1h", "6d", "1w", "1w"},
		},
		{
			name: "shortest with leading zero",
			opts: timefmt.LettersOptions{Shortest: true, LeadingZero: true},
			want: []string{"00s", "09s", "59s", "01m", "01m", "59m", "1h", "1h", "1h", "6d", "1w", "1w"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, s := range seconds {
				assert.Equal(t, tt.want[i], timefmt.Letters(s, tt.opts), "seconds %v", s)
				assert.Equal(t, tt.want[i], tt.opts.Format(s), "seconds %v", s)
			}
		})
	}
}

func TestLetters_MaxUnits(t *testing.T) {
	opts := timefmt.LettersOptions{MaxUnits: 2}

	assert.Equal(t, "1h 6m", timefmt.Letters(3996, opts))
	assert.Equal(t, "1h 1s", timefmt.Letters(3601, opts))
	assert.Equal(t, "6d 23h", timefmt.Letters(604799, opts))
	assert.Equal(t, "5s", timefmt.Letters(4.5, opts))
}

func TestFormatterFunc(t *testing.T) {
	var f timefmt.Formatter = timefmt.FormatterFunc(func(float64) string { return "soon" })
	assert.Equal(t, "soon", f.Format(12))
}
