package progress

// Spinner cycles through a fixed set of frames, one per call to Next.
type Spinner struct {
	frames []string
	next   int
}

// NewSpinner returns a spinner over frames, or over / - \ | when none are
// given.
func NewSpinner(frames ...string) *Spinner {
	if len(frames) == 0 {
		frames = []string{"/", "-", `\`, "|"}
	}

	return &Spinner{frames: frames}
}

func (s *Spinner) Next() string {
	frame := s.frames[s.next]
	s.next = (s.next + 1) % len(s.frames)

	return frame
}
