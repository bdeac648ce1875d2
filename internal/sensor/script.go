package sensor

import (
	"errors"
	"math"
)

// ErrNoSamples is returned when a script has nothing to replay.
var ErrNoSamples = errors.New("script has no samples")

// Script replays a fixed sequence of samples. The current sample is held
// until Advance is called; past the end it reports +Inf.
type Script struct {
	samples []float64
	index   int
}

// NewScript creates a script positioned on its first sample.
func NewScript(samples []float64) (*Script, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	return &Script{
		samples: append([]float64(nil), samples...),
	}, nil
}

// Distance returns the current sample.
func (s *Script) Distance() float64 {
	if s.Done() {
		return math.Inf(1)
	}

	return s.samples[s.index]
}

// Advance moves to the next sample and reports whether one is left.
func (s *Script) Advance() bool {
	if !s.Done() {
		s.index++
	}

	return !s.Done()
}

// Index returns the position of the current sample.
func (s *Script) Index() int {
	return s.index
}

// Len returns the number of samples.
func (s *Script) Len() int {
	return len(s.samples)
}

// Done reports whether every sample was consumed.
func (s *Script) Done() bool {
	return s.index >= len(s.samples)
}
