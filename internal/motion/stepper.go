package motion

import (
	"time"

	"github.com/oshokin/proximity-guard/internal/clock"
)

// DefaultMaxSpeed is the stepping rate used when none is configured, in steps per second.
const DefaultMaxSpeed = 500.0

// Coils drives the four windings of a unipolar stepper.
type Coils interface {
	// Energize applies the given pattern; false releases a winding.
	Energize(pattern [4]bool)
}

// fullStepSequence is the four-wire, one-phase-on sequence.
var fullStepSequence = [4][4]bool{
	{true, false, false, false},
	{false, true, false, false},
	{false, false, true, false},
	{false, false, false, true},
}

// released de-energizes every winding.
var released = [4]bool{}

// Stepper is a constant-speed stepper motor positioner.
// Run must be called frequently; each call makes at most one step.
type Stepper struct {
	coils Coils
	clock clock.Clock

	// stepInterval is the minimum time between two steps.
	stepInterval time.Duration

	position int64
	target   int64
	// phase indexes fullStepSequence.
	phase int
	// lastStep is when the last step was taken.
	lastStep time.Duration

	enabled bool
}

// New creates a disabled stepper at position zero.
func New(coils Coils, clk clock.Clock, maxSpeed float64) *Stepper {
	s := &Stepper{
		coils: coils,
		clock: clk,
	}

	s.SetMaxSpeed(maxSpeed)

	return s
}

// SetMaxSpeed sets the stepping rate in steps per second. Non-positive values fall back to DefaultMaxSpeed.
func (s *Stepper) SetMaxSpeed(stepsPerSecond float64) {
	if stepsPerSecond <= 0 {
		stepsPerSecond = DefaultMaxSpeed
	}

	s.stepInterval = time.Duration(float64(time.Second) / stepsPerSecond)
}

// StepInterval returns the minimum time between two steps.
func (s *Stepper) StepInterval() time.Duration {
	return s.stepInterval
}

// Enable energizes the windings of the current phase.
func (s *Stepper) Enable() {
	s.enabled = true
	s.coils.Energize(fullStepSequence[s.phase])
}

// Disable releases every winding. A disabled stepper does not move.
func (s *Stepper) Disable() {
	s.enabled = false
	s.coils.Energize(released)
}

// Enabled reports whether the windings are powered.
func (s *Stepper) Enabled() bool {
	return s.enabled
}

// MoveTo sets an absolute target. The first step towards it may be taken immediately.
func (s *Stepper) MoveTo(target int64) {
	if target == s.target {
		return
	}

	s.target = target
	s.lastStep = s.clock.Now() - s.stepInterval
}

// Run takes one step towards the target if the step interval has elapsed.
// It reports whether the target is still ahead.
func (s *Stepper) Run() bool {
	if s.DistanceToGo() == 0 {
		return false
	}

	if !s.enabled {
		return true
	}

	now := s.clock.Now()
	if !clock.Reached(now, s.lastStep, s.stepInterval) {
		return true
	}

	s.lastStep = now

	if s.DistanceToGo() > 0 {
		s.stepForward()
	} else {
		s.stepBackward()
	}

	return s.DistanceToGo() != 0
}

// DistanceToGo returns the signed number of steps left.
func (s *Stepper) DistanceToGo() int64 {
	return s.target - s.position
}

// CurrentPosition returns the absolute position.
func (s *Stepper) CurrentPosition() int64 {
	return s.position
}

// TargetPosition returns the absolute target.
func (s *Stepper) TargetPosition() int64 {
	return s.target
}

// SetCurrentPosition redefines the current position, cancelling any motion.
func (s *Stepper) SetCurrentPosition(position int64) {
	s.position = position
	s.target = position
}

func (s *Stepper) stepForward() {
	s.position++
	s.phase = (s.phase + 1) % len(fullStepSequence)
	s.coils.Energize(fullStepSequence[s.phase])
}

func (s *Stepper) stepBackward() {
	s.position--
	s.phase = (s.phase - 1 + len(fullStepSequence)) % len(fullStepSequence)
	s.coils.Energize(fullStepSequence[s.phase])
}
