package door

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeMotor is a Motor that moves one step per Run call.
type fakeMotor struct {
	// position is the current absolute position.
	position int64
	// target is the commanded absolute position.
	target int64
	// enabled reports whether outputs are powered.
	enabled bool
	// stalled makes Run a no-op.
	stalled bool
	// moves records every MoveTo target.
	moves []int64
	// runs counts Run calls.
	runs int
}

// Enable powers the fake outputs.
func (f *fakeMotor) Enable() { f.enabled = true }

// Disable releases the fake outputs.
func (f *fakeMotor) Disable() { f.enabled = false }

// MoveTo records and sets a new target.
func (f *fakeMotor) MoveTo(target int64) {
	f.target = target
	f.moves = append(f.moves, target)
}

// Run moves one step towards the target unless stalled.
func (f *fakeMotor) Run() bool {
	f.runs++

	if f.stalled {
		return f.position != f.target
	}

	switch {
	case f.position < f.target:
		f.position++
	case f.position > f.target:
		f.position--
	}

	return f.position != f.target
}

// DistanceToGo returns the remaining steps.
func (f *fakeMotor) DistanceToGo() int64 { return f.target - f.position }

// CurrentPosition returns the fake position.
func (f *fakeMotor) CurrentPosition() int64 { return f.position }

// newTestDoor builds a door with the thresholds used across these tests.
func newTestDoor(t *testing.T) (*Door, *fakeMotor) {
	t.Helper()

	motor := new(fakeMotor)
	d := New(motor)
	d.SetOpenAngle(90)
	d.SetClosedAngle(0)
	d.SetStepsPerRevolution(200)
	d.SetOpenDistance(15)
	d.SetCloseDistance(25)

	return d, motor
}

// runUntil updates the door with distance until it reaches want or the cycle budget is spent.
func runUntil(t *testing.T, d *Door, distance float64, want State, budget int) []State {
	t.Helper()

	var seen []State

	for range budget {
		d.Update(distance)

		if len(seen) == 0 || seen[len(seen)-1] != d.State() {
			seen = append(seen, d.State())
		}

		if d.State() == want {
			return seen
		}
	}

	require.Failf(t, "state not reached", "want %s, got %s", want, d.State())

	return seen
}

// TestDoor_Scenario drives a full open and close cycle and checks reported angles.
func TestDoor_Scenario(t *testing.T) {
	t.Parallel()

	d, motor := newTestDoor(t)

	d.Update(30)
	require.Equal(t, StateClosed, d.State())
	require.Equal(t, "Closed", d.StateText())

	var seen []State

	seen = append(seen, d.State())
	seen = append(seen, runUntil(t, d, 10, StateOpen, 100)...)

	require.InDelta(t, 90.0, d.Angle(), 1e-9)
	require.False(t, motor.enabled)

	seen = append(seen, runUntil(t, d, 30, StateClosed, 100)...)

	require.Equal(t, []State{StateClosed, StateOpening, StateOpen, StateClosing, StateClosed}, seen)
	require.InDelta(t, 0.0, d.Angle(), 1e-9)
	require.False(t, motor.enabled)
	require.Equal(t, []int64{50, 0}, motor.moves)
}

// TestDoor_OpeningPowersMotor verifies the motor is enabled and targeted on opening.
func TestDoor_OpeningPowersMotor(t *testing.T) {
	t.Parallel()

	d, motor := newTestDoor(t)

	d.Update(10)

	require.Equal(t, StateOpening, d.State())
	require.Equal(t, "Opening", d.StateText())
	require.True(t, motor.enabled)
	require.Equal(t, int64(50), motor.target)
}

// TestDoor_NeverOpensBeforeMotionCompletes verifies Open requires zero distance-to-go.
func TestDoor_NeverOpensBeforeMotionCompletes(t *testing.T) {
	t.Parallel()

	d, motor := newTestDoor(t)
	motor.stalled = true

	d.Update(10)
	require.Equal(t, StateOpening, d.State())

	distances := []float64{10, 30, 0, 100, 20}
	for range 50 {
		for _, distance := range distances {
			d.Update(distance)
			require.Equal(t, StateOpening, d.State())
		}
	}

	motor.stalled = false

	runUntil(t, d, 100, StateOpen, 100)
	require.Zero(t, motor.DistanceToGo())
}

// TestDoor_TicksMotorEveryCycle verifies Run is called once per Update in every state.
func TestDoor_TicksMotorEveryCycle(t *testing.T) {
	t.Parallel()

	d, motor := newTestDoor(t)

	for range 5 {
		d.Update(100)
	}

	require.Equal(t, 5, motor.runs)
	require.Equal(t, StateClosed, d.State())
}

// TestDoor_Hysteresis verifies distances between both thresholds never move a resting door.
func TestDoor_Hysteresis(t *testing.T) {
	t.Parallel()

	d, motor := newTestDoor(t)
	between := []float64{15, 16, 24.9, 25, 20, 15.01}

	for range 20 {
		for _, distance := range between {
			d.Update(distance)
			require.Equal(t, StateClosed, d.State())
		}
	}

	require.Empty(t, motor.moves)

	runUntil(t, d, 10, StateOpen, 100)

	for range 20 {
		for _, distance := range between {
			d.Update(distance)
			require.Equal(t, StateOpen, d.State())
		}
	}

	require.Len(t, motor.moves, 1)
}

// TestDoor_AngleConversion checks truncation towards zero and the inverse conversion.
func TestDoor_AngleConversion(t *testing.T) {
	t.Parallel()

	d, _ := newTestDoor(t)

	require.Equal(t, int64(50), d.angleToSteps(90))
	require.Equal(t, int64(25), d.angleToSteps(45.5))
	require.Equal(t, int64(-5), d.angleToSteps(-10))

	motor := &fakeMotor{position: 100}
	other := New(motor)
	other.SetStepsPerRevolution(200)
	require.InDelta(t, 180.0, other.Angle(), 1e-9)

	other.SetStepsPerRevolution(0)
	require.Zero(t, other.Angle())
}

// TestDoor_IgnoresNaN verifies an unreadable distance neither opens nor closes the door.
func TestDoor_IgnoresNaN(t *testing.T) {
	t.Parallel()

	d, motor := newTestDoor(t)

	for range 3 {
		d.Update(math.NaN())
	}

	require.Equal(t, StateClosed, d.State())
	require.Empty(t, motor.moves)

	runUntil(t, d, 10, StateOpen, 100)
	moves := len(motor.moves)

	for range 3 {
		d.Update(math.NaN())
	}

	require.Equal(t, StateOpen, d.State())
	require.Len(t, motor.moves, moves)
	require.False(t, motor.enabled)
}

// TestStateString verifies state names and the Moving helper.
func TestStateString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Closed", StateClosed.String())
	require.Equal(t, "Open", StateOpen.String())
	require.Equal(t, "Opening", StateOpening.String())
	require.Equal(t, "Closing", StateClosing.String())
	require.Equal(t, "Unknown", State(9).String())

	require.True(t, StateOpening.Moving())
	require.True(t, StateClosing.Moving())
	require.False(t, StateOpen.Moving())
	require.False(t, StateClosed.Moving())
}
