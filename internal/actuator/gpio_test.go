package actuator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/proximity-guard/internal/domain/alarm"
	"github.com/oshokin/proximity-guard/internal/motion"
)

// fakePins records pin levels, modes and the square-wave frequency.
type fakePins struct {
	// outputs holds the pins switched to output mode.
	outputs map[uint8]bool
	// levels holds the last level written per pin.
	levels map[uint8]bool
	// square holds the last square-wave frequency per pin.
	square map[uint8]uint
	// closed reports a Close call.
	closed bool
}

// newFakePins returns empty fake pins.
func newFakePins() *fakePins {
	return &fakePins{
		outputs: make(map[uint8]bool),
		levels:  make(map[uint8]bool),
		square:  make(map[uint8]uint),
	}
}

// Output records the mode change.
func (f *fakePins) Output(pin uint8) { f.outputs[pin] = true }

// Set records the level.
func (f *fakePins) Set(pin uint8, high bool) { f.levels[pin] = high }

// Square records the frequency.
func (f *fakePins) Square(pin uint8, frequency uint) { f.square[pin] = frequency }

// Close records the call.
func (f *fakePins) Close() error {
	f.closed = true
	return nil
}

// testLayout is the indicator wiring used by the tests.
var testLayout = IndicatorPins{Red: 17, Green: 27, Blue: 22, Buzzer: 18}

// TestPinIndicator verifies the LED legs follow the color channels and the buzzer follows the tone.
func TestPinIndicator(t *testing.T) {
	t.Parallel()

	pins := newFakePins()
	ind := NewPinIndicator(pins, testLayout)

	require.True(t, pins.outputs[17])
	require.True(t, pins.outputs[27])
	require.True(t, pins.outputs[22])
	require.False(t, pins.levels[17])
	require.Zero(t, pins.square[18])

	ind.SetColor(alarm.Color{Red: 255, Green: 127, Blue: 128})
	require.True(t, pins.levels[17])
	require.False(t, pins.levels[27])
	require.True(t, pins.levels[22])

	ind.SetColor(alarm.Black)
	require.False(t, pins.levels[17])
	require.False(t, pins.levels[22])

	ind.Tone(1000)
	require.Equal(t, uint(1000), pins.square[18])

	ind.NoTone()
	require.Zero(t, pins.square[18])
}

// TestPinIndicator_DrivenByAlarm verifies the alarm blanks the pins on construction and lights them when triggered.
func TestPinIndicator_DrivenByAlarm(t *testing.T) {
	t.Parallel()

	pins := newFakePins()
	a := alarm.New(NewPinIndicator(pins, testLayout), fixedClock{})

	a.TurnOn()
	a.Update(1000)
	require.True(t, pins.levels[17])
	require.Equal(t, alarm.DefaultToneFrequency, pins.square[18])

	a.TurnOff()
	a.Update(1000)
	require.False(t, pins.levels[17])
	require.Zero(t, pins.square[18])
}

// TestPinCoils verifies the stepper pattern reaches the winding pins.
func TestPinCoils(t *testing.T) {
	t.Parallel()

	pins := newFakePins()
	layout := [4]uint8{5, 6, 16, 20}
	coils := NewPinCoils(pins, layout)

	for _, pin := range layout {
		require.True(t, pins.outputs[pin])
		require.False(t, pins.levels[pin])
	}

	coils.Energize([4]bool{false, true, false, false})
	require.False(t, pins.levels[5])
	require.True(t, pins.levels[6])

	stepper := motion.New(coils, fixedClock{}, 0)
	stepper.Enable()
	stepper.Disable()

	for _, pin := range layout {
		require.False(t, pins.levels[pin])
	}
}

// TestOpenPins covers the log driver and unknown names.
func TestOpenPins(t *testing.T) {
	t.Parallel()

	pins, err := OpenPins(DriverLog)
	require.NoError(t, err)
	require.Nil(t, pins)

	_, err = OpenPins("spi")
	require.ErrorIs(t, err, ErrUnknownDriver)
}
