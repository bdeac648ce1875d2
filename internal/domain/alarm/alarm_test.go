package alarm

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/proximity-guard/internal/clock"
)

const (
	near = 5.0
	far  = 50.0
)

// recordingIndicator is an Indicator that keeps every command it receives.
type recordingIndicator struct {
	// colors holds every color written, in order.
	colors []Color
	// tones holds every tone frequency started, in order.
	tones []uint
	// silences counts NoTone calls.
	silences int
}

// SetColor records the written color.
func (r *recordingIndicator) SetColor(c Color) { r.colors = append(r.colors, c) }

// Tone records the started frequency.
func (r *recordingIndicator) Tone(frequency uint) { r.tones = append(r.tones, frequency) }

// NoTone counts silence commands.
func (r *recordingIndicator) NoTone() { r.silences++ }

// reset forgets everything recorded so far.
func (r *recordingIndicator) reset() {
	r.colors = nil
	r.tones = nil
	r.silences = 0
}

// newTestAlarm builds an alarm on a manual clock at zero.
func newTestAlarm(t *testing.T) (*Alarm, *recordingIndicator, *clock.Manual) {
	t.Helper()

	indicator := new(recordingIndicator)
	clk := clock.NewManual(0)

	return New(indicator, clk), indicator, clk
}

// TestNew_BlanksOutputs verifies construction leaves the indicator dark and silent.
func TestNew_BlanksOutputs(t *testing.T) {
	t.Parallel()

	a, indicator, _ := newTestAlarm(t)

	require.Equal(t, StateOff, a.State())
	require.Equal(t, []Color{Black}, indicator.colors)
	require.Equal(t, 1, indicator.silences)
	require.False(t, a.Sounding())
}

// TestAlarm_Scenario replays a detection sequence sampled every 100ms.
func TestAlarm_Scenario(t *testing.T) {
	t.Parallel()

	a, _, clk := newTestAlarm(t)
	a.SetDistance(20)
	a.SetTimeout(500 * time.Millisecond)

	samples := []float64{30, 30, 10, 10, 30, 30}
	want := []State{StateOff, StateOff, StateWatching, StateOn, StateWatching, StateWatching}

	for i, d := range samples {
		a.Update(d)
		require.Equal(t, want[i], a.State(), "sample %d", i)
		clk.Advance(100 * time.Millisecond)
	}
}

// TestAlarm_OnStartsToneAndColorA verifies the turn-on side effects.
func TestAlarm_OnStartsToneAndColorA(t *testing.T) {
	t.Parallel()

	a, indicator, _ := newTestAlarm(t)
	a.SetColorA(Color{Green: 200})
	a.SetToneFrequency(1500)
	indicator.reset()

	a.Update(near)
	require.Equal(t, StateWatching, a.State())
	require.Empty(t, indicator.tones)

	a.Update(near)
	require.Equal(t, StateOn, a.State())
	require.Equal(t, []uint{1500}, indicator.tones)
	require.Equal(t, []Color{{Green: 200}}, indicator.colors)
	require.Equal(t, Color{Green: 200}, a.Color())
	require.True(t, a.Sounding())
}

// TestAlarm_WatchingDecaysToOff verifies the timeout and that decay silences outputs.
func TestAlarm_WatchingDecaysToOff(t *testing.T) {
	t.Parallel()

	a, indicator, clk := newTestAlarm(t)
	a.SetTimeout(500 * time.Millisecond)

	a.Update(near)
	a.Update(near)
	require.Equal(t, StateOn, a.State())

	clk.Advance(100 * time.Millisecond)
	a.Update(far)
	require.Equal(t, StateWatching, a.State())

	indicator.reset()

	clk.Advance(499 * time.Millisecond)
	a.Update(far)
	require.Equal(t, StateWatching, a.State())

	clk.Advance(time.Millisecond)
	a.Update(far)
	require.Equal(t, StateOff, a.State())
	require.Equal(t, 1, indicator.silences)
	require.Equal(t, []Color{Black}, indicator.colors)
	require.False(t, a.Sounding())
}

// TestAlarm_Debounce verifies a one-cycle clearance never passes through Off.
func TestAlarm_Debounce(t *testing.T) {
	t.Parallel()

	a, _, clk := newTestAlarm(t)
	a.SetTimeout(500 * time.Millisecond)

	a.Update(near)
	a.Update(near)
	require.Equal(t, StateOn, a.State())

	samples := []float64{far, near, near, far, near}
	for _, d := range samples {
		clk.Advance(50 * time.Millisecond)
		a.Update(d)
		require.NotEqual(t, StateOff, a.State())
	}

	require.Equal(t, StateOn, a.State())
}

// TestAlarm_DetectionWhileWatchingRestampsTimeout verifies brief clearances do not add up.
func TestAlarm_DetectionWhileWatchingRestampsTimeout(t *testing.T) {
	t.Parallel()

	a, _, clk := newTestAlarm(t)
	a.SetTimeout(500 * time.Millisecond)

	a.Update(near)
	require.Equal(t, StateWatching, a.State())

	clk.Advance(400 * time.Millisecond)
	a.Update(far)
	require.Equal(t, StateWatching, a.State())

	// Re-detection turns the alarm on and restarts the clearance window.
	a.Update(near)
	require.Equal(t, StateOn, a.State())

	clk.Advance(10 * time.Millisecond)
	a.Update(far)
	require.Equal(t, StateWatching, a.State())

	clk.Advance(490 * time.Millisecond)
	a.Update(far)
	require.Equal(t, StateWatching, a.State())

	clk.Advance(10 * time.Millisecond)
	a.Update(far)
	require.Equal(t, StateOff, a.State())
}

// TestAlarm_FlashRate verifies one color flip per variation period regardless of call rate.
func TestAlarm_FlashRate(t *testing.T) {
	t.Parallel()

	a, indicator, clk := newTestAlarm(t)
	a.SetVariationTiming(100 * time.Millisecond)

	a.TurnOn()
	a.Update(near)
	require.Equal(t, StateOn, a.State())

	indicator.reset()

	for range 100 {
		clk.Advance(10 * time.Millisecond)
		a.Update(near)
	}

	require.Len(t, indicator.colors, 10)

	for i, c := range indicator.colors {
		if i%2 == 0 {
			require.Equal(t, DefaultColorB, c)
		} else {
			require.Equal(t, DefaultColorA, c)
		}
	}
}

// TestAlarm_TurnOnOnlyFromOff verifies external turn-on is ignored outside Off.
func TestAlarm_TurnOnOnlyFromOff(t *testing.T) {
	t.Parallel()

	a, indicator, _ := newTestAlarm(t)

	a.Update(near)
	require.Equal(t, StateWatching, a.State())

	indicator.reset()
	a.TurnOn()
	a.Update(far)

	require.Equal(t, StateWatching, a.State())
	require.Empty(t, indicator.tones)

	// From Off the request goes through even without proximity.
	b, other, _ := newTestAlarm(t)
	other.reset()
	b.TurnOn()
	b.Update(far)

	require.Equal(t, StateOn, b.State())
	require.Equal(t, []uint{DefaultToneFrequency}, other.tones)
}

// TestAlarm_TurnOffBlanksOutputs verifies an explicit stop from On.
func TestAlarm_TurnOffBlanksOutputs(t *testing.T) {
	t.Parallel()

	a, indicator, _ := newTestAlarm(t)

	a.Update(near)
	a.Update(near)
	require.Equal(t, StateOn, a.State())

	indicator.reset()
	a.TurnOff()
	a.Update(near)

	require.Equal(t, StateOff, a.State())
	require.Equal(t, Black, indicator.colors[len(indicator.colors)-1])
	require.Equal(t, 1, indicator.silences)
	require.False(t, a.Sounding())
}

// TestAlarm_TurnOffWinsOverDetection verifies only one command is applied per cycle.
func TestAlarm_TurnOffWinsOverDetection(t *testing.T) {
	t.Parallel()

	a, indicator, _ := newTestAlarm(t)

	a.Update(near)
	require.Equal(t, StateWatching, a.State())

	indicator.reset()
	a.TurnOff()
	a.Update(near)

	require.Equal(t, StateOff, a.State())
	require.Empty(t, indicator.tones)
}

// TestAlarm_NaNIsNotDetection verifies an unreadable distance never triggers and counts as clear.
func TestAlarm_NaNIsNotDetection(t *testing.T) {
	t.Parallel()

	a, indicator, clk := newTestAlarm(t)
	indicator.reset()

	for range 3 {
		a.Update(math.NaN())
		clk.Advance(100 * time.Millisecond)
	}

	require.Equal(t, StateOff, a.State())
	require.Empty(t, indicator.colors)
	require.Empty(t, indicator.tones)

	a.Update(near)
	a.Update(near)
	require.Equal(t, StateOn, a.State())

	a.Update(math.NaN())
	require.Equal(t, StateWatching, a.State())
}

// TestAlarm_SelfTest verifies the fixed window, distance independence and immunity to TurnOff.
func TestAlarm_SelfTest(t *testing.T) {
	t.Parallel()

	a, indicator, clk := newTestAlarm(t)
	clk.Advance(time.Second)
	indicator.reset()

	a.Test()
	require.Equal(t, StateTesting, a.State())
	require.Equal(t, []uint{DefaultToneFrequency}, indicator.tones)
	require.Equal(t, []Color{DefaultColorA}, indicator.colors)

	for i := range 299 {
		clk.Advance(10 * time.Millisecond)

		a.TurnOff()

		if i%2 == 0 {
			a.Update(near)
		} else {
			a.Update(far)
		}

		require.Equal(t, StateTesting, a.State(), "cycle %d", i)
	}

	clk.Advance(10 * time.Millisecond)
	a.Update(near)

	require.Equal(t, StateOff, a.State())
	require.Equal(t, Black, a.Color())
	require.False(t, a.Sounding())

	// Flashing happened during the test.
	require.Greater(t, len(indicator.colors), 2)
}

// TestAlarm_SelfTestDiscardsPendingTurnOff verifies a stop queued before Test is dropped.
func TestAlarm_SelfTestDiscardsPendingTurnOff(t *testing.T) {
	t.Parallel()

	a, _, clk := newTestAlarm(t)

	a.TurnOff()
	a.Test()

	clk.Advance(10 * time.Millisecond)
	a.Update(far)

	require.Equal(t, StateTesting, a.State())
}
