package alarm

import (
	"time"

	"github.com/oshokin/proximity-guard/internal/clock"
)

const (
	// SelfTestDuration is how long Test keeps the alarm flashing.
	SelfTestDuration = 3000 * time.Millisecond

	// DefaultDistanceTrigger is the distance at or below which proximity is detected.
	DefaultDistanceTrigger = 15.0
	// DefaultTimeout is how long proximity must stay clear before Watching decays to Off.
	DefaultTimeout = 3 * time.Second
	// DefaultVariationRate is the period between two color flips.
	DefaultVariationRate = 100 * time.Millisecond
	// DefaultToneFrequency is the buzzer frequency in hertz.
	DefaultToneFrequency uint = 1000
)

var (
	// DefaultColorA is the first flash color.
	DefaultColorA = Color{Red: 255}
	// DefaultColorB is the second flash color.
	DefaultColorB = Color{Blue: 255}
)

// Alarm is the proximity alarm controller.
// It is driven by Update and must not be used from several goroutines at once.
type Alarm struct {
	// indicator receives color and tone commands.
	indicator Indicator
	// clock supplies the time of each cycle.
	clock clock.Clock

	state State
	// pending is the command applied at the end of the current cycle.
	pending command

	distanceTrigger float64
	timeoutDelay    time.Duration
	variationRate   time.Duration
	toneFrequency   uint
	colorA          Color
	colorB          Color

	// lastDetected is stamped on every detection while Off, Watching or On.
	lastDetected time.Duration
	// lastUpdate is the time of the last color flip while On or Testing.
	lastUpdate time.Duration
	// testStart is the moment the running self-test began.
	testStart time.Duration

	// phaseB selects colorB when true and colorA otherwise.
	phaseB bool
	// color is the last color written to the indicator.
	color Color
	// sounding reports whether the tone is currently running.
	sounding bool
}

// New creates an alarm in the Off state with default settings and blanks the indicator.
func New(indicator Indicator, clk clock.Clock) *Alarm {
	a := &Alarm{
		indicator:       indicator,
		clock:           clk,
		state:           StateOff,
		distanceTrigger: DefaultDistanceTrigger,
		timeoutDelay:    DefaultTimeout,
		variationRate:   DefaultVariationRate,
		toneFrequency:   DefaultToneFrequency,
		colorA:          DefaultColorA,
		colorB:          DefaultColorB,
	}

	a.silence()

	return a
}

// Update advances the alarm by one cycle using the given distance sample.
func (a *Alarm) Update(distance float64) {
	now := a.clock.Now()
	detected := distance <= a.distanceTrigger

	switch a.state {
	case StateOff:
		if detected {
			a.state = StateWatching
			a.lastDetected = now
		}
	case StateWatching:
		if detected {
			a.lastDetected = now
			a.request(commandTurnOn)
		} else if clock.Reached(now, a.lastDetected, a.timeoutDelay) {
			a.request(commandTurnOff)
		}
	case StateOn:
		if !detected {
			a.state = StateWatching
			a.lastDetected = now
		} else {
			a.flash(now)
		}
	case StateTesting:
		if clock.Reached(now, a.testStart, SelfTestDuration) {
			a.state = StateOff
			a.silence()
		} else {
			a.flash(now)
		}
	}

	a.apply(now)
}

// TurnOn requests the alarm to start. It is ignored unless the alarm is Off.
func (a *Alarm) TurnOn() {
	if a.state == StateOff {
		a.request(commandTurnOn)
	}
}

// TurnOff requests the alarm to stop. It is ignored while Testing.
func (a *Alarm) TurnOff() {
	if a.state != StateTesting {
		a.request(commandTurnOff)
	}
}

// Test starts the self-test: the alarm flashes and sounds for SelfTestDuration
// and then returns to Off whatever the distance is.
func (a *Alarm) Test() {
	now := a.clock.Now()

	a.state = StateTesting
	a.pending = commandNone
	a.testStart = now
	a.lastUpdate = now
	a.phaseB = false
	a.start()
}

// State returns the current state.
func (a *Alarm) State() State {
	return a.state
}

// Color returns the last color written to the indicator.
func (a *Alarm) Color() Color {
	return a.color
}

// Sounding reports whether the tone is running.
func (a *Alarm) Sounding() bool {
	return a.sounding
}

// SetColorA sets the first flash color.
func (a *Alarm) SetColorA(c Color) {
	a.colorA = c
}

// SetColorB sets the second flash color.
func (a *Alarm) SetColorB(c Color) {
	a.colorB = c
}

// SetVariationTiming sets the period between two color flips.
func (a *Alarm) SetVariationTiming(d time.Duration) {
	a.variationRate = d
}

// SetDistance sets the detection threshold.
func (a *Alarm) SetDistance(d float64) {
	a.distanceTrigger = d
}

// SetTimeout sets how long proximity must stay clear before the alarm decays to Off.
func (a *Alarm) SetTimeout(d time.Duration) {
	a.timeoutDelay = d
}

// SetToneFrequency sets the buzzer frequency used by the next start.
func (a *Alarm) SetToneFrequency(hz uint) {
	a.toneFrequency = hz
}

func (a *Alarm) request(c command) {
	a.pending = a.pending.merge(c)
}

// apply consumes the pending command once the state rule has run.
func (a *Alarm) apply(now time.Duration) {
	switch a.pending {
	case commandTurnOn:
		a.state = StateOn
		a.lastUpdate = now
		a.phaseB = false
		a.start()
	case commandTurnOff:
		if a.state != StateTesting {
			a.state = StateOff
			a.silence()
		}
	case commandNone:
	}

	a.pending = commandNone
}

// flash toggles the color once per variation period.
func (a *Alarm) flash(now time.Duration) {
	if !clock.Reached(now, a.lastUpdate, a.variationRate) {
		return
	}

	a.lastUpdate = now
	a.phaseB = !a.phaseB

	if a.phaseB {
		a.write(a.colorB)
	} else {
		a.write(a.colorA)
	}
}

func (a *Alarm) start() {
	a.indicator.Tone(a.toneFrequency)
	a.sounding = true
	a.write(a.colorA)
}

func (a *Alarm) silence() {
	a.write(Black)
	a.indicator.NoTone()
	a.sounding = false
}

func (a *Alarm) write(c Color) {
	a.indicator.SetColor(c)
	a.color = c
}
