package simulator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/proximity-guard/internal/sensor"
)

// Action is an external request injected into a scenario.
type Action string

const (
	// ActionAlarmTest starts the alarm self-test.
	ActionAlarmTest Action = "alarm-test"
	// ActionAlarmOn requests the alarm to turn on.
	ActionAlarmOn Action = "alarm-on"
	// ActionAlarmOff requests the alarm to turn off.
	ActionAlarmOff Action = "alarm-off"
)

// Event injects an action before the first cycle of a sample.
type Event struct {
	// At is the index of the sample the action precedes.
	At int `yaml:"at"`
	// Action is the request to inject.
	Action Action `yaml:"action"`
}

// Scenario is a recorded distance sequence with optional external requests.
type Scenario struct {
	// Step is how long each sample is held.
	Step time.Duration `yaml:"step"`
	// Cycle overrides the configured control cycle when set.
	Cycle time.Duration `yaml:"cycle"`
	// Samples are the distances, one per step.
	Samples []float64 `yaml:"samples"`
	// Events are the injected requests.
	Events []Event `yaml:"events"`
}

var (
	// errStepRequired is returned when the scenario has no positive step.
	errStepRequired = errors.New("scenario step must be positive")
	// errCycleTooLong is returned when a cycle does not fit in a step.
	errCycleTooLong = errors.New("scenario cycle must not exceed step")
	// errUnknownAction is returned for an unsupported event action.
	errUnknownAction = errors.New("unknown scenario action")
	// errEventOutOfRange is returned for an event pointing past the samples.
	errEventOutOfRange = errors.New("scenario event out of range")
)

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(contents, &scenario); err != nil {
		return nil, fmt.Errorf("unmarshal scenario: %w", err)
	}

	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Validate checks timing, samples and events.
func (s *Scenario) Validate() error {
	if s.Step <= 0 {
		return errStepRequired
	}

	if s.Cycle < 0 || s.Cycle > s.Step {
		return fmt.Errorf("%w: cycle %s, step %s", errCycleTooLong, s.Cycle, s.Step)
	}

	if len(s.Samples) == 0 {
		return sensor.ErrNoSamples
	}

	for _, event := range s.Events {
		switch event.Action {
		case ActionAlarmTest, ActionAlarmOn, ActionAlarmOff:
		default:
			return fmt.Errorf("%w: %q", errUnknownAction, event.Action)
		}

		if event.At < 0 || event.At >= len(s.Samples) {
			return fmt.Errorf("%w: %d", errEventOutOfRange, event.At)
		}
	}

	return nil
}

// eventsBySample groups actions by sample index, keeping file order.
func (s *Scenario) eventsBySample() map[int][]Action {
	result := make(map[int][]Action, len(s.Events))
	for _, event := range s.Events {
		result[event.At] = append(result[event.At], event.Action)
	}

	return result
}
