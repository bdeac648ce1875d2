package alarm

// State is the alarm status at a point in time.
type State int

const (
	// StateOff means nothing is detected and outputs are silent.
	StateOff State = iota
	// StateWatching means proximity was seen recently and the alarm is
	// waiting for either a confirmation or the timeout.
	StateWatching
	// StateOn means the alarm is flashing and sounding.
	StateOn
	// StateTesting means a fixed-length self-test is running.
	StateTesting
)

// String returns the human-readable state name.
func (s State) String() string {
	switch s {
	case StateOff:
		return "Off"
	case StateWatching:
		return "Watching"
	case StateOn:
		return "On"
	case StateTesting:
		return "Testing"
	default:
		return "Unknown"
	}
}

// command is a side-effecting transition requested during a cycle.
type command int

const (
	commandNone command = iota
	commandTurnOn
	commandTurnOff
)

// merge combines two requests made in the same cycle. Turning off wins.
func (c command) merge(other command) command {
	if c == commandTurnOff || other == commandTurnOff {
		return commandTurnOff
	}

	if c == commandTurnOn || other == commandTurnOn {
		return commandTurnOn
	}

	return commandNone
}
