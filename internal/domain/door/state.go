package door

// State is the logical door position.
type State int

const (
	// StateClosed means the door rests at the closed angle.
	StateClosed State = iota
	// StateOpen means the door rests at the open angle.
	StateOpen
	// StateOpening means the motor is driving towards the open angle.
	StateOpening
	// StateClosing means the motor is driving towards the closed angle.
	StateClosing
)

// String returns the human-readable state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateOpen:
		return "Open"
	case StateOpening:
		return "Opening"
	case StateClosing:
		return "Closing"
	default:
		return "Unknown"
	}
}

// Moving reports whether the state is transient.
func (s State) Moving() bool {
	return s == StateOpening || s == StateClosing
}
