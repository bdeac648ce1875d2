package door

// Motor is the motion primitive that moves the door.
// Positions are absolute and expressed in motor steps.
type Motor interface {
	// Enable powers the motor outputs.
	Enable()
	// Disable releases the motor outputs.
	Disable()
	// MoveTo sets a new absolute target.
	MoveTo(target int64)
	// Run advances towards the target by at most one step and reports
	// whether the motor is still moving.
	Run() bool
	// DistanceToGo returns target minus current position.
	DistanceToGo() int64
	// CurrentPosition returns the absolute position.
	CurrentPosition() int64
}
