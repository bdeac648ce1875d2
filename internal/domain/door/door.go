package door

const (
	// DefaultOpenAngle is the angle the door is driven to when opening.
	DefaultOpenAngle = 90.0
	// DefaultClosedAngle is the angle the door is driven to when closing.
	DefaultClosedAngle = 0.0
	// DefaultStepsPerRevolution matches a geared 28BYJ-48 in full-step mode.
	DefaultStepsPerRevolution = 2048
	// DefaultOpenDistance is the distance below which the door opens.
	DefaultOpenDistance = 30.0
	// DefaultCloseDistance is the distance above which the door closes.
	DefaultCloseDistance = 60.0

	degreesPerRevolution = 360.0
)

// Door is the automatic door controller.
// It is driven by Update and must not be used from several goroutines at once.
type Door struct {
	// motor owns the physical position.
	motor Motor

	state State

	openAngle          float64
	closedAngle        float64
	stepsPerRevolution int
	// openDistance must be crossed downwards to open; closeDistance upwards to close.
	openDistance  float64
	closeDistance float64
}

// New creates a closed door with default settings.
func New(motor Motor) *Door {
	return &Door{
		motor:              motor,
		state:              StateClosed,
		openAngle:          DefaultOpenAngle,
		closedAngle:        DefaultClosedAngle,
		stepsPerRevolution: DefaultStepsPerRevolution,
		openDistance:       DefaultOpenDistance,
		closeDistance:      DefaultCloseDistance,
	}
}

// Update ticks the motor once and then evaluates the current state against distance.
func (d *Door) Update(distance float64) {
	d.motor.Run()

	switch d.state {
	case StateClosed:
		if distance < d.openDistance {
			d.drive(StateOpening, d.openAngle)
		}
	case StateOpen:
		if distance > d.closeDistance {
			d.drive(StateClosing, d.closedAngle)
		}
	case StateOpening:
		if d.motor.DistanceToGo() == 0 {
			d.settle(StateOpen)
		}
	case StateClosing:
		if d.motor.DistanceToGo() == 0 {
			d.settle(StateClosed)
		}
	}
}

// State returns the logical door state.
func (d *Door) State() State {
	return d.state
}

// StateText returns the name of the current state.
func (d *Door) StateText() string {
	return d.state.String()
}

// Angle converts the motor position back to degrees.
func (d *Door) Angle() float64 {
	if d.stepsPerRevolution == 0 {
		return 0
	}

	return float64(d.motor.CurrentPosition()) * degreesPerRevolution / float64(d.stepsPerRevolution)
}

// SetOpenAngle sets the target angle used when opening.
func (d *Door) SetOpenAngle(angle float64) {
	d.openAngle = angle
}

// SetClosedAngle sets the target angle used when closing.
func (d *Door) SetClosedAngle(angle float64) {
	d.closedAngle = angle
}

// SetStepsPerRevolution sets the degrees to steps conversion factor.
func (d *Door) SetStepsPerRevolution(steps int) {
	d.stepsPerRevolution = steps
}

// SetOpenDistance sets the threshold below which a closed door opens.
func (d *Door) SetOpenDistance(distance float64) {
	d.openDistance = distance
}

// SetCloseDistance sets the threshold above which an open door closes.
func (d *Door) SetCloseDistance(distance float64) {
	d.closeDistance = distance
}

func (d *Door) drive(state State, angle float64) {
	d.state = state
	d.motor.Enable()
	d.motor.MoveTo(d.angleToSteps(angle))
}

// settle holds the reached position unpowered.
func (d *Door) settle(state State) {
	d.state = state
	d.motor.Disable()
}

// angleToSteps truncates towards zero, like the motor's integral unit.
func (d *Door) angleToSteps(angle float64) int64 {
	return int64(angle * float64(d.stepsPerRevolution) / degreesPerRevolution)
}
