package controller

import (
	"context"

	"github.com/oshokin/proximity-guard/internal/domain/alarm"
	"github.com/oshokin/proximity-guard/internal/domain/door"
	"github.com/oshokin/proximity-guard/internal/logger"
	"github.com/oshokin/proximity-guard/internal/sensor"
)

// Snapshot describes the outcome of one control cycle.
type Snapshot struct {
	// Cycle is the 1-based number of the cycle.
	Cycle uint64
	// Distance is the sample both controllers saw.
	Distance float64
	// Alarm is the alarm state after the cycle.
	Alarm alarm.State
	// Door is the door state after the cycle.
	Door door.State
	// Angle is the door angle after the cycle.
	Angle float64
	// AlarmChanged reports an alarm transition during the cycle.
	AlarmChanged bool
	// DoorChanged reports a door transition during the cycle.
	DoorChanged bool
}

// Changed reports whether any controller changed state.
func (s Snapshot) Changed() bool {
	return s.AlarmChanged || s.DoorChanged
}

// Cycle runs both controllers against one distance sample per step.
type Cycle struct {
	alarm  *alarm.Alarm
	door   *door.Door
	source sensor.Source

	alarmState alarm.State
	doorState  door.State
	count      uint64
}

// NewCycle binds the controllers to a distance source.
func NewCycle(a *alarm.Alarm, d *door.Door, source sensor.Source) *Cycle {
	return &Cycle{
		alarm:      a,
		door:       d,
		source:     source,
		alarmState: a.State(),
		doorState:  d.State(),
	}
}

// Step samples the source once, updates the alarm then the door and logs transitions.
func (c *Cycle) Step(ctx context.Context) Snapshot {
	distance := c.source.Distance()

	c.alarm.Update(distance)
	c.door.Update(distance)
	c.count++

	snapshot := Snapshot{
		Cycle:    c.count,
		Distance: distance,
		Alarm:    c.alarm.State(),
		Door:     c.door.State(),
		Angle:    c.door.Angle(),
	}

	if snapshot.Alarm != c.alarmState {
		snapshot.AlarmChanged = true

		logger.InfoKV(ctx, "Alarm state changed",
			"from", c.alarmState.String(),
			"to", snapshot.Alarm.String(),
			"distance", distance,
		)

		c.alarmState = snapshot.Alarm
	}

	if snapshot.Door != c.doorState {
		snapshot.DoorChanged = true

		logger.InfoKV(ctx, "Door state changed",
			"from", c.doorState.String(),
			"to", snapshot.Door.String(),
			"distance", distance,
			"angle", snapshot.Angle,
			"moving", snapshot.Door.Moving(),
		)

		c.doorState = snapshot.Door
	}

	return snapshot
}

// Cycles returns the number of completed steps.
func (c *Cycle) Cycles() uint64 {
	return c.count
}
