package simulator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/oshokin/proximity-guard/internal/clock"
	"github.com/oshokin/proximity-guard/internal/config"
	"github.com/oshokin/proximity-guard/internal/domain/alarm"
	"github.com/oshokin/proximity-guard/internal/domain/door"
	"github.com/oshokin/proximity-guard/internal/logger"
	"github.com/oshokin/proximity-guard/internal/sensor"
	"github.com/oshokin/proximity-guard/internal/service/controller"
)

// Row is one line of the simulation trace.
type Row struct {
	// Elapsed is the simulated time of the cycle.
	Elapsed time.Duration
	// Sample is the index of the sample in use.
	Sample int
	// Distance is the sample value.
	Distance float64
	// Alarm is the alarm state after the cycle.
	Alarm alarm.State
	// Door is the door state after the cycle.
	Door door.State
	// Angle is the door angle after the cycle.
	Angle float64
}

// String renders the row as a trace line.
func (r Row) String() string {
	return fmt.Sprintf("%10s  sample=%-3d distance=%8.2f  alarm=%-8s  door=%-8s  angle=%7.2f",
		r.Elapsed, r.Sample, r.Distance, r.Alarm, r.Door, r.Angle)
}

// Simulate replays the scenario on a manual clock and writes one trace line per
// sample boundary and per transition to w. It returns the written rows.
// Cycles run on a fixed grid, so the first row of a sample may come up to one
// cycle after the sample boundary.
func Simulate(ctx context.Context, cfg *config.Config, scenario *Scenario, w io.Writer) ([]Row, error) {
	script, err := sensor.NewScript(scenario.Samples)
	if err != nil {
		return nil, err
	}

	cycleInterval := cfg.CycleInterval
	if scenario.Cycle > 0 {
		cycleInterval = scenario.Cycle
	}

	if cycleInterval > scenario.Step {
		cycleInterval = scenario.Step
	}

	clk := clock.NewManual(0)
	devices := controller.NewLogDevices(ctx, cfg, clk)
	cycle := controller.NewCycle(devices.Alarm, devices.Door, script)
	events := scenario.eventsBySample()

	var rows []Row

	for !script.Done() {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		index := script.Index()

		for _, action := range events[index] {
			apply(ctx, devices.Alarm, action)
		}

		// Sample i is in effect during [i*step, (i+1)*step) whatever the cycle.
		sampleEnd := time.Duration(index+1) * scenario.Step

		for first := true; clk.Now() < sampleEnd; first = false {
			snapshot := cycle.Step(ctx)

			if first || snapshot.Changed() {
				row := Row{
					Elapsed:  clk.Now(),
					Sample:   index,
					Distance: snapshot.Distance,
					Alarm:    snapshot.Alarm,
					Door:     snapshot.Door,
					Angle:    snapshot.Angle,
				}

				rows = append(rows, row)

				if _, err := fmt.Fprintln(w, row.String()); err != nil {
					return rows, fmt.Errorf("write trace: %w", err)
				}
			}

			clk.Advance(cycleInterval)
		}

		script.Advance()
	}

	// Log devices hold no pins to close.
	_ = devices.Release()

	logger.InfoKV(ctx, "Scenario finished",
		"samples", script.Len(),
		"cycles", cycle.Cycles(),
		"simulated", clk.Now().String(),
	)

	return rows, nil
}

func apply(ctx context.Context, a *alarm.Alarm, action Action) {
	state := a.State()

	ignored := (action == ActionAlarmOn && state != alarm.StateOff) ||
		(action == ActionAlarmOff && state == alarm.StateTesting)
	if ignored {
		logger.WarnKV(ctx, "Scenario event has no effect", "action", string(action), "alarm", state.String())
	} else {
		logger.InfoKV(ctx, "Scenario event", "action", string(action), "alarm", state.String())
	}

	switch action {
	case ActionAlarmTest:
		a.Test()
	case ActionAlarmOn:
		a.TurnOn()
	case ActionAlarmOff:
		a.TurnOff()
	}
}
