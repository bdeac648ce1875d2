package actuator

import (
	"context"
	"sync"

	"github.com/oshokin/proximity-guard/internal/domain/alarm"
	"github.com/oshokin/proximity-guard/internal/logger"
)

// LogIndicator is an alarm.Indicator that reports light and buzzer changes
// through the logger instead of driving pins.
type LogIndicator struct {
	// ctx carries the logger used for reports.
	ctx context.Context //nolint:containedctx // Indicator calls carry no context of their own.

	color     alarm.Color
	frequency uint
	sounding  bool
	// writes counts every SetColor call, repeated values included.
	writes int

	mu sync.Mutex
}

var _ alarm.Indicator = (*LogIndicator)(nil)

// NewLogIndicator creates an indicator that logs with the logger from ctx.
func NewLogIndicator(ctx context.Context) *LogIndicator {
	return &LogIndicator{
		ctx: logger.WithName(ctx, "indicator"),
	}
}

// SetColor logs the color when it differs from the current one.
func (l *LogIndicator) SetColor(c alarm.Color) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.writes++

	if c == l.color {
		return
	}

	l.color = c
	logger.DebugKV(l.ctx, "Color written", "color", c.String())
}

// Tone logs the start of a tone unless the same tone is already sounding.
func (l *LogIndicator) Tone(frequency uint) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.sounding && l.frequency == frequency {
		return
	}

	l.sounding = true
	l.frequency = frequency
	logger.InfoKV(l.ctx, "Tone started", "frequency_hz", frequency)
}

// NoTone logs the end of a tone if one is sounding.
func (l *LogIndicator) NoTone() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.sounding {
		return
	}

	l.sounding = false
	logger.Info(l.ctx, "Tone stopped")
}

// Snapshot returns the current color, whether a tone is sounding, its frequency and the number of color writes.
func (l *LogIndicator) Snapshot() (alarm.Color, bool, uint, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.color, l.sounding, l.frequency, l.writes
}
