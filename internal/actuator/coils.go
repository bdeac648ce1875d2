package actuator

import (
	"context"
	"strings"
	"sync"

	"github.com/oshokin/proximity-guard/internal/logger"
	"github.com/oshokin/proximity-guard/internal/motion"
)

// LogCoils is a motion.Coils that records the winding pattern and logs it at debug level.
type LogCoils struct {
	// ctx carries the logger used for reports.
	ctx context.Context //nolint:containedctx // Coil writes carry no context of their own.

	pattern [4]bool
	// steps counts every pattern written.
	steps int

	mu sync.Mutex
}

var _ motion.Coils = (*LogCoils)(nil)

// NewLogCoils creates coils that log with the logger from ctx.
func NewLogCoils(ctx context.Context) *LogCoils {
	return &LogCoils{
		ctx: logger.WithName(ctx, "coils"),
	}
}

// Energize records and logs the pattern.
func (l *LogCoils) Energize(pattern [4]bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pattern = pattern
	l.steps++

	logger.DebugKV(l.ctx, "Coils energized", "pattern", FormatPattern(pattern))
}

// Pattern returns the last pattern and the number of writes.
func (l *LogCoils) Pattern() ([4]bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.pattern, l.steps
}

// FormatPattern renders a winding pattern as four characters, e.g. "1000".
func FormatPattern(pattern [4]bool) string {
	var b strings.Builder

	for _, on := range pattern {
		if on {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}

	return b.String()
}
