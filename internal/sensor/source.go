package sensor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/oshokin/proximity-guard/internal/logger"
)

// Source supplies the latest distance sample.
type Source interface {
	Distance() float64
}

// errEmptySample is returned for blank lines.
var errEmptySample = errors.New("empty sample")

// Static is a Source that always reports the same distance.
type Static float64

// Distance returns the fixed distance.
func (s Static) Distance() float64 {
	return float64(s)
}

// Latest holds the most recent sample published by a reader goroutine.
// Before the first sample it reports +Inf, which never counts as proximity.
type Latest struct {
	// bits is the IEEE-754 representation of the sample.
	bits atomic.Uint64
	// samples counts stored samples.
	samples atomic.Uint64
}

// NewLatest creates an empty holder.
func NewLatest() *Latest {
	l := new(Latest)
	l.bits.Store(math.Float64bits(math.Inf(1)))

	return l
}

// Store publishes a sample.
func (l *Latest) Store(distance float64) {
	l.bits.Store(math.Float64bits(distance))
	l.samples.Add(1)
}

// Distance returns the most recent sample.
func (l *Latest) Distance() float64 {
	return math.Float64frombits(l.bits.Load())
}

// Samples returns how many samples were stored.
func (l *Latest) Samples() uint64 {
	return l.samples.Load()
}

// ParseSample parses one reading such as "12.5" or "12.5 cm".
func ParseSample(line string) (float64, error) {
	line = strings.TrimSpace(line)
	line = strings.TrimSpace(strings.TrimSuffix(line, "cm"))

	if line == "" {
		return 0, errEmptySample
	}

	distance, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, fmt.Errorf("parse sample %q: %w", line, err)
	}

	if math.IsNaN(distance) {
		return 0, fmt.Errorf("parse sample %q: not a number", line)
	}

	return distance, nil
}

// ReadSamples reads one sample per line from r into dst until r is exhausted
// or ctx is canceled. Malformed lines are logged and skipped.
func ReadSamples(ctx context.Context, r io.Reader, dst *Latest) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		distance, err := ParseSample(scanner.Text())
		if err != nil {
			if !errors.Is(err, errEmptySample) {
				logger.DebugKV(ctx, "Skipping sample", "error", err)
			}

			continue
		}

		dst.Store(distance)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read samples: %w", err)
	}

	return nil
}
