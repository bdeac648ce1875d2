package sensor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.bug.st/serial"

	"github.com/oshokin/proximity-guard/internal/logger"
)

// DefaultBaudRate is the serial speed used when none is configured.
const DefaultBaudRate = 115200

// ErrNoPort is returned when no serial port name is given.
var ErrNoPort = errors.New("serial port is not set")

// Serial is a Source fed by a distance sensor streaming one reading per line
// over a serial port.
type Serial struct {
	port   serial.Port
	latest *Latest

	// done is closed when the reader goroutine exits.
	done chan struct{}

	closeOnce sync.Once
}

// OpenSerial opens the port and starts reading samples in the background.
func OpenSerial(ctx context.Context, name string, baudRate int) (*Serial, error) {
	if name == "" {
		return nil, ErrNoPort
	}

	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}

	port, err := serial.Open(name, &serial.Mode{
		BaudRate: baudRate,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}

	s := &Serial{
		port:   port,
		latest: NewLatest(),
		done:   make(chan struct{}),
	}

	ctx = logger.WithKV(logger.WithName(ctx, "serial"), "port", name)

	go func() {
		defer close(s.done)

		if err := ReadSamples(ctx, port, s.latest); err != nil && ctx.Err() == nil {
			logger.ErrorKV(ctx, "Serial reader stopped", "error", err)
		}
	}()

	logger.InfoKV(ctx, "Serial distance sensor opened", "baud_rate", baudRate)

	return s, nil
}

// Distance returns the latest reading.
func (s *Serial) Distance() float64 {
	return s.latest.Distance()
}

// Samples returns how many readings were received.
func (s *Serial) Samples() uint64 {
	return s.latest.Samples()
}

// Close closes the port and waits for the reader to stop.
func (s *Serial) Close() error {
	var err error

	s.closeOnce.Do(func() {
		err = s.port.Close()
		<-s.done
	})

	return err
}

// ListPorts returns the names of the serial ports present on the system.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}

	return ports, nil
}
