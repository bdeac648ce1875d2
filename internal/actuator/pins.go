package actuator

import (
	"errors"
	"fmt"
)

// Output drivers accepted by OpenPins.
const (
	// DriverLog only logs output changes.
	DriverLog = "log"
	// DriverRPIO drives Raspberry Pi pins through go-rpio.
	DriverRPIO = "rpio"
)

// ErrUnknownDriver is returned for an unsupported output driver name.
var ErrUnknownDriver = errors.New("unknown output driver")

// Pins drives digital output pins and one square-wave output.
type Pins interface {
	// Output switches the pin to output mode.
	Output(pin uint8)
	// Set drives the pin high or low.
	Set(pin uint8, high bool)
	// Square starts a 50% duty square wave at frequency hertz; zero stops it.
	Square(pin uint8, frequency uint)
	// Close releases the GPIO memory mapping.
	Close() error
}

// OpenPins maps the GPIO registers with the named driver.
// The log driver needs no pins and returns nil.
//
//nolint:ireturn,nolintlint // The driver is picked at runtime.
func OpenPins(driver string) (Pins, error) {
	switch driver {
	case DriverLog, "":
		return nil, nil //nolint:nilnil // No pins behind the log driver.
	case DriverRPIO:
		return OpenRPIO()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
