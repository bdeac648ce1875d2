// Package actuator holds the output devices of the controllers: an alarm
// indicator and stepper coils that either report through the logger or drive
// Raspberry Pi GPIO pins through go-rpio.
package actuator
