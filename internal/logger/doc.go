// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder and a pluggable writer,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - convenience functions (Info, InfoKV, WarnKV, ErrorKV, etc.).
//
// The controller and the simulator pass a context down to the actuators and
// the sensor, which extract the logger from it. The state machines never log.
package logger
