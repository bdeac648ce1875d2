// Package config defines the settings of the proximity controllers and
// provides helpers to load and validate them from YAML.
//
// The Config type groups the control loop period, the alarm and door
// parameters and the serial sensor connection. Settings are read once at
// startup and never written back.
package config
