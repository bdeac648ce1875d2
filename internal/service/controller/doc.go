// Package controller runs the control loop: it samples a distance source once
// per cycle and feeds the reading to the alarm and then to the door.
package controller
