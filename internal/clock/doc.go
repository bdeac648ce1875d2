// Package clock provides the monotonic time source used by the controllers.
//
// Time is expressed as the elapsed duration since an arbitrary epoch and is
// only ever differenced, never compared to wall-clock time. System follows
// the process monotonic clock; Manual is advanced explicitly by tests and by
// the scenario simulator.
package clock
