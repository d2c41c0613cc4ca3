package cleaner

import "fmt"

// ErrInconsistentTrace is returned when a tick classified as part of a
// junction accumulator has no matching RawActorPosition for the vehicle
// being resolved — a fatal data-consistency error for the run.
type ErrInconsistentTrace struct {
	VehicleID string
	TickIndex int
}

func (e *ErrInconsistentTrace) Error() string {
	return fmt.Sprintf("cleaner: vehicle %q has no position at tick index %d", e.VehicleID, e.TickIndex)
}
