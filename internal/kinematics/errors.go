package kinematics

import "fmt"

// TypeMismatch is returned when the previous tick's actor sharing a vehicle's
// id is not itself a vehicle.
type TypeMismatch struct {
	ActorID   string
	TickIndex int
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("kinematics: actor %q at tick %d has a non-vehicle predecessor", e.ActorID, e.TickIndex)
}

// TimeOrderViolation is returned when two consecutive ticks are not
// non-decreasing in time.
type TimeOrderViolation struct {
	TickIndex    int
	DeltaSeconds float64
}

func (e *TimeOrderViolation) Error() string {
	return fmt.Sprintf("kinematics: tick %d has negative time delta (%.6fs)", e.TickIndex, e.DeltaSeconds)
}
