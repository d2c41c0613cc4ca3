// Package kinematics derives per-vehicle velocity and acceleration from
// successive positions in a converted tick timeline (spec.md §4.D).
package kinematics

import (
	"github.com/simtrace/tracecut/internal/geo"
	"github.com/simtrace/tracecut/internal/model"
)

// Fill derives velocity and acceleration in place for every Vehicle actor in
// ticks[1:], using the previous tick's matching actor (by id) as reference.
// ticks[0] is left untouched (velocity/acceleration stay at their zero value).
func Fill(ticks []model.TickData) error {
	for i := 1; i < len(ticks); i++ {
		prevTick := &ticks[i-1]
		cur := &ticks[i]

		dt := cur.CurrentTick.Sub(prevTick.CurrentTick).Seconds()
		if dt < 0 {
			return &TimeOrderViolation{TickIndex: i, DeltaSeconds: dt}
		}

		for ai := range cur.Actors {
			a := &cur.Actors[ai]
			if a.Kind != model.KindVehicle || a.Vehicle == nil {
				continue
			}

			prev, found := prevTick.FindActor(a.ID)
			if !found {
				a.Vehicle.Velocity = geo.Zero
				a.Vehicle.Acceleration = geo.Zero
				continue
			}
			if prev.Kind != model.KindVehicle || prev.Vehicle == nil {
				return &TypeMismatch{ActorID: a.ID, TickIndex: i}
			}

			if dt == 0 {
				a.Vehicle.Velocity = geo.Zero
				a.Vehicle.Acceleration = geo.Zero
				continue
			}

			a.Vehicle.Velocity = geo.Scale(1/dt, geo.Sub(a.Location, prev.Location))
			// Verbatim: acceleration = velocity - prev.velocity/Δt, not (velocity-prev.velocity)/Δt.
			a.Vehicle.Acceleration = geo.Sub(a.Vehicle.Velocity, geo.Scale(1/dt, prev.Vehicle.Velocity))
		}
	}

	return nil
}
