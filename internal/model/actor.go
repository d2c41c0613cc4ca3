// Package model holds the core entities the pipeline operates on: raw input
// records, the converted per-tick timeline, and the emitted Segment.
package model

import "github.com/simtrace/tracecut/internal/geo"

// ActorKind tags the polymorphic actor variant.
type ActorKind int

const (
	// KindVehicle is a driveable actor; the only kind that can be ego.
	KindVehicle ActorKind = iota
	// KindPedestrian is a pedestrian actor.
	KindPedestrian
	// KindTrafficLight is a static traffic-light actor.
	KindTrafficLight
	// KindTrafficSign is a static traffic-sign actor.
	KindTrafficSign
)

// String implements fmt.Stringer for log-friendly output.
func (k ActorKind) String() string {
	switch k {
	case KindVehicle:
		return "vehicle"
	case KindPedestrian:
		return "pedestrian"
	case KindTrafficLight:
		return "traffic_light"
	case KindTrafficSign:
		return "traffic_sign"
	default:
		return "unknown"
	}
}

// VehicleState is the Vehicle-only payload of an Actor: the kinematics and
// ego flag the other actor kinds never carry.
type VehicleState struct {
	IsEgo        bool
	Velocity     geo.Vec3
	Acceleration geo.Vec3
}

// Clone returns a deep copy (VehicleState has no reference fields, so this
// is a value copy, but the method exists so callers never need to reason
// about whether a copy is safe to mutate independently).
func (v *VehicleState) Clone() *VehicleState {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

// EffVelocityKmh is the velocity magnitude in km/h, derived on read.
func (v *VehicleState) EffVelocityKmh() float64 {
	return geo.Norm(v.Velocity) * 3.6
}

// EffAccelerationMps2 is the acceleration magnitude in m/s^2, derived on read.
func (v *VehicleState) EffAccelerationMps2() float64 {
	return geo.Norm(v.Acceleration)
}

// SignedLongitudinalAccelerationMps2 is the acceleration projected onto the
// direction of travel: positive while speeding up, negative while braking.
// Zero when the vehicle is stationary, since there is no travel direction to
// project onto.
func (v *VehicleState) SignedLongitudinalAccelerationMps2() float64 {
	speed := geo.Norm(v.Velocity)
	if speed == 0 {
		return 0
	}
	return geo.Dot(v.Acceleration, v.Velocity) / speed
}

// Actor is one polymorphic actor in a tick: the shared base view (id,
// location, lane position — every RawActorPosition carries these
// regardless of kind) plus, for vehicles only, a VehicleState payload.
type Actor struct {
	ID             string
	Kind           ActorKind
	Location       geo.Vec3
	RoadID         string
	LaneID         string
	PositionOnLane float64
	Vehicle        *VehicleState // non-nil iff Kind == KindVehicle
}

// IsEgo reports whether this actor is the designated ego vehicle.
func (a *Actor) IsEgo() bool {
	return a.Kind == KindVehicle && a.Vehicle != nil && a.Vehicle.IsEgo
}

// Clone deep-copies an Actor, including its VehicleState payload.
func (a Actor) Clone() Actor {
	cp := a
	cp.Vehicle = a.Vehicle.Clone()
	return cp
}
