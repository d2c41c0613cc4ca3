package model

import (
	"testing"
	"time"

	"github.com/simtrace/tracecut/internal/geo"
)

func vehicleActor(id string, isEgo bool) Actor {
	return Actor{ID: id, Kind: KindVehicle, Vehicle: &VehicleState{IsEgo: isEgo}}
}

func TestNewTickDataEgoIndex(t *testing.T) {
	t.Parallel()

	td := NewTickData(time.Time{}, []Actor{vehicleActor("a", false), vehicleActor("b", true)})

	ego, ok := td.Ego()
	if !ok {
		t.Fatal("expected ego to be found")
	}
	if ego.ID != "b" {
		t.Errorf("ego id = %q, want b", ego.ID)
	}
}

func TestSetEgo(t *testing.T) {
	t.Parallel()

	td := NewTickData(time.Time{}, []Actor{vehicleActor("a", true), vehicleActor("b", false)})

	if !td.SetEgo("b") {
		t.Fatal("SetEgo(b) should succeed")
	}
	ego, ok := td.Ego()
	if !ok || ego.ID != "b" {
		t.Errorf("ego = %+v, ok=%v, want b", ego, ok)
	}
	if td.Actors[0].Vehicle.IsEgo {
		t.Error("previous ego flag should be cleared")
	}

	if td.SetEgo("missing") {
		t.Error("SetEgo(missing) should fail")
	}
	if _, ok := td.Ego(); ok {
		t.Error("ego should be cleared after a failed SetEgo")
	}
}

func TestCloneIsolation(t *testing.T) {
	t.Parallel()

	td := NewTickData(time.Time{}, []Actor{vehicleActor("a", true)})
	cp := td.Clone()

	cp.Actors[0].Vehicle.Velocity = geo.Vec3{X: 1}
	if td.Actors[0].Vehicle.Velocity.X != 0 {
		t.Error("mutating clone's vehicle state disturbed the original")
	}

	cp.Actors[0].Location = geo.Vec3{X: 9}
	if td.Actors[0].Location.X != 0 {
		t.Error("mutating clone's actor disturbed the original")
	}
}

func TestCloneTimelineIsolation(t *testing.T) {
	t.Parallel()

	ticks := []TickData{
		NewTickData(time.Time{}, []Actor{vehicleActor("a", true)}),
		NewTickData(time.Time{}, []Actor{vehicleActor("a", true)}),
	}
	clone := CloneTimeline(ticks)

	clone[0].Actors[0].Vehicle.IsEgo = false
	if !ticks[0].Actors[0].Vehicle.IsEgo {
		t.Error("mutating a cloned timeline disturbed the original")
	}
}
