package model

import (
	"time"

	"github.com/simtrace/tracecut/internal/geo"
)

// RawActorPosition is one actor's raw position within a RawTick. Mutable
// only during junction cleaning (RoadID/LaneID may be overwritten).
type RawActorPosition struct {
	ActorRef       string
	Kind           ActorKind
	RoadID         string
	LaneID         string
	PositionOnLane float64
	Location       geo.Vec3
	IsEgo          bool // source-labelled ego flag, vehicles only
}

// RawTick is one timestamped snapshot as received from the dynamic data file.
type RawTick struct {
	CurrentTick time.Time
	Actors      []RawActorPosition
}

// TickData is the converted, ego-resolved snapshot the kinematics filler,
// distance oracle, and segmenter operate on.
type TickData struct {
	CurrentTick time.Time
	Actors      []Actor
	egoIndex    int // index into Actors, -1 if no ego is set
}

// NewTickData builds a TickData from actors, locating the ego vehicle (if
// any) among them.
func NewTickData(currentTick time.Time, actors []Actor) TickData {
	td := TickData{CurrentTick: currentTick, Actors: actors, egoIndex: -1}
	td.reindexEgo()
	return td
}

func (t *TickData) reindexEgo() {
	t.egoIndex = -1
	for i := range t.Actors {
		if t.Actors[i].IsEgo() {
			t.egoIndex = i
			return
		}
	}
}

// Ego returns the designated ego vehicle's Actor and whether one is set.
func (t *TickData) Ego() (*Actor, bool) {
	if t.egoIndex < 0 || t.egoIndex >= len(t.Actors) {
		return nil, false
	}
	return &t.Actors[t.egoIndex], true
}

// FindActor returns the actor with the given id regardless of kind, if
// present.
func (t *TickData) FindActor(id string) (*Actor, bool) {
	for i := range t.Actors {
		if t.Actors[i].ID == id {
			return &t.Actors[i], true
		}
	}
	return nil, false
}

// SetEgo clears any existing ego flag and marks the vehicle with id as ego.
// Returns false if no such vehicle exists in this tick.
func (t *TickData) SetEgo(id string) bool {
	t.egoIndex = -1
	for i := range t.Actors {
		a := &t.Actors[i]
		if a.Kind != KindVehicle || a.Vehicle == nil {
			continue
		}
		if a.ID == id {
			a.Vehicle.IsEgo = true
			t.egoIndex = i
		} else {
			a.Vehicle.IsEgo = false
		}
	}
	return t.egoIndex >= 0
}

// ClearEgoFlags clears IsEgo on every vehicle in this tick.
func (t *TickData) ClearEgoFlags() {
	for i := range t.Actors {
		a := &t.Actors[i]
		if a.Kind == KindVehicle && a.Vehicle != nil {
			a.Vehicle.IsEgo = false
		}
	}
	t.egoIndex = -1
}

// Clone deep-copies the tick: its Actors slice and each Actor's boxed
// VehicleState, so mutating the clone never disturbs the original timeline.
func (t TickData) Clone() TickData {
	cp := TickData{CurrentTick: t.CurrentTick, egoIndex: t.egoIndex}
	if t.Actors != nil {
		cp.Actors = make([]Actor, len(t.Actors))
		for i, a := range t.Actors {
			cp.Actors[i] = a.Clone()
		}
	}
	return cp
}

// CloneTimeline deep-copies an entire tick timeline.
func CloneTimeline(ticks []TickData) []TickData {
	out := make([]TickData, len(ticks))
	for i, t := range ticks {
		out[i] = t.Clone()
	}
	return out
}
