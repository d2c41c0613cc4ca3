package ingest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/simtrace/tracecut/internal/geo"
	"github.com/simtrace/tracecut/internal/model"
)

type vec3JSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v vec3JSON) toVec3() geo.Vec3 {
	return geo.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// actorPositionJSON mirrors the wire shape of one polymorphic actor
// descriptor: the kind tag decides which fields are meaningful.
type actorPositionJSON struct {
	ActorRef       string   `json:"actorRef"`
	Kind           string   `json:"kind"`
	RoadID         string   `json:"roadId"`
	LaneID         string   `json:"laneId"`
	PositionOnLane float64  `json:"positionOnLane"`
	Location       vec3JSON `json:"location"`
	EgoVehicle     bool     `json:"egoVehicle"`
}

func (a actorPositionJSON) toRawActorPosition() (model.RawActorPosition, error) {
	kind, err := actorKindFromString(a.Kind)
	if err != nil {
		return model.RawActorPosition{}, err
	}

	return model.RawActorPosition{
		ActorRef:       a.ActorRef,
		Kind:           kind,
		RoadID:         a.RoadID,
		LaneID:         a.LaneID,
		PositionOnLane: a.PositionOnLane,
		Location:       a.Location.toVec3(),
		IsEgo:          a.EgoVehicle,
	}, nil
}

func actorKindFromString(s string) (model.ActorKind, error) {
	switch s {
	case "vehicle":
		return model.KindVehicle, nil
	case "pedestrian":
		return model.KindPedestrian, nil
	case "trafficLight":
		return model.KindTrafficLight, nil
	case "trafficSign":
		return model.KindTrafficSign, nil
	default:
		return 0, fmt.Errorf("ingest: unknown actor kind %q", s)
	}
}

type rawTickJSON struct {
	CurrentTick    time.Time           `json:"currentTick"`
	ActorPositions []actorPositionJSON `json:"actorPositions"`
}

// DecodeDynamic parses the dynamic tick document at path into the raw tick
// list for one run.
func DecodeDynamic(path string) ([]model.RawTick, error) {
	raw, err := readBytes(path)
	if err != nil {
		return nil, err
	}

	var ticks []rawTickJSON
	if err := json.Unmarshal(raw, &ticks); err != nil {
		return nil, fmt.Errorf("ingest: decode dynamic document %s: %w", path, err)
	}

	out := make([]model.RawTick, len(ticks))
	for ti, t := range ticks {
		actors := make([]model.RawActorPosition, len(t.ActorPositions))
		for ai, a := range t.ActorPositions {
			pos, err := a.toRawActorPosition()
			if err != nil {
				return nil, fmt.Errorf("ingest: %s: tick %d actor %d: %w", path, ti, ai, err)
			}
			actors[ai] = pos
		}
		out[ti] = model.RawTick{CurrentTick: t.CurrentTick, Actors: actors}
	}

	return out, nil
}
