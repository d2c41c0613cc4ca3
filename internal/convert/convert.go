// Package convert transforms one cleaned raw tick list into the internal
// TickData timeline, selects the ego vehicle(s), and clones the timeline
// once per selected ego (spec.md §4.C).
package convert

import (
	"fmt"

	"github.com/simtrace/tracecut/internal/model"
	"github.com/simtrace/tracecut/internal/network"
)

// Options controls ego selection.
type Options struct {
	UseEveryVehicleAsEgo bool
	SimulationRunID      string
}

// Run converts a cleaned raw tick list into zero or more SimulationRuns, one
// per selected ego vehicle.
func Run(raw []model.RawTick, idx *network.Index, opts Options) ([]model.SimulationRun, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	reference, err := convertAll(raw, idx)
	if err != nil {
		return nil, err
	}

	egoIDs, err := selectEgoIDs(raw[0], opts.UseEveryVehicleAsEgo)
	if err != nil {
		return nil, err
	}

	var runs []model.SimulationRun
	for _, id := range egoIDs {
		clone := model.CloneTimeline(reference)
		if opts.UseEveryVehicleAsEgo {
			for i := range clone {
				clone[i].ClearEgoFlags()
			}
		}

		aborted := false
		for i := range clone {
			if !clone[i].SetEgo(id) {
				aborted = true
				break
			}
		}
		if aborted {
			continue
		}

		runs = append(runs, model.SimulationRun{SimulationRunID: opts.SimulationRunID, Ticks: clone})
	}

	return runs, nil
}

// selectEgoIDs implements the §4.C ego-selection rule over the vehicles
// present in the first tick.
func selectEgoIDs(first model.RawTick, useEveryVehicleAsEgo bool) ([]string, error) {
	var all []string
	var sourceEgo []string
	seen := map[string]struct{}{}

	for _, a := range first.Actors {
		if a.Kind != model.KindVehicle {
			continue
		}
		if _, ok := seen[a.ActorRef]; ok {
			continue
		}
		seen[a.ActorRef] = struct{}{}
		all = append(all, a.ActorRef)
		if a.IsEgo {
			sourceEgo = append(sourceEgo, a.ActorRef)
		}
	}

	if useEveryVehicleAsEgo {
		return all, nil
	}

	if len(sourceEgo) > 0 {
		return sourceEgo, nil
	}

	if len(all) == 0 {
		return nil, nil
	}

	return all[:1], nil
}

// convertAll converts every raw tick once, resolving lane references via
// the road-network index.
func convertAll(raw []model.RawTick, idx *network.Index) ([]model.TickData, error) {
	out := make([]model.TickData, len(raw))
	for i, rt := range raw {
		td, err := convertTick(rt, idx)
		if err != nil {
			return nil, fmt.Errorf("convert tick %d: %w", i, err)
		}
		out[i] = td
	}
	return out, nil
}

func convertTick(rt model.RawTick, idx *network.Index) (model.TickData, error) {
	actors := make([]model.Actor, len(rt.Actors))
	for i, raw := range rt.Actors {
		a := model.Actor{
			ID:             raw.ActorRef,
			Kind:           raw.Kind,
			Location:       raw.Location,
			RoadID:         raw.RoadID,
			LaneID:         raw.LaneID,
			PositionOnLane: raw.PositionOnLane,
		}

		if raw.RoadID != "" || raw.LaneID != "" {
			if _, err := idx.FindLane(raw.RoadID, raw.LaneID); err != nil {
				return model.TickData{}, err
			}
		}

		if raw.Kind == model.KindVehicle {
			a.Vehicle = &model.VehicleState{IsEgo: raw.IsEgo}
		}

		actors[i] = a
	}

	return model.NewTickData(rt.CurrentTick, actors), nil
}
