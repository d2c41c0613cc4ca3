// Package cleaner repairs per-vehicle lane assignments inside junctions,
// where the raw labeller misidentifies which internal lane a vehicle is on
// (spec.md §4.B).
package cleaner

import (
	"github.com/simtrace/tracecut/internal/model"
	"github.com/simtrace/tracecut/internal/network"
)

// Clean rewrites RawActorPosition.RoadID/LaneID in place for every vehicle
// across the run, resolving spurious junction lane changes.
func Clean(ticks []model.RawTick, idx *network.Index) error {
	for _, id := range vehicleIDs(ticks) {
		if err := cleanVehicle(ticks, id, idx); err != nil {
			return err
		}
	}
	return nil
}

// vehicleIDs returns the union of all Vehicle actor refs appearing in any
// tick, in first-seen order (for deterministic iteration/tests).
func vehicleIDs(ticks []model.RawTick) []string {
	seen := map[string]struct{}{}
	var ids []string
	for _, t := range ticks {
		for _, a := range t.Actors {
			if a.Kind != model.KindVehicle {
				continue
			}
			if _, ok := seen[a.ActorRef]; ok {
				continue
			}
			seen[a.ActorRef] = struct{}{}
			ids = append(ids, a.ActorRef)
		}
	}
	return ids
}

func findVehiclePos(ticks []model.RawTick, tickIdx int, id string) (*model.RawActorPosition, bool) {
	actors := ticks[tickIdx].Actors
	for i := range actors {
		if actors[i].Kind == model.KindVehicle && actors[i].ActorRef == id {
			return &actors[i], true
		}
	}
	return nil, false
}

func cleanVehicle(ticks []model.RawTick, id string, idx *network.Index) error {
	var previousMultilane *network.LaneRef
	var currentJunction []int

	flush := func(next *network.LaneRef) error {
		if len(currentJunction) == 0 {
			return nil
		}
		if err := resolveAndApply(ticks, id, currentJunction, previousMultilane, next, idx); err != nil {
			return err
		}
		currentJunction = nil
		return nil
	}

	for i := range ticks {
		pos, found := findVehiclePos(ticks, i, id)

		var ref *network.LaneRef
		isJunction := false
		if found {
			r := network.LaneRef{RoadID: pos.RoadID, LaneID: pos.LaneID}
			ref = &r
			isJunction = idx.IsJunction(pos.RoadID)
		}

		if found && isJunction {
			currentJunction = append(currentJunction, i)
			continue
		}

		if err := flush(ref); err != nil {
			return err
		}

		previousMultilane = ref
	}

	return flush(nil)
}

// resolveAndApply resolves one junction accumulator and, if a new lane is
// chosen, overwrites the raw positions for every accumulated tick index.
func resolveAndApply(ticks []model.RawTick, id string, indices []int, prev, next *network.LaneRef, idx *network.Index) error {
	lanes := make([]network.LaneRef, 0, len(indices))
	for _, ti := range indices {
		pos, found := findVehiclePos(ticks, ti, id)
		if !found {
			return &ErrInconsistentTrace{VehicleID: id, TickIndex: ti}
		}
		lanes = append(lanes, network.LaneRef{RoadID: pos.RoadID, LaneID: pos.LaneID})
	}

	if allSame(lanes) {
		return nil
	}

	newLane, ok := resolveJunction(lanes, prev, next, idx)
	if !ok {
		return nil
	}

	for _, ti := range indices {
		pos, found := findVehiclePos(ticks, ti, id)
		if !found {
			return &ErrInconsistentTrace{VehicleID: id, TickIndex: ti}
		}
		pos.RoadID = newLane.RoadID
		pos.LaneID = newLane.LaneID
	}

	return nil
}

// resolveJunction implements the priority list from spec.md §4.B.
func resolveJunction(lanes []network.LaneRef, prev, next *network.LaneRef, idx *network.Index) (network.LaneRef, bool) {
	if prev == nil || next == nil {
		return mostFrequent(lanes), true
	}

	if *prev == *next {
		return *prev, true
	}

	succ := idx.Successors(*prev)
	pred := idx.Predecessors(*next)

	if direct := intersect(succ, pred); len(direct) == 1 {
		return direct[0], true
	}

	var succ2 []network.LaneRef
	for _, s := range succ {
		succ2 = append(succ2, idx.Successors(s)...)
	}
	if detour := intersect(succ2, pred); len(detour) > 0 {
		return detour[0], true
	}

	return network.LaneRef{}, false
}

func allSame(lanes []network.LaneRef) bool {
	for i := 1; i < len(lanes); i++ {
		if lanes[i] != lanes[0] {
			return false
		}
	}
	return true
}

func mostFrequent(lanes []network.LaneRef) network.LaneRef {
	counts := make(map[network.LaneRef]int, len(lanes))
	order := make([]network.LaneRef, 0, len(lanes))
	for _, l := range lanes {
		if _, ok := counts[l]; !ok {
			order = append(order, l)
		}
		counts[l]++
	}

	best := order[0]
	bestCount := counts[best]
	for _, l := range order[1:] {
		if counts[l] > bestCount {
			best = l
			bestCount = counts[l]
		}
	}
	return best
}

// intersect returns the elements of a that also appear in b, in a's order,
// without duplicates.
func intersect(a, b []network.LaneRef) []network.LaneRef {
	inB := make(map[network.LaneRef]struct{}, len(b))
	for _, l := range b {
		inB[l] = struct{}{}
	}

	seen := map[network.LaneRef]struct{}{}
	var out []network.LaneRef
	for _, l := range a {
		if _, ok := inB[l]; !ok {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
