package network

import (
	"github.com/cespare/xxhash"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// laneGraph materializes lane successor/predecessor relations as a directed
// graph so the junction cleaner can walk successors(successors(x)) without
// re-scanning lane slices. Node identity is a deterministic hash of the lane
// key, the same hash-to-identity trick the teacher uses for road-part
// palette hashing (internal/roadparts.hashColor) and tv4p entry IDs.
type laneGraph struct {
	g       *simple.DirectedGraph
	idToRef map[int64]LaneRef
	refToID map[LaneRef]int64
}

func newLaneGraph(lanes map[LaneRef]*Lane) *laneGraph {
	lg := &laneGraph{
		g:       simple.NewDirectedGraph(),
		idToRef: make(map[int64]LaneRef, len(lanes)),
		refToID: make(map[LaneRef]int64, len(lanes)),
	}

	for ref := range lanes {
		id := laneNodeID(ref)
		lg.idToRef[id] = ref
		lg.refToID[ref] = id
		lg.g.AddNode(simple.Node(id))
	}

	for ref, lane := range lanes {
		fromID := lg.refToID[ref]
		for _, succ := range lane.SuccessorLanes {
			toID, ok := lg.refToID[succ]
			if !ok {
				continue
			}
			if lg.g.HasEdgeFromTo(fromID, toID) {
				continue
			}
			lg.g.SetEdge(simple.Edge{F: simple.Node(fromID), T: simple.Node(toID)})
		}
		for _, pred := range lane.PredecessorLanes {
			fromPredID, ok := lg.refToID[pred]
			if !ok {
				continue
			}
			if lg.g.HasEdgeFromTo(fromPredID, fromID) {
				continue
			}
			lg.g.SetEdge(simple.Edge{F: simple.Node(fromPredID), T: simple.Node(fromID)})
		}
	}

	return lg
}

// laneNodeID hashes a lane key into a graph node ID.
func laneNodeID(ref LaneRef) int64 {
	h := xxhash.Sum64String(ref.RoadID + "\x00" + ref.LaneID)
	// Graph node IDs are int64; keep the sign bit clear so collisions with
	// the zero/negative reserved range never occur.
	return int64(h >> 1)
}

func (lg *laneGraph) from(ref LaneRef) []LaneRef {
	id, ok := lg.refToID[ref]
	if !ok {
		return nil
	}

	return lg.collect(lg.g.From(id))
}

func (lg *laneGraph) to(ref LaneRef) []LaneRef {
	id, ok := lg.refToID[ref]
	if !ok {
		return nil
	}

	return lg.collect(lg.g.To(id))
}

func (lg *laneGraph) collect(nodes graph.Nodes) []LaneRef {
	var out []LaneRef
	for nodes.Next() {
		ref, ok := lg.idToRef[nodes.Node().ID()]
		if ok {
			out = append(out, ref)
		}
	}

	return out
}
