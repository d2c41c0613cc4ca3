package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/simtrace/tracecut/internal/network"
)

type laneRefJSON struct {
	RoadID string `json:"roadId"`
	LaneID string `json:"laneId"`
}

func (r laneRefJSON) toRef() network.LaneRef {
	return network.LaneRef{RoadID: r.RoadID, LaneID: r.LaneID}
}

type laneJSON struct {
	LaneID               string        `json:"laneId"`
	Type                 string        `json:"laneType"`
	SuccessorLanes       []laneRefJSON `json:"successorLanes"`
	PredecessorLanes     []laneRefJSON `json:"predecessorLanes"`
	ApplicableSpeedLimit *float64      `json:"applicableSpeedLimit"`
}

func (l laneJSON) toLane() network.Lane {
	out := network.Lane{
		LaneID:               l.LaneID,
		Type:                 laneTypeFromString(l.Type),
		ApplicableSpeedLimit: l.ApplicableSpeedLimit,
	}
	for _, s := range l.SuccessorLanes {
		out.SuccessorLanes = append(out.SuccessorLanes, s.toRef())
	}
	for _, p := range l.PredecessorLanes {
		out.PredecessorLanes = append(out.PredecessorLanes, p.toRef())
	}
	return out
}

func laneTypeFromString(s string) network.LaneType {
	switch s {
	case "sidewalk":
		return network.Sidewalk
	case "driving", "":
		return network.Driving
	default:
		return network.Other
	}
}

type roadJSON struct {
	ID         string     `json:"id"`
	IsJunction bool       `json:"isJunction"`
	Lanes      []laneJSON `json:"lanes"`
}

type blockJSON struct {
	ID    string     `json:"id"`
	Roads []roadJSON `json:"roads"`
}

// DecodeStatic parses the static road-network document at path into the
// Block list the road-network indexer consumes.
func DecodeStatic(path string) ([]network.Block, error) {
	raw, err := readBytes(path)
	if err != nil {
		return nil, err
	}

	var blocks []blockJSON
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, fmt.Errorf("ingest: decode static document %s: %w", path, err)
	}

	out := make([]network.Block, len(blocks))
	for bi, b := range blocks {
		block := network.Block{ID: b.ID}
		for _, r := range b.Roads {
			road := network.Road{ID: r.ID, IsJunction: r.IsJunction}
			for _, l := range r.Lanes {
				road.Lanes = append(road.Lanes, l.toLane())
			}
			block.Roads = append(block.Roads, road)
		}
		out[bi] = block
	}

	return out, nil
}
