package network

import "testing"

func sampleBlocks() []Block {
	return []Block{
		{
			ID: "block1",
			Roads: []Road{
				{
					ID: "roadA",
					Lanes: []Lane{
						{LaneID: "l1", Type: Driving, SuccessorLanes: []LaneRef{{RoadID: "junction1", LaneID: "j1"}}},
					},
				},
				{
					ID:         "junction1",
					IsJunction: true,
					Lanes: []Lane{
						{LaneID: "j1", Type: Driving,
							PredecessorLanes: []LaneRef{{RoadID: "roadA", LaneID: "l1"}},
							SuccessorLanes:   []LaneRef{{RoadID: "roadB", LaneID: "l2"}}},
					},
				},
				{
					ID: "roadB",
					Lanes: []Lane{
						{LaneID: "l2", Type: Driving, PredecessorLanes: []LaneRef{{RoadID: "junction1", LaneID: "j1"}}},
					},
				},
			},
		},
	}
}

func TestBuildAndFindLane(t *testing.T) {
	t.Parallel()

	idx := Build(sampleBlocks())

	l, err := idx.FindLane("roadA", "l1")
	if err != nil {
		t.Fatalf("FindLane: %v", err)
	}
	if l.LaneID != "l1" {
		t.Errorf("got lane %q, want l1", l.LaneID)
	}

	if _, err := idx.FindLane("roadA", "nope"); err == nil {
		t.Error("expected ErrUnknownLane, got nil")
	}
}

func TestIsJunction(t *testing.T) {
	t.Parallel()

	idx := Build(sampleBlocks())

	if idx.IsJunction("roadA") {
		t.Error("roadA should not be a junction")
	}
	if !idx.IsJunction("junction1") {
		t.Error("junction1 should be a junction")
	}
	if idx.IsJunction("unknown") {
		t.Error("unknown road should not be a junction")
	}
}

func TestSuccessorsPredecessors(t *testing.T) {
	t.Parallel()

	idx := Build(sampleBlocks())

	succ := idx.Successors(LaneRef{RoadID: "roadA", LaneID: "l1"})
	if len(succ) != 1 || succ[0] != (LaneRef{RoadID: "junction1", LaneID: "j1"}) {
		t.Errorf("Successors(roadA/l1) = %v, want [junction1/j1]", succ)
	}

	pred := idx.Predecessors(LaneRef{RoadID: "roadB", LaneID: "l2"})
	if len(pred) != 1 || pred[0] != (LaneRef{RoadID: "junction1", LaneID: "j1"}) {
		t.Errorf("Predecessors(roadB/l2) = %v, want [junction1/j1]", pred)
	}
}

func TestRoadOfSetsBlockID(t *testing.T) {
	t.Parallel()

	idx := Build(sampleBlocks())

	r, ok := idx.RoadOf("roadA")
	if !ok {
		t.Fatal("RoadOf(roadA) not found")
	}
	if r.BlockID != "block1" {
		t.Errorf("BlockID = %q, want block1", r.BlockID)
	}
}
