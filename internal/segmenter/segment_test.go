package segmenter

import (
	"testing"
	"time"

	"github.com/simtrace/tracecut/internal/geo"
	"github.com/simtrace/tracecut/internal/model"
	"github.com/simtrace/tracecut/internal/network"
)

func flatIndex() *network.Index {
	return network.Build([]network.Block{
		{ID: "b1", Roads: []network.Road{
			{ID: "r1", Lanes: []network.Lane{{LaneID: "l1", Type: network.Driving}}},
		}},
	})
}

func egoTick(roadID string, speedKmh float64) model.TickData {
	mps := speedKmh / 3.6
	return model.NewTickData(time.Time{}, []model.Actor{
		{ID: "ego", Kind: model.KindVehicle, RoadID: roadID, LaneID: "l1",
			Vehicle: &model.VehicleState{IsEgo: true, Velocity: geo.Vec3{X: mps}}},
	})
}

func plainTicks(n int) []model.TickData {
	out := make([]model.TickData, n)
	for i := range out {
		out[i] = egoTick("r1", 20)
	}
	return out
}

func baseCtx() Context {
	return Context{Index: flatIndex(), Min: 10, Max: 0}
}

// TestStaticSegmentLengthTicksScenario reproduces spec.md §8 scenario 2: a
// 250-tick run, STATIC_SEGMENT_LENGTH_TICKS(100,100), no junctions, yields
// 3 segments with the last overlapping the tail.
func TestStaticSegmentLengthTicksScenario(t *testing.T) {
	t.Parallel()

	ticks := plainTicks(250)
	ctx := baseCtx()

	segs, err := Segment(ticks, "run1", StaticSegmentLengthTicks, Params{WindowTicks: 100, StepTicks: 100}, ctx)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("len(segs) = %d, want 3", len(segs))
	}
	for _, s := range segs {
		if len(s.TickData) != 100 {
			t.Errorf("segment length = %d, want 100", len(s.TickData))
		}
	}
}

// TestByDynamicSpeedBucketTransition reproduces spec.md §8 scenario 4: ego
// speed rises monotonically from 10 to 40 km/h across 120 ticks; expect a
// split at the first tick crossing the 15 km/h bound.
func TestByDynamicSpeedBucketTransition(t *testing.T) {
	t.Parallel()

	n := 120
	ticks := make([]model.TickData, n)
	for i := 0; i < n; i++ {
		speed := 10 + (30.0*float64(i))/float64(n-1)
		ticks[i] = egoTick("r1", speed)
	}

	ctx := baseCtx()
	segs, err := Segment(ticks, "run1", ByDynamicSpeed, Params{}, ctx)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segs) == 0 {
		t.Fatal("expected at least one segment")
	}

	firstLen := len(segs[0].TickData)
	first15 := -1
	for i := 0; i < n; i++ {
		speed := 10 + (30.0*float64(i))/float64(n-1)
		if speed >= 15 {
			first15 = i
			break
		}
	}
	if first15 >= 0 && firstLen != first15 {
		t.Errorf("first segment length = %d, want %d (first tick with speed>=15)", firstLen, first15)
	}
}

func egoTickWithAcceleration(roadID string, velocity, acceleration geo.Vec3) model.TickData {
	return model.NewTickData(time.Time{}, []model.Actor{
		{ID: "ego", Kind: model.KindVehicle, RoadID: roadID, LaneID: "l1",
			Vehicle: &model.VehicleState{IsEgo: true, Velocity: velocity, Acceleration: acceleration}},
	})
}

// TestByDynamicAccelerationReachesBrakingBucket guards against the bucket
// metric collapsing to a magnitude: with bounds {-0.5, 0.5, ∞} the braking
// bucket (value < -0.5) must be reachable by a vehicle decelerating along
// its direction of travel.
func TestByDynamicAccelerationReachesBrakingBucket(t *testing.T) {
	t.Parallel()

	travel := geo.Vec3{X: 10}
	cruising := geo.Vec3{}
	braking := geo.Vec3{X: -2}

	ticks := []model.TickData{
		egoTickWithAcceleration("r1", travel, cruising),
		egoTickWithAcceleration("r1", travel, cruising),
		egoTickWithAcceleration("r1", travel, braking),
		egoTickWithAcceleration("r1", travel, braking),
	}

	ctx := Context{Index: flatIndex(), Min: 1}
	segs, err := Segment(ticks, "run1", ByDynamicAcceleration, Params{}, ctx)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("len(segs) = %d, want 2 (cruise, then brake)", len(segs))
	}
	if len(segs[0].TickData) != 2 || len(segs[1].TickData) != 2 {
		t.Errorf("segment lengths = %d/%d, want 2/2", len(segs[0].TickData), len(segs[1].TickData))
	}
}

func TestByBlockGroupsContiguousSameBlock(t *testing.T) {
	t.Parallel()

	idx := network.Build([]network.Block{
		{ID: "b1", Roads: []network.Road{{ID: "r1", Lanes: []network.Lane{{LaneID: "l1"}}}}},
		{ID: "b2", Roads: []network.Road{{ID: "r2", Lanes: []network.Lane{{LaneID: "l1"}}}}},
	})

	ticks := []model.TickData{
		egoTick("r1", 20), egoTick("r1", 20), egoTick("r1", 20),
		egoTick("r2", 20), egoTick("r2", 20), egoTick("r2", 20),
	}

	ctx := Context{Index: idx, Min: 1}
	segs, err := Segment(ticks, "run1", ByBlock, Params{}, ctx)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("len(segs) = %d, want 2", len(segs))
	}
	if len(segs[0].TickData) != 3 || len(segs[1].TickData) != 3 {
		t.Errorf("segment lengths = %d/%d, want 3/3", len(segs[0].TickData), len(segs[1].TickData))
	}
}

func TestNoneWholeRun(t *testing.T) {
	t.Parallel()

	ticks := plainTicks(15)
	ctx := baseCtx()

	segs, err := Segment(ticks, "run1", None, Params{}, ctx)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segs) != 1 || len(segs[0].TickData) != 15 {
		t.Fatalf("segs = %+v, want one 15-tick segment", segs)
	}
}

func TestNoneIdempotence(t *testing.T) {
	t.Parallel()

	ticks := plainTicks(15)
	ctx := baseCtx()

	first, err := Segment(ticks, "run1", None, Params{}, ctx)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}

	second, err := Segment(first[0].TickData, "run1", None, Params{}, ctx)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}

	if len(second) != 1 || len(second[0].TickData) != len(first[0].TickData) {
		t.Errorf("re-segmenting a NONE segment changed its shape: %+v", second)
	}
}

func TestEmptyRunYieldsEmptyOutput(t *testing.T) {
	t.Parallel()

	ctx := baseCtx()
	segs, err := Segment(nil, "run1", StaticSegmentLengthTicks, Params{WindowTicks: 10, StepTicks: 10}, ctx)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if segs != nil {
		t.Errorf("segs = %v, want nil", segs)
	}
}

func TestUnsupportedStrategy(t *testing.T) {
	t.Parallel()

	ctx := baseCtx()
	_, err := Segment(plainTicks(20), "run1", Type(999), Params{}, ctx)
	if err == nil {
		t.Fatal("expected UnsupportedStrategy, got nil")
	}
	if _, ok := err.(*UnsupportedStrategy); !ok {
		t.Errorf("error type = %T, want *UnsupportedStrategy", err)
	}
}

func TestMinSegmentDropsShortTail(t *testing.T) {
	t.Parallel()

	ticks := plainTicks(25)
	ctx := Context{Index: flatIndex(), Min: 10}

	segs, err := Segment(ticks, "run1", StaticSegmentLengthTicks, Params{WindowTicks: 10, StepTicks: 10}, ctx)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	for _, s := range segs {
		if len(s.TickData) < ctx.Min {
			t.Errorf("segment shorter than min leaked through: len=%d", len(s.TickData))
		}
	}
}
