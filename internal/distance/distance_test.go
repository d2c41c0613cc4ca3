package distance

import (
	"testing"
	"time"

	"github.com/simtrace/tracecut/internal/geo"
	"github.com/simtrace/tracecut/internal/model"
)

func egoTick(roadID string, positionOnLane float64, loc geo.Vec3) model.TickData {
	return model.NewTickData(time.Time{}, []model.Actor{
		{ID: "ego", Kind: model.KindVehicle, RoadID: roadID, PositionOnLane: positionOnLane, Location: loc, Vehicle: &model.VehicleState{IsEgo: true}},
	})
}

func TestIndexAtDistanceSameRoad(t *testing.T) {
	t.Parallel()

	ticks := []model.TickData{
		egoTick("r1", 0, geo.Vec3{}),
		egoTick("r1", 10, geo.Vec3{X: 10}),
		egoTick("r1", 25, geo.Vec3{X: 25}),
		egoTick("r1", 40, geo.Vec3{X: 40}),
	}

	endIdx, actual := IndexAtDistance(ticks, 0, 20)
	if endIdx != 2 {
		t.Errorf("endIdx = %d, want 2", endIdx)
	}
	if actual != 25 {
		t.Errorf("actualMeters = %v, want 25", actual)
	}
}

func TestIndexAtDistanceReachesEnd(t *testing.T) {
	t.Parallel()

	ticks := []model.TickData{
		egoTick("r1", 0, geo.Vec3{}),
		egoTick("r1", 5, geo.Vec3{X: 5}),
	}

	endIdx, actual := IndexAtDistance(ticks, 0, 1000)
	if endIdx != 1 {
		t.Errorf("endIdx = %d, want 1", endIdx)
	}
	if actual != 5 {
		t.Errorf("actualMeters = %v, want 5", actual)
	}
}

func TestIndexAtDistanceCrossRoadUsesEuclidean(t *testing.T) {
	t.Parallel()

	ticks := []model.TickData{
		egoTick("r1", 0, geo.Vec3{}),
		egoTick("r2", 0, geo.Vec3{X: 3, Y: 4}),
	}

	endIdx, actual := IndexAtDistance(ticks, 0, 5)
	if endIdx != 1 || actual != 5 {
		t.Errorf("endIdx/actual = %d/%v, want 1/5", endIdx, actual)
	}
}

func TestLastValidStart(t *testing.T) {
	t.Parallel()

	ticks := []model.TickData{
		egoTick("r1", 0, geo.Vec3{}),
		egoTick("r1", 10, geo.Vec3{X: 10}),
		egoTick("r1", 20, geo.Vec3{X: 20}),
	}

	got := LastValidStart(ticks, 15)
	if got != 0 {
		t.Errorf("LastValidStart = %d, want 0", got)
	}

	got = LastValidStart(ticks, 100)
	if got != 0 {
		t.Errorf("LastValidStart (impossible) = %d, want 0", got)
	}
}
