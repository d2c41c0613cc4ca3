package kinematics

import (
	"math"
	"testing"
	"time"

	"github.com/simtrace/tracecut/internal/geo"
	"github.com/simtrace/tracecut/internal/model"
)

func vehicleAt(id string, loc geo.Vec3) model.Actor {
	return model.Actor{ID: id, Kind: model.KindVehicle, Location: loc, Vehicle: &model.VehicleState{}}
}

// TestLinearMotionRecoversVelocity reproduces spec.md §8 property 9: for
// location(i) = p0 + i*v*dt, the filler recovers velocity = v on every tick
// after the first.
func TestLinearMotionRecoversVelocity(t *testing.T) {
	t.Parallel()

	v := geo.Vec3{X: 2, Y: 0, Z: 0}
	dt := 0.5
	n := 5

	ticks := make([]model.TickData, n)
	for i := 0; i < n; i++ {
		loc := geo.Add(geo.Vec3{}, geo.Scale(float64(i)*dt, v))
		ticks[i] = model.NewTickData(time.Unix(0, 0).Add(time.Duration(float64(i)*dt*float64(time.Second))), []model.Actor{vehicleAt("a", loc)})
	}

	if err := Fill(ticks); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	for i := 1; i < n; i++ {
		got := ticks[i].Actors[0].Vehicle.Velocity
		if math.Abs(got.X-v.X) > 1e-9 || math.Abs(got.Y-v.Y) > 1e-9 || math.Abs(got.Z-v.Z) > 1e-9 {
			t.Errorf("tick %d velocity = %v, want %v", i, got, v)
		}
	}
}

func TestAbsentPredecessorZeroesState(t *testing.T) {
	t.Parallel()

	ticks := []model.TickData{
		model.NewTickData(time.Unix(0, 0), nil),
		model.NewTickData(time.Unix(1, 0), []model.Actor{vehicleAt("a", geo.Vec3{X: 5})}),
	}

	if err := Fill(ticks); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	got := ticks[1].Actors[0].Vehicle
	if got.Velocity != (geo.Vec3{}) || got.Acceleration != (geo.Vec3{}) {
		t.Errorf("velocity/acceleration = %v/%v, want zero", got.Velocity, got.Acceleration)
	}
}

func TestZeroDeltaZeroesState(t *testing.T) {
	t.Parallel()

	ticks := []model.TickData{
		model.NewTickData(time.Unix(0, 0), []model.Actor{vehicleAt("a", geo.Vec3{X: 1})}),
		model.NewTickData(time.Unix(0, 0), []model.Actor{vehicleAt("a", geo.Vec3{X: 5})}),
	}

	if err := Fill(ticks); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	got := ticks[1].Actors[0].Vehicle
	if got.Velocity != (geo.Vec3{}) {
		t.Errorf("velocity = %v, want zero on Δt == 0", got.Velocity)
	}
}

func TestTypeMismatchOnSameIDNonVehiclePredecessor(t *testing.T) {
	t.Parallel()

	pedestrian := model.Actor{ID: "a", Kind: model.KindPedestrian, Location: geo.Vec3{}}
	ticks := []model.TickData{
		model.NewTickData(time.Unix(0, 0), []model.Actor{pedestrian}),
		model.NewTickData(time.Unix(1, 0), []model.Actor{vehicleAt("a", geo.Vec3{X: 5})}),
	}

	err := Fill(ticks)
	if err == nil {
		t.Fatal("expected TypeMismatch, got nil")
	}
	if _, ok := err.(*TypeMismatch); !ok {
		t.Errorf("error type = %T, want *TypeMismatch", err)
	}
}

func TestTimeOrderViolation(t *testing.T) {
	t.Parallel()

	ticks := []model.TickData{
		model.NewTickData(time.Unix(1, 0), []model.Actor{vehicleAt("a", geo.Vec3{})}),
		model.NewTickData(time.Unix(0, 0), []model.Actor{vehicleAt("a", geo.Vec3{})}),
	}

	err := Fill(ticks)
	if err == nil {
		t.Fatal("expected TimeOrderViolation, got nil")
	}
	if _, ok := err.(*TimeOrderViolation); !ok {
		t.Errorf("error type = %T, want *TimeOrderViolation", err)
	}
}

// TestAccelerationFormulaIsVerbatim pins down the §9 open question: the
// formula is velocity - prev.velocity/Δt, not (velocity-prev.velocity)/Δt.
func TestAccelerationFormulaIsVerbatim(t *testing.T) {
	t.Parallel()

	ticks := []model.TickData{
		model.NewTickData(time.Unix(0, 0), []model.Actor{vehicleAt("a", geo.Vec3{X: 0})}),
		model.NewTickData(time.Unix(2, 0), []model.Actor{vehicleAt("a", geo.Vec3{X: 4})}),
		model.NewTickData(time.Unix(4, 0), []model.Actor{vehicleAt("a", geo.Vec3{X: 12})}),
	}

	if err := Fill(ticks); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	// tick2: velocity = (12-4)/2 = 4; prev.velocity = 2 (tick1's velocity), Δt = 2.
	// Verbatim formula: 4 - 2/2 = 3. The "corrected" (velocity-prev.velocity)/Δt
	// would give (4-2)/2 = 1 — a different value, so this pins the verbatim form.
	got := ticks[2].Actors[0].Vehicle.Acceleration.X
	want := 4.0 - 2.0/2.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("acceleration.X = %v, want %v", got, want)
	}
}
