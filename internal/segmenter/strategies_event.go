package segmenter

import (
	"math"

	"github.com/simtrace/tracecut/internal/model"
	"github.com/simtrace/tracecut/internal/network"
)

func byBlock(ticks []model.TickData, runID string, ctx Context) []model.Segment {
	var out []model.Segment
	for _, run := range ctx.blockRuns(ticks) {
		if seg, ok := ctx.emit(ticks, runID, ByBlock.String(), run[0], run[1]); ok {
			out = append(out, seg)
		}
	}
	return out
}

func none(ticks []model.TickData, runID string, ctx Context) []model.Segment {
	if seg, ok := ctx.emit(ticks, runID, None.String(), 0, len(ticks)); ok {
		return []model.Segment{seg}
	}
	return nil
}

func evenSize(ticks []model.TickData, runID string, ctx Context, k int, addJ bool) []model.Segment {
	var out []model.Segment
	for _, run := range ctx.blockRuns(ticks) {
		start, end := run[0], run[1]

		if addJ && ctx.blockContainsJunction(ticks, start, end) {
			if seg, ok := ctx.emit(ticks, runID, EvenSize.String(), start, end); ok {
				out = append(out, seg)
			}
			continue
		}

		blockLen := end - start
		if k <= 0 || blockLen < k {
			if seg, ok := ctx.emit(ticks, runID, EvenSize.String(), start, end); ok {
				out = append(out, seg)
			}
			continue
		}

		size := blockLen / k
		for j := 0; j < k; j++ {
			subStart := start + j*size
			subEnd := subStart + size
			if j == k-1 {
				subEnd = end
			}
			if seg, ok := ctx.emit(ticks, runID, EvenSize.String(), subStart, subEnd); ok {
				out = append(out, seg)
			}
		}
	}
	return out
}

func byLength(ticks []model.TickData, runID string, ctx Context, lengthMeters float64, addJ bool) []model.Segment {
	var out []model.Segment
	for _, run := range ctx.blockRuns(ticks) {
		start, end := run[0], run[1]

		if addJ && ctx.blockContainsJunction(ticks, start, end) {
			if seg, ok := ctx.emit(ticks, runID, ByLength.String(), start, end); ok {
				out = append(out, seg)
			}
			continue
		}

		segStart := start
		acc := 0.0
		for i := start + 1; i < end; i++ {
			cur, okC := ticks[i].Ego()
			prev, okP := ticks[i-1].Ego()
			if okC && okP {
				d := cur.PositionOnLane - prev.PositionOnLane
				if d < 0 {
					d = -d
				}
				acc += d
			}
			if acc >= lengthMeters {
				if seg, ok := ctx.emit(ticks, runID, ByLength.String(), segStart, i+1); ok {
					out = append(out, seg)
				}
				segStart = i + 1
				acc = 0
			}
		}
		if segStart < end {
			if seg, ok := ctx.emit(ticks, runID, ByLength.String(), segStart, end); ok {
				out = append(out, seg)
			}
		}
	}
	return out
}

func byTicks(ticks []model.TickData, runID string, ctx Context, tickCount int, addJ bool) []model.Segment {
	var out []model.Segment
	for _, run := range ctx.blockRuns(ticks) {
		start, end := run[0], run[1]

		if addJ && ctx.blockContainsJunction(ticks, start, end) {
			if seg, ok := ctx.emit(ticks, runID, ByTicks.String(), start, end); ok {
				out = append(out, seg)
			}
			continue
		}

		for i := start; i < end; i += tickCount {
			j := i + tickCount
			if j > end {
				j = end
			}
			if seg, ok := ctx.emit(ticks, runID, ByTicks.String(), i, j); ok {
				out = append(out, seg)
			}
		}
	}
	return out
}

func bySpeedLimits(ticks []model.TickData, runID string, ctx Context, addJ bool) []model.Segment {
	var out []model.Segment
	for _, run := range ctx.blockRuns(ticks) {
		start, end := run[0], run[1]

		if addJ && ctx.blockContainsJunction(ticks, start, end) {
			if seg, ok := ctx.emit(ticks, runID, BySpeedLimits.String(), start, end); ok {
				out = append(out, seg)
			}
			continue
		}

		segStart := start
		var lastLimit *float64
		for i := start; i < end; i++ {
			limit := speedLimitAt(ticks, i, ctx)
			if i > start && !sameLimit(limit, lastLimit) {
				if seg, ok := ctx.emit(ticks, runID, BySpeedLimits.String(), segStart, i); ok {
					out = append(out, seg)
				}
				segStart = i
			}
			lastLimit = limit
		}
		if segStart < end {
			if seg, ok := ctx.emit(ticks, runID, BySpeedLimits.String(), segStart, end); ok {
				out = append(out, seg)
			}
		}
	}
	return out
}

func speedLimitAt(ticks []model.TickData, i int, ctx Context) *float64 {
	a, ok := ticks[i].Ego()
	if !ok || ctx.Index == nil {
		return nil
	}
	l, err := ctx.Index.FindLane(a.RoadID, a.LaneID)
	if err != nil {
		return nil
	}
	return l.ApplicableSpeedLimit
}

func sameLimit(a, b *float64) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func byDynamicSpeed(ticks []model.TickData, runID string, ctx Context) ([]model.Segment, error) {
	bounds := []float64{15, 35, 60, 90, 130, math.Inf(1)}
	return cutOnBucketChange(ticks, runID, ByDynamicSpeed.String(), ctx, bounds, func(a *model.Actor) float64 {
		return a.Vehicle.EffVelocityKmh()
	})
}

// byDynamicAcceleration cuts on bucket transitions of the ego's signed
// longitudinal acceleration against {-0.5, 0.5, ∞} (braking / cruising /
// accelerating). The bounds are signed, so the bucket metric must be a
// signed scalar: EffAccelerationMps2 is an unsigned magnitude and would
// leave the braking bucket unreachable.
func byDynamicAcceleration(ticks []model.TickData, runID string, ctx Context) ([]model.Segment, error) {
	bounds := []float64{-0.5, 0.5, math.Inf(1)}
	return cutOnBucketChange(ticks, runID, ByDynamicAcceleration.String(), ctx, bounds, func(a *model.Actor) float64 {
		return a.Vehicle.SignedLongitudinalAccelerationMps2()
	})
}

// byDynamicTrafficDensityReal cuts on bucket transitions of the vehicle
// count within the ego's current block, against {6,16,∞}. Both the
// BY_DYNAMIC_TRAFFIC_DENSITY dispatch in Segment and byDynamicVariables call
// it.
func byDynamicTrafficDensityReal(ticks []model.TickData, runID string, ctx Context) ([]model.Segment, error) {
	bounds := []float64{6, 16, math.Inf(1)}
	var out []model.Segment
	start := 0
	lastBucket := -1

	for i := range ticks {
		block, ok := ctx.egoBlockID(ticks, i)
		if !ok {
			continue
		}
		density := float64(vehiclesInBlock(ticks, i, block, ctx))
		bucket, err := indexOfFirstGreater(bounds, density)
		if err != nil {
			return nil, err
		}
		if lastBucket == -1 {
			lastBucket = bucket
			start = i
			continue
		}
		if bucket != lastBucket {
			if seg, ok := ctx.emit(ticks, runID, ByDynamicTrafficDensity.String(), start, i); ok {
				out = append(out, seg)
			}
			start = i
			lastBucket = bucket
		}
	}

	if seg, ok := ctx.emit(ticks, runID, ByDynamicTrafficDensity.String(), start, len(ticks)); ok {
		out = append(out, seg)
	}

	return out, nil
}

func byDynamicPedestrianProximity(ticks []model.TickData, runID string, ctx Context) []model.Segment {
	var out []model.Segment
	start := 0
	lastFlag := -1

	for i := range ticks {
		ego, ok := ticks[i].Ego()
		if !ok {
			continue
		}
		flag := 0
		if pedestrianNearby(ticks[i], ego, ctx) {
			flag = 1
		}

		if lastFlag == -1 {
			lastFlag = flag
			start = i
			continue
		}
		if flag != lastFlag {
			if seg, ok := ctx.emit(ticks, runID, ByDynamicPedestrianProximity.String(), start, i); ok {
				out = append(out, seg)
			}
			start = i
			lastFlag = flag
		}
	}

	if seg, ok := ctx.emit(ticks, runID, ByDynamicPedestrianProximity.String(), start, len(ticks)); ok {
		out = append(out, seg)
	}

	return out
}

func pedestrianNearby(t model.TickData, ego *model.Actor, ctx Context) bool {
	const radius = 30.0
	for _, a := range t.Actors {
		if a.Kind != model.KindPedestrian {
			continue
		}
		if !onDrivingLane(a, ctx) {
			continue
		}
		d := ego.Location.X - a.Location.X
		dy := ego.Location.Y - a.Location.Y
		dz := ego.Location.Z - a.Location.Z
		if d*d+dy*dy+dz*dz <= radius*radius {
			return true
		}
	}
	return false
}

func onDrivingLane(a model.Actor, ctx Context) bool {
	if ctx.Index == nil {
		return false
	}
	l, err := ctx.Index.FindLane(a.RoadID, a.LaneID)
	if err != nil {
		return false
	}
	return l.Type == network.Driving
}

func byDynamicLaneChanges(ticks []model.TickData, runID string, ctx Context) []model.Segment {
	var out []model.Segment
	var lastLane string
	haveLast := false

	for i := range ticks {
		ego, ok := ticks[i].Ego()
		if !ok {
			continue
		}
		if haveLast && ego.LaneID != lastLane {
			start := i - 10
			if start < 0 {
				start = 0
			}
			end := i + 100
			if end > len(ticks) {
				end = len(ticks)
			}
			if seg, ok := ctx.emit(ticks, runID, ByDynamicLaneChanges.String(), start, end); ok {
				out = append(out, seg)
			}
		}
		lastLane = ego.LaneID
		haveLast = true
	}

	return out
}

// byDynamicVariables concatenates the output of its seven sub-strategies in
// a fixed order. Overlapping or duplicate segments across sub-strategies are
// not removed, so callers receive them as-is.
func byDynamicVariables(ticks []model.TickData, runID string, ctx Context, addJ bool) ([]model.Segment, error) {
	var out []model.Segment

	out = append(out, byBlock(ticks, runID, ctx)...)

	accel, err := byDynamicAcceleration(ticks, runID, ctx)
	if err != nil {
		return nil, err
	}
	out = append(out, accel...)

	speed, err := byDynamicSpeed(ticks, runID, ctx)
	if err != nil {
		return nil, err
	}
	out = append(out, speed...)

	density, err := byDynamicTrafficDensityReal(ticks, runID, ctx)
	if err != nil {
		return nil, err
	}
	out = append(out, density...)

	out = append(out, byDynamicPedestrianProximity(ticks, runID, ctx)...)
	out = append(out, byDynamicLaneChanges(ticks, runID, ctx)...)
	out = append(out, slidingWindowHalfOverlap(ticks, runID, ctx, 100, addJ)...)

	return out, nil
}
