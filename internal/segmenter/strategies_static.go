package segmenter

import (
	"github.com/simtrace/tracecut/internal/distance"
	"github.com/simtrace/tracecut/internal/model"
)

func staticSegmentLengthTicks(ticks []model.TickData, runID string, ctx Context, w, s int) []model.Segment {
	var out []model.Segment
	n := len(ticks)

	for i := 0; i < n; i += s {
		end := i + w
		stop := false
		if end >= n {
			end = n
			i = n - w
			if i < 0 {
				i = 0
			}
			stop = true
		}

		start, extEnd := ctx.extendWindow(ticks, i, end-1)
		extEnd++ // back to exclusive

		if seg, ok := ctx.emit(ticks, runID, StaticSegmentLengthTicks.String(), start, extEnd); ok {
			out = append(out, seg)
		}

		if stop {
			break
		}
	}

	return out
}

func staticSegmentLengthMeters(ticks []model.TickData, runID string, ctx Context, w, s float64) []model.Segment {
	var out []model.Segment
	n := len(ticks)
	if n == 0 {
		return nil
	}

	lastStart := distance.LastValidStart(ticks, w)

	start := 0
	for {
		endIdx, _ := distance.IndexAtDistance(ticks, start, w)
		extStart, extEnd := ctx.extendWindow(ticks, start, endIdx)

		if seg, ok := ctx.emit(ticks, runID, StaticSegmentLengthMeters.String(), extStart, extEnd+1); ok {
			out = append(out, seg)
		}

		if start >= lastStart {
			if endIdx < n-1 {
				if seg, ok := ctx.emit(ticks, runID, StaticSegmentLengthMeters.String(), endIdx+1, n); ok {
					out = append(out, seg)
				}
			}
			break
		}

		nextStart, _ := distance.IndexAtDistance(ticks, start, s)
		if nextStart <= start {
			break
		}
		start = nextStart
	}

	return out
}

// dynamicMetersStep computes one dynamic-distance pass: window metres are
// recomputed at every step from the current ego kinematics via windowFn,
// advance is by ticks covering a fixed step metre budget.
func dynamicMetersStep(ticks []model.TickData, runID, segType string, ctx Context, step float64, windowFn func(a *model.Actor) float64) []model.Segment {
	var out []model.Segment
	n := len(ticks)
	if n == 0 {
		return nil
	}

	start := 0
	for start < n-1 {
		ego, ok := ticks[start].Ego()
		if !ok {
			start++
			continue
		}

		w := windowFn(ego)
		endIdx, _ := distance.IndexAtDistance(ticks, start, w)

		// Open question #3: junction extension is computed strictly from
		// this metre-window's own first/last tick indices.
		extStart, extEnd := ctx.extendWindow(ticks, start, endIdx)

		if seg, ok := ctx.emit(ticks, runID, segType, extStart, extEnd+1); ok {
			out = append(out, seg)
		}

		nextStart, _ := distance.IndexAtDistance(ticks, start, step)
		if nextStart <= start {
			break
		}
		start = nextStart
	}

	return out
}

func dynamicSegmentLengthMetersSpeed(ticks []model.TickData, runID string, ctx Context, step float64) []model.Segment {
	const lookAhead = 60.0
	const scalar = 300.0
	return dynamicMetersStep(ticks, runID, DynamicSegmentLengthMetersSpeed.String(), ctx, step, func(a *model.Actor) float64 {
		speed := a.Vehicle.EffVelocityKmh()
		return lookAhead * (1 + speed/scalar)
	})
}

func dynamicSegmentLengthMetersAcceleration(ticks []model.TickData, runID string, ctx Context, step float64) []model.Segment {
	const lookAhead = 60.0
	const scalar = 1.0
	return dynamicMetersStep(ticks, runID, DynamicSegmentLengthMetersAcceleration.String(), ctx, step, func(a *model.Actor) float64 {
		accel := a.Vehicle.EffAccelerationMps2()
		return scalar*accel*accel + lookAhead
	})
}

func dynamicSegmentLengthMetersSpeedAcceleration1(ticks []model.TickData, runID string, ctx Context, step float64) []model.Segment {
	const lookAhead = 30.0
	return dynamicMetersStep(ticks, runID, DynamicSegmentLengthMetersSpeedAcceleration1.String(), ctx, step, func(a *model.Actor) float64 {
		accel := a.Vehicle.EffAccelerationMps2()
		speed := a.Vehicle.EffVelocityKmh()
		return lookAhead + (accel/2)*1.2*1.2 + speed*1.2 + (speed/10)*(speed/10)*0.5
	})
}

func dynamicSegmentLengthMetersSpeedAcceleration2(ticks []model.TickData, runID string, ctx Context, step float64) []model.Segment {
	const lookAhead = 30.0
	const scalar = 30.0
	return dynamicMetersStep(ticks, runID, DynamicSegmentLengthMetersSpeedAcceleration2.String(), ctx, step, func(a *model.Actor) float64 {
		accel := a.Vehicle.EffAccelerationMps2()
		speed := a.Vehicle.EffVelocityKmh()
		abs := accel
		if abs < 0 {
			abs = -abs
		}
		return lookAhead*(1+speed/scalar) + abs*5
	})
}
