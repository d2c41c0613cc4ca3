package segmenter

import "github.com/simtrace/tracecut/internal/model"

// Segment applies one strategy to a cleaned, converted tick timeline and
// returns zero or more Segments, each owning a deep copy of its source
// tick slice. Empty input yields an empty, non-error result.
func Segment(ticks []model.TickData, runID string, typ Type, p Params, ctx Context) ([]model.Segment, error) {
	if len(ticks) == 0 {
		return nil, nil
	}

	switch typ {
	case StaticSegmentLengthTicks:
		return staticSegmentLengthTicks(ticks, runID, ctx, p.WindowTicks, p.StepTicks), nil
	case StaticSegmentLengthMeters:
		return staticSegmentLengthMeters(ticks, runID, ctx, p.WindowMeters, p.StepMeters), nil
	case DynamicSegmentLengthMetersSpeed:
		return dynamicSegmentLengthMetersSpeed(ticks, runID, ctx, p.StepMeters), nil
	case DynamicSegmentLengthMetersAcceleration:
		return dynamicSegmentLengthMetersAcceleration(ticks, runID, ctx, p.StepMeters), nil
	case DynamicSegmentLengthMetersSpeedAcceleration1:
		return dynamicSegmentLengthMetersSpeedAcceleration1(ticks, runID, ctx, p.StepMeters), nil
	case DynamicSegmentLengthMetersSpeedAcceleration2:
		return dynamicSegmentLengthMetersSpeedAcceleration2(ticks, runID, ctx, p.StepMeters), nil
	case SlidingWindowMultistartMeters:
		return slidingWindowMultistartMeters(ticks, runID, ctx, p.OverlapPct), nil
	case SlidingWindowMultistartTicks:
		return slidingWindowMultistartTicks(ticks, runID, ctx, p.OverlapPct), nil
	case ByBlock:
		return byBlock(ticks, runID, ctx), nil
	case None:
		return none(ticks, runID, ctx), nil
	case EvenSize:
		return evenSize(ticks, runID, ctx, p.K, p.AddJunctions), nil
	case ByLength:
		return byLength(ticks, runID, ctx, p.LengthMeters, p.AddJunctions), nil
	case ByTicks:
		return byTicks(ticks, runID, ctx, p.TickCount, p.AddJunctions), nil
	case BySpeedLimits:
		return bySpeedLimits(ticks, runID, ctx, p.AddJunctions), nil
	case ByDynamicSpeed:
		return byDynamicSpeed(ticks, runID, ctx)
	case ByDynamicAcceleration:
		return byDynamicAcceleration(ticks, runID, ctx)
	case ByDynamicTrafficDensity:
		return byDynamicTrafficDensityReal(ticks, runID, ctx)
	case ByDynamicPedestrianProximity:
		return byDynamicPedestrianProximity(ticks, runID, ctx), nil
	case ByDynamicLaneChanges:
		return byDynamicLaneChanges(ticks, runID, ctx), nil
	case ByDynamicVariables:
		return byDynamicVariables(ticks, runID, ctx, p.AddJunctions)
	case SlidingWindow:
		return slidingWindow(ticks, runID, ctx, p.WindowTicks, p.StepTicks, p.AddJunctions), nil
	case SlidingWindowMeters:
		return slidingWindowMeters(ticks, runID, ctx, p.WindowMeters, p.StepMeters, p.AddJunctions), nil
	case SlidingWindowByBlock:
		return slidingWindowByBlock(ticks, runID, ctx, p.WindowTicks, p.StepTicks, p.AddJunctions), nil
	case SlidingWindowHalving:
		return slidingWindowHalving(ticks, runID, ctx), nil
	case SlidingWindowHalfOverlap:
		return slidingWindowHalfOverlap(ticks, runID, ctx, p.WindowTicks, p.AddJunctions), nil
	case SlidingWindowRotating:
		return slidingWindowRotating(ticks, runID, ctx, int(p.Step), p.AddJunctions), nil
	case SlidingWindowByTrafficDensity:
		return slidingWindowByTrafficDensity(ticks, runID, ctx, int(p.Step), p.AddJunctions), nil
	default:
		return nil, &UnsupportedStrategy{Type: typ}
	}
}
