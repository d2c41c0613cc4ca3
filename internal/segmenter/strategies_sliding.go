package segmenter

import (
	"math"

	"go.uber.org/zap"

	"github.com/simtrace/tracecut/internal/distance"
	"github.com/simtrace/tracecut/internal/model"
)

// slidingWindowTicks is the shared core of SLIDING_WINDOW,
// SLIDING_WINDOW_HALF_OVERLAP, SLIDING_WINDOW_MULTISTART_TICKS and
// SLIDING_WINDOW_HALVING: a tick window of size w stepped by s ticks,
// stopping once i+w >= n.
func slidingWindowTicks(ticks []model.TickData, runID, segType string, ctx Context, w, s int, addJ bool) []model.Segment {
	if w < ctx.Min {
		ctx.log().Debug("window smaller than minimum",
			zap.String("type", segType), zap.Int("window", w), zap.Int("min", ctx.Min))
		return nil
	}

	var out []model.Segment
	n := len(ticks)

	if addJ {
		out = append(out, junctionBlocks(ticks, runID, segType, ctx)...)
	}

	for i := 0; i+w < n; i += s {
		start := i
		if ctx.isEgoOnJunction(ticks, start) {
			start = ctx.junctionExtendStart(ticks, start)
		}

		// Open question #2: the junction check looks at the window's last
		// index (i+w-1), but the extension helper is invoked one tick past
		// it (i+w). Preserved verbatim rather than aligning the two.
		end := i + w - 1
		if ctx.isEgoOnJunction(ticks, i+w-1) {
			end = ctx.junctionExtendEnd(ticks, i+w)
		}

		if seg, ok := ctx.emit(ticks, runID, segType, start, end+1); ok {
			out = append(out, seg)
		}
	}

	return out
}

func slidingWindow(ticks []model.TickData, runID string, ctx Context, w, s int, addJ bool) []model.Segment {
	return slidingWindowTicks(ticks, runID, SlidingWindow.String(), ctx, w, s, addJ)
}

func slidingWindowHalfOverlap(ticks []model.TickData, runID string, ctx Context, w int, addJ bool) []model.Segment {
	s := w / 4
	if s < 1 {
		s = 1
	}
	return slidingWindowTicks(ticks, runID, SlidingWindowHalfOverlap.String(), ctx, w, s, addJ)
}

func slidingWindowHalving(ticks []model.TickData, runID string, ctx Context) []model.Segment {
	n := len(ticks)
	var out []model.Segment
	size := n
	for pass := 0; pass < 5; pass++ {
		if size < ctx.Min {
			size /= 2
			continue
		}
		step := int(0.1 * float64(size))
		if step < 1 {
			step = 1
		}
		out = append(out, slidingWindowTicks(ticks, runID, SlidingWindowHalving.String(), ctx, size, step, false)...)
		size /= 2
	}
	return out
}

func slidingWindowRotating(ticks []model.TickData, runID string, ctx Context, step int, addJ bool) []model.Segment {
	sizes := []int{60, 65, 70, 75, 80}
	n := len(ticks)
	var out []model.Segment

	if addJ {
		out = append(out, junctionBlocks(ticks, runID, SlidingWindowRotating.String(), ctx)...)
	}

	for i := 0; i < n; i += step {
		w := sizes[ctx.Rand.Intn(len(sizes))]
		if i+w >= n {
			break
		}
		start, end := ctx.extendWindow(ticks, i, i+w)
		if seg, ok := ctx.emit(ticks, runID, SlidingWindowRotating.String(), start, end+1); ok {
			out = append(out, seg)
		}
	}

	return out
}

func slidingWindowByTrafficDensity(ticks []model.TickData, runID string, ctx Context, step int, addJ bool) []model.Segment {
	n := len(ticks)
	var out []model.Segment

	if addJ {
		out = append(out, junctionBlocks(ticks, runID, SlidingWindowByTrafficDensity.String(), ctx)...)
	}

	bounds := []float64{6, 16, math.Inf(1)}
	sizes := []int{60, 70, 80}

	for i := 0; i < n; i += step {
		block, ok := ctx.egoBlockID(ticks, i)
		density := 0.0
		if ok {
			density = float64(vehiclesInBlock(ticks, i, block, ctx))
		}
		bucket, err := indexOfFirstGreater(bounds, density)
		if err != nil {
			continue
		}
		w := sizes[bucket]
		if i+w >= n {
			break
		}
		start, end := ctx.extendWindow(ticks, i, i+w)
		if seg, ok := ctx.emit(ticks, runID, SlidingWindowByTrafficDensity.String(), start, end+1); ok {
			out = append(out, seg)
		}
	}

	return out
}

func slidingWindowMeters(ticks []model.TickData, runID string, ctx Context, w, s float64, addJ bool) []model.Segment {
	n := len(ticks)
	var out []model.Segment

	if addJ {
		out = append(out, junctionBlocks(ticks, runID, SlidingWindowMeters.String(), ctx)...)
	}

	i := 0
	for i < n-1 {
		endIdx, actual := distance.IndexAtDistance(ticks, i, w)
		if actual < w {
			break
		}
		start, end := ctx.extendWindow(ticks, i, endIdx)
		if seg, ok := ctx.emit(ticks, runID, SlidingWindowMeters.String(), start, end+1); ok {
			out = append(out, seg)
		}

		nextI, _ := distance.IndexAtDistance(ticks, i, s)
		if nextI <= i {
			break
		}
		i = nextI
	}

	return out
}

func slidingWindowMultistartTicks(ticks []model.TickData, runID string, ctx Context, overlapPct float64) []model.Segment {
	sizes := []int{100, 110, 120, 130, 140}
	var out []model.Segment
	for _, size := range sizes {
		step := int(math.Max(float64(size)*(1-overlapPct/100), 1))
		out = append(out, slidingWindowTicks(ticks, runID, SlidingWindowMultistartTicks.String(), ctx, size, step, false)...)
	}
	return out
}

func slidingWindowMultistartMeters(ticks []model.TickData, runID string, ctx Context, overlapPct float64) []model.Segment {
	sizes := []float64{60, 65, 70, 75, 80}
	var out []model.Segment
	for _, size := range sizes {
		step := math.Max(size*(1-overlapPct/100), 1)
		out = append(out, slidingWindowMeters(ticks, runID, ctx, size, step, false)...)
	}
	return out
}

func slidingWindowByBlock(ticks []model.TickData, runID string, ctx Context, w, s int, addJ bool) []model.Segment {
	var out []model.Segment
	for _, run := range ctx.blockRuns(ticks) {
		start, end := run[0], run[1]
		if addJ && ctx.blockContainsJunction(ticks, start, end) {
			if seg, ok := ctx.emit(ticks, runID, SlidingWindowByBlock.String(), start, end); ok {
				out = append(out, seg)
			}
			continue
		}

		blockLen := end - start
		if blockLen < w {
			if seg, ok := ctx.emit(ticks, runID, SlidingWindowByBlock.String(), start, end); ok {
				out = append(out, seg)
			}
			continue
		}

		for i := start; i+w <= end; i += s {
			if seg, ok := ctx.emit(ticks, runID, SlidingWindowByBlock.String(), i, i+w); ok {
				out = append(out, seg)
			}
		}
	}
	return out
}

// junctionBlocks returns (as whole segments) every BY_BLOCK run that
// contains a junction tick, for the addJunctions prepend behaviour.
func junctionBlocks(ticks []model.TickData, runID, segType string, ctx Context) []model.Segment {
	var out []model.Segment
	for _, run := range ctx.blockRuns(ticks) {
		if ctx.blockContainsJunction(ticks, run[0], run[1]) {
			if seg, ok := ctx.emit(ticks, runID, segType, run[0], run[1]); ok {
				out = append(out, seg)
			}
		}
	}
	return out
}

func vehiclesInBlock(ticks []model.TickData, tickIdx int, blockID string, ctx Context) int {
	count := 0
	for _, a := range ticks[tickIdx].Actors {
		if a.Kind != model.KindVehicle {
			continue
		}
		r, ok := ctx.Index.RoadOf(a.RoadID)
		if ok && r.BlockID == blockID {
			count++
		}
	}
	return count
}
