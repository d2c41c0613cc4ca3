// Package distance provides the ego path-length oracle used by the
// metre-based segmentation strategies (spec.md §4.E).
package distance

import (
	"github.com/simtrace/tracecut/internal/geo"
	"github.com/simtrace/tracecut/internal/model"
)

// IndexAtDistance walks ticks[start+1:], accumulating ego path length per
// step, and returns the first index whose accumulator reaches meters along
// with the accumulated distance at that index. If the end of ticks is
// reached first, it returns the last index and whatever distance
// accumulated.
func IndexAtDistance(ticks []model.TickData, start int, meters float64) (endIdx int, actualMeters float64) {
	if start >= len(ticks)-1 {
		return len(ticks) - 1, 0
	}

	acc := 0.0
	i := start + 1
	for ; i < len(ticks); i++ {
		acc += stepDistance(ticks, i)
		if acc >= meters {
			return i, acc
		}
	}

	return len(ticks) - 1, acc
}

// LastValidStart scans from the end of ticks backwards using Euclidean
// distance to the final ego location, returning the first index met on that
// backward scan (the highest index) from which at least meters of remaining
// path exists. Returns 0 if even the full run falls short.
func LastValidStart(ticks []model.TickData, meters float64) int {
	if len(ticks) == 0 {
		return 0
	}

	last := len(ticks) - 1
	lastEgo, ok := ticks[last].Ego()
	if !ok {
		return 0
	}

	for i := last; i >= 0; i-- {
		ego, ok := ticks[i].Ego()
		if !ok {
			continue
		}
		if geo.Distance(ego.Location, lastEgo.Location) >= meters {
			return i
		}
	}

	return 0
}

// stepDistance is the per-step ego path-length contribution at index i,
// relative to i-1: same-road steps use the lane-relative positionOnLane
// delta, cross-road steps use Euclidean location distance.
func stepDistance(ticks []model.TickData, i int) float64 {
	cur, ok := ticks[i].Ego()
	if !ok {
		return 0
	}
	prev, ok := ticks[i-1].Ego()
	if !ok {
		return 0
	}

	if cur.RoadID != "" && cur.RoadID == prev.RoadID {
		d := cur.PositionOnLane - prev.PositionOnLane
		if d < 0 {
			d = -d
		}
		return d
	}

	return geo.Distance(cur.Location, prev.Location)
}
