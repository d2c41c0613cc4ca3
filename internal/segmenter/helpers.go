package segmenter

import (
	"math"

	"go.uber.org/zap"

	"github.com/simtrace/tracecut/internal/model"
	"github.com/simtrace/tracecut/internal/network"
)

// Context bundles the shared collaborators every strategy needs: the
// road-network index for junction/block lookups, the min/max tick bounds,
// a logger for non-fatal conditions, and an injectable RNG for the one
// strategy that samples randomly.
type Context struct {
	Index  *network.Index
	Logger *zap.Logger
	Min    int
	Max    int
	Rand   randSource
}

// randSource is the subset of *rand.Rand the rotating-window strategy needs;
// kept narrow so tests can supply a deterministic fake.
type randSource interface {
	Intn(n int) int
}

func (c Context) log() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

func (c Context) egoRoad(ticks []model.TickData, i int) (*network.Road, bool) {
	a, ok := ticks[i].Ego()
	if !ok || c.Index == nil {
		return nil, false
	}
	return c.Index.RoadOf(a.RoadID)
}

func (c Context) isEgoOnJunction(ticks []model.TickData, i int) bool {
	r, ok := c.egoRoad(ticks, i)
	return ok && r.IsJunction
}

func (c Context) egoBlockID(ticks []model.TickData, i int) (string, bool) {
	r, ok := c.egoRoad(ticks, i)
	if !ok {
		return "", false
	}
	return r.BlockID, true
}

// junctionExtendStart walks backwards from start while the ego is on a
// junction road, returning the first non-junction index reached (or 0).
func (c Context) junctionExtendStart(ticks []model.TickData, start int) int {
	i := start
	for i > 0 && c.isEgoOnJunction(ticks, i) {
		i--
	}
	return i
}

// junctionExtendEnd walks forward from end (inclusive, last tick of the
// window) while the ego is on a junction road, returning the last
// non-junction index reached (or len(ticks)-1).
func (c Context) junctionExtendEnd(ticks []model.TickData, end int) int {
	i := end
	for i < len(ticks)-1 && c.isEgoOnJunction(ticks, i) {
		i++
	}
	return i
}

// extendWindow applies junction extension to both ends of [start,end]
// (inclusive), per the common helper in spec.md §4.F.
func (c Context) extendWindow(ticks []model.TickData, start, end int) (int, int) {
	if c.isEgoOnJunction(ticks, start) {
		start = c.junctionExtendStart(ticks, start)
	}
	if c.isEgoOnJunction(ticks, end) {
		end = c.junctionExtendEnd(ticks, end)
	}
	return start, end
}

// emit builds a Segment from ticks[start:end] (end exclusive) after applying
// the min/max enforcement policy. Returns false if the candidate was
// dropped.
func (c Context) emit(ticks []model.TickData, runID, segType string, start, end int) (model.Segment, bool) {
	if start < 0 {
		start = 0
	}
	if end > len(ticks) {
		end = len(ticks)
	}
	if end <= start {
		return model.Segment{}, false
	}

	if end-start < c.Min {
		c.log().Debug("segment below minimum, dropping",
			zap.String("type", segType), zap.Int("start", start), zap.Int("len", end-start), zap.Int("min", c.Min))
		return model.Segment{}, false
	}

	if c.Max > 0 && end-start > c.Max {
		c.log().Debug("segment truncated to maximum",
			zap.String("type", segType), zap.Int("start", start), zap.Int("len", end-start), zap.Int("max", c.Max))
		end = start + c.Max
	}

	return model.NewSegment(runID, segType, ticks, start, end), true
}

// blockRuns partitions ticks into maximal contiguous runs sharing one ego
// block id (the BY_BLOCK window definition). Ticks with no ego/road are
// treated as belonging to no block and are skipped (excluded from every
// run).
func (c Context) blockRuns(ticks []model.TickData) [][2]int {
	var runs [][2]int
	start := -1
	var curBlock string

	flush := func(end int) {
		if start >= 0 {
			runs = append(runs, [2]int{start, end})
		}
		start = -1
	}

	for i := range ticks {
		block, ok := c.egoBlockID(ticks, i)
		if !ok {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			curBlock = block
			continue
		}
		if block != curBlock {
			flush(i)
			start = i
			curBlock = block
		}
	}
	flush(len(ticks))

	return runs
}

// blockContainsJunction reports whether any ego position inside [start,end)
// sits on a junction road.
func (c Context) blockContainsJunction(ticks []model.TickData, start, end int) bool {
	for i := start; i < end; i++ {
		if c.isEgoOnJunction(ticks, i) {
			return true
		}
	}
	return false
}

// indexOfFirstGreater returns the index of the first bound in bounds that
// value is strictly less than (bounds ascending, the last conventionally
// +Inf). This is the "bucket index" used by every BY_DYNAMIC_* strategy.
func indexOfFirstGreater(bounds []float64, value float64) (int, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &UnsupportedInput{Reason: "non-finite kinematic value"}
	}
	for i, b := range bounds {
		if value < b {
			return i, nil
		}
	}
	return len(bounds) - 1, nil
}

// cutOnBucketChange emits one segment per maximal run of ticks sharing the
// same bucket index, where bucket(i) is computed by f over ego actor state.
func cutOnBucketChange(ticks []model.TickData, runID, segType string, ctx Context, bounds []float64, f func(a *model.Actor) float64) ([]model.Segment, error) {
	var out []model.Segment
	start := 0
	lastBucket := -1

	for i := range ticks {
		a, ok := ticks[i].Ego()
		if !ok {
			continue
		}
		b, err := indexOfFirstGreater(bounds, f(a))
		if err != nil {
			return nil, err
		}
		if lastBucket == -1 {
			lastBucket = b
			start = i
			continue
		}
		if b != lastBucket {
			if seg, ok := ctx.emit(ticks, runID, segType, start, i); ok {
				out = append(out, seg)
			}
			start = i
			lastBucket = b
		}
	}

	if seg, ok := ctx.emit(ticks, runID, segType, start, len(ticks)); ok {
		out = append(out, seg)
	}

	return out, nil
}
