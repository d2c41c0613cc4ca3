package model

// SimulationRun is a (simulationRunId, ordered TickData) pair: one run per
// ego vehicle after conversion (§4.C).
type SimulationRun struct {
	SimulationRunID string
	Ticks           []TickData
}

// Segment is a bounded sub-sequence of a run, emitted by the segmenter.
// Ticks are deep copies of their source slice so the upstream timeline may
// be released once segmentation of a run completes.
type Segment struct {
	TickData         []TickData
	SimulationRunID  string
	SegmentSource    string
	SegmentationType string
}

// NewSegment builds a Segment from a deep copy of ticks[start:end].
func NewSegment(runID, segType string, ticks []TickData, start, end int) Segment {
	src := ticks[start:end]
	cp := make([]TickData, len(src))
	for i, t := range src {
		cp[i] = t.Clone()
	}

	return Segment{
		TickData:         cp,
		SimulationRunID:  runID,
		SegmentSource:    runID,
		SegmentationType: segType,
	}
}
