// Package pipeline wires the road-network index, loader, junction cleaner,
// converter, kinematics filler, and segmenter into the bounded
// producer/consumer chain described by spec.md §4.G / §5 / §6.
package pipeline

import (
	"fmt"

	"github.com/simtrace/tracecut/internal/segmenter"
)

// Config is the recognised configuration surface (spec.md §6).
type Config struct {
	// MapToDynamicFiles maps one static-map file to its dynamic run files.
	MapToDynamicFiles map[string][]string `json:"mapToDynamicFiles" yaml:"mapToDynamicFiles"`

	// UseEveryVehicleAsEgo selects the §4.C ego-selection branch.
	UseEveryVehicleAsEgo bool `json:"useEveryVehicleAsEgo" yaml:"useEveryVehicleAsEgo"`

	// MinSegmentTickCount is the drop-threshold for non-junction segments.
	MinSegmentTickCount int `json:"minSegmentTickCount" yaml:"minSegmentTickCount"`

	// MaxSegmentTickCount is the truncation cap for dynamic strategies.
	// Required (> 0) when SegmentationType is one of the dynamic families.
	MaxSegmentTickCount int `json:"maxSegmentTickCount" yaml:"maxSegmentTickCount"`

	// OrderFilesBySeed flattens all maps' dynamic files and sorts them by
	// the seed extracted from their filename before loading.
	OrderFilesBySeed bool `json:"orderFilesBySeed" yaml:"orderFilesBySeed"`

	// SimulationRunPrefetchSize is the segment channel's buffer capacity.
	SimulationRunPrefetchSize int `json:"simulationRunPrefetchSize" yaml:"simulationRunPrefetchSize"`

	// SegmentationType selects the strategy; Value/SecondaryValue/AddJunctions
	// are its parameters per the §4.F table.
	SegmentationType segmenter.Type `json:"segmentationType" yaml:"segmentationType"`
	Value            float64        `json:"value" yaml:"value"`
	SecondaryValue   float64        `json:"secondaryValue" yaml:"secondaryValue"`
	AddJunctions     bool           `json:"addJunctions" yaml:"addJunctions"`

	// RotatingWindowSeed seeds the RNG for SLIDING_WINDOW_ROTATING so test
	// runs are reproducible (spec.md §9).
	RotatingWindowSeed int64 `json:"rotatingWindowSeed" yaml:"rotatingWindowSeed"`
}

// defaults matching spec.md §6's default column.
const (
	defaultMinSegmentTickCount       = 10
	defaultSimulationRunPrefetchSize = 500
)

// WithDefaults returns a copy of c with zero-valued optional fields filled
// in from spec.md §6's default column.
func (c Config) WithDefaults() Config {
	if c.MinSegmentTickCount == 0 {
		c.MinSegmentTickCount = defaultMinSegmentTickCount
	}
	if c.SimulationRunPrefetchSize == 0 {
		c.SimulationRunPrefetchSize = defaultSimulationRunPrefetchSize
	}
	return c
}

// isDynamicStrategy reports whether t requires MaxSegmentTickCount.
func isDynamicStrategy(t segmenter.Type) bool {
	switch t {
	case segmenter.DynamicSegmentLengthMetersSpeed,
		segmenter.DynamicSegmentLengthMetersAcceleration,
		segmenter.DynamicSegmentLengthMetersSpeedAcceleration1,
		segmenter.DynamicSegmentLengthMetersSpeedAcceleration2:
		return true
	default:
		return false
	}
}

// Validate checks the config against spec.md §6's constraints, catching
// missing required fields and bad combinations early.
func (c Config) Validate() error {
	if len(c.MapToDynamicFiles) == 0 {
		return fmt.Errorf("pipeline: mapToDynamicFiles is required and must be non-empty")
	}

	for mapFile, dynFiles := range c.MapToDynamicFiles {
		if mapFile == "" {
			return fmt.Errorf("pipeline: mapToDynamicFiles has an empty map key")
		}
		if len(dynFiles) == 0 {
			return fmt.Errorf("pipeline: map %q has no dynamic files", mapFile)
		}
	}

	if c.MinSegmentTickCount < 0 {
		return fmt.Errorf("pipeline: minSegmentTickCount must be >= 0, got %d", c.MinSegmentTickCount)
	}

	if isDynamicStrategy(c.SegmentationType) && c.MaxSegmentTickCount <= 0 {
		return fmt.Errorf("pipeline: maxSegmentTickCount is required for strategy %s", c.SegmentationType)
	}

	if c.SimulationRunPrefetchSize < 0 {
		return fmt.Errorf("pipeline: simulationRunPrefetchSize must be >= 0, got %d", c.SimulationRunPrefetchSize)
	}

	return nil
}
