// Package tracecut ingests recorded driving-simulation traces and produces
// a lazy, finite stream of Segments suitable for downstream
// scenario-pattern evaluation.
package tracecut

import (
	"context"

	"go.uber.org/zap"

	"github.com/simtrace/tracecut/internal/model"
	"github.com/simtrace/tracecut/internal/pipeline"
	"github.com/simtrace/tracecut/internal/segmenter"
)

// Config is the pipeline's recognised configuration surface (spec.md §6).
type Config = pipeline.Config

// SegmentationType is the closed family of segmentation strategies (spec.md
// §4.F).
type SegmentationType = segmenter.Type

// Segmentation strategy identifiers, re-exported for callers building a
// Config without importing internal/segmenter directly.
const (
	StaticSegmentLengthTicks                     = segmenter.StaticSegmentLengthTicks
	StaticSegmentLengthMeters                    = segmenter.StaticSegmentLengthMeters
	DynamicSegmentLengthMetersSpeed              = segmenter.DynamicSegmentLengthMetersSpeed
	DynamicSegmentLengthMetersAcceleration       = segmenter.DynamicSegmentLengthMetersAcceleration
	DynamicSegmentLengthMetersSpeedAcceleration1 = segmenter.DynamicSegmentLengthMetersSpeedAcceleration1
	DynamicSegmentLengthMetersSpeedAcceleration2 = segmenter.DynamicSegmentLengthMetersSpeedAcceleration2
	SlidingWindowMultistartMeters                = segmenter.SlidingWindowMultistartMeters
	SlidingWindowMultistartTicks                 = segmenter.SlidingWindowMultistartTicks
	ByBlock                                      = segmenter.ByBlock
	None                                         = segmenter.None
	EvenSize                                     = segmenter.EvenSize
	ByLength                                     = segmenter.ByLength
	ByTicks                                      = segmenter.ByTicks
	BySpeedLimits                                = segmenter.BySpeedLimits
	ByDynamicSpeed                               = segmenter.ByDynamicSpeed
	ByDynamicAcceleration                        = segmenter.ByDynamicAcceleration
	ByDynamicTrafficDensity                      = segmenter.ByDynamicTrafficDensity
	ByDynamicPedestrianProximity                 = segmenter.ByDynamicPedestrianProximity
	ByDynamicLaneChanges                         = segmenter.ByDynamicLaneChanges
	ByDynamicVariables                           = segmenter.ByDynamicVariables
	SlidingWindow                                = segmenter.SlidingWindow
	SlidingWindowMeters                          = segmenter.SlidingWindowMeters
	SlidingWindowByBlock                         = segmenter.SlidingWindowByBlock
	SlidingWindowHalving                         = segmenter.SlidingWindowHalving
	SlidingWindowHalfOverlap                     = segmenter.SlidingWindowHalfOverlap
	SlidingWindowRotating                        = segmenter.SlidingWindowRotating
	SlidingWindowByTrafficDensity                = segmenter.SlidingWindowByTrafficDensity
)

// Segment is a bounded sub-sequence of a run emitted by the pipeline (spec.md §3).
type Segment = model.Segment

// Metrics exposes the pipeline's throughput counters (spec.md §9).
type Metrics = pipeline.Metrics

// Run starts the pipeline described by cfg and returns a channel of
// Segments. The channel closes once every configured run has been fully
// sliced, or immediately on a fatal error (surfaced via the returned
// error only for configuration problems detected before any work starts;
// runtime failures are logged and close the stream early).
func Run(ctx context.Context, cfg Config, logger *zap.Logger) (<-chan Segment, *Metrics, error) {
	return pipeline.Run(ctx, cfg, logger)
}
