package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/simtrace/tracecut/internal/cleaner"
	"github.com/simtrace/tracecut/internal/convert"
	"github.com/simtrace/tracecut/internal/ingest"
	"github.com/simtrace/tracecut/internal/kinematics"
	"github.com/simtrace/tracecut/internal/model"
	"github.com/simtrace/tracecut/internal/network"
	"github.com/simtrace/tracecut/internal/segmenter"
)

// runDescriptor identifies one dynamic file within one map.
type runDescriptor struct {
	MapFile     string
	DynamicFile string
	MapName     string
	Seed        int
}

type rawJob struct {
	Descriptor runDescriptor
	Index      *network.Index
	Ticks      []model.RawTick
}

// Run starts the loader and slicer tasks and returns a channel that yields
// every Segment produced from cfg.MapToDynamicFiles, closing once the
// loader and slicer have both finished or ctx is cancelled. Closing the
// consumer side (by the caller abandoning the channel after cancelling ctx)
// is the cancellation signal described in spec.md §5.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) (<-chan model.Segment, *Metrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	descriptors := buildDescriptors(cfg)

	metrics := &Metrics{}
	stopMetrics := metrics.logEvery(logger, time.Second)

	rawCh := make(chan rawJob, len(descriptors)) // one slot per descriptor, so the loader never blocks on send
	segCh := make(chan model.Segment, cfg.SimulationRunPrefetchSize)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(rawCh)
		return loadTask(gctx, descriptors, rawCh, metrics, logger)
	})

	g.Go(func() error {
		defer close(segCh)
		return sliceTask(gctx, cfg, rawCh, segCh, metrics, logger)
	})

	go func() {
		if err := g.Wait(); err != nil {
			logger.Error("pipeline terminated with error", zap.Error(err))
		}
		stopMetrics()
		metrics.markFinished()
	}()

	return segCh, metrics, nil
}

func buildDescriptors(cfg Config) []runDescriptor {
	var out []runDescriptor
	for mapFile, dynFiles := range cfg.MapToDynamicFiles {
		mName, _ := mapName(mapFile)
		for _, df := range dynFiles {
			s, _ := seed(df)
			out = append(out, runDescriptor{MapFile: mapFile, DynamicFile: df, MapName: mName, Seed: s})
		}
	}

	if cfg.OrderFilesBySeed {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Seed < out[j].Seed })
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].MapFile != out[j].MapFile {
				return out[i].MapFile < out[j].MapFile
			}
			return out[i].DynamicFile < out[j].DynamicFile
		})
	}

	return out
}

func loadTask(ctx context.Context, descriptors []runDescriptor, rawCh chan<- rawJob, metrics *Metrics, logger *zap.Logger) error {
	indices := map[string]*network.Index{}

	for _, d := range descriptors {
		idx, ok := indices[d.MapFile]
		if !ok {
			blocks, err := ingest.DecodeStatic(d.MapFile)
			if err != nil {
				return fmt.Errorf("pipeline: load static map %s: %w", d.MapFile, err)
			}
			idx = network.Build(blocks)
			indices[d.MapFile] = idx
		}

		ticks, err := ingest.DecodeDynamic(d.DynamicFile)
		if err != nil {
			return fmt.Errorf("pipeline: load dynamic file %s: %w", d.DynamicFile, err)
		}

		metrics.ReadSimulationRuns.Add(1)
		metrics.SimulationRunsBuffer.Add(1)

		select {
		case rawCh <- rawJob{Descriptor: d, Index: idx, Ticks: ticks}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

func sliceTask(ctx context.Context, cfg Config, rawCh <-chan rawJob, segCh chan<- model.Segment, metrics *Metrics, logger *zap.Logger) error {
	rng := rand.New(rand.NewSource(cfg.RotatingWindowSeed))

	for {
		select {
		case job, ok := <-rawCh:
			if !ok {
				return nil
			}
			metrics.SimulationRunsBuffer.Add(-1)

			if err := sliceJob(ctx, cfg, job, segCh, metrics, logger, rng); err != nil {
				return err
			}

			metrics.SlicedSimulationRuns.Add(1)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func sliceJob(ctx context.Context, cfg Config, job rawJob, segCh chan<- model.Segment, metrics *Metrics, logger *zap.Logger, rng *rand.Rand) error {
	if err := cleaner.Clean(job.Ticks, job.Index); err != nil {
		return fmt.Errorf("pipeline: clean %s: %w", job.Descriptor.DynamicFile, err)
	}

	runs, err := convert.Run(job.Ticks, job.Index, convert.Options{
		UseEveryVehicleAsEgo: cfg.UseEveryVehicleAsEgo,
		SimulationRunID:      simulationRunID(job.Descriptor),
	})
	if err != nil {
		return fmt.Errorf("pipeline: convert %s: %w", job.Descriptor.DynamicFile, err)
	}

	segCtx := segmenter.Context{
		Index:  job.Index,
		Logger: logger,
		Min:    cfg.MinSegmentTickCount,
		Max:    cfg.MaxSegmentTickCount,
		Rand:   rng,
	}
	params := paramsFor(cfg)

	for _, run := range runs {
		if err := kinematics.Fill(run.Ticks); err != nil {
			return fmt.Errorf("pipeline: kinematics %s: %w", run.SimulationRunID, err)
		}

		segments, err := segmenter.Segment(run.Ticks, run.SimulationRunID, cfg.SegmentationType, params, segCtx)
		if err != nil {
			return fmt.Errorf("pipeline: segment %s: %w", run.SimulationRunID, err)
		}

		for _, s := range segments {
			metrics.SegmentsBuffer.Add(1)
			select {
			case segCh <- s:
				metrics.SegmentsBuffer.Add(-1)
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return nil
}

// paramsFor interprets cfg.Value/cfg.SecondaryValue according to
// cfg.SegmentationType, per the §4.F table each strategy is documented
// against. Fields that no case below sets stay zero.
func paramsFor(cfg Config) segmenter.Params {
	p := segmenter.Params{AddJunctions: cfg.AddJunctions}

	switch cfg.SegmentationType {
	case segmenter.StaticSegmentLengthTicks, segmenter.SlidingWindow, segmenter.SlidingWindowHalfOverlap, segmenter.SlidingWindowByBlock:
		p.WindowTicks = int(cfg.Value)
		p.StepTicks = int(cfg.SecondaryValue)
	case segmenter.StaticSegmentLengthMeters, segmenter.SlidingWindowMeters:
		p.WindowMeters = cfg.Value
		p.StepMeters = cfg.SecondaryValue
	case segmenter.DynamicSegmentLengthMetersSpeed, segmenter.DynamicSegmentLengthMetersAcceleration,
		segmenter.DynamicSegmentLengthMetersSpeedAcceleration1, segmenter.DynamicSegmentLengthMetersSpeedAcceleration2:
		p.StepMeters = cfg.Value
	case segmenter.SlidingWindowMultistartMeters, segmenter.SlidingWindowMultistartTicks:
		p.OverlapPct = cfg.Value
	case segmenter.EvenSize:
		p.K = int(cfg.Value)
	case segmenter.ByLength:
		p.LengthMeters = cfg.Value
	case segmenter.ByTicks:
		p.TickCount = int(cfg.Value)
	case segmenter.BySpeedLimits:
		p.StepTicks = int(cfg.Value)
	case segmenter.SlidingWindowRotating, segmenter.SlidingWindowByTrafficDensity:
		p.Step = cfg.Value
	}

	return p
}

func simulationRunID(d runDescriptor) string {
	return fmt.Sprintf("%s#%d", d.MapName, d.Seed)
}
