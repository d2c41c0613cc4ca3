package main

import (
	"context"
	"fmt"
	"os"

	"github.com/invopop/yaml"
	"go.uber.org/zap"

	"github.com/simtrace/tracecut"
)

type runCmd struct {
	Config string `short:"c" long:"config" description:"Path to a YAML or JSON pipeline config" required:"true"`
	Quiet  bool   `short:"q" long:"quiet" description:"Disable structured logging"`
}

// Execute loads the config, runs the pipeline to completion, and prints the
// total segment count and per-run breakdown.
func (c *runCmd) Execute(_ []string) error {
	cfg, err := readConfig(c.Config)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	logger := zap.NewNop()
	if !c.Quiet {
		l, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		logger = l
		defer logger.Sync() //nolint:errcheck
	}

	ctx := context.Background()
	segments, metrics, err := tracecut.Run(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("start pipeline: %w", err)
	}

	counts := map[string]int{}
	total := 0
	for seg := range segments {
		counts[seg.SimulationRunID]++
		total++
	}

	fmt.Fprintf(os.Stdout, "segments: %d\n", total)
	for runID, n := range counts {
		fmt.Fprintf(os.Stdout, "  %s: %d\n", runID, n)
	}
	fmt.Fprintf(os.Stdout, "finished: %t\n", metrics.IsFinished())

	return nil
}

func readConfig(path string) (tracecut.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return tracecut.Config{}, err
	}

	var cfg tracecut.Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return tracecut.Config{}, err
	}

	return cfg, nil
}
