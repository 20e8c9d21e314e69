package engine

import (
	"context"
	"fmt"

	"launchfeed/internal/pipeline"
	"launchfeed/internal/telemetry"
)

func Bootstrap(ctx context.Context, cfg Config) (*Engine, error) {
	// 1. metrics
	m := telemetry.New()

	// 2. pipeline runner
	runner, err := pipeline.Compile(cfg.PipelineYml, m)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	return &Engine{
		runner:  runner,
		metrics: m,
	}, nil
}
