package engine

import (
	"context"
	"errors"

	"launchfeed/internal/logging"
	"launchfeed/internal/pipeline"
	"launchfeed/internal/telemetry"
)

type Config struct {
	PipelineYml string // optional; missing file = built-in pipeline
}

type Engine struct {
	runner  *pipeline.Runner
	metrics *telemetry.Metrics
}

// Run performs one pass, pushes metrics whatever the outcome, and releases
// the runner.
func (e *Engine) Run(ctx context.Context) error {
	_, runErr := e.runner.Run(ctx)

	t := e.runner.Telemetry()
	if err := e.metrics.Push(context.WithoutCancel(ctx), t.PushURL, t.Job); err != nil {
		logging.L().Warn("engine: metrics push failed", "url", t.PushURL, "err", err)
	}

	return errors.Join(runErr, e.runner.Close())
}
