package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"launchfeed/internal/logging"
	"launchfeed/internal/spec"
	"launchfeed/internal/telemetry"
	"launchfeed/internal/transform"
	"launchfeed/sink"
	"launchfeed/source/httpjson"
)

type namedSink struct {
	name string
	sink.Adapter
}

// Runner executes one fetch -> transform -> sink pass per Run.
type Runner struct {
	source    httpjson.Adapter
	stages    []transform.Stage
	sinks     []namedSink
	metrics   *telemetry.Metrics
	telemetry spec.TelemetrySpec
	newID     func() string
}

// Result summarises a completed run.
type Result struct {
	RunID   string
	Records int
}

func NewRunner(m *telemetry.Metrics) *Runner {
	if m == nil {
		m = telemetry.New()
	}
	return &Runner{metrics: m, newID: uuid.NewString}
}

func (r *Runner) SetSource(s httpjson.Adapter)        { r.source = s }
func (r *Runner) AddStage(s transform.Stage)          { r.stages = append(r.stages, s) }
func (r *Runner) AddSink(name string, s sink.Adapter) { r.sinks = append(r.sinks, namedSink{name, s}) }
func (r *Runner) SetTelemetry(t spec.TelemetrySpec)   { r.telemetry = t }
func (r *Runner) Telemetry() spec.TelemetrySpec       { return r.telemetry }
func (r *Runner) Metrics() *telemetry.Metrics         { return r.metrics }

func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if r.source == nil {
		return nil, errors.New("runner: no source configured")
	}
	res := &Result{RunID: r.newID()}
	log := logging.L().With("run_id", res.RunID)

	start := time.Now()
	fetched, err := r.source.Fetch(ctx)
	r.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return res, fmt.Errorf("fetch: %w", err)
	}
	r.metrics.FetchBytes.Add(float64(fetched.Bytes))
	log.Debug("runner: fetched envelope", "bytes", fetched.Bytes, "keys", fetched.Envelope.Len())

	env := fetched.Envelope
	for _, st := range r.stages {
		t0 := time.Now()
		err := st.Apply(env)
		r.metrics.ObserveStage(st.Name(), time.Since(t0))
		if err != nil {
			return res, fmt.Errorf("transform %s: %w", st.Name(), err)
		}
		log.Debug("runner: stage applied", "stage", st.Name())
	}

	if recs, err := transform.Records(env); err == nil {
		res.Records = len(recs)
	}

	b := &sink.Batch{RunID: res.RunID, FetchedAt: fetched.FetchedAt, Envelope: env}
	for _, s := range r.sinks {
		err := s.Push(ctx, b)
		r.metrics.ObserveSink(s.name, err)
		if err != nil {
			return res, fmt.Errorf("sink %s: %w", s.name, err)
		}
	}

	r.metrics.Records.Add(float64(res.Records))
	r.metrics.LastSuccess.SetToCurrentTime()
	log.Info("runner: run complete", "records", res.Records, "sinks", len(r.sinks), "elapsed", time.Since(start))
	return res, nil
}

// Close releases the source and every sink, reporting all failures.
func (r *Runner) Close() error {
	var errs []error
	if r.source != nil {
		errs = append(errs, r.source.Close())
	}
	for _, s := range r.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("sink %s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}
