package pipeline

import (
	"fmt"

	"launchfeed/internal/config"
	"launchfeed/internal/spec"
	"launchfeed/internal/telemetry"
	"launchfeed/internal/transform"
	"launchfeed/sink"
	"launchfeed/sink/file"
	"launchfeed/sink/kafka"
	"launchfeed/sink/stdout"
	"launchfeed/source/httpjson"
)

func Compile(path string, m *telemetry.Metrics) (*Runner, error) {
	r := NewRunner(m)
	if err := LoadYAML(path, r); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

func LoadYAML(path string, r *Runner) error {
	cfg, confPath, err := config.LoadPipelineSpec(path)
	if err != nil {
		return err
	}
	return Build(cfg, confPath, r)
}

// Build wires source, stages and sinks described by cfg into r.
func Build(cfg spec.File, confPath string, r *Runner) error {
	if cfg.Source.Kind != "https" {
		return fmt.Errorf("unsupported source %q", cfg.Source.Kind)
	}
	sc, err := config.LoadSourceConfig(confPath)
	if err != nil {
		return err
	}

	src, err := httpjson.NewAdapter(cfg.Source.Driver)
	if err != nil {
		return err
	}
	if err = src.Configure(sc); err != nil {
		return err
	}
	r.SetSource(src)

	for _, t := range cfg.Transformers {
		st, err := transform.Build(t)
		if err != nil {
			return err
		}
		r.AddStage(st)
	}

	for _, name := range cfg.Sinks {
		sDrv, err := sink.NewAdapter(name)
		if err != nil {
			return err
		}

		switch name {
		case "file":
			err = sDrv.Configure(file.Config{
				Path:   cfg.SinkConfigs.File.Path,
				Indent: cfg.SinkConfigs.File.Indent,
			})
		case "stdout":
			err = sDrv.Configure(stdout.Config{
				Indent:       cfg.SinkConfigs.Stdout.Indent,
				PrintCounter: cfg.SinkConfigs.Stdout.PrintCounter,
			})
		case "kafka":
			k := cfg.SinkConfigs.Kafka
			err = sDrv.Configure(kafka.Config{
				Brokers:  k.Brokers,
				Topic:    k.Topic,
				Acks:     k.RequiredAcks,
				Version:  k.Version,
				ClientID: k.ClientID,
			})

		default:
			err = fmt.Errorf("no config block for sink %q", name)
		}
		if err != nil {
			return fmt.Errorf("sink %s: %w", name, err)
		}
		r.AddSink(name, sDrv)
	}

	r.SetTelemetry(cfg.Telemetry)
	return nil
}
