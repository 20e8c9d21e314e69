package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"launchfeed/internal/spec"
)

const SupportedSchema = "v1"

var (
	EnvelopeMetadataKeys = []string{"valid_auth", "count", "limit", "total", "last_page"}

	RecordMetadataKeys = []string{
		"id", "cospar_id", "slug", "est_date", "tags",
		"weather_summary", "weather_temp", "weather_condition", "weather_wind_mph",
		"weather_icon", "weather_updated", "quicktext", "media", "result",
		"suborbital", "modified",
	}
)

// DefaultPipeline fetches the next five launches, cleans them and writes
// l.json.
func DefaultPipeline() spec.File {
	var f spec.File
	f.SchemaVersion = SupportedSchema
	f.Source.Kind = "https"
	f.Source.Driver = "https"
	f.Transformers = []spec.TransformerSpec{
		{Name: "drop-envelope-metadata", Type: "prune", Scope: "envelope", Keys: EnvelopeMetadataKeys},
		{Name: "drop-record-metadata", Type: "prune", Scope: "record", Keys: RecordMetadataKeys},
		{Name: "sort-date", Type: "rename", From: "sort_date", To: "date"},
		{Name: "date-str", Type: "rename", From: "date_str", To: "formatted_date"},
		{Name: "provider-name", Type: "flatten", Field: "provider", Key: "name"},
		{Name: "vehicle-name", Type: "flatten", Field: "vehicle", Key: "name"},
		{Name: "strip-ids", Type: "strip", Keys: []string{"id"}},
	}
	f.Sinks = []string{"file"}
	f.SinkConfigs.File = spec.FileSinkSpec{Path: "l.json", Indent: "  "}
	f.Telemetry.Job = "launchfeed"
	return f
}

// LoadPipelineSpec parses a pipeline YAML, validates schema_version, and
// returns the parsed spec and an absolute path to the source config (if set).
// A missing file yields DefaultPipeline.
func LoadPipelineSpec(path string) (spec.File, string, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultPipeline()
		applyEnv(&cfg)
		return cfg, "", nil
	}
	if err != nil {
		return spec.File{}, "", err
	}
	var cfg spec.File
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, "", err
	}
	if cfg.SchemaVersion == "" {
		cfg.SchemaVersion = SupportedSchema
	}
	if cfg.SchemaVersion != SupportedSchema {
		return cfg, "", fmt.Errorf("pipeline schema_version %q not supported (want %q)", cfg.SchemaVersion, SupportedSchema)
	}
	applyDefaults(&cfg)
	applyEnv(&cfg)
	confPath := cfg.Source.Config
	if confPath != "" && !filepath.IsAbs(confPath) {
		confPath = filepath.Join(filepath.Dir(path), confPath)
	}
	return cfg, confPath, nil
}

func applyDefaults(c *spec.File) {
	def := DefaultPipeline()
	if c.Source.Kind == "" {
		c.Source.Kind = def.Source.Kind
	}
	if c.Source.Driver == "" {
		c.Source.Driver = def.Source.Driver
	}
	if c.Transformers == nil {
		c.Transformers = def.Transformers
	}
	if c.Sinks == nil {
		c.Sinks = def.Sinks
	}
	if c.Telemetry.Job == "" {
		c.Telemetry.Job = def.Telemetry.Job
	}
}

func applyEnv(c *spec.File) {
	if url := os.Getenv("LAUNCHFEED_PUSHGATEWAY_URL"); url != "" {
		c.Telemetry.PushURL = url
	}
}
