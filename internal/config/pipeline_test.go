package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadPipelineSpec_ResolvesRelativeSourceConfigAndSchema(t *testing.T) {
	dir := t.TempDir()
	pipe := []byte(`schema_version: v1
source:
  kind: https
  driver: https
  config: source.yml
transformers: []
sinks: [stdout]
`)
	if err := os.WriteFile(filepath.Join(dir, "pipeline.yml"), pipe, 0o644); err != nil {
		t.Fatalf("write pipeline: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "source.yml"), []byte("schema_version: v1\n"), 0o644); err != nil {
		t.Fatalf("write source cfg: %v", err)
	}

	cfg, abs, err := LoadPipelineSpec(filepath.Join(dir, "pipeline.yml"))
	if err != nil {
		t.Fatalf("LoadPipelineSpec: %v", err)
	}
	if cfg.SchemaVersion != SupportedSchema {
		t.Fatalf("want schema %s, got %s", SupportedSchema, cfg.SchemaVersion)
	}
	if abs == "" || !filepath.IsAbs(abs) {
		t.Fatalf("want absolute source config path, got %q", abs)
	}
	if len(cfg.Transformers) != 0 {
		t.Fatalf("explicit empty transformer list replaced: %+v", cfg.Transformers)
	}
	if !reflect.DeepEqual(cfg.Sinks, []string{"stdout"}) {
		t.Fatalf("unexpected sinks %v", cfg.Sinks)
	}
}

func TestLoadPipelineSpec_InvalidSchema(t *testing.T) {
	dir := t.TempDir()
	pipe := []byte(`schema_version: v999
source: { kind: https, driver: https, config: cf.yml }
transformers: []
sinks: [file]
`)
	if err := os.WriteFile(filepath.Join(dir, "pipeline.yml"), pipe, 0o644); err != nil {
		t.Fatalf("write pipeline: %v", err)
	}
	_, _, err := LoadPipelineSpec(filepath.Join(dir, "pipeline.yml"))
	if err == nil {
		t.Fatal("expected error for invalid schema_version")
	}
}

func TestLoadPipelineSpec_MissingFileUsesDefault(t *testing.T) {
	t.Setenv("LAUNCHFEED_PUSHGATEWAY_URL", "http://gateway:9091")
	cfg, abs, err := LoadPipelineSpec(filepath.Join(t.TempDir(), "pipeline.yml"))
	if err != nil {
		t.Fatalf("LoadPipelineSpec: %v", err)
	}
	if abs != "" {
		t.Fatalf("default pipeline has no source config file, got %q", abs)
	}
	def := DefaultPipeline()
	if !reflect.DeepEqual(cfg.Transformers, def.Transformers) || !reflect.DeepEqual(cfg.Sinks, []string{"file"}) {
		t.Fatalf("unexpected default pipeline %+v", cfg)
	}
	if cfg.SinkConfigs.File.Path != "l.json" {
		t.Fatalf("unexpected output path %q", cfg.SinkConfigs.File.Path)
	}
	if cfg.Telemetry.PushURL != "http://gateway:9091" {
		t.Fatalf("push url env not applied: %q", cfg.Telemetry.PushURL)
	}
}

func TestLoadPipelineSpec_PartialFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pipeline.yml"), []byte("sinks: [file, stdout]\n"), 0o644); err != nil {
		t.Fatalf("write pipeline: %v", err)
	}
	cfg, _, err := LoadPipelineSpec(filepath.Join(dir, "pipeline.yml"))
	if err != nil {
		t.Fatalf("LoadPipelineSpec: %v", err)
	}
	if cfg.Source.Kind != "https" || len(cfg.Transformers) != len(DefaultPipeline().Transformers) {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Telemetry.Job != "launchfeed" {
		t.Fatalf("unexpected job %q", cfg.Telemetry.Job)
	}
}

func TestDefaultPipeline_RecordKeys(t *testing.T) {
	if len(RecordMetadataKeys) != 16 || len(EnvelopeMetadataKeys) != 5 {
		t.Fatalf("unexpected key lists: %d record, %d envelope", len(RecordMetadataKeys), len(EnvelopeMetadataKeys))
	}
}
