package file

import (
	"context"
	"fmt"
	"os"

	"launchfeed/internal/jsonv"
	"launchfeed/internal/logging"
	"launchfeed/sink"
)

const (
	DefaultPath   = "l.json"
	DefaultIndent = "  "
)

/* ────────── public YAML config ────────── */
type Config struct {
	Path   string `yaml:"path"`   // relative to the working directory
	Indent string `yaml:"indent"` // per nesting level
}

/* ────────── driver ────────── */
type driver struct {
	cfg Config
}

/* ────────── sink.Adapter ────────── */
func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("file-sink: expected Config, got %T", raw)
	}
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.Indent == "" {
		c.Indent = DefaultIndent
	}
	d.cfg = c
	return nil
}

// Push replaces the file with the indented envelope.
func (d *driver) Push(_ context.Context, b *sink.Batch) error {
	out, err := jsonv.MarshalIndent(b.Envelope, d.cfg.Indent)
	if err != nil {
		return fmt.Errorf("file-sink: encode: %w", err)
	}
	if err := os.WriteFile(d.cfg.Path, out, 0o644); err != nil {
		return fmt.Errorf("file-sink: %w", err)
	}
	logging.L().Info("file-sink: wrote envelope", "path", d.cfg.Path, "bytes", len(out), "run_id", b.RunID)
	return nil
}

func (d *driver) Close() error { return nil }

/* ────────── auto-register ────────── */
func init() {
	sink.Register("file", func() sink.Adapter { return &driver{} })
}
