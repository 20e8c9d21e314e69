// launchfeed/sink/stdout/driver.go
package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"launchfeed/internal/jsonv"
	"launchfeed/sink"
)

/* ────────── public YAML config ────────── */
type Config struct {
	Indent       string `yaml:"indent"`        // "" = two spaces
	PrintCounter bool   `yaml:"print_counter"` // prepend seq# and run id
}

/* ────────── driver ────────── */
type driver struct {
	cfg Config

	mu  sync.Mutex // guards out
	out io.Writer
}

var seq uint64

/* ────────── sink.Adapter ────────── */
func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("stdout-sink: expected Config, got %T", raw)
	}
	if c.Indent == "" {
		c.Indent = "  "
	}
	d.cfg = c
	if d.out == nil {
		d.out = os.Stdout
	}
	return nil
}

func (d *driver) Push(_ context.Context, b *sink.Batch) error {
	out, err := jsonv.MarshalIndent(b.Envelope, d.cfg.Indent)
	if err != nil {
		return fmt.Errorf("stdout-sink: encode: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cfg.PrintCounter {
		fmt.Fprintf(d.out, "[sink %06d] run=%s\n", atomic.AddUint64(&seq, 1), b.RunID)
	}
	if _, err := fmt.Fprintf(d.out, "%s\n", out); err != nil {
		return fmt.Errorf("stdout-sink: %w", err)
	}
	return nil
}

func (d *driver) Close() error { return nil }

/* ────────── auto-register ────────── */
func init() {
	sink.Register("stdout", func() sink.Adapter { return &driver{} })
}
