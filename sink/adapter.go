package sink

import (
	"context"
	"fmt"
	"time"

	"launchfeed/internal/jsonv"
)

// Batch is one transformed envelope plus the metadata of the run that
// produced it.
type Batch struct {
	RunID     string
	FetchedAt time.Time
	Envelope  *jsonv.Object
}

// Adapter is the common behaviour every sink exposes.
// Configure receives the driver's own config struct; Close is idempotent.
type Adapter interface {
	Configure(any) error
	Push(ctx context.Context, b *Batch) error
	Close() error
}

/*──────── registry ───────*/

type factory = func() Adapter

var reg = map[string]factory{}

func Register(name string, f factory) { reg[name] = f }

func NewAdapter(name string) (Adapter, error) {
	if f, ok := reg[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown sink %q", name)
}
