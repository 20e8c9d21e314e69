package httpjson

import (
	"context"
	"time"

	"launchfeed/internal/jsonv"
)

// Fetched is one decoded response.
type Fetched struct {
	Envelope  *jsonv.Object
	Bytes     int
	FetchedAt time.Time
}

// Adapter fetches one envelope per call.
type Adapter interface {
	Configure(Config) error
	Fetch(context.Context) (*Fetched, error)
	Close() error
}
