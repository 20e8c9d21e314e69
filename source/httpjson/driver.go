package httpjson

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/net/http2"

	"launchfeed/internal/jsonv"
	"launchfeed/internal/logging"
)

var (
	ErrStatus  = errors.New("httpjson: unexpected status")
	ErrNotJSON = errors.New("httpjson: response is not JSON")
)

// Driver issues a single GET per Fetch and decodes the body as an ordered
// JSON object.
type Driver struct {
	cfg    Config
	client *http.Client
}

func (d *Driver) Configure(cfg Config) error {
	if err := validate(cfg); err != nil {
		return err
	}
	d.cfg = cfg

	tr := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.HTTP2 {
		if err := http2.ConfigureTransport(tr); err != nil {
			return fmt.Errorf("httpjson: http2: %w", err)
		}
	}
	d.client = &http.Client{Transport: tr, Timeout: cfg.Timeout}
	return nil
}

func (d *Driver) Fetch(ctx context.Context) (*Fetched, error) {
	if d.client == nil {
		return nil, errors.New("httpjson: driver not configured")
	}
	target := d.cfg.URL()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if d.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", d.cfg.UserAgent)
	}

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	logging.L().Debug("httpjson: response received",
		"url", target, "status", resp.StatusCode, "proto", resp.Proto,
		"bytes", len(body), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w %d from %s", ErrStatus, resp.StatusCode, target)
	}

	v, err := jsonv.Parse(body)
	if err != nil {
		mt := mimetype.Detect(body)
		return nil, fmt.Errorf("%w (detected %s): %v", ErrNotJSON, mt.String(), err)
	}
	env, ok := v.(*jsonv.Object)
	if !ok {
		return nil, fmt.Errorf("httpjson: envelope is %s, want object", jsonv.TypeName(v))
	}
	return &Fetched{Envelope: env, Bytes: len(body), FetchedAt: start}, nil
}

func (d *Driver) Close() error {
	if d.client != nil {
		d.client.CloseIdleConnections()
	}
	return nil
}
