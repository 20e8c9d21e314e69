package httpjson

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"launchfeed/internal/jsonv"
)

func newTLSDriver(t *testing.T, h http.HandlerFunc) *Driver {
	t.Helper()
	srv := httptest.NewTLSServer(h)
	t.Cleanup(srv.Close)

	cfg := Defaults()
	cfg.Host = srv.Listener.Addr().String()
	cfg.HTTP2 = false

	d := &Driver{}
	if err := d.Configure(cfg); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	d.client = srv.Client()
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestDriver_FetchDecodesOrderedEnvelope(t *testing.T) {
	var gotPath, gotMethod, gotUA string
	d := newTLSDriver(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod, gotUA = r.URL.Path, r.Method, r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"valid_auth":false,"count":1,"result":[{"name":"Starlink","id":3}]}`))
	})

	f, err := d.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotMethod != http.MethodGet || gotPath != DefaultPath {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	if gotUA == "" {
		t.Fatal("transport default user agent missing")
	}
	if got := strings.Join(f.Envelope.Keys(), ","); got != "valid_auth,count,result" {
		t.Fatalf("unexpected keys %q", got)
	}
	if f.Bytes == 0 || f.FetchedAt.IsZero() {
		t.Fatalf("missing fetch metadata: %+v", f)
	}
	out, _ := jsonv.Marshal(f.Envelope)
	if string(out) != `{"valid_auth":false,"count":1,"result":[{"name":"Starlink","id":3}]}` {
		t.Fatalf("unexpected envelope %s", out)
	}
}

func TestDriver_NonSuccessStatus(t *testing.T) {
	d := newTLSDriver(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	})
	_, err := d.Fetch(context.Background())
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("want ErrStatus, got %v", err)
	}
	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("status code missing from %v", err)
	}
}

func TestDriver_HTMLBodyIsNotJSON(t *testing.T) {
	d := newTLSDriver(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<!DOCTYPE html><html><body>oops</body></html>"))
	})
	_, err := d.Fetch(context.Background())
	if !errors.Is(err, ErrNotJSON) {
		t.Fatalf("want ErrNotJSON, got %v", err)
	}
	if !strings.Contains(err.Error(), "text/html") {
		t.Fatalf("detected type missing from %v", err)
	}
}

func TestDriver_TopLevelArrayRejected(t *testing.T) {
	d := newTLSDriver(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1,2,3]`))
	})
	if _, err := d.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for array envelope")
	}
}

func TestDriver_ConnectionFailure(t *testing.T) {
	srv := httptest.NewTLSServer(http.NotFoundHandler())
	cfg := Defaults()
	cfg.Host = srv.Listener.Addr().String()
	srv.Close()

	d := &Driver{}
	if err := d.Configure(cfg); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if _, err := d.Fetch(context.Background()); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestDriver_FetchBeforeConfigure(t *testing.T) {
	if _, err := (&Driver{}).Fetch(context.Background()); err == nil {
		t.Fatal("expected error from unconfigured driver")
	}
}

func TestRegistry(t *testing.T) {
	Register("test-https", func() Adapter { return &Driver{} })
	if _, err := NewAdapter("test-https"); err != nil {
		t.Fatalf("NewAdapter: %v", err)
	}
	if _, err := NewAdapter("carrier-pigeon"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
