package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"launchfeed/source/httpjson"
)

func init() {
	httpjson.Register("https", func() httpjson.Adapter { return &httpjson.Driver{} })
}

func TestEngine_RunWritesOutputAndPushesMetrics(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count":1,"result":[{"id":1,"name":"Electron","vehicle":{"id":2,"name":"Electron"}}]}`))
	}))
	defer upstream.Close()

	var pushed string
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushed = r.URL.Path
	}))
	defer gateway.Close()

	dir := t.TempDir()
	out := filepath.Join(dir, "l.json")
	src := filepath.Join(dir, "source.yml")
	if err := os.WriteFile(src, []byte("scheme: http\nhost: "+strings.TrimPrefix(upstream.URL, "http://")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	pipe := filepath.Join(dir, "pipeline.yml")
	body := "source: {config: source.yml}\nsink_configs: {file: {path: " + out + "}}\ntelemetry: {push_url: \"" + gateway.URL + "\", job: launchfeed-test}\n"
	if err := os.WriteFile(pipe, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	e, err := Bootstrap(context.Background(), Config{PipelineYml: pipe})
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != "{\n  \"result\": [\n    {\n      \"name\": \"Electron\",\n      \"vehicle\": \"Electron\"\n    }\n  ]\n}" {
		t.Fatalf("unexpected output:\n%s", got)
	}
	if pushed != "/metrics/job/launchfeed-test" {
		t.Fatalf("metrics not pushed, path %q", pushed)
	}
}

func TestEngine_RunFailsOnUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	dir := t.TempDir()
	out := filepath.Join(dir, "l.json")
	if err := os.WriteFile(filepath.Join(dir, "source.yml"), []byte("scheme: http\nhost: "+strings.TrimPrefix(upstream.URL, "http://")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	pipe := filepath.Join(dir, "pipeline.yml")
	if err := os.WriteFile(pipe, []byte("source: {config: source.yml}\nsink_configs: {file: {path: "+out+"}}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e, err := Bootstrap(context.Background(), Config{PipelineYml: pipe})
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if err := e.Run(context.Background()); err == nil {
		t.Fatal("expected run error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("output written despite failure: %v", err)
	}
}
