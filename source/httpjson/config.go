package httpjson

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultHost = "fdo.rocketlaunch.live"
	DefaultPath = "/json/launches/next/5"

	envPrefix = "LAUNCHFEED_HTTP__"
)

type Config struct {
	Scheme    string        `koanf:"scheme"`
	Host      string        `koanf:"host"`
	Path      string        `koanf:"path"`
	Timeout   time.Duration `koanf:"timeout"` // 0 = wait indefinitely
	HTTP2     bool          `koanf:"http2"`
	UserAgent string        `koanf:"user_agent"` // empty = transport default
}

// URL is the endpoint the driver requests.
func (c Config) URL() string {
	u := url.URL{Scheme: c.Scheme, Host: c.Host, Path: c.Path}
	return u.String()
}

// ---------------------------------------------------------------------------
// Loader
// ---------------------------------------------------------------------------

// LoadConfig overlays YAML (if present) and env-vars
// (prefix `LAUNCHFEED_HTTP__`, delimiter `__`)
// on top of Defaults.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	// schema version check (only when YAML is present)
	sv := k.String("schema_version")
	if sv != "" && sv != "v1" {
		return Config{}, fmt.Errorf("httpjson schema_version %q not supported (want v1)", sv)
	}

	if err := k.Load(env.Provider(envPrefix, "__", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Config{}, err
	}

	cfg := Defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, validate(cfg)
}

// Defaults reproduces the fixed upstream endpoint.
func Defaults() Config {
	return Config{
		Scheme: "https",
		Host:   DefaultHost,
		Path:   DefaultPath,
		HTTP2:  true,
	}
}

func validate(c Config) error {
	switch c.Scheme {
	case "https", "http":
	default:
		return fmt.Errorf("httpjson: unsupported scheme %q", c.Scheme)
	}
	if c.Host == "" {
		return errors.New("httpjson: host is empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("httpjson: negative timeout %s", c.Timeout)
	}
	return nil
}
