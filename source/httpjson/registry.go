package httpjson

import "fmt"

// Factory builds an Adapter.
type Factory func() Adapter

var registry = map[string]Factory{}

// Register is called from main() before the pipeline is compiled.
func Register(name string, f Factory) {
	registry[name] = f
}

// NewAdapter returns a driver by name ("https").
func NewAdapter(name string) (Adapter, error) {
	if f, ok := registry[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("httpjson: unsupported driver %q", name)
}
