package config

import (
	src "launchfeed/source/httpjson"
)

// LoadSourceConfig delegates to the HTTP source loader while centralizing
// loader entrypoints under internal/config.
func LoadSourceConfig(path string) (src.Config, error) {
	return src.LoadConfig(path)
}
