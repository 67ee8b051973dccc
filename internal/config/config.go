// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Serial SerialConfig           `yaml:"serial"`
	Cache  CacheConfig            `yaml:"cache"`
	Limits map[string]LimitConfig `yaml:"limits"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Port      string `yaml:"port"`
	Baudrate  int    `yaml:"baudrate"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- CACHE ----

type CacheConfig struct {
	Path string `yaml:"path"`
}

// ---- WRITE LIMITS ----

// LimitConfig overrides a field's write bounds, in logical units
// ("93.5", not storage tenths). Safe ranges are policy, not protocol;
// the defaults live in the memory map.
type LimitConfig struct {
	Min string `yaml:"min"`
	Max string `yaml:"max"`
}

// Load reads and decodes a config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
