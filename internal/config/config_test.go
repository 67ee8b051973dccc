// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
serial:
  port: /dev/ttyUSB0
  baudrate: 115200
  timeout_ms: 2000
cache:
  path: /var/cache/ascaso/latest.txt
limits:
  coffee_temperature:
    min: "85.0"
    max: "105.0"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Serial.Port != "/dev/ttyUSB0" {
		t.Fatalf("port = %q", cfg.Serial.Port)
	}
	if cfg.Serial.TimeoutMs != 2000 {
		t.Fatalf("timeout_ms = %d", cfg.Serial.TimeoutMs)
	}
	if cfg.Cache.Path != "/var/cache/ascaso/latest.txt" {
		t.Fatalf("cache path = %q", cfg.Cache.Path)
	}
	lim, ok := cfg.Limits["coffee_temperature"]
	if !ok || lim.Min != "85.0" || lim.Max != "105.0" {
		t.Fatalf("limits = %+v", cfg.Limits)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("missing file must error")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "serial: [unclosed")
	if _, err := Load(path); err == nil {
		t.Fatalf("bad yaml must error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"empty is fine", Config{}, true},
		{"negative baudrate", Config{Serial: SerialConfig{Baudrate: -1}}, false},
		{"negative timeout", Config{Serial: SerialConfig{TimeoutMs: -1}}, false},
		{"limit missing max", Config{Limits: map[string]LimitConfig{
			"coffee_temperature": {Min: "85.0"},
		}}, false},
		{"limit empty name", Config{Limits: map[string]LimitConfig{
			"": {Min: "1", Max: "2"},
		}}, false},
		{"limit complete", Config{Limits: map[string]LimitConfig{
			"coffee_temperature": {Min: "85.0", Max: "105.0"},
		}}, true},
	}
	for _, c := range cases {
		err := Validate(&c.cfg)
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := Config{}
	Normalize(&cfg)
	if cfg.Serial.Baudrate != DefaultBaudrate {
		t.Fatalf("baudrate = %d", cfg.Serial.Baudrate)
	}
	if cfg.Serial.TimeoutMs != DefaultTimeoutMs {
		t.Fatalf("timeout_ms = %d", cfg.Serial.TimeoutMs)
	}
	if cfg.Cache.Path != DefaultCachePath {
		t.Fatalf("cache path = %q", cfg.Cache.Path)
	}
}

func TestNormalize_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Serial: SerialConfig{Baudrate: 9600, TimeoutMs: 100},
		Cache:  CacheConfig{Path: "elsewhere.txt"},
	}
	Normalize(&cfg)
	if cfg.Serial.Baudrate != 9600 || cfg.Serial.TimeoutMs != 100 || cfg.Cache.Path != "elsewhere.txt" {
		t.Fatalf("explicit values must survive: %+v", cfg)
	}
}
