// internal/config/normalize.go
package config

// Defaults matching the board and the original tooling.
const (
	DefaultBaudrate  = 115200
	DefaultTimeoutMs = 5000
	DefaultCachePath = "states/latest.txt"
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Serial.Baudrate == 0 {
		cfg.Serial.Baudrate = DefaultBaudrate
	}
	if cfg.Serial.TimeoutMs == 0 {
		cfg.Serial.TimeoutMs = DefaultTimeoutMs
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = DefaultCachePath
	}
}
