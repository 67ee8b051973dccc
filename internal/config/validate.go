// internal/config/validate.go
package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration. Field names in Limits are resolved
// against the memory map by the caller, not here.
func Validate(cfg *Config) error {
	if cfg.Serial.Baudrate < 0 {
		return fmt.Errorf("config: baudrate must be positive, got %d", cfg.Serial.Baudrate)
	}
	if cfg.Serial.TimeoutMs < 0 {
		return fmt.Errorf("config: timeout_ms must be positive, got %d", cfg.Serial.TimeoutMs)
	}

	for name, lim := range cfg.Limits {
		if name == "" {
			return fmt.Errorf("config: limits entry with empty field name")
		}
		if lim.Min == "" || lim.Max == "" {
			return fmt.Errorf("config: limit for %q needs both min and max", name)
		}
	}

	return nil
}
