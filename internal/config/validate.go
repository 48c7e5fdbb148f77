package config

import (
	"errors"
	"fmt"
)

// Validate checks a loaded configuration for values that would only fail
// deep inside a run.
func Validate(cfg *Config) error {
	if cfg.Output.Dir == "" {
		return errors.New("output.dir must not be empty")
	}
	switch cfg.Oracle.Provider {
	case "", "stub", "gemini":
	default:
		return fmt.Errorf("unknown oracle provider: %q", cfg.Oracle.Provider)
	}
	if cfg.Oracle.CacheSize < 0 {
		return fmt.Errorf("oracle.cache_size must not be negative: %d", cfg.Oracle.CacheSize)
	}
	return nil
}
