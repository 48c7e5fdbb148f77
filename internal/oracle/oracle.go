// Package oracle provides the model-backed answer path as an injectable
// capability. The pipeline treats any failure here as "no answer
// available" and degrades to a placeholder; oracle errors are never fatal.
package oracle

import (
	"context"
	"errors"
	"fmt"
)

// ErrOracle is the single error kind surfaced by oracle implementations.
var ErrOracle = errors.New("oracle completion unavailable")

// Oracle turns a rendered prompt into a free-text completion. Implementations
// must not retry internally; the caller decides how to degrade.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Close() error
}

// Config holds configuration for constructing an oracle.
type Config struct {
	// Provider selects the implementation ("gemini" or "stub").
	Provider string `yaml:"provider" mapstructure:"provider"`
	// Model is the model name/ID to use.
	Model string `yaml:"model" mapstructure:"model"`
	// APIKey authenticates against the provider API.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// CacheSize bounds the per-run completion cache (0 disables caching).
	CacheSize int `yaml:"cache_size" mapstructure:"cache_size"`
}

// New constructs an oracle from configuration, wrapping it in a completion
// cache when one is configured.
func New(ctx context.Context, cfg Config) (Oracle, error) {
	var o Oracle
	var err error

	switch cfg.Provider {
	case "", "stub":
		o = NewStub()
	case "gemini":
		o, err = NewGemini(ctx, cfg)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown oracle provider: %s", cfg.Provider)
	}

	if cfg.CacheSize > 0 {
		o, err = WithCache(o, cfg.CacheSize)
		if err != nil {
			return nil, err
		}
	}
	return o, nil
}
