package oracle

import (
	"context"

	"github.com/maypok86/otter"
)

// cachingOracle memoizes completions by prompt for the lifetime of a run.
// Identical elements across a tree (vendored copies, templates) would
// otherwise hit the model repeatedly with the same prompt.
type cachingOracle struct {
	inner Oracle
	cache otter.Cache[string, string]
}

// WithCache wraps an oracle with a bounded prompt-keyed completion cache.
func WithCache(inner Oracle, capacity int) (Oracle, error) {
	cache, err := otter.MustBuilder[string, string](capacity).Build()
	if err != nil {
		return nil, err
	}
	return &cachingOracle{inner: inner, cache: cache}, nil
}

func (c *cachingOracle) Complete(ctx context.Context, prompt string) (string, error) {
	if text, ok := c.cache.Get(prompt); ok {
		return text, nil
	}
	text, err := c.inner.Complete(ctx, prompt)
	if err != nil {
		// Failures are not cached; a later element may succeed.
		return "", err
	}
	c.cache.Set(prompt, text)
	return text, nil
}

func (c *cachingOracle) Close() error {
	c.cache.Close()
	return c.inner.Close()
}
