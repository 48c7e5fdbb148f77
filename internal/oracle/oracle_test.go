package oracle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for oracle:
// - Stub returns the fixed answer deterministically and counts calls
// - Stub propagates a configured error
// - Cache serves repeated prompts without re-invoking the inner oracle
// - Cache does not memoize failures
// - New dispatches by provider and rejects unknown ones
// - New wraps the oracle in a cache when a size is configured

func TestStub(t *testing.T) {
	t.Parallel()

	s := NewStub()
	text, err := s.Complete(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, StubAnswer, text)
	assert.Equal(t, 1, s.Calls)

	s.Answer = "custom"
	text, err = s.Complete(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "custom", text)
}

func TestStub_Error(t *testing.T) {
	t.Parallel()

	s := &Stub{Err: ErrOracle}
	_, err := s.Complete(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrOracle)
}

func TestWithCache(t *testing.T) {
	t.Parallel()

	inner := NewStub()
	cached, err := WithCache(inner, 16)
	require.NoError(t, err)
	defer cached.Close()

	for i := 0; i < 3; i++ {
		text, err := cached.Complete(context.Background(), "same prompt")
		require.NoError(t, err)
		assert.Equal(t, StubAnswer, text)
	}
	assert.Equal(t, 1, inner.Calls)

	_, err = cached.Complete(context.Background(), "different prompt")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.Calls)
}

func TestWithCache_DoesNotCacheFailures(t *testing.T) {
	t.Parallel()

	inner := &Stub{Err: errors.New("transient")}
	cached, err := WithCache(inner, 16)
	require.NoError(t, err)
	defer cached.Close()

	_, err = cached.Complete(context.Background(), "p")
	require.Error(t, err)

	// After the failure clears, the same prompt reaches the inner oracle.
	inner.Err = nil
	text, err := cached.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, StubAnswer, text)
	assert.Equal(t, 2, inner.Calls)
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to stub", func(t *testing.T) {
		t.Parallel()
		o, err := New(context.Background(), Config{})
		require.NoError(t, err)
		defer o.Close()

		text, err := o.Complete(context.Background(), "p")
		require.NoError(t, err)
		assert.Equal(t, StubAnswer, text)
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()
		_, err := New(context.Background(), Config{Provider: "clippy"})
		assert.ErrorContains(t, err, "unknown oracle provider")
	})

	t.Run("cache wrapping", func(t *testing.T) {
		t.Parallel()
		o, err := New(context.Background(), Config{Provider: "stub", CacheSize: 8})
		require.NoError(t, err)
		defer o.Close()

		_, isStub := o.(*Stub)
		assert.False(t, isStub)
	})
}
