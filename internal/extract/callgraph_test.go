package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for CallGraph:
// - Preserve insertion order of edges
// - Drop exact duplicate (caller, callee, kind) triples
// - Keep same-callee edges that differ in kind
// - Sort and de-duplicate callee listings
// - Render a per-caller summary, "no calls" when empty

func TestCallGraph_AddDeduplicates(t *testing.T) {
	t.Parallel()

	g := NewCallGraph()
	g.Add("a", "b", EdgeInternal)
	g.Add("a", "b", EdgeInternal)
	g.Add("a", "b", EdgeExternal)

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []CallEdge{
		{Caller: "a", Callee: "b", Kind: EdgeInternal},
		{Caller: "a", Callee: "b", Kind: EdgeExternal},
	}, g.Edges())
}

func TestCallGraph_CalleesSorted(t *testing.T) {
	t.Parallel()

	g := NewCallGraph()
	g.Add("a", "z", EdgeInternal)
	g.Add("a", "b", EdgeInternal)
	g.Add("a", "m", EdgeExternal)
	g.Add("other", "x", EdgeInternal)

	assert.Equal(t, []string{"b", "z"}, g.Callees("a", EdgeInternal))
	assert.Equal(t, []string{"m"}, g.Callees("a", EdgeExternal))
	assert.Equal(t, []string{"b", "m", "z"}, g.AllCallees("a"))
	assert.Nil(t, g.Callees("missing", EdgeInternal))
}

func TestCallGraph_Summary(t *testing.T) {
	t.Parallel()

	g := NewCallGraph()
	g.Add("m.f", "m.g", EdgeInternal)
	g.Add("m.f", "print", EdgeExternal)
	g.Add("m.g", "len", EdgeExternal)

	want := "m.f: internal: m.g; external: print;\nm.g: external: len;"
	assert.Equal(t, want, g.Summary())
}

func TestCallGraph_SummaryEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no calls", NewCallGraph().Summary())
}
