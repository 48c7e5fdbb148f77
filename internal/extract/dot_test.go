package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for DOT export:
// - Internal graph contains defined elements and internal edges only
// - Entire graph adds external callees as vertices
// - Serialized output is valid DOT with the expected vertex names

func TestFileModel_WriteDOT(t *testing.T) {
	t.Parallel()

	source := `def f():
    g()
    print("x")

def g():
    pass
`
	m := mustExtract(t, "mod.py", source)

	var internal strings.Builder
	require.NoError(t, WriteDOT(m.InternalGraph(), &internal))
	assert.Contains(t, internal.String(), "strict digraph")
	assert.Contains(t, internal.String(), "mod.f")
	assert.Contains(t, internal.String(), "mod.g")
	assert.NotContains(t, internal.String(), "print")

	var entire strings.Builder
	require.NoError(t, WriteDOT(m.EntireGraph(), &entire))
	assert.Contains(t, entire.String(), "print")
}
