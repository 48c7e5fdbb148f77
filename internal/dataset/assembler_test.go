package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/py2dataset/internal/extract"
	"github.com/mvp-joe/py2dataset/internal/oracle"
	"github.com/mvp-joe/py2dataset/internal/questions"
)

// Test Plan for Assemble:
// - Instruct and QA views mirror answer order one-to-one
// - Base name strips directory and extension
// - Details carry the structural model and call edges
// - PurposeAnswer returns the model answer and rejects the placeholder

func TestAssemble(t *testing.T) {
	t.Parallel()

	m := extractTool(t)
	answers := []Answer{
		{QuestionID: "file_classes", Kind: extract.ElementFile, Instruction: "Classes?", Input: m.Source, Output: "Tool"},
		{QuestionID: "function_returns", Kind: extract.ElementFunction, Instruction: "Returns?", Input: "def helper(): ...", Output: "1"},
	}

	ds := Assemble(m, "pkg/tool.py", answers)

	assert.Equal(t, "pkg/tool.py", ds.Path)
	assert.Equal(t, "tool", ds.BaseName)
	assert.Equal(t, m.Source, ds.Source)

	require.Len(t, ds.Records, 2)
	assert.Equal(t, InstructRecord{Instruction: "Classes?", Input: m.Source, Output: "Tool"}, ds.Records[0])
	require.Len(t, ds.QA, 2)
	assert.Equal(t, QARecord{Question: "Returns?", Answer: "1"}, ds.QA[1])

	require.NotNil(t, ds.Details)
	assert.Equal(t, "tool", ds.Details.Module)
	assert.Len(t, ds.Details.Classes, 1)
	assert.NotEmpty(t, ds.Details.CallGraph)
	assert.Equal(t, m.Graph.Summary(), ds.GraphDetail)
}

func TestFileDataset_PurposeAnswer(t *testing.T) {
	t.Parallel()

	m := extractTool(t)
	qs := []questions.Question{
		{ID: "file_purpose", Text: "Purpose of {filename}?", Kind: extract.ElementFile, RequiresModel: true},
	}

	t.Run("model answer", func(t *testing.T) {
		t.Parallel()
		good := &oracle.Stub{Answer: "Provides a Tool class."}
		answers := NewResolver(good).Resolve(context.Background(), m, "tool.py", qs)
		ds := Assemble(m, "tool.py", answers)

		purpose, ok := ds.PurposeAnswer(oracle.StubAnswer)
		require.True(t, ok)
		assert.Equal(t, "Provides a Tool class.", purpose.Output)
	})

	t.Run("placeholder excluded", func(t *testing.T) {
		t.Parallel()
		answers := NewResolver(nil).Resolve(context.Background(), m, "tool.py", qs)
		ds := Assemble(m, "tool.py", answers)

		_, ok := ds.PurposeAnswer(oracle.StubAnswer)
		assert.False(t, ok)
	})

	t.Run("no purpose question", func(t *testing.T) {
		t.Parallel()
		ds := Assemble(m, "tool.py", nil)
		_, ok := ds.PurposeAnswer(oracle.StubAnswer)
		assert.False(t, ok)
	})
}
