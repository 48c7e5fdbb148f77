package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/py2dataset/internal/dataset"
	"github.com/mvp-joe/py2dataset/internal/extract"
	"github.com/mvp-joe/py2dataset/internal/oracle"
)

// Test Plan for Combine:
// - Concatenate per-file records in input order without reordering
// - Combining no files yields a valid empty corpus
// - Purpose view keeps model answers and drops placeholder answers
// - Graph view carries one record per file
// - CleanedRecords blanks repeated inputs, keeping the first occurrence
// - ReducedRecords appends the derived views after the cleaned set
// - Combine is pure: identical inputs yield identical corpora

func fileDS(path, source string, answers []dataset.Answer, records []dataset.InstructRecord) *dataset.FileDataset {
	qa := make([]dataset.QARecord, 0, len(records))
	for _, r := range records {
		qa = append(qa, dataset.QARecord{Question: r.Instruction, Answer: r.Output})
	}
	return &dataset.FileDataset{
		Path:        path,
		Source:      source,
		Answers:     answers,
		Records:     records,
		QA:          qa,
		GraphDetail: "no calls",
	}
}

func TestCombine_Order(t *testing.T) {
	t.Parallel()

	a := fileDS("a.py", "# a", nil, []dataset.InstructRecord{
		{Instruction: "q1", Input: "# a", Output: "o1"},
		{Instruction: "q2", Input: "# a", Output: "o2"},
	})
	b := fileDS("b.py", "# b", nil, []dataset.InstructRecord{
		{Instruction: "q3", Input: "# b", Output: "o3"},
	})

	c := Combine([]*dataset.FileDataset{a, b})

	require.Len(t, c.Records, 3)
	assert.Equal(t, "q1", c.Records[0].Instruction)
	assert.Equal(t, "q2", c.Records[1].Instruction)
	assert.Equal(t, "q3", c.Records[2].Instruction)
	require.Len(t, c.QA, 3)
	assert.Equal(t, "o3", c.QA[2].Answer)

	require.Len(t, c.GraphView, 2)
	assert.Contains(t, c.GraphView[0].Instruction, "a.py")
	assert.Equal(t, "# a", c.GraphView[0].Input)
}

func TestCombine_Empty(t *testing.T) {
	t.Parallel()

	c := Combine(nil)
	assert.Empty(t, c.Records)
	assert.Empty(t, c.QA)
	assert.Empty(t, c.PurposeView)
	assert.Empty(t, c.GraphView)
	assert.Empty(t, c.CleanedRecords())
}

func TestCombine_PurposeView(t *testing.T) {
	t.Parallel()

	withModel := fileDS("m1.py", "print(1)", []dataset.Answer{
		{QuestionID: "file_purpose", Kind: extract.ElementFile, Instruction: "Purpose of m1.py?", Output: "Prints one."},
	}, nil)
	withPlaceholder := fileDS("m2.py", "print(2)", []dataset.Answer{
		{QuestionID: "file_purpose", Kind: extract.ElementFile, Instruction: "Purpose of m2.py?", Output: oracle.StubAnswer},
	}, nil)

	c := Combine([]*dataset.FileDataset{withModel, withPlaceholder})

	require.Len(t, c.PurposeView, 1)
	assert.Equal(t, "Purpose of m1.py?", c.PurposeView[0].Instruction)
	assert.Equal(t, "print(1)", c.PurposeView[0].Input)
	assert.Equal(t, "Prints one.", c.PurposeView[0].Output)
}

func TestCorpus_CleanedRecords(t *testing.T) {
	t.Parallel()

	ds := fileDS("a.py", "src", nil, []dataset.InstructRecord{
		{Instruction: "q1", Input: "src", Output: "o1"},
		{Instruction: "q2", Input: "src", Output: "o2"},
		{Instruction: "q3", Input: "other", Output: "o3"},
		{Instruction: "q4", Input: "", Output: "o4"},
	})
	c := Combine([]*dataset.FileDataset{ds})

	cleaned := c.CleanedRecords()
	require.Len(t, cleaned, 4)
	assert.Equal(t, "src", cleaned[0].Input)
	assert.Equal(t, "", cleaned[1].Input)
	assert.Equal(t, "other", cleaned[2].Input)
	assert.Equal(t, "", cleaned[3].Input)

	// The original records are untouched.
	assert.Equal(t, "src", c.Records[1].Input)
}

func TestCorpus_ReducedRecords(t *testing.T) {
	t.Parallel()

	ds := fileDS("m.py", "src", []dataset.Answer{
		{QuestionID: "file_purpose", Kind: extract.ElementFile, Instruction: "Purpose of m.py?", Output: "Does things."},
	}, []dataset.InstructRecord{
		{Instruction: "q1", Input: "src", Output: "o1"},
		{Instruction: "q2", Input: "src", Output: "o2"},
	})
	c := Combine([]*dataset.FileDataset{ds})

	reduced := c.ReducedRecords()
	require.Len(t, reduced, 4)
	assert.Equal(t, "", reduced[1].Input)
	assert.Equal(t, "Does things.", reduced[2].Output)
	assert.Contains(t, reduced[3].Instruction, "m.py")
	assert.Equal(t, "no calls", reduced[3].Output)
}

func TestCombine_Deterministic(t *testing.T) {
	t.Parallel()

	files := []*dataset.FileDataset{
		fileDS("a.py", "# a", nil, []dataset.InstructRecord{{Instruction: "q1", Input: "# a", Output: "o1"}}),
		fileDS("b.py", "# b", nil, []dataset.InstructRecord{{Instruction: "q2", Input: "# b", Output: "o2"}}),
	}

	first := Combine(files)
	second := Combine(files)

	assert.Equal(t, first, second)

	// Run identity lives outside the combination.
	assert.Empty(t, first.RunID)
	assert.NotEqual(t, NewRunID(), NewRunID())
}
