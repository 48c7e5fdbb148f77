package corpus

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/py2dataset/internal/dataset"
)

// Test Plan for Store:
// - Open creates the schema on a fresh database
// - SaveCorpus persists records; LoadRecords returns them in corpus order
// - SaveCorpus rejects a corpus without a run ID
// - Loading an unknown run yields no records
// - Saving two runs keeps them separate

func combineWithRunID(files []*dataset.FileDataset) *Corpus {
	c := Combine(files)
	c.RunID = NewRunID()
	return c
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "corpus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	ds := fileDS("a.py", "src", nil, []dataset.InstructRecord{
		{Instruction: "q1", Input: "src", Output: "o1"},
		{Instruction: "q2", Input: "src", Output: "o2"},
	})
	c := combineWithRunID([]*dataset.FileDataset{ds})

	require.NoError(t, store.SaveCorpus(c, "/tmp/project"))

	records, err := store.LoadRecords(c.RunID)
	require.NoError(t, err)
	assert.Equal(t, c.Records, records)
}

func TestStore_RejectsMissingRunID(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	err := store.SaveCorpus(Combine(nil), "/tmp/project")
	assert.ErrorContains(t, err, "no run id")
}

func TestStore_UnknownRun(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	records, err := store.LoadRecords("no-such-run")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_MultipleRuns(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	first := combineWithRunID([]*dataset.FileDataset{
		fileDS("a.py", "a", nil, []dataset.InstructRecord{{Instruction: "qa", Input: "a", Output: "oa"}}),
	})
	second := combineWithRunID([]*dataset.FileDataset{
		fileDS("b.py", "b", nil, []dataset.InstructRecord{{Instruction: "qb", Input: "b", Output: "ob"}}),
	})

	require.NoError(t, store.SaveCorpus(first, "/tmp/project"))
	require.NoError(t, store.SaveCorpus(second, "/tmp/project"))

	records, err := store.LoadRecords(second.RunID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "qb", records[0].Instruction)
}
