package corpus

import (
	"github.com/google/uuid"

	"github.com/mvp-joe/py2dataset/internal/dataset"
	"github.com/mvp-joe/py2dataset/internal/oracle"
)

// Corpus is the combined output of one run over a source tree. Record
// order is file discovery order with each file's internal order intact.
type Corpus struct {
	// RunID is run metadata, stamped by the caller (see NewRunID); Combine
	// itself is a pure function of its input.
	RunID   string
	Records []dataset.InstructRecord
	QA      []dataset.QARecord

	// PurposeView pairs each file's model-derived purpose answer with the
	// file's full source. Files whose purpose answer is the static
	// placeholder are excluded.
	PurposeView []dataset.InstructRecord

	// GraphView holds one call-graph instruction record per file.
	GraphView []dataset.InstructRecord
}

// NewRunID mints a unique identifier for one run.
func NewRunID() string {
	return uuid.NewString()
}

// Combine concatenates per-file datasets into a single corpus. It never
// reorders or deduplicates across files; determinism comes purely from
// the order of the input slice. Identical inputs combine to identical
// corpora.
func Combine(files []*dataset.FileDataset) *Corpus {
	c := &Corpus{}
	for _, f := range files {
		c.Records = append(c.Records, f.Records...)
		c.QA = append(c.QA, f.QA...)

		if purpose, ok := f.PurposeAnswer(oracle.StubAnswer); ok {
			c.PurposeView = append(c.PurposeView, dataset.InstructRecord{
				Instruction: purpose.Instruction,
				Input:       f.Source,
				Output:      purpose.Output,
			})
		}
		c.GraphView = append(c.GraphView, dataset.InstructRecord{
			Instruction: "Describe the call graph of file: " + f.Path,
			Input:       f.Source,
			Output:      f.GraphDetail,
		})
	}
	return c
}

// ReducedRecords is the cleaned instruct set followed by the derived
// views: duplicate-input-blanked records, then purpose→source pairs, then
// per-file call-graph pairs.
func (c *Corpus) ReducedRecords() []dataset.InstructRecord {
	cleaned := c.CleanedRecords()
	reduced := make([]dataset.InstructRecord, 0, len(cleaned)+len(c.PurposeView)+len(c.GraphView))
	reduced = append(reduced, cleaned...)
	reduced = append(reduced, c.PurposeView...)
	reduced = append(reduced, c.GraphView...)
	return reduced
}

// CleanedRecords returns a copy of the instruct records where repeated
// inputs are blanked. The first record carrying a given input keeps it;
// later records with the same input get an empty input. This shrinks the
// combined file when many questions share one source snippet.
func (c *Corpus) CleanedRecords() []dataset.InstructRecord {
	cleaned := make([]dataset.InstructRecord, len(c.Records))
	seen := make(map[string]struct{}, len(c.Records))
	for i, rec := range c.Records {
		if rec.Input != "" {
			if _, dup := seen[rec.Input]; dup {
				rec.Input = ""
			} else {
				seen[rec.Input] = struct{}{}
			}
		}
		cleaned[i] = rec
	}
	return cleaned
}
