package dataset

import (
	"path/filepath"
	"strings"

	"github.com/mvp-joe/py2dataset/internal/extract"
)

// Assemble packages resolved answers into the per-file dataset views:
// instruct records, QA pairs, the call-graph detail string, and the
// structural detail document. Record order mirrors answer order exactly.
func Assemble(m *extract.FileModel, relPath string, answers []Answer) *FileDataset {
	ds := &FileDataset{
		Path:     relPath,
		BaseName: strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath)),
		Source:   m.Source,
		Answers:  answers,
	}

	ds.Records = make([]InstructRecord, 0, len(answers))
	ds.QA = make([]QARecord, 0, len(answers))
	for _, a := range answers {
		ds.Records = append(ds.Records, InstructRecord{
			Instruction: a.Instruction,
			Input:       a.Input,
			Output:      a.Output,
		})
		ds.QA = append(ds.QA, QARecord{
			Question: a.Instruction,
			Answer:   a.Output,
		})
	}

	ds.GraphDetail = m.Graph.Summary()
	ds.Details = &FileDetails{
		Path:      relPath,
		Module:    m.Module,
		Imports:   m.Imports,
		Literals:  m.Literals,
		Classes:   m.Classes,
		Functions: m.Functions,
		CallGraph: m.Graph.Edges(),
	}
	return ds
}

// PurposeAnswer returns the first model-backed file purpose answer, if one
// was actually produced by a model rather than the fixed placeholder.
func (d *FileDataset) PurposeAnswer(placeholder string) (Answer, bool) {
	for _, a := range d.Answers {
		if a.Kind != extract.ElementFile || !strings.HasSuffix(a.QuestionID, "purpose") {
			continue
		}
		if a.Output == placeholder {
			return Answer{}, false
		}
		return a, true
	}
	return Answer{}, false
}
