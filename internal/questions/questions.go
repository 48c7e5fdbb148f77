// Package questions defines the question templates the pipeline answers
// about each source file. The list is ordered input: answer emission order
// follows it, so loaders never re-sort.
package questions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mvp-joe/py2dataset/internal/extract"
)

//go:embed default_questions.json
var defaultQuestionsJSON []byte

// Question is an immutable question template. Text may contain the
// placeholders {filename}, {class_name}, {function_name}, and
// {method_name}, substituted per target element at resolution time.
type Question struct {
	ID            string              `json:"id"`
	Text          string              `json:"text"`
	Kind          extract.ElementKind `json:"type"`
	RequiresModel bool                `json:"requires_model"`
}

// Default returns the built-in question set.
func Default() []Question {
	qs, err := parse(defaultQuestionsJSON)
	if err != nil {
		// The embedded set is validated by tests; reaching this is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded question set invalid: %v", err))
	}
	return qs
}

// Load reads a question list from a JSON file. Order is preserved.
func Load(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questions file: %w", err)
	}
	qs, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse questions file %s: %w", path, err)
	}
	return qs, nil
}

func parse(data []byte) ([]Question, error) {
	var qs []Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, err
	}
	for i, q := range qs {
		if q.ID == "" || q.Text == "" {
			return nil, fmt.Errorf("question %d: id and text are required", i)
		}
		switch q.Kind {
		case extract.ElementFile, extract.ElementClass, extract.ElementFunction, extract.ElementMethod:
		default:
			return nil, fmt.Errorf("question %s: unknown target type %q", q.ID, q.Kind)
		}
	}
	return qs, nil
}
