package dataset

import "github.com/mvp-joe/py2dataset/internal/extract"

// Answer is the resolved output for one (question, element) pair.
type Answer struct {
	QuestionID  string
	Target      string // qualified element name; file answers use the base name
	Kind        extract.ElementKind
	Instruction string
	Input       string // source snippet of the target element
	Output      string
}

// InstructRecord is one instruction-tuning example.
type InstructRecord struct {
	Instruction string `json:"instruction"`
	Input       string `json:"input"`
	Output      string `json:"output"`
}

// QARecord is the question/answer view of the same example.
type QARecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FileDetails is the per-file detail document, persisted as YAML alongside
// the dataset files.
type FileDetails struct {
	Path      string                `yaml:"path"`
	Module    string                `yaml:"module"`
	Imports   []extract.ImportRef   `yaml:"imports,omitempty"`
	Literals  []extract.LiteralRef  `yaml:"literals,omitempty"`
	Classes   []extract.ClassDef    `yaml:"classes,omitempty"`
	Functions []extract.FunctionDef `yaml:"functions,omitempty"`
	CallGraph []extract.CallEdge    `yaml:"call_graph,omitempty"`
}

// FileDataset is the complete, immutable output for one successfully
// processed file.
type FileDataset struct {
	Path        string
	BaseName    string
	Source      string
	Answers     []Answer
	Records     []InstructRecord
	QA          []QARecord
	GraphDetail string // human-readable call-graph serialization
	Details     *FileDetails
}
