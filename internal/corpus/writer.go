package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dominikbraun/graph"
	"gopkg.in/yaml.v3"

	"github.com/mvp-joe/py2dataset/internal/dataset"
	"github.com/mvp-joe/py2dataset/internal/extract"
)

// Writer persists per-file artifacts and combined corpus files under a
// single output directory. Per-file artifacts mirror the source tree's
// relative directory structure.
type Writer struct {
	outputDir string
	withDOT   bool
}

// NewWriter creates a writer rooted at outputDir. When withDOT is set,
// each file additionally gets Graphviz DOT exports of its call graphs.
func NewWriter(outputDir string, withDOT bool) *Writer {
	return &Writer{outputDir: outputDir, withDOT: withDOT}
}

// WriteFile writes one file's artifacts: <base>.qa.json,
// <base>.instruct.json, <base>.details.yaml, and optionally the two DOT
// call-graph exports.
func (w *Writer) WriteFile(ds *dataset.FileDataset, m *extract.FileModel) error {
	dir := filepath.Join(w.outputDir, filepath.Dir(ds.Path))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	base := filepath.Join(dir, ds.BaseName)
	if err := writeJSON(base+".qa.json", ds.QA); err != nil {
		return err
	}
	if err := writeJSON(base+".instruct.json", ds.Records); err != nil {
		return err
	}
	if err := writeYAML(base+".details.yaml", ds.Details); err != nil {
		return err
	}

	if w.withDOT {
		if err := writeDOT(base+".internal_code_graph.dot", m.InternalGraph()); err != nil {
			return err
		}
		if err := writeDOT(base+".entire_code_graph.dot", m.EntireGraph()); err != nil {
			return err
		}
	}
	return nil
}

// WriteCorpus writes the combined qa.json, instruct.json, and
// cleaned_instruct.json at the output root.
func (w *Writer) WriteCorpus(c *Corpus) error {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := writeJSON(filepath.Join(w.outputDir, "qa.json"), c.QA); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(w.outputDir, "instruct.json"), c.Records); err != nil {
		return err
	}
	return writeJSON(filepath.Join(w.outputDir, "cleaned_instruct.json"), c.ReducedRecords())
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeDOT(path string, g graph.Graph[string, string]) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	if err := extract.WriteDOT(g, f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
