// Package pipeline orchestrates a full dataset generation run:
// discovery, extraction, question answering, per-file artifact writing,
// and corpus combination.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mvp-joe/py2dataset/internal/config"
	"github.com/mvp-joe/py2dataset/internal/corpus"
	"github.com/mvp-joe/py2dataset/internal/dataset"
	"github.com/mvp-joe/py2dataset/internal/discover"
	"github.com/mvp-joe/py2dataset/internal/extract"
	"github.com/mvp-joe/py2dataset/internal/oracle"
	"github.com/mvp-joe/py2dataset/internal/questions"
)

// Stats summarizes a completed run.
type Stats struct {
	RunID                 string
	FilesDiscovered       int
	FilesProcessed        int
	FilesFailed           int
	Records               int
	ProcessingTimeSeconds float64
}

// Pipeline wires the stages of a run together. Failures in a single file
// are isolated: the file is skipped and the run continues.
type Pipeline struct {
	cfg      *config.Config
	rootDir  string
	oracle   oracle.Oracle
	reporter ProgressReporter
}

// New creates a pipeline. The oracle may be nil, in which case model-backed
// questions answer with the fixed placeholder. A nil reporter is replaced
// with a no-op one.
func New(cfg *config.Config, rootDir string, o oracle.Oracle, reporter ProgressReporter) *Pipeline {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Pipeline{cfg: cfg, rootDir: rootDir, oracle: o, reporter: reporter}
}

// Run executes the full pipeline and returns run statistics. It stops
// early only on context cancellation or output-writing failures; per-file
// parse and read errors are counted and skipped.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()

	qs, err := p.loadQuestions()
	if err != nil {
		return nil, err
	}

	p.reporter.OnDiscoveryStart()
	disc, err := discover.New(p.rootDir, p.cfg.Paths.Ignore)
	if err != nil {
		return nil, err
	}
	files, err := disc.Discover()
	if err != nil {
		return nil, err
	}
	p.reporter.OnDiscoveryComplete(len(files))

	extractor := extract.NewExtractor()
	resolver := dataset.NewResolver(p.oracle)
	writer := corpus.NewWriter(p.cfg.Output.Dir, p.cfg.Output.Graph)

	stats := &Stats{FilesDiscovered: len(files)}
	var processed []*dataset.FileDataset

	p.reporter.OnFileProcessingStart(len(files))
	for _, relPath := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ds, m, err := p.processFile(ctx, extractor, resolver, relPath, qs)
		if err != nil {
			if errors.Is(err, extract.ErrParse) || os.IsNotExist(err) {
				log.Printf("skipping %s: %v", relPath, err)
				stats.FilesFailed++
				p.reporter.OnFileFailed(relPath, err)
				continue
			}
			return nil, err
		}

		if err := writer.WriteFile(ds, m); err != nil {
			return nil, err
		}
		// The corpus only sees fully processed and persisted files.
		processed = append(processed, ds)
		stats.FilesProcessed++
		p.reporter.OnFileProcessed(relPath)
	}

	p.reporter.OnWritingCorpus()
	combined := corpus.Combine(processed)
	combined.RunID = corpus.NewRunID()
	if err := writer.WriteCorpus(combined); err != nil {
		return nil, err
	}

	if p.cfg.Database != "" {
		if err := p.saveToStore(combined); err != nil {
			return nil, err
		}
	}

	stats.RunID = combined.RunID
	stats.Records = len(combined.Records)
	stats.ProcessingTimeSeconds = time.Since(start).Seconds()
	p.reporter.OnComplete(stats)
	return stats, nil
}

func (p *Pipeline) loadQuestions() ([]questions.Question, error) {
	if p.cfg.Paths.Questions == "" {
		return questions.Default(), nil
	}
	qs, err := questions.Load(p.cfg.Paths.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	return qs, nil
}

func (p *Pipeline) processFile(ctx context.Context, extractor *extract.Extractor, resolver *dataset.Resolver, relPath string, qs []questions.Question) (*dataset.FileDataset, *extract.FileModel, error) {
	source, err := os.ReadFile(filepath.Join(p.rootDir, filepath.FromSlash(relPath)))
	if err != nil {
		return nil, nil, err
	}

	m, err := extractor.Extract(relPath, source)
	if err != nil {
		return nil, nil, err
	}

	answers := resolver.Resolve(ctx, m, relPath, qs)
	return dataset.Assemble(m, relPath, answers), m, nil
}

func (p *Pipeline) saveToStore(c *corpus.Corpus) error {
	store, err := corpus.OpenStore(p.cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SaveCorpus(c, p.rootDir)
}
