package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/py2dataset/internal/pipeline"
)

// CLIProgressReporter implements progress reporting with progress bars.
type CLIProgressReporter struct {
	quiet   bool
	fileBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnDiscoveryStart() {
	if c.quiet {
		return
	}
	log.Println("Discovering Python files...")
}

func (c *CLIProgressReporter) OnDiscoveryComplete(fileCount int) {
	if c.quiet {
		return
	}
	log.Printf("Processing %d Python files\n", fileCount)
	fmt.Println()
}

func (c *CLIProgressReporter) OnFileProcessingStart(totalFiles int) {
	if c.quiet {
		return
	}
	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Generating datasets"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(fileName string) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnFileFailed(fileName string, err error) {
	if c.quiet {
		return
	}
	// The bar still advances; the pipeline already logged the cause.
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnWritingCorpus() {
	if c.quiet {
		return
	}
	log.Println("Writing combined corpus files...")
}

func (c *CLIProgressReporter) OnComplete(stats *pipeline.Stats) {
	if c.quiet {
		return
	}
	fmt.Println()
	fmt.Printf("✓ Dataset complete: %d records from %d files in %.1fs\n",
		stats.Records, stats.FilesProcessed, stats.ProcessingTimeSeconds)
	fmt.Printf("  Run ID: %s\n", stats.RunID)
}
