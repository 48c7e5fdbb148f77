package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/py2dataset/internal/config"
	"github.com/mvp-joe/py2dataset/internal/oracle"
	"github.com/mvp-joe/py2dataset/internal/pipeline"
)

var (
	quietFlag     bool
	useLLMFlag    bool
	graphFlag     bool
	outputDirFlag string
	questionsFlag string
	databaseFlag  string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [directory]",
	Short: "Generate a dataset from a Python source tree",
	Long: `Generate walks a directory of Python files and produces, per file,
qa.json / instruct.json / details.yaml artifacts, plus combined corpus
files (qa.json, instruct.json, cleaned_instruct.json) at the output root.

Purpose questions are answered by a model when --use-llm is set and an
oracle is configured; otherwise they carry a fixed placeholder.

Examples:
  # Process the current directory with static answers only
  py2dataset generate

  # Process a specific tree with model-written purpose summaries
  py2dataset generate ./myproject --use-llm

  # Also export Graphviz DOT call graphs per file
  py2dataset generate --graph
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	generateCmd.Flags().BoolVar(&useLLMFlag, "use-llm", false, "Answer purpose questions with the configured model")
	generateCmd.Flags().BoolVar(&graphFlag, "graph", false, "Also write DOT call-graph exports per file")
	generateCmd.Flags().StringVarP(&outputDirFlag, "output-dir", "o", "", "Output directory (default from config)")
	generateCmd.Flags().StringVar(&questionsFlag, "questions", "", "Custom question file (default: built-in set)")
	generateCmd.Flags().StringVar(&databaseFlag, "database", "", "SQLite file to additionally store the corpus in")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling run...")
		cancel()
	}()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if len(args) == 1 {
		rootDir, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid directory %q: %w", args[0], err)
		}
	}

	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	var o oracle.Oracle
	if useLLMFlag {
		o, err = oracle.New(ctx, cfg.Oracle)
		if err != nil {
			return fmt.Errorf("failed to create oracle: %w", err)
		}
		defer o.Close()
	}

	reporter := NewCLIProgressReporter(quietFlag)
	stats, err := pipeline.New(cfg, rootDir, o, reporter).Run(ctx)
	if err != nil {
		return err
	}

	if stats.FilesFailed > 0 && !quietFlag {
		fmt.Printf("  %d file(s) skipped due to errors\n", stats.FilesFailed)
	}
	return nil
}

// applyFlags overlays explicitly set command-line flags on the loaded
// configuration. Unset flags leave config/env values untouched.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("output-dir") {
		cfg.Output.Dir = outputDirFlag
	}
	if cmd.Flags().Changed("graph") {
		cfg.Output.Graph = graphFlag
	}
	if cmd.Flags().Changed("questions") {
		cfg.Paths.Questions = questionsFlag
	}
	if cmd.Flags().Changed("database") {
		cfg.Database = databaseFlag
	}
}
