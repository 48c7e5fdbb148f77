package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "py2dataset",
	Short: "Generate instruction-tuning datasets from Python source trees",
	Long: `py2dataset statically analyzes a tree of Python files and turns each
file into question/answer and instruction-tuning records: structure,
call graphs, and (optionally) model-written purpose summaries.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./py2dataset.yaml)")
}
