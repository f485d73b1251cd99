package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corpustools/mekano/cmd/mekano/commands"
	"github.com/corpustools/mekano/config"
	"github.com/corpustools/mekano/logger"
)

var rootCmd = &cobra.Command{
	Use:   "mekano",
	Short: "mekano - streaming corpus-processing toolkit",
	Long: `mekano - streaming corpus-processing toolkit.

mekano turns raw corpus files (TREC tagged documents, SMART dot-section
documents) into structured records and numbers the resulting strings with
stable, dense atom identifiers.

Available commands:
  scan    - Stream documents out of a corpus file
  vocab   - Build, inspect and export atom vocabularies
  version - Show build information

Examples:
  mekano scan --format trec ap890101.txt
  mekano scan --format smart --sections W,T cisi.all
  mekano vocab build --format smart --name tokens cisi.all
  mekano vocab show`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		// Initialize global logger before any command runs
		if err := logger.Initialize(cfg.Log.JSON); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commands.ScanCmd)
	rootCmd.AddCommand(commands.VocabCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
