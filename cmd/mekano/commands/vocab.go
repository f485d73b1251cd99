package commands

import (
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/corpustools/mekano/atoms"
	"github.com/corpustools/mekano/config"
	"github.com/corpustools/mekano/errors"
	"github.com/corpustools/mekano/logger"
	"github.com/corpustools/mekano/parser"
	"github.com/corpustools/mekano/storage"
)

var (
	vocabName   string
	vocabDBPath string
	vocabOut    string
	vocabLock   bool
)

// VocabCmd represents the vocab command group
var VocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Build, inspect and export atom vocabularies",
	Long: `Build, inspect and export atom vocabularies.

A vocabulary is an atom factory: every distinct whitespace-separated token of
the scanned documents is assigned a dense positive integer in first-seen
order. Vocabularies live in the SQLite database configured by database.path
and can be exported as one-token-per-line text files (line number = atom).

Examples:
  mekano vocab build --format smart --sections W --name tokens cisi.all
  mekano vocab show
  mekano vocab export --name tokens --out vocab.txt`,
}

var vocabBuildCmd = &cobra.Command{
	Use:   "build <file>",
	Short: "Build a vocabulary from a corpus file",
	Args:  cobra.ExactArgs(1),
	RunE:  runVocabBuild,
}

var vocabShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List stored vocabularies",
	Args:  cobra.NoArgs,
	RunE:  runVocabShow,
}

var vocabExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a vocabulary as a one-token-per-line text file",
	Args:  cobra.NoArgs,
	RunE:  runVocabExport,
}

func init() {
	VocabCmd.AddCommand(vocabBuildCmd)
	VocabCmd.AddCommand(vocabShowCmd)
	VocabCmd.AddCommand(vocabExportCmd)

	vocabBuildCmd.Flags().StringVarP(&scanFormat, "format", "f", "", "Corpus format (trec/smart); defaults to scan.format from config")
	vocabBuildCmd.Flags().StringSliceVarP(&scanSections, "sections", "s", nil, "SMART section allow-set, e.g. W,T; empty reads all sections")
	vocabBuildCmd.Flags().StringVarP(&vocabName, "name", "n", "tokens", "Factory name to store the vocabulary under")
	vocabBuildCmd.Flags().StringVar(&vocabDBPath, "db", "", "Vocabulary database path (defaults to database.path from config)")
	vocabBuildCmd.Flags().BoolVar(&vocabLock, "lock", false, "Lock the factory after building")

	vocabShowCmd.Flags().StringVar(&vocabDBPath, "db", "", "Vocabulary database path (defaults to database.path from config)")

	vocabExportCmd.Flags().StringVarP(&vocabName, "name", "n", "tokens", "Factory name to export")
	vocabExportCmd.Flags().StringVarP(&vocabOut, "out", "o", "", "Output text file (required)")
	vocabExportCmd.Flags().StringVar(&vocabDBPath, "db", "", "Vocabulary database path (defaults to database.path from config)")
	vocabExportCmd.MarkFlagRequired("out")
}

func runVocabBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	format, sections := scanOptions(cfg)

	fin, err := os.Open(args[0])
	if err != nil {
		return errors.Wrapf(err, "open %s", args[0])
	}
	defer fin.Close()

	factory := atoms.New(vocabName)
	docs := 0
	var insertErr error

	collect := func(docID string, cats []string, text string) bool {
		docs++
		for _, token := range strings.Fields(text) {
			if _, err := factory.LookupOrInsert(token); err != nil {
				insertErr = err
				return false
			}
		}
		return true
	}

	switch format {
	case config.FormatTrec:
		p := parser.NewTrecParser(fin, func(docID, text string) bool {
			return collect(docID, nil, text)
		}, logger.Logger)
		err = p.Parse()
	case config.FormatSmart:
		p := parser.NewSMARTParser(fin, collect, sections, logger.Logger)
		err = p.Parse()
	default:
		return errors.Newf("unknown format %q (expected %q or %q)", format, config.FormatTrec, config.FormatSmart)
	}
	if err != nil {
		return errors.Wrapf(err, "parse %s", args[0])
	}
	if insertErr != nil {
		return errors.Wrap(insertErr, "number tokens")
	}

	if vocabLock {
		factory.Lock()
	}

	database, err := openDatabase(vocabDBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	store := storage.NewVocabStore(database, logger.Logger)
	if err := store.SaveFactory(factory); err != nil {
		return err
	}

	pterm.Success.Printfln("%s: %d tokens from %d documents", vocabName, factory.Len(), docs)
	return nil
}

func runVocabShow(cmd *cobra.Command, args []string) error {
	database, err := openDatabase(vocabDBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	infos, err := storage.NewVocabStore(database, logger.Logger).ListFactories()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		pterm.Println("no vocabularies stored")
		return nil
	}

	rows := pterm.TableData{{"Name", "Atoms", "Locked"}}
	for _, info := range infos {
		locked := ""
		if info.Locked {
			locked = "yes"
		}
		rows = append(rows, []string{info.Name, pterm.Sprintf("%d", info.Atoms), locked})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func runVocabExport(cmd *cobra.Command, args []string) error {
	database, err := openDatabase(vocabDBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	factory, err := storage.NewVocabStore(database, logger.Logger).LoadFactory(vocabName)
	if err != nil {
		return err
	}

	if err := factory.SaveText(vocabOut); err != nil {
		return err
	}
	pterm.Success.Printfln("%s: %d tokens written to %s", vocabName, factory.Len(), vocabOut)
	return nil
}
