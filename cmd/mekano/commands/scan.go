package commands

import (
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/corpustools/mekano/config"
	"github.com/corpustools/mekano/errors"
	"github.com/corpustools/mekano/logger"
	"github.com/corpustools/mekano/parser"
)

var (
	scanFormat   string
	scanSections []string
	scanLimit    int
	scanQuiet    bool
)

// ScanCmd represents the scan command
var ScanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Stream documents out of a corpus file",
	Long: `Stream documents out of a corpus file.

Drives the matching format parser over the file and prints one summary line
per document. Use --limit to stop after N documents; the parser terminates
early instead of reading the rest of the file.

Examples:
  mekano scan --format trec ap890101.txt
  mekano scan --format smart --sections W cisi.all
  mekano scan --format smart --limit 10 --quiet cisi.all`,
	Args: cobra.ExactArgs(1),
	RunE: runScanCommand,
}

func init() {
	ScanCmd.Flags().StringVarP(&scanFormat, "format", "f", "", "Corpus format (trec/smart); defaults to scan.format from config")
	ScanCmd.Flags().StringSliceVarP(&scanSections, "sections", "s", nil, "SMART section allow-set, e.g. W,T; empty reads all sections")
	ScanCmd.Flags().IntVarP(&scanLimit, "limit", "l", 0, "Stop after this many documents (0 = no limit)")
	ScanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "Only print the final document count")
}

func runScanCommand(cmd *cobra.Command, args []string) error {
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

	count := 0
	emit := func(docID string, cats []string, text string) bool {
		count++
		if !scanQuiet {
			line := pterm.Sprintf("%s %s  %d bytes", pterm.Gray("doc"), pterm.LightGreen(docID), len(text))
			if len(cats) > 0 {
				line += pterm.Gray("  [" + strings.Join(cats, " ") + "]")
			}
			pterm.Println(line)
		}
		return scanLimit == 0 || count < scanLimit
	}

	switch format {
	case config.FormatTrec:
		p := parser.NewTrecParser(fin, func(docID, text string) bool {
			return emit(docID, nil, text)
		}, logger.Logger)
		err = p.Parse()
	case config.FormatSmart:
		p := parser.NewSMARTParser(fin, emit, sections, logger.Logger)
		err = p.Parse()
	default:
		return errors.Newf("unknown format %q (expected %q or %q)", format, config.FormatTrec, config.FormatSmart)
	}
	if err != nil {
		return errors.Wrapf(err, "parse %s", args[0])
	}

	pterm.Success.Printfln("%d documents", count)
	return nil
}

// scanOptions resolves format and SMART section filter from flags with
// config fallback. An empty section list means all sections.
func scanOptions(cfg *config.Config) (string, []string) {
	format := scanFormat
	if format == "" {
		format = cfg.Scan.Format
	}
	sections := scanSections
	if len(sections) == 0 {
		sections = cfg.Scan.Sections
	}
	if len(sections) == 0 {
		sections = nil
	}
	return format, sections
}
