package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ousamg/gene2bed/internal/bed"
	"github.com/ousamg/gene2bed/internal/feature"
	"github.com/ousamg/gene2bed/internal/gtf"
	"github.com/ousamg/gene2bed/internal/store"
)

func newExportCmd() *cobra.Command {
	var (
		outputFile  string
		synonymFile string
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "export <input.gtf | cache.duckdb>",
		Short: "Export transcripts as BED lines",
		Long: `Export every transcript from a GTF file or a previously indexed DuckDB
cache as 12-column BED lines. Chromosome names follow UCSC conventions when a
chromAlias synonym file is supplied.`,
		Example: `  gene2bed export gencode.v44.annotation.gtf.gz > genes.bed
  gene2bed export --synonyms chromAlias.txt -o genes.bed cache.duckdb`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0], outputFile, synonymFile, workers)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&synonymFile, "synonyms", "", "UCSC chromAlias file for chromosome naming")
	cmd.Flags().IntVar(&workers, "workers", 0, "Encoding workers (0 = one per CPU)")

	return cmd
}

func runExport(inputPath, outputFile, synonymFile string, workers int) error {
	if synonymFile == "" {
		synonymFile = viper.GetString("synonyms")
	}

	var aliases *gtf.AliasRegistry
	if synonymFile != "" {
		var err error
		aliases, err = gtf.LoadAliasFile(synonymFile)
		if err != nil {
			return fmt.Errorf("load synonyms: %w", err)
		}
		logger.Debug("synonyms loaded", zap.String("path", synonymFile))
	}

	set, err := loadTranscripts(inputPath, aliases)
	if err != nil {
		return err
	}
	logger.Info("transcripts loaded",
		zap.String("input", inputPath),
		zap.Int("count", set.Count()))

	out := os.Stdout
	if outputFile != "" {
		out, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
	}

	exporter := bed.NewExporter()
	exporter.SetLogger(logger)
	exporter.SetWorkers(workers)

	return exporter.ExportAll(bed.NewSetSource(set), bed.NewWriter(out))
}

// loadTranscripts reads transcripts from a GTF file or a DuckDB cache,
// detected by file extension.
func loadTranscripts(path string, aliases *gtf.AliasRegistry) (*feature.Set, error) {
	if isDuckDBPath(path) {
		s, err := store.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open transcript store: %w", err)
		}
		defer s.Close()

		set, err := s.LoadSet()
		if err != nil {
			return nil, fmt.Errorf("load transcript store: %w", err)
		}
		if aliases != nil {
			store.AttachSynonymSource(set, aliases)
		}
		return set, nil
	}

	loader := gtf.NewLoader(path)
	loader.SetLogger(logger)
	if aliases != nil {
		loader.SetSynonymSource(aliases)
	}
	return loader.Load()
}

// isDuckDBPath reports whether a path looks like a DuckDB cache rather than
// a GTF file.
func isDuckDBPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".duckdb") || strings.HasSuffix(lower, ".db")
}
