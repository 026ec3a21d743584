package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ousamg/gene2bed/internal/gtf"
	"github.com/ousamg/gene2bed/internal/store"
)

func newIndexCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "index <input.gtf>",
		Short: "Index a GTF file into a DuckDB cache",
		Long: `Parse a GTF file once and persist its transcripts in a DuckDB cache that
later exports can read without re-parsing.`,
		Example: `  gene2bed index gencode.v44.annotation.gtf.gz
  gene2bed index -o kras.duckdb kras.gtf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(args[0], outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Cache file (default: ~/.gene2bed/cache.duckdb)")

	return cmd
}

func runIndex(inputPath, outputFile string) error {
	if outputFile == "" {
		outputFile = viper.GetString("cache")
	}
	if outputFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		outputFile = filepath.Join(home, ".gene2bed", "cache.duckdb")
	}

	loader := gtf.NewLoader(inputPath)
	loader.SetLogger(logger)

	set, err := loader.Load()
	if err != nil {
		return err
	}

	s, err := store.Open(outputFile)
	if err != nil {
		return fmt.Errorf("open transcript store: %w", err)
	}
	defer s.Close()

	if err := s.PutSet(set); err != nil {
		return fmt.Errorf("index transcripts: %w", err)
	}

	logger.Info("index complete",
		zap.String("cache", outputFile),
		zap.Int("transcripts", set.Count()))

	return nil
}
