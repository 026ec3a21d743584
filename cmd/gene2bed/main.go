// Package main provides the gene2bed command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var logger *zap.Logger

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:     "gene2bed",
		Short:   "Convert gene annotations to BED format",
		Long:    "gene2bed converts genomic features and gene transcripts into 6- and 12-column BED lines, following UCSC chromosome naming conventions.",
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initConfig()
			return initLogger(verbose)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig loads ~/.gene2bed.yaml if present.
func initConfig() {
	viper.SetConfigName(".gene2bed")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetEnvPrefix("GENE2BED")
	viper.AutomaticEnv()

	// A missing config file is fine; any other read error is reported once.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: could not read config: %v\n", err)
		}
	}
}

// initLogger builds the process logger. Progress output goes to stderr so
// BED lines on stdout stay clean.
func initLogger(verbose bool) error {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	var err error
	logger, err = cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	return nil
}
