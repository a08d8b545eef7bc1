package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbrett/platen/internal/config"
	"github.com/mbrett/platen/internal/logger"
)

var (
	cfg     = config.FromEnv()
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "platen",
	Short: "Press images into print-ready PDF documents",
	Long: `Platen turns images into PDF documents, one image per page.

Each page takes a standard paper size (or the image's own size), the image
is scaled to fit inside it and centered, and the finished document can be
checked page by page with rendered proofs.

Supported inputs: JPEG, PNG, GIF, WebP, BMP and TIFF.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		return logger.Init(logger.Options{
			Level:      level,
			Pretty:     cfg.Logging.Pretty,
			File:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		})
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
