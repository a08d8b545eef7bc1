package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"
)

var optimizeOutputPath string

var optimizeCmd = &cobra.Command{
	Use:   "optimize [pdf file]",
	Short: "Rewrite a PDF with redundant objects removed",
	Long: `Rewrite a PDF document into a smaller equivalent by pruning redundant
objects and compacting its structure. Page content is not re-encoded, so
image quality is unchanged.

Examples:
  platen optimize book.pdf -o book-small.pdf
  platen optimize scans.pdf --output scans-optimized.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runOptimize,
}

func init() {
	rootCmd.AddCommand(optimizeCmd)

	optimizeCmd.Flags().StringVarP(&optimizeOutputPath, "output", "o", "", "Output PDF file path (required)")

	optimizeCmd.MarkFlagRequired("output")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if err := validatePDFFile(inputPath); err != nil {
		return fmt.Errorf("input validation failed: %w", err)
	}

	if err := validatePDFOutputPath(optimizeOutputPath); err != nil {
		return fmt.Errorf("output validation failed: %w", err)
	}

	before, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("failed to stat input: %w", err)
	}

	if verbose {
		fmt.Printf("Optimizing %s (%s)\n", inputPath, humanize.Bytes(uint64(before.Size())))
	}

	if err := api.OptimizeFile(inputPath, optimizeOutputPath, nil); err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}

	after, err := os.Stat(optimizeOutputPath)
	if err != nil {
		return fmt.Errorf("failed to stat output: %w", err)
	}

	saved := 100 * (1 - float64(after.Size())/float64(before.Size()))
	if saved > 0 {
		fmt.Printf("✅ Optimized %s: %s → %s (%.1f%% smaller)\n",
			inputPath, humanize.Bytes(uint64(before.Size())), humanize.Bytes(uint64(after.Size())), saved)
	} else {
		fmt.Printf("✅ Optimized %s: %s → %s (no further gains)\n",
			inputPath, humanize.Bytes(uint64(before.Size())), humanize.Bytes(uint64(after.Size())))
	}

	return nil
}
