package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"
)

const pointsPerMM = 72.0 / 25.4

var infoCmd = &cobra.Command{
	Use:   "info [pdf file]",
	Short: "Show page count, page sizes and validity of a PDF",
	Long: `Show structural information about a PDF document: file size, page count,
the physical size of every page, and whether the file passes validation.

Examples:
  platen info book.pdf
  platen info download.pdf --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]

	if err := validatePDFFile(pdfPath); err != nil {
		return fmt.Errorf("input validation failed: %w", err)
	}

	stat, err := os.Stat(pdfPath)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	pageCount, err := api.PageCountFile(pdfPath)
	if err != nil {
		return fmt.Errorf("failed to read PDF: %w", err)
	}

	dims, err := api.PageDimsFile(pdfPath)
	if err != nil {
		return fmt.Errorf("failed to read page dimensions: %w", err)
	}

	validationErr := api.ValidateFile(pdfPath, nil)

	fmt.Printf("📄 PDF Info: %s\n", filepath.Base(pdfPath))
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("📊 File Size:   %s\n", humanize.Bytes(uint64(stat.Size())))
	fmt.Printf("📑 Pages:       %d\n", pageCount)
	if validationErr == nil {
		fmt.Printf("✅ Validation:  passed\n")
	} else {
		fmt.Printf("❌ Validation:  failed (%v)\n", validationErr)
	}

	if len(dims) > 0 {
		fmt.Printf("📐 Page Sizes:\n")
		for i, dim := range dims {
			wMM := dim.Width / pointsPerMM
			hMM := dim.Height / pointsPerMM
			orientation := "portrait"
			if wMM > hMM {
				orientation = "landscape"
			}
			fmt.Printf("   Page %d: %.1f x %.1f mm (%s)\n", i+1, wMM, hMM, orientation)
		}
	}

	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")

	return nil
}
