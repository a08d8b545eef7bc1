package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mbrett/platen/pkg/converter"
)

var (
	proofOutputDir string
	proofDPI       int
	proofFormat    string
	proofPages     string
	proofWorkers   int
	proofMaxEdge   int
)

var proofCmd = &cobra.Command{
	Use:   "proof [pdf file]",
	Short: "Render PDF pages into image files for inspection",
	Long: `Render the pages of a PDF into per-page image files so the result of a
conversion can be checked visually.

Pages render concurrently and each one lands in the output directory as
page-NNN with the chosen format's extension. A page selection limits the
render to part of the document.

Examples:
  platen proof book.pdf -o proofs/
  platen proof book.pdf -o proofs/ --dpi 300 --format jpeg
  platen proof book.pdf -o proofs/ --pages "1-3,12" --workers 2
  platen proof poster.pdf -o proofs/ --max-edge 1600`,
	Args: cobra.ExactArgs(1),
	RunE: runProof,
}

func init() {
	rootCmd.AddCommand(proofCmd)

	proofCmd.Flags().StringVarP(&proofOutputDir, "output-dir", "o", "", "Output directory for rendered pages (required)")
	proofCmd.Flags().IntVar(&proofDPI, "dpi", cfg.Proof.DPI, "Render resolution in DPI")
	proofCmd.Flags().StringVar(&proofFormat, "format", cfg.Proof.Format, "Output image format (png, jpeg, webp)")
	proofCmd.Flags().StringVar(&proofPages, "pages", "", "Pages to render (e.g. \"1-3,7\"; default all)")
	proofCmd.Flags().IntVar(&proofWorkers, "workers", cfg.Proof.Workers, "Number of render workers (0 = auto)")
	proofCmd.Flags().IntVar(&proofMaxEdge, "max-edge", 0, "Downscale rendered pages to fit this edge length in pixels (0 = off)")

	proofCmd.MarkFlagRequired("output-dir")
}

func runProof(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if err := validatePDFFile(inputPath); err != nil {
		return fmt.Errorf("input validation failed: %w", err)
	}

	proofer, err := converter.NewProofer(converter.ProofOptions{
		InputPath: inputPath,
		OutputDir: proofOutputDir,
		DPI:       proofDPI,
		Format:    proofFormat,
		Pages:     proofPages,
		Workers:   proofWorkers,
		MaxEdge:   proofMaxEdge,
		Verbose:   verbose,
	})
	if err != nil {
		return err
	}
	defer proofer.Close()

	results, err := proofer.Render()
	if err != nil {
		return err
	}

	rendered := 0
	for _, res := range results {
		if res.Err == nil {
			rendered++
		}
	}

	fmt.Printf("✅ Rendered %d of %d pages to %s\n", rendered, proofer.PageCount(), proofOutputDir)
	if failed := len(results) - rendered; failed > 0 {
		fmt.Printf("⚠️  %d page(s) failed to render; see the log for details\n", failed)
	}

	return nil
}

func validatePDFFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("PDF file does not exist: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".pdf" {
		return fmt.Errorf("file is not a PDF: %s (expected .pdf extension)", ext)
	}

	return nil
}
