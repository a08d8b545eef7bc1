package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mbrett/platen/pkg/converter"
	"github.com/mbrett/platen/pkg/layout"
)

var (
	outputPath string
	pageSize   string
	orientFlag string
	quality    string
	docTitle   string
	docAuthor  string
	noValidate bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [images or directories...]",
	Short: "Convert images into a PDF document",
	Long: `Convert one or more images into a single PDF document, one image per page.

Arguments are taken in order; a directory contributes its images sorted by
file name. Each page is sized according to --page-size and --orientation,
and the image is scaled to fit and centered. Inputs that cannot be read are
skipped and reported while the rest of the document is still produced.

Examples:
  platen convert photo.jpg -o photo.pdf
  platen convert scans/ -o scans.pdf --page-size a4 --quality medium
  platen convert cover.png chapters/ -o book.pdf --title "Field Notes"
  platen convert poster.png -o poster.pdf --page-size auto`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output PDF file path (required)")
	convertCmd.Flags().StringVar(&pageSize, "page-size", cfg.Defaults.PageSize, "Page size (a4, a3, letter, legal, auto)")
	convertCmd.Flags().StringVar(&orientFlag, "orientation", cfg.Defaults.Orientation, "Page orientation (auto, portrait, landscape)")
	convertCmd.Flags().StringVar(&quality, "quality", cfg.Defaults.Quality, "Image quality (high, medium, low)")
	convertCmd.Flags().StringVar(&docTitle, "title", "", "Document title (defaults to the output file name)")
	convertCmd.Flags().StringVar(&docAuthor, "author", "", "Document author")
	convertCmd.Flags().BoolVar(&noValidate, "no-validate", false, "Skip validating the finished PDF")

	convertCmd.MarkFlagRequired("output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		if _, err := os.Stat(arg); os.IsNotExist(err) {
			return fmt.Errorf("input does not exist: %s", arg)
		}
	}

	if err := validatePDFOutputPath(outputPath); err != nil {
		return fmt.Errorf("output validation failed: %w", err)
	}

	settings, err := parseSettings(pageSize, orientFlag, quality)
	if err != nil {
		return err
	}

	opts := converter.Options{
		Inputs:         args,
		OutputPath:     outputPath,
		Settings:       settings,
		Title:          docTitle,
		Author:         docAuthor,
		Verbose:        verbose,
		SkipValidation: noValidate,
	}

	conv := converter.New(opts)
	return conv.Convert()
}

// parseSettings turns the textual flag values into resolved settings.
func parseSettings(size, orientation, qual string) (layout.Settings, error) {
	ps, err := layout.ParsePageSize(size)
	if err != nil {
		return layout.Settings{}, err
	}

	or, err := layout.ParseOrientation(orientation)
	if err != nil {
		return layout.Settings{}, err
	}

	q, err := layout.ParseQuality(qual)
	if err != nil {
		return layout.Settings{}, err
	}

	return layout.Settings{PageSize: ps, Orientation: or, Quality: q}, nil
}

func validatePDFOutputPath(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("output directory does not exist: %s", dir)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".pdf" {
		return fmt.Errorf("unsupported output format: %s (only .pdf is supported)", ext)
	}

	return nil
}
