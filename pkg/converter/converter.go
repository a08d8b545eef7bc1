package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog/log"

	"github.com/mbrett/platen/pkg/layout"
	"github.com/mbrett/platen/pkg/progress"
)

// Options contains conversion settings.
type Options struct {
	Inputs         []string // image files and directories
	OutputPath     string
	Settings       layout.Settings
	Title          string
	Author         string
	Verbose        bool
	SkipValidation bool
}

// FileResult records the outcome for one input file. Page is the file's
// page number in the output document, zero when the file was skipped.
type FileResult struct {
	Path  string
	Page  int
	Bytes int64
	Err   error
}

// ConversionStats tracks conversion metrics.
type ConversionStats struct {
	InputFiles     int
	PlacedPages    int
	SkippedFiles   int
	InputBytes     uint64
	OutputBytes    uint64
	ProcessingTime time.Duration
}

// Converter drives one images-to-PDF run: collect inputs, probe each image,
// resolve its page geometry, and append it to the output document.
type Converter struct {
	options   Options
	runID     string
	builder   *DocumentBuilder
	results   []FileResult
	stats     ConversionStats
	startTime time.Time
}

// New creates a new converter instance.
func New(opts Options) *Converter {
	return &Converter{
		options:   opts,
		runID:     uuid.NewString(),
		startTime: time.Now(),
	}
}

// Convert performs the run. Inputs that fail to probe or decode are skipped
// with a warning and the run continues; the run only fails when no page at
// all could be placed, or when writing or validating the output fails.
func (c *Converter) Convert() error {
	if err := c.options.Settings.Validate(); err != nil {
		return err
	}
	encoding, err := c.options.Settings.Quality.Encoding()
	if err != nil {
		return err
	}

	files, err := CollectInputs(c.options.Inputs)
	if err != nil {
		return err
	}
	c.stats.InputFiles = len(files)

	log.Info().
		Str("run_id", c.runID).
		Int("inputs", len(files)).
		Str("output", c.options.OutputPath).
		Str("page_size", c.options.Settings.PageSize.String()).
		Str("orientation", c.options.Settings.Orientation.String()).
		Str("quality", c.options.Settings.Quality.String()).
		Msg("starting conversion")

	if c.options.Verbose {
		fmt.Printf("Converting %d images to %s\n", len(files), c.options.OutputPath)
		fmt.Printf("Page size: %s | Orientation: %s | Quality: %s\n",
			c.options.Settings.PageSize, c.options.Settings.Orientation, c.options.Settings.Quality)
	}

	c.builder = NewDocumentBuilder(c.createDocumentInfo())

	bar := progress.NewBar(len(files), "Converting")
	for i, path := range files {
		page, err := c.prepare(path, encoding)
		if err != nil {
			c.results = append(c.results, FileResult{Path: path, Err: err})
			c.stats.SkippedFiles++
			log.Warn().Str("run_id", c.runID).Str("file", path).Err(err).Msg("skipping input")
			bar.Update(i + 1)
			continue
		}

		// A builder failure poisons the whole document, so it ends the
		// run instead of skipping the file.
		if err := c.builder.AddImagePage(page.img, page.layout); err != nil {
			return fmt.Errorf("appending page for %s: %w", path, err)
		}

		c.results = append(c.results, FileResult{Path: path, Page: c.builder.PageCount(), Bytes: page.src.FileSize})
		c.stats.PlacedPages++
		c.stats.InputBytes += uint64(page.src.FileSize)

		log.Debug().
			Str("run_id", c.runID).
			Str("file", path).
			Int("page", c.builder.PageCount()).
			Float64("page_w_mm", page.layout.Format.WidthMM).
			Float64("page_h_mm", page.layout.Format.HeightMM).
			Str("orientation", page.layout.Orientation.String()).
			Msg("placed image")

		bar.Update(i + 1)
	}
	bar.Finish()

	if c.stats.PlacedPages == 0 {
		return fmt.Errorf("%w: all %d inputs failed", ErrNoPages, len(files))
	}

	if err := c.builder.WriteFile(c.options.OutputPath); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	if !c.options.SkipValidation {
		if err := c.validateOutput(); err != nil {
			return err
		}
	}

	if err := c.calculateFinalStats(); err != nil {
		return fmt.Errorf("failed to calculate final statistics: %w", err)
	}

	c.displayResults()

	return nil
}

// preparedPage is one input taken through probe, resolve, and normalize.
type preparedPage struct {
	src    Source
	layout layout.Layout
	img    pageImage
}

// prepare runs the per-file stages whose failures are skippable.
func (c *Converter) prepare(path string, encoding layout.Encoding) (preparedPage, error) {
	src, err := ProbeFile(path)
	if err != nil {
		return preparedPage{}, err
	}

	resolved, err := layout.Resolve(src.Dimensions, c.options.Settings)
	if err != nil {
		return preparedPage{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return preparedPage{}, fmt.Errorf("read input: %w", err)
	}

	img, err := normalizeImage(src, raw, encoding)
	if err != nil {
		return preparedPage{}, err
	}

	return preparedPage{src: src, layout: resolved, img: img}, nil
}

// createDocumentInfo derives document metadata, defaulting the title to the
// output file's base name.
func (c *Converter) createDocumentInfo() DocumentInfo {
	title := c.options.Title
	if title == "" {
		outName := filepath.Base(c.options.OutputPath)
		title = strings.TrimSuffix(outName, filepath.Ext(outName))
	}

	return DocumentInfo{
		Title:   title,
		Author:  c.options.Author,
		Creator: "platen",
	}
}

// validateOutput checks the written file with an independent reader and
// compares its page count against what was placed.
func (c *Converter) validateOutput() error {
	if err := api.ValidateFile(c.options.OutputPath, nil); err != nil {
		return fmt.Errorf("output failed validation: %w", err)
	}

	count, err := api.PageCountFile(c.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to count output pages: %w", err)
	}
	if count != c.stats.PlacedPages {
		return fmt.Errorf("output has %d pages, expected %d", count, c.stats.PlacedPages)
	}
	return nil
}

// calculateFinalStats computes final conversion statistics.
func (c *Converter) calculateFinalStats() error {
	outputStat, err := os.Stat(c.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to get output file size: %w", err)
	}
	c.stats.OutputBytes = uint64(outputStat.Size())
	c.stats.ProcessingTime = time.Since(c.startTime)
	return nil
}

// displayResults shows the conversion results.
func (c *Converter) displayResults() {
	fmt.Printf("\nConversion completed successfully\n")
	fmt.Printf("================================================================\n")
	fmt.Printf("Conversion Summary\n")
	fmt.Printf("================================================================\n")

	fmt.Printf("Output:        %s (%s)\n", filepath.Base(c.options.OutputPath), humanize.Bytes(c.stats.OutputBytes))
	fmt.Printf("Pages:         %d placed", c.stats.PlacedPages)
	if c.stats.SkippedFiles > 0 {
		fmt.Printf(", %d skipped", c.stats.SkippedFiles)
	}
	fmt.Printf("\n")
	fmt.Printf("Input:         %s files (%s)\n", humanize.Comma(int64(c.stats.InputFiles)), humanize.Bytes(c.stats.InputBytes))
	fmt.Printf("Settings:      %s / %s / %s\n",
		c.options.Settings.PageSize, c.options.Settings.Orientation, c.options.Settings.Quality)
	fmt.Printf("Processing:    %v\n", c.stats.ProcessingTime.Round(time.Millisecond))

	for _, r := range c.results {
		if r.Err != nil {
			fmt.Printf("  skipped %s: %v\n", filepath.Base(r.Path), r.Err)
		}
	}

	fmt.Printf("================================================================\n")
}

// Results returns the per-file outcomes of the run in input order.
func (c *Converter) Results() []FileResult {
	return c.results
}

// GetStats returns the current conversion statistics.
func (c *Converter) GetStats() ConversionStats {
	return c.stats
}
