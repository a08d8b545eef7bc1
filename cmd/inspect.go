package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mbrett/platen/pkg/converter"
	"github.com/mbrett/platen/pkg/layout"
)

var (
	inspectPageSize    string
	inspectOrientation string
	inspectQuality     string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [images or directories...]",
	Short: "Show how images would be placed without writing a PDF",
	Long: `Show the page format, orientation and placement each image would get
under the given settings, without producing any output file.

This is a dry run of convert: the same probing and layout resolution run,
and unreadable inputs are reported the same way.

Examples:
  platen inspect photo.jpg
  platen inspect scans/ --page-size a3 --orientation landscape
  platen inspect poster.png --page-size auto`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(&inspectPageSize, "page-size", cfg.Defaults.PageSize, "Page size (a4, a3, letter, legal, auto)")
	inspectCmd.Flags().StringVar(&inspectOrientation, "orientation", cfg.Defaults.Orientation, "Page orientation (auto, portrait, landscape)")
	inspectCmd.Flags().StringVar(&inspectQuality, "quality", cfg.Defaults.Quality, "Image quality (high, medium, low)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	settings, err := parseSettings(inspectPageSize, inspectOrientation, inspectQuality)
	if err != nil {
		return err
	}

	files, err := converter.CollectInputs(args)
	if err != nil {
		return err
	}

	failed := 0
	for _, file := range files {
		src, err := converter.ProbeFile(file)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", filepath.Base(file), err)
			failed++
			continue
		}

		resolved, err := layout.Resolve(src.Dimensions, settings)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", filepath.Base(file), err)
			failed++
			continue
		}

		fmt.Printf("📄 %s\n", filepath.Base(file))
		fmt.Printf("   Source:     %s, %dx%d px, %s\n",
			src.Format, src.Dimensions.WidthPx, src.Dimensions.HeightPx, humanize.Bytes(uint64(src.FileSize)))
		fmt.Printf("   Page:       %s %s, %.1f x %.1f mm\n",
			settings.PageSize, resolved.Orientation, resolved.Format.WidthMM, resolved.Format.HeightMM)
		fmt.Printf("   Placement:  %.1f x %.1f mm at (%.1f, %.1f)\n",
			resolved.Placement.WidthMM, resolved.Placement.HeightMM, resolved.Placement.XMM, resolved.Placement.YMM)
	}

	if failed == len(files) {
		return fmt.Errorf("none of the %d inputs could be inspected", len(files))
	}
	if failed > 0 {
		fmt.Printf("\n⚠️  %d of %d inputs could not be inspected\n", failed, len(files))
	}

	return nil
}
