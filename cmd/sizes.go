package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbrett/platen/pkg/layout"
)

var sizesCmd = &cobra.Command{
	Use:   "sizes",
	Short: "List supported page sizes, orientations and quality levels",
	Args:  cobra.NoArgs,
	RunE:  runSizes,
}

func init() {
	rootCmd.AddCommand(sizesCmd)
}

func runSizes(cmd *cobra.Command, args []string) error {
	fmt.Println("Page sizes:")
	for _, size := range layout.StandardSizes() {
		format, ok := size.Format()
		if !ok {
			continue
		}
		fmt.Printf("  %-8s %.1f x %.1f mm\n", size, format.WidthMM, format.HeightMM)
	}
	fmt.Printf("  %-8s matches the image dimensions\n", layout.SizeAuto)

	fmt.Println()
	fmt.Println("Orientations:")
	fmt.Printf("  %-10s wide images go landscape, the rest portrait\n", layout.OrientationAuto)
	fmt.Printf("  %-10s force portrait pages\n", layout.Portrait)
	fmt.Printf("  %-10s force landscape pages\n", layout.Landscape)

	fmt.Println()
	fmt.Println("Quality levels:")
	for _, q := range layout.Levels() {
		enc, err := q.Encoding()
		if err != nil {
			continue
		}
		if enc.Recompress {
			fmt.Printf("  %-8s re-encode as JPEG quality %d\n", q, enc.JPEGQuality)
		} else {
			fmt.Printf("  %-8s embed original image data unchanged\n", q)
		}
	}

	return nil
}
