package converter

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/chai2010/webp"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"

	"github.com/mbrett/platen/pkg/layout"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

const (
	// maxImageDimension caps a single edge so corrupted headers cannot force
	// excessive allocations when the image is decoded later.
	maxImageDimension = 20000
	// maxImagePixels bounds the total pixel count (64 MP), which keeps the
	// decoded RGBA buffer under 256 MB.
	maxImagePixels int64 = 64 * 1024 * 1024
)

var (
	// ErrUnsupportedFormat is returned when a file's content is not one of
	// the raster formats platen can place on a page.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrImageTooLarge is returned when an image exceeds the decode bounds.
	ErrImageTooLarge = errors.New("image exceeds size limits")
)

// mimeFormats maps detected MIME types to canonical format names.
var mimeFormats = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
	"image/bmp":  "bmp",
	"image/tiff": "tiff",
}

// Source describes one probed input image: what it is and how big it is,
// without its pixel data.
type Source struct {
	Path       string
	Format     string
	Dimensions layout.Dimensions
	FileSize   int64
}

// ProbeFile detects an input's real format from its content and reads its
// pixel dimensions from the header, without decoding the full image. The
// detected format wins over the file extension.
func ProbeFile(path string) (Source, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return Source{}, fmt.Errorf("stat input: %w", err)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("detect file type: %w", err)
	}

	format, ok := mimeFormats[mtype.String()]
	if !ok {
		return Source{}, fmt.Errorf("%w: %s detected as %s", ErrUnsupportedFormat, path, mtype.String())
	}

	log.Debug().Str("file", path).Str("mime", mtype.String()).Msg("detected input type")

	dims, err := probeDimensions(path, format)
	if err != nil {
		return Source{}, err
	}

	if dims.WidthPx <= 0 || dims.HeightPx <= 0 {
		return Source{}, fmt.Errorf("%w: %dx%d px", layout.ErrInvalidDimensions, dims.WidthPx, dims.HeightPx)
	}
	if err := checkBounds(dims); err != nil {
		return Source{}, err
	}

	return Source{
		Path:       path,
		Format:     format,
		Dimensions: dims,
		FileSize:   stat.Size(),
	}, nil
}

func probeDimensions(path string, format string) (layout.Dimensions, error) {
	f, err := os.Open(path)
	if err != nil {
		return layout.Dimensions{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	if format == "webp" {
		data, err := io.ReadAll(f)
		if err != nil {
			return layout.Dimensions{}, fmt.Errorf("read webp: %w", err)
		}
		w, h, _, err := webp.GetInfo(data)
		if err != nil {
			return layout.Dimensions{}, fmt.Errorf("read webp header: %w", err)
		}
		return layout.Dimensions{WidthPx: w, HeightPx: h}, nil
	}

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return layout.Dimensions{}, fmt.Errorf("read image header: %w", err)
	}
	return layout.Dimensions{WidthPx: cfg.Width, HeightPx: cfg.Height}, nil
}

func checkBounds(dims layout.Dimensions) error {
	if dims.WidthPx > maxImageDimension || dims.HeightPx > maxImageDimension {
		return fmt.Errorf("%w: %dx%d px (max edge %d)", ErrImageTooLarge, dims.WidthPx, dims.HeightPx, maxImageDimension)
	}
	if pixels := int64(dims.WidthPx) * int64(dims.HeightPx); pixels > maxImagePixels {
		return fmt.Errorf("%w: %d pixels (max %d)", ErrImageTooLarge, pixels, maxImagePixels)
	}
	return nil
}
