package converter

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/mbrett/platen/pkg/layout"
)

// pageImage is one input encoded into a form the page builder can embed.
type pageImage struct {
	data      []byte
	imageType string // "JPEG", "PNG" or "GIF"
}

// nativeFormats are embedded byte for byte when no recompression is asked
// for; everything else is transcoded first.
var nativeFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
	"gif":  true,
}

// normalizeImage prepares one input's bytes for embedding according to the
// quality encoding. High quality passes native formats through untouched and
// transcodes the rest to lossless PNG; recompressing qualities re-encode
// everything as JPEG, flattening any transparency onto white.
func normalizeImage(src Source, raw []byte, enc layout.Encoding) (pageImage, error) {
	if !enc.Recompress {
		if nativeFormats[src.Format] {
			return pageImage{data: raw, imageType: strings.ToUpper(src.Format)}, nil
		}

		img, err := decodeImage(src.Format, raw)
		if err != nil {
			return pageImage{}, fmt.Errorf("decode %s: %w", src.Path, err)
		}
		data, err := encodePNG(img)
		if err != nil {
			return pageImage{}, fmt.Errorf("transcode %s: %w", src.Path, err)
		}
		return pageImage{data: data, imageType: "PNG"}, nil
	}

	img, err := decodeImage(src.Format, raw)
	if err != nil {
		return pageImage{}, fmt.Errorf("decode %s: %w", src.Path, err)
	}

	// JPEG sources carry no alpha; everything else might.
	if src.Format != "jpeg" {
		img = flattenOntoWhite(img)
	}

	data, err := encodeJPEG(img, enc.JPEGQuality)
	if err != nil {
		return pageImage{}, fmt.Errorf("re-encode %s: %w", src.Path, err)
	}
	return pageImage{data: data, imageType: "JPEG"}, nil
}

// decodeImage decodes raw bytes into pixels. WebP goes through its own
// decoder; the rest use the registered stdlib and x/image decoders.
func decodeImage(format string, raw []byte) (image.Image, error) {
	if format == "webp" {
		return webp.Decode(bytes.NewReader(raw))
	}
	return imaging.Decode(bytes.NewReader(raw))
}

// flattenOntoWhite composites an image onto a white background so
// transparent regions do not turn black in a JPEG.
func flattenOntoWhite(img image.Image) image.Image {
	bounds := img.Bounds()
	bg := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Point{}, 1.0)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodePNG(img image.Image) ([]byte, error) {
	encoder := &png.Encoder{CompressionLevel: png.BestCompression}
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
