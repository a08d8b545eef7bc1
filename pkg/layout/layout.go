// Package layout resolves how a raster image maps onto a PDF page: the
// physical page format in millimeters, the final orientation, and the
// scaled, centered placement of the image on that page.
//
// Everything in this package is pure and deterministic. Resolving the same
// image against the same settings always yields the same Layout, so values
// may be computed from any number of goroutines without coordination.
package layout

import "fmt"

// MMPerPixel converts pixel lengths to millimeters assuming the 96 DPI
// reference resolution (25.4 / 96, rounded to six decimals).
const MMPerPixel = 0.264583

// fitShare is the fraction of the constraining page edge an image may span
// on standard page sizes; the remainder becomes symmetric margin.
const fitShare = 0.9

// Dimensions holds the pixel size of a decoded raster image.
type Dimensions struct {
	WidthPx  int
	HeightPx int
}

// Settings selects the page geometry and encoding for one conversion run.
// The zero value is equivalent to DefaultSettings.
type Settings struct {
	PageSize    PageSize
	Orientation Orientation
	Quality     Quality
}

// DefaultSettings returns the settings used when the caller expresses no
// preference: A4 pages, orientation following each image, high quality.
func DefaultSettings() Settings {
	return Settings{PageSize: SizeA4, Orientation: OrientationAuto, Quality: QualityHigh}
}

// Validate reports the first unrecognized enum value in s, if any.
func (s Settings) Validate() error {
	if !s.PageSize.known() {
		return fmt.Errorf("%w: %d", ErrUnknownPageSize, int(s.PageSize))
	}
	if !s.Orientation.known() {
		return fmt.Errorf("%w: %d", ErrUnknownOrientation, int(s.Orientation))
	}
	if !s.Quality.known() {
		return fmt.Errorf("%w: %d", ErrUnknownQuality, int(s.Quality))
	}
	return nil
}

// PageFormat is the physical size of one PDF page in millimeters.
type PageFormat struct {
	WidthMM  float64
	HeightMM float64
}

// Placement is the resolved position and size of one image within its page,
// in millimeters from the page's top-left corner.
type Placement struct {
	WidthMM  float64
	HeightMM float64
	XMM      float64
	YMM      float64
}

// Layout is the full result of resolving one image against one Settings
// value. Orientation is always concrete, never OrientationAuto.
type Layout struct {
	Format      PageFormat
	Orientation Orientation
	Placement   Placement
}

// Resolve computes the page format, orientation, and centered placement for
// an image of the given pixel dimensions under the given settings.
//
// With SizeAuto the page is sized to the image itself at MMPerPixel, the
// orientation follows the page shape, and the image fills the page with no
// margin; an explicit orientation request is ignored since the page already
// matches the image edge for edge. With a standard size the image is scaled
// to span at most fitShare of the constraining page edge and centered.
//
// Degenerate pixel dimensions and unrecognized enum values are rejected,
// never silently defaulted.
func Resolve(img Dimensions, s Settings) (Layout, error) {
	if img.WidthPx <= 0 || img.HeightPx <= 0 {
		return Layout{}, fmt.Errorf("%w: %dx%d px", ErrInvalidDimensions, img.WidthPx, img.HeightPx)
	}
	if s.PageSize == SizeAuto {
		return resolveAuto(img), nil
	}

	base, ok := s.PageSize.Format()
	if !ok {
		return Layout{}, fmt.Errorf("%w: %d", ErrUnknownPageSize, int(s.PageSize))
	}

	orient := s.Orientation
	switch orient {
	case OrientationAuto:
		if img.WidthPx > img.HeightPx {
			orient = Landscape
		} else {
			orient = Portrait
		}
	case Portrait, Landscape:
	default:
		return Layout{}, fmt.Errorf("%w: %d", ErrUnknownOrientation, int(s.Orientation))
	}

	page := base
	if orient == Landscape && base.WidthMM < base.HeightMM {
		page = PageFormat{WidthMM: base.HeightMM, HeightMM: base.WidthMM}
	}

	return Layout{Format: page, Orientation: orient, Placement: fit(img, page)}, nil
}

// resolveAuto sizes the page to the image at the fixed pixel density, so the
// image fills the page exactly and the centering offset is zero.
func resolveAuto(img Dimensions) Layout {
	w := float64(img.WidthPx) * MMPerPixel
	h := float64(img.HeightPx) * MMPerPixel
	orient := Portrait
	if w > h {
		orient = Landscape
	}
	return Layout{
		Format:      PageFormat{WidthMM: w, HeightMM: h},
		Orientation: orient,
		Placement:   Placement{WidthMM: w, HeightMM: h},
	}
}

// fit scales the image onto the page preserving aspect ratio. Whichever page
// edge constrains the image is filled to fitShare; the image is centered on
// both axes.
func fit(img Dimensions, page PageFormat) Placement {
	ar := float64(img.WidthPx) / float64(img.HeightPx)
	par := page.WidthMM / page.HeightMM

	var w, h float64
	if ar > par {
		w = page.WidthMM * fitShare
		h = w / ar
	} else {
		h = page.HeightMM * fitShare
		w = h * ar
	}

	return Placement{
		WidthMM:  w,
		HeightMM: h,
		XMM:      (page.WidthMM - w) / 2,
		YMM:      (page.HeightMM - h) / 2,
	}
}
