package layout

import "errors"

// Sentinel errors returned by the resolver and the name parsers.
var (
	// ErrInvalidDimensions is returned for images with a zero or negative
	// pixel edge, which would produce degenerate geometry.
	ErrInvalidDimensions = errors.New("layout: invalid image dimensions")

	// ErrUnknownPageSize is returned for page-size values outside the enum.
	ErrUnknownPageSize = errors.New("layout: unknown page size")

	// ErrUnknownOrientation is returned for orientation values outside the enum.
	ErrUnknownOrientation = errors.New("layout: unknown orientation")

	// ErrUnknownQuality is returned for quality values outside the enum.
	ErrUnknownQuality = errors.New("layout: unknown quality")
)
