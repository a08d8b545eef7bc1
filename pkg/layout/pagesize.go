package layout

import (
	"fmt"
	"strings"
)

// PageSize selects one of the standard physical page sizes, or SizeAuto to
// size each page to its image.
type PageSize int

const (
	SizeA4 PageSize = iota
	SizeA3
	SizeLetter
	SizeLegal
	SizeAuto
)

// Portrait-first dimensions in millimeters for each standard size.
var pageFormats = map[PageSize]PageFormat{
	SizeA4:     {WidthMM: 210, HeightMM: 297},
	SizeA3:     {WidthMM: 297, HeightMM: 420},
	SizeLetter: {WidthMM: 216, HeightMM: 279},
	SizeLegal:  {WidthMM: 216, HeightMM: 356},
}

var pageSizeNames = map[PageSize]string{
	SizeA4:     "A4",
	SizeA3:     "A3",
	SizeLetter: "Letter",
	SizeLegal:  "Legal",
	SizeAuto:   "Auto",
}

// StandardSizes lists the selectable fixed sizes in display order,
// excluding SizeAuto.
func StandardSizes() []PageSize {
	return []PageSize{SizeA4, SizeA3, SizeLetter, SizeLegal}
}

// Format returns the portrait-first dimensions of a standard size. The
// second return is false for SizeAuto, which has no fixed dimensions, and
// for values outside the enum.
func (p PageSize) Format() (PageFormat, bool) {
	f, ok := pageFormats[p]
	return f, ok
}

func (p PageSize) known() bool {
	_, named := pageSizeNames[p]
	return named
}

func (p PageSize) String() string {
	if name, ok := pageSizeNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PageSize(%d)", int(p))
}

// ParsePageSize maps a user-supplied name such as "a4" or "Letter" to its
// PageSize, ignoring case and surrounding space.
func ParsePageSize(name string) (PageSize, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for size, n := range pageSizeNames {
		if strings.ToLower(n) == normalized {
			return size, nil
		}
	}
	return 0, fmt.Errorf("%w %q (valid: a4, a3, letter, legal, auto)", ErrUnknownPageSize, name)
}
