package layout

import (
	"fmt"
	"strings"
)

// Orientation selects how the page is turned. OrientationAuto follows the
// image's own shape; resolved layouts always carry Portrait or Landscape.
type Orientation int

const (
	OrientationAuto Orientation = iota
	Portrait
	Landscape
)

var orientationNames = map[Orientation]string{
	OrientationAuto: "Auto",
	Portrait:        "Portrait",
	Landscape:       "Landscape",
}

func (o Orientation) known() bool {
	_, named := orientationNames[o]
	return named
}

func (o Orientation) String() string {
	if name, ok := orientationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// ParseOrientation maps a user-supplied name such as "landscape" to its
// Orientation, ignoring case and surrounding space.
func ParseOrientation(name string) (Orientation, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for orient, n := range orientationNames {
		if strings.ToLower(n) == normalized {
			return orient, nil
		}
	}
	return 0, fmt.Errorf("%w %q (valid: auto, portrait, landscape)", ErrUnknownOrientation, name)
}
