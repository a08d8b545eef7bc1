package layout

import (
	"fmt"
	"strings"
)

// Quality selects the trade-off between output fidelity and file size.
type Quality int

const (
	QualityHigh Quality = iota
	QualityMedium
	QualityLow
)

// Encoding tells the document builder how to encode image data for one
// quality level.
type Encoding struct {
	// Recompress re-encodes every image as JPEG at JPEGQuality. When false,
	// natively embeddable formats are passed through byte for byte.
	Recompress  bool
	JPEGQuality int
}

var encodings = map[Quality]Encoding{
	QualityHigh:   {Recompress: false},
	QualityMedium: {Recompress: true, JPEGQuality: 85},
	QualityLow:    {Recompress: true, JPEGQuality: 75},
}

var qualityNames = map[Quality]string{
	QualityHigh:   "High",
	QualityMedium: "Medium",
	QualityLow:    "Low",
}

// Levels lists the quality levels in display order.
func Levels() []Quality {
	return []Quality{QualityHigh, QualityMedium, QualityLow}
}

// Encoding returns the image encoding for this quality level. Total over
// the three defined levels; anything else is rejected.
func (q Quality) Encoding() (Encoding, error) {
	enc, ok := encodings[q]
	if !ok {
		return Encoding{}, fmt.Errorf("%w: %d", ErrUnknownQuality, int(q))
	}
	return enc, nil
}

func (q Quality) known() bool {
	_, named := qualityNames[q]
	return named
}

func (q Quality) String() string {
	if name, ok := qualityNames[q]; ok {
		return name
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// ParseQuality maps a user-supplied name such as "high" to its Quality,
// ignoring case and surrounding space.
func ParseQuality(name string) (Quality, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for q, n := range qualityNames {
		if strings.ToLower(n) == normalized {
			return q, nil
		}
	}
	return 0, fmt.Errorf("%w %q (valid: high, medium, low)", ErrUnknownQuality, name)
}
