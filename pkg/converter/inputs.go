package converter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrNoInputs is returned when the argument list yields no image files.
var ErrNoInputs = errors.New("no input images")

var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// SupportedExtension reports whether a file name carries a recognized
// raster-image extension. Content is verified separately when the file is
// probed.
func SupportedExtension(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// CollectInputs expands arguments into the ordered list of image files for
// one run. Explicit files keep their argument order and must carry a
// supported extension; a directory contributes its image files sorted by
// name, without recursing.
func CollectInputs(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		stat, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", arg, err)
		}

		if !stat.IsDir() {
			if !SupportedExtension(arg) {
				return nil, fmt.Errorf("%w: %s (unrecognized extension)", ErrUnsupportedFormat, arg)
			}
			files = append(files, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", arg, err)
		}

		found := 0
		for _, entry := range entries {
			if entry.IsDir() || !SupportedExtension(entry.Name()) {
				continue
			}
			files = append(files, filepath.Join(arg, entry.Name()))
			found++
		}

		log.Debug().Str("dir", arg).Int("images", found).Msg("scanned directory")

		if found == 0 {
			return nil, fmt.Errorf("no supported images in directory %s", arg)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoInputs
	}
	return files, nil
}
