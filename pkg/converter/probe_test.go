package converter

import (
	"errors"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/chai2010/webp"

	"github.com/mbrett/platen/pkg/layout"
)

func TestProbeFilePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.png")
	writeTestPNG(t, path, 320, 200)

	src, err := ProbeFile(path)
	if err != nil {
		t.Fatalf("ProbeFile failed: %v", err)
	}

	if src.Format != "png" {
		t.Errorf("Expected format png, got %s", src.Format)
	}
	if src.Dimensions.WidthPx != 320 || src.Dimensions.HeightPx != 200 {
		t.Errorf("Expected 320x200, got %dx%d", src.Dimensions.WidthPx, src.Dimensions.HeightPx)
	}
	if src.FileSize == 0 {
		t.Error("FileSize should be recorded")
	}
	if src.Path != path {
		t.Errorf("Expected path %s, got %s", path, src.Path)
	}
}

func TestProbeFileJPEG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.jpg")
	writeTestJPEG(t, path, 64, 128)

	src, err := ProbeFile(path)
	if err != nil {
		t.Fatalf("ProbeFile failed: %v", err)
	}

	if src.Format != "jpeg" {
		t.Errorf("Expected format jpeg, got %s", src.Format)
	}
	if src.Dimensions.WidthPx != 64 || src.Dimensions.HeightPx != 128 {
		t.Errorf("Expected 64x128, got %dx%d", src.Dimensions.WidthPx, src.Dimensions.HeightPx)
	}
}

func TestProbeFileWebP(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.webp")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create webp file: %v", err)
	}
	if err := webp.Encode(f, testImage(100, 40), &webp.Options{Lossless: true}); err != nil {
		f.Close()
		t.Fatalf("Failed to encode webp: %v", err)
	}
	f.Close()

	src, err := ProbeFile(path)
	if err != nil {
		t.Fatalf("ProbeFile failed: %v", err)
	}

	if src.Format != "webp" {
		t.Errorf("Expected format webp, got %s", src.Format)
	}
	if src.Dimensions.WidthPx != 100 || src.Dimensions.HeightPx != 40 {
		t.Errorf("Expected 100x40, got %dx%d", src.Dimensions.WidthPx, src.Dimensions.HeightPx)
	}
}

func TestProbeDetectsContentNotExtension(t *testing.T) {
	dir := t.TempDir()

	// JPEG bytes behind a .png name: the content detection must win.
	path := filepath.Join(dir, "mislabeled.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := jpeg.Encode(f, testImage(30, 30), nil); err != nil {
		f.Close()
		t.Fatalf("Failed to encode JPEG: %v", err)
	}
	f.Close()

	src, err := ProbeFile(path)
	if err != nil {
		t.Fatalf("ProbeFile failed: %v", err)
	}
	if src.Format != "jpeg" {
		t.Errorf("Expected content-detected format jpeg, got %s", src.Format)
	}
}

func TestProbeRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.png")
	if err := os.WriteFile(path, []byte("plain text pretending to be an image"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := ProbeFile(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestProbeMissingFile(t *testing.T) {
	_, err := ProbeFile(filepath.Join(t.TempDir(), "absent.png"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestProbeRejectsOversizedEdge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wide.png")
	writeTestPNG(t, path, maxImageDimension+1, 1)

	_, err := ProbeFile(path)
	if !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("Expected ErrImageTooLarge, got %v", err)
	}
}

func TestCheckBoundsPixelBudget(t *testing.T) {
	// Both edges allowed, total pixel count over budget.
	dims := layout.Dimensions{WidthPx: 9000, HeightPx: 8000}
	if err := checkBounds(dims); !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("Expected ErrImageTooLarge for %dx%d, got %v", dims.WidthPx, dims.HeightPx, err)
	}

	dims = layout.Dimensions{WidthPx: 4000, HeightPx: 4000}
	if err := checkBounds(dims); err != nil {
		t.Errorf("Expected %dx%d to pass, got %v", dims.WidthPx, dims.HeightPx, err)
	}
}
