package converter

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/mbrett/platen/pkg/layout"
)

func a4PortraitLayout() layout.Layout {
	return layout.Layout{
		Format:      layout.PageFormat{WidthMM: 210, HeightMM: 297},
		Orientation: layout.Portrait,
		Placement:   layout.Placement{XMM: 15.9, YMM: 14.85, WidthMM: 178.2, HeightMM: 267.3},
	}
}

func a4LandscapeLayout() layout.Layout {
	return layout.Layout{
		Format:      layout.PageFormat{WidthMM: 297, HeightMM: 210},
		Orientation: layout.Landscape,
		Placement:   layout.Placement{XMM: 14.85, YMM: 38.175, WidthMM: 267.3, HeightMM: 133.65},
	}
}

func TestDocumentBuilderMixedPageFormats(t *testing.T) {
	builder := NewDocumentBuilder(DocumentInfo{Title: "Mixed", Creator: "platen"})

	img := pageImage{data: encodeTestPNG(t, testImage(80, 120)), imageType: "PNG"}
	if err := builder.AddImagePage(img, a4PortraitLayout()); err != nil {
		t.Fatalf("AddImagePage failed: %v", err)
	}

	img = pageImage{data: encodeTestPNG(t, testImage(120, 60)), imageType: "PNG"}
	if err := builder.AddImagePage(img, a4LandscapeLayout()); err != nil {
		t.Fatalf("AddImagePage failed: %v", err)
	}

	if builder.PageCount() != 2 {
		t.Errorf("Expected 2 pages, got %d", builder.PageCount())
	}

	path := filepath.Join(t.TempDir(), "mixed.pdf")
	if err := builder.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	count, err := api.PageCountFile(path)
	if err != nil {
		t.Fatalf("Failed to count pages: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 pages in written file, got %d", count)
	}

	if err := api.ValidateFile(path, nil); err != nil {
		t.Errorf("Output failed validation: %v", err)
	}
}

func TestDocumentBuilderOutputStream(t *testing.T) {
	builder := NewDocumentBuilder(DocumentInfo{})

	img := pageImage{data: encodeTestPNG(t, testImage(10, 10)), imageType: "PNG"}
	if err := builder.AddImagePage(img, a4PortraitLayout()); err != nil {
		t.Fatalf("AddImagePage failed: %v", err)
	}

	var buf bytes.Buffer
	if err := builder.Output(&buf); err != nil {
		t.Fatalf("Output failed: %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("Output does not start with a PDF header")
	}
}

func TestDocumentBuilderRefusesEmptyDocument(t *testing.T) {
	builder := NewDocumentBuilder(DocumentInfo{})

	var buf bytes.Buffer
	if err := builder.Output(&buf); !errors.Is(err, ErrNoPages) {
		t.Errorf("Expected ErrNoPages from Output, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := builder.WriteFile(path); !errors.Is(err, ErrNoPages) {
		t.Errorf("Expected ErrNoPages from WriteFile, got %v", err)
	}
}

func TestDocumentBuilderRejectsBadImageData(t *testing.T) {
	builder := NewDocumentBuilder(DocumentInfo{})

	img := pageImage{data: []byte("not a png at all"), imageType: "PNG"}
	if err := builder.AddImagePage(img, a4PortraitLayout()); err == nil {
		t.Error("Expected error for unparseable image data")
	}
}

func TestDocumentBuilderJPEGPage(t *testing.T) {
	builder := NewDocumentBuilder(DocumentInfo{})

	raw, err := encodeJPEG(testImage(40, 40), 85)
	if err != nil {
		t.Fatalf("Failed to encode JPEG: %v", err)
	}

	img := pageImage{data: raw, imageType: "JPEG"}
	if err := builder.AddImagePage(img, a4PortraitLayout()); err != nil {
		t.Fatalf("AddImagePage failed for JPEG: %v", err)
	}

	var buf bytes.Buffer
	if err := builder.Output(&buf); err != nil {
		t.Fatalf("Output failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Expected non-empty document")
	}
}
