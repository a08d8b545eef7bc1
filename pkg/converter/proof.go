package converter

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/rs/zerolog/log"

	"github.com/mbrett/platen/internal/worker"
)

const (
	minProofDPI = 36
	maxProofDPI = 600

	proofJPEGQuality = 90
	proofWebPQuality = 80
)

// ProofOptions configures rendering a PDF's pages back into image files for
// visual inspection.
type ProofOptions struct {
	InputPath string
	OutputDir string
	DPI       int
	Format    string // png, jpeg or webp
	Pages     string // selection like "1-3,7"; empty renders every page
	Workers   int
	MaxEdge   int // when positive, rendered pages are downscaled to fit
	Verbose   bool
}

// ProofResult is the outcome of rendering one page.
type ProofResult struct {
	Page int
	Path string
	Err  error
}

// Proofer renders pages of a PDF document into per-page image files using a
// shared rendering pool.
type Proofer struct {
	options   ProofOptions
	pdfBytes  []byte
	pool      pdfium.Pool
	pageCount int
	selection *PageRangeSet
}

// NewProofer validates options, loads the document, and prepares the
// rendering pool. Close must be called when done.
func NewProofer(opts ProofOptions) (*Proofer, error) {
	switch opts.Format {
	case "":
		opts.Format = "png"
	case "png", "jpeg", "webp":
	default:
		return nil, fmt.Errorf("unsupported proof format %q (valid: png, jpeg, webp)", opts.Format)
	}

	if opts.DPI == 0 {
		opts.DPI = 150
	}
	if opts.DPI < minProofDPI || opts.DPI > maxProofDPI {
		return nil, fmt.Errorf("proof dpi %d out of range (%d-%d)", opts.DPI, minProofDPI, maxProofDPI)
	}

	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Workers > 8 {
		opts.Workers = 8
	}

	selection, err := ParsePageRanges(opts.Pages)
	if err != nil {
		return nil, fmt.Errorf("parse page selection: %w", err)
	}

	pdfBytes, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("read PDF file: %w", err)
	}

	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  2,
		MaxTotal: opts.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize renderer: %w", err)
	}

	pageCount, err := countPages(pool, &pdfBytes)
	if err != nil {
		pool.Close()
		return nil, err
	}

	if err := selection.ValidateAgainstTotal(pageCount); err != nil {
		pool.Close()
		return nil, fmt.Errorf("invalid page selection: %w", err)
	}

	return &Proofer{
		options:   opts,
		pdfBytes:  pdfBytes,
		pool:      pool,
		pageCount: pageCount,
		selection: selection,
	}, nil
}

func countPages(pool pdfium.Pool, pdfBytes *[]byte) (int, error) {
	instance, err := pool.GetInstance(time.Second * 30)
	if err != nil {
		return 0, fmt.Errorf("get renderer instance: %w", err)
	}
	defer instance.Close()

	doc, err := instance.OpenDocument(&requests.OpenDocument{File: pdfBytes})
	if err != nil {
		return 0, fmt.Errorf("open PDF document: %w", err)
	}
	defer instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: doc.Document})

	resp, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{Document: doc.Document})
	if err != nil {
		return 0, fmt.Errorf("get page count: %w", err)
	}
	return resp.PageCount, nil
}

// PageCount returns the document's total page count.
func (p *Proofer) PageCount() int {
	return p.pageCount
}

// Render renders the selected pages concurrently and returns one result per
// page. A page that fails to render is reported and does not stop the rest.
func (p *Proofer) Render() ([]ProofResult, error) {
	if err := os.MkdirAll(p.options.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	pages := p.selection.Pages(p.pageCount)
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	pool := worker.NewPoolWithProgress(p.options.Workers, len(pages))
	pool.Start()

	if p.options.Verbose {
		fmt.Printf("Rendering %d of %d pages at %d DPI with %d workers\n",
			len(pages), p.pageCount, p.options.DPI, pool.WorkerCount())
	}

	jobs := make(map[string]*renderJob, len(pages))
	ordered := make([]*renderJob, 0, len(pages))
	for _, n := range pages {
		job := &renderJob{
			proofer: p,
			page:    n,
			outPath: filepath.Join(p.options.OutputDir, fmt.Sprintf("page-%03d.%s", n, proofExtension(p.options.Format))),
		}
		jobs[job.ID()] = job
		ordered = append(ordered, job)
	}

	go func() {
		for _, job := range ordered {
			pool.Submit(job)
		}
		pool.Stop()
	}()

	results := make([]ProofResult, 0, len(pages))
	for res := range pool.Results() {
		job := jobs[res.JobID]
		if job == nil {
			continue
		}
		if res.Error != nil {
			log.Warn().Int("page", job.page).Err(res.Error).Msg("page render failed")
		} else {
			log.Debug().Int("page", job.page).Dur("elapsed", res.Elapsed).Str("file", job.outPath).Msg("page rendered")
		}
		results = append(results, ProofResult{Page: job.page, Path: job.outPath, Err: res.Error})
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed == len(results) {
		return results, fmt.Errorf("all %d pages failed to render", failed)
	}
	return results, nil
}

// Close releases the rendering pool.
func (p *Proofer) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// renderJob renders one page to one image file.
type renderJob struct {
	proofer *Proofer
	page    int
	outPath string
}

func (j *renderJob) ID() string {
	return fmt.Sprintf("page %d", j.page)
}

func (j *renderJob) Process(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	p := j.proofer

	instance, err := p.pool.GetInstance(time.Second * 30)
	if err != nil {
		return fmt.Errorf("get renderer instance: %w", err)
	}
	defer instance.Close()

	doc, err := instance.OpenDocument(&requests.OpenDocument{File: &p.pdfBytes})
	if err != nil {
		return fmt.Errorf("open PDF document: %w", err)
	}
	defer instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: doc.Document})

	rendered, err := instance.RenderPageInDPI(&requests.RenderPageInDPI{
		Page: requests.Page{
			ByIndex: &requests.PageByIndex{
				Document: doc.Document,
				Index:    j.page - 1,
			},
		},
		DPI: p.options.DPI,
	})
	if err != nil {
		return fmt.Errorf("render page %d: %w", j.page, err)
	}

	var img image.Image = rendered.Result.Image
	if p.options.MaxEdge > 0 {
		bounds := img.Bounds()
		if bounds.Dx() > p.options.MaxEdge || bounds.Dy() > p.options.MaxEdge {
			img = imaging.Fit(img, p.options.MaxEdge, p.options.MaxEdge, imaging.Lanczos)
		}
	}

	return writeProofImage(img, j.outPath, p.options.Format)
}

func proofExtension(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}

func writeProofImage(img image.Image, path, format string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	switch format {
	case "jpeg":
		return jpeg.Encode(out, img, &jpeg.Options{Quality: proofJPEGQuality})
	case "webp":
		return webp.Encode(out, img, &webp.Options{Lossless: false, Quality: proofWebPQuality})
	default:
		data, err := encodePNG(img)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
}
