package report

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// pdfRenderTimeout bounds one headless Chrome run, including chart draw.
const pdfRenderTimeout = 60 * time.Second

// PDFRenderer prints a generated HTML report to PDF through headless
// Chrome. Chrome is optional at runtime; callers treat a render error as a
// degraded run, not a failure.
type PDFRenderer struct {
	logger *slog.Logger
}

// NewPDFRenderer creates a PDF renderer.
func NewPDFRenderer(logger *slog.Logger) *PDFRenderer {
	return &PDFRenderer{logger: logger}
}

// Render opens the HTML file in headless Chrome, waits for the charts to
// draw, and returns the printed PDF bytes.
func (r *PDFRenderer) Render(ctx context.Context, htmlPath string) ([]byte, error) {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("resolve report path: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, pdfRenderTimeout)
	defer cancel()

	opts := chromedp.DefaultExecAllocatorOptions[:]
	opts = append(opts, chromedp.Flag("headless", true))

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	start := time.Now()
	var buf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+abs),
		// Plotly adds this class once a chart has drawn.
		chromedp.WaitVisible(`.js-plotly-plot`, chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var printErr error
			buf, _, printErr = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return printErr
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print report to pdf: %w", err)
	}

	r.logger.InfoContext(ctx, "report printed to pdf",
		slog.String("source", abs),
		slog.Int("bytes", len(buf)),
		slog.Duration("elapsed", time.Since(start)))
	return buf, nil
}
