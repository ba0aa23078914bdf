package export

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds a full headless render pass.
const DefaultTimeout = 45 * time.Second

// A4 paper size in inches for the print pass.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
)

// Exporter renders HTML previews to PDF in a headless browser. Requires
// Chrome/Chromium on the host.
type Exporter struct {
	Timeout time.Duration
}

// NewExporter creates an exporter with the default timeout.
func NewExporter() *Exporter {
	return &Exporter{Timeout: DefaultTimeout}
}

// PDF loads the preview HTML into a fresh headless browser tab and prints it
// through the measure/expand/restore pass in Print.
func (e *Exporter) PDF(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := e.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load preview: %w", err)
	}

	return Print(browserCtx, &chromeSurface{ctx: browserCtx})
}

// chromeSurface adapts a loaded browser tab to the Surface interface.
type chromeSurface struct {
	ctx context.Context
}

func (s *chromeSurface) Height(_ context.Context) (string, error) {
	var height string
	err := chromedp.Run(s.ctx,
		chromedp.Evaluate(`document.body.style.height`, &height),
	)
	return height, err
}

func (s *chromeSurface) NaturalHeight(_ context.Context) (int64, error) {
	var height int64
	err := chromedp.Run(s.ctx,
		chromedp.Evaluate(`document.body.scrollHeight`, &height),
	)
	return height, err
}

func (s *chromeSurface) SetHeight(_ context.Context, value string) error {
	var applied string
	return chromedp.Run(s.ctx,
		chromedp.Evaluate(fmt.Sprintf(`document.body.style.height = %q; document.body.style.height`, value), &applied),
	)
}

func (s *chromeSurface) PrintPDF(_ context.Context) ([]byte, error) {
	var pdf []byte
	err := chromedp.Run(s.ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	return pdf, err
}
