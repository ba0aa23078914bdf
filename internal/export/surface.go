// Package export renders the HTML preview surface into a downloadable PDF.
package export

import (
	"context"
	"fmt"
	"log"
)

// Surface is a rendered, fully laid out preview the exporter can measure and
// print. The chromedp-backed implementation lives in pdf.go; tests use fakes.
type Surface interface {
	// Height returns the surface's current explicit height style ("" when unset)
	Height(ctx context.Context) (string, error)
	// NaturalHeight returns the full content height in pixels, not just the
	// visible scrolled portion
	NaturalHeight(ctx context.Context) (int64, error)
	// SetHeight sets the explicit height style; "" clears it
	SetHeight(ctx context.Context, value string) error
	// PrintPDF produces the paginated document bytes
	PrintPDF(ctx context.Context) ([]byte, error)
}

// Print expands the surface to its full natural height for the duration of
// the rendering pass and restores the original height afterward, whether or
// not rendering succeeds. A failed render returns no bytes at all.
func Print(ctx context.Context, s Surface) (pdf []byte, err error) {
	orig, err := s.Height(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read surface height: %w", err)
	}

	full, err := s.NaturalHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to measure surface: %w", err)
	}

	if err := s.SetHeight(ctx, fmt.Sprintf("%dpx", full)); err != nil {
		return nil, fmt.Errorf("failed to expand surface: %w", err)
	}
	defer func() {
		if rerr := s.SetHeight(ctx, orig); rerr != nil {
			// Restoration failure is not worth failing a successful export over
			log.Printf("[EXPORT] failed to restore surface height: %v", rerr)
		}
	}()

	pdf, err = s.PrintPDF(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return pdf, nil
}
