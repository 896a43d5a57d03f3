// Package pdfio provides the concrete PDF rendering, barcode scanning and
// text-layout capabilities consumed by the extraction pipeline.
package pdfio

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"

	"billscan/internal/port"
)

type fitzRenderer struct{}

// NewRenderer creates a MuPDF-backed page renderer.
func NewRenderer() port.PageRenderer {
	return &fitzRenderer{}
}

// RenderPages renders every page of the document to an image at the given
// resolution, in page order. The document handle is released before
// returning on every path.
func (r *fitzRenderer) RenderPages(ctx context.Context, doc []byte, dpi float64) ([]image.Image, error) {
	d, err := fitz.NewFromMemory(doc)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer func() { _ = d.Close() }()

	pages := make([]image.Image, 0, d.NumPage())
	for i := 0; i < d.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := d.ImageDPI(i, dpi)
		if err != nil {
			return nil, fmt.Errorf("rendering page %d: %w", i, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
