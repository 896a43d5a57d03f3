package port

import (
	"context"
	"image"
)

// PageRenderer renders a PDF document into one image per page at a fixed
// resolution. Pages are returned in document order.
type PageRenderer interface {
	RenderPages(ctx context.Context, doc []byte, dpi float64) ([]image.Image, error)
}

// BarcodeScanner decodes at most one barcode payload from a page image.
// A page without a decodable code reports domain.ErrNoBarcode.
type BarcodeScanner interface {
	Scan(ctx context.Context, img image.Image) ([]byte, error)
}
