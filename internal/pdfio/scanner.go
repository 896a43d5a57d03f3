package pdfio

import (
	"context"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"billscan/internal/domain"
	"billscan/internal/port"
)

type zxingScanner struct{}

// NewScanner creates a ZXing-backed QR scanner.
func NewScanner() port.BarcodeScanner {
	return &zxingScanner{}
}

// Scan decodes at most one QR payload from a page image. A page without a
// decodable code reports domain.ErrNoBarcode; the decoder treats that as
// an empty page, not a failure.
func (s *zxingScanner) Scan(ctx context.Context, img image.Image) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, domain.ErrNoBarcode
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		// ZXing reports NotFound for pages without a code; either way the
		// page contributes no payload.
		return nil, domain.ErrNoBarcode
	}
	return []byte(result.GetText()), nil
}
