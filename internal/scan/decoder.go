package scan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"unicode/utf8"

	"billscan/internal/domain"
	"billscan/internal/port"
)

// RenderDPI is the page-render resolution used for barcode decoding.
// 600 DPI is the lowest density that decodes these scans reliably.
const RenderDPI = 600.0

// PayloadDecoder renders a document's pages and collects barcode payloads
// from them.
type PayloadDecoder struct {
	renderer port.PageRenderer
	scanner  port.BarcodeScanner
	dpi      float64
}

// NewPayloadDecoder creates a PayloadDecoder over the given renderer and
// scanner. A non-positive dpi falls back to RenderDPI.
func NewPayloadDecoder(renderer port.PageRenderer, scanner port.BarcodeScanner, dpi float64) *PayloadDecoder {
	if dpi <= 0 {
		dpi = RenderDPI
	}
	return &PayloadDecoder{renderer: renderer, scanner: scanner, dpi: dpi}
}

// Decode renders every page of doc at the configured resolution, scans
// each page in page order and returns the candidate payment payloads.
//
// Page-selection rule, pinned by tests before it is ever changed:
//   - a payload decoded on the first page is excluded from the candidate
//     set (first-page codes on these documents are a cover/reference code,
//     not the payment code);
//   - the last successfully decoded payload across all pages is always
//     appended, even when it duplicates a payload already collected and
//     even when the document has a single page.
//
// When no page yields a decodable barcode, Decode reports
// domain.ErrNoPayload; callers treat that as the trigger for the no-code
// fallback path, not as a failure.
func (d *PayloadDecoder) Decode(ctx context.Context, doc []byte) ([][]byte, error) {
	pages, err := d.renderer.RenderPages(ctx, doc, d.dpi)
	if err != nil {
		return nil, fmt.Errorf("rendering pages: %w", err)
	}

	var candidates [][]byte
	var last []byte
	for i, page := range pages {
		payload, err := d.scanner.Scan(ctx, page)
		if err != nil {
			if errors.Is(err, domain.ErrNoBarcode) {
				continue
			}
			return nil, fmt.Errorf("scanning page %d: %w", i, err)
		}
		last = payload
		if i == 0 {
			continue
		}
		candidates = append(candidates, payload)
	}

	if last == nil {
		return nil, domain.ErrNoPayload
	}
	candidates = append(candidates, last)

	log.Printf("scan.PayloadDecoder: %d page(s), %d candidate payload(s)", len(pages), len(candidates))
	return candidates, nil
}

// Records decodes doc and tokenizes its candidate payloads. When several
// candidates parse, the records of the last parsable payload win; earlier
// candidates are historical cover codes.
func (d *PayloadDecoder) Records(ctx context.Context, doc []byte) ([]FieldRecord, error) {
	candidates, err := d.Decode(ctx, doc)
	if err != nil {
		return nil, err
	}

	var records []FieldRecord
	for _, payload := range candidates {
		if !utf8.Valid(payload) {
			// Hard failure: a garbled code cannot parse differently on a
			// retry, so the document is reported as unprocessable.
			return nil, domain.NewFormatError("payload", fmt.Sprintf("%q", payload), errors.New("payload is not valid UTF-8"))
		}
		if parsed := Tokenize(string(payload)); parsed != nil {
			records = parsed
		}
	}
	if records == nil {
		return nil, domain.ErrNoPayload
	}
	return records, nil
}
