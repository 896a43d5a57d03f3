package pdfio

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"billscan/internal/port"
)

type layoutReader struct{}

// NewLayoutReader creates a positional text-block reader. Each text row of
// a page becomes one block; block indices count rows per page from zero in
// reading order, which is the ordering the provider templates were
// measured against.
func NewLayoutReader() port.TextLayoutReader {
	return &layoutReader{}
}

func (r *layoutReader) Blocks(ctx context.Context, doc []byte) ([]port.TextBlock, error) {
	reader, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}

	var blocks []port.TextBlock
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", pageNum, err)
		}

		for i, row := range rows {
			var sb strings.Builder
			var x, y float64
			for j, word := range row.Content {
				if j == 0 {
					x, y = word.X, word.Y
				} else {
					sb.WriteByte(' ')
				}
				sb.WriteString(word.S)
			}
			blocks = append(blocks, port.TextBlock{
				Page:  pageNum - 1,
				Index: i,
				Text:  sb.String(),
				X:     x,
				Y:     y,
			})
		}
	}
	return blocks, nil
}
