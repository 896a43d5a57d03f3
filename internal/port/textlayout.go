package port

import "context"

// TextBlock is one positional text block of a rendered document page.
// Index is the block's position within its page, counted from zero in
// reading order.
type TextBlock struct {
	Page  int
	Index int
	Text  string
	X     float64
	Y     float64
}

// TextLayoutReader extracts the ordered positional text blocks of a PDF
// document. Blocks are returned page by page in reading order.
type TextLayoutReader interface {
	Blocks(ctx context.Context, doc []byte) ([]TextBlock, error)
}
