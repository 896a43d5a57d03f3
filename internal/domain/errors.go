package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrDuplicateAccount    = errors.New("bank account already registered")
	ErrInvalidBusiness     = errors.New("invalid business")

	// ErrNoPayload is reported when no page of a document yields a decodable
	// barcode. It is not fatal: it routes the document onto the no-code
	// fallback extraction path.
	ErrNoPayload = errors.New("no barcode payload found in document")

	// ErrNoBarcode is reported by a scanner when a single page image
	// carries no decodable code.
	ErrNoBarcode = errors.New("no barcode on page")

	// ErrUnresolvedPayee is reported when an extracted bank account number
	// matches no registered business.
	ErrUnresolvedPayee = errors.New("no business matches the extracted account number")

	// ErrPeriodUnresolved is reported when a bill carries no inline billing
	// period and no layout rule exists for the payee's provider type.
	ErrPeriodUnresolved = errors.New("billing period could not be resolved")
)

// FormatError indicates a raw string did not match the shape a
// normalizer expects. Fatal for the document, never retried.
type FormatError struct {
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed %s value %q: %v", e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// NewFormatError creates a FormatError for the given field and raw value.
func NewFormatError(field, value string, err error) *FormatError {
	return &FormatError{Field: field, Value: value, Err: err}
}

// LayoutMismatchError indicates an expected text block was missing or did
// not have the shape the provider template promises. Fatal for the
// document; it is flagged for manual handling.
type LayoutMismatchError struct {
	Provider string
	Page     int
	Block    int
	Reason   string
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("%s layout mismatch at page %d block %d: %s", e.Provider, e.Page, e.Block, e.Reason)
}
