package scan

import "strings"

// FieldRecord is one parsed key-value payment instruction extracted from a
// barcode payload. Keys are the short field codes of the interbank QR
// standard; insertion order is not significant downstream.
type FieldRecord map[string]string

// Recognized field codes consumed by the reconciler. The underlying
// standard defines more; these are the ones this pipeline reads.
const (
	FieldAccount   = "R"  // payee bank account number
	FieldAmount    = "I"  // instructed amount, currency-prefixed
	FieldPeriod    = "S"  // free-text billing period, may be empty
	FieldPayCode   = "SF" // payment purpose code
	FieldReference = "RO" // reference number (pay model + call number)
)

// payModelPrefix marks a reference number carrying an explicit pay model.
const payModelPrefix = "97"

// Tokenize parses one raw payload string into a sequence of FieldRecords.
// Segments are separated by '|'; each segment containing ':' is split on
// its first ':' only, so values may themselves contain the separator.
// A field code that already exists in the record being built starts a new
// record: a single scanned code may stack several payment instructions.
// Segments without a key/value separator are ignored. Returns nil when no
// segment matched.
func Tokenize(payload string) []FieldRecord {
	if !strings.Contains(payload, "|") {
		return nil
	}

	records := []FieldRecord{{}}
	matched := false
	for _, segment := range strings.Split(payload, "|") {
		key, value, ok := strings.Cut(segment, ":")
		if !ok {
			continue
		}
		current := records[len(records)-1]
		if _, exists := current[key]; exists {
			current = FieldRecord{}
			records = append(records, current)
		}
		current[key] = value
		matched = true
	}

	if !matched {
		return nil
	}
	return records
}

// SplitReference splits an RO reference value into (pay model, call
// number). A value starting with "97" carries the pay model in its first
// two characters; anything else is a bare call number with no model.
func SplitReference(reference string) (payModel, callNumber string) {
	if strings.HasPrefix(reference, payModelPrefix) {
		return reference[:2], reference[2:]
	}
	return "", reference
}
