package normalize

import (
	"strings"

	"github.com/shopspring/decimal"

	"billscan/internal/domain"
)

// currencyPrefix is the fixed currency code bills prefix amounts with.
const currencyPrefix = "RSD"

// Amount converts a bill amount string into a fixed-point decimal with
// two digits of precision. The raw form is currency-prefixed and uses ','
// as the decimal separator with '.' grouping ("RSD1.234,56"); an already
// normalized value passes through unchanged. A non-numeric residual is a
// FormatError.
func Amount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.TrimPrefix(raw, currencyPrefix))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.NewFormatError("amount", raw, err)
	}
	return d.Round(2), nil
}
