package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"billscan/internal/domain"
)

// DateLayout is the day.month.year shape dates take on these documents.
const DateLayout = "02.01.2006"

// datePattern matches a two-digit day, two-digit month, four-digit year.
var datePattern = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`)

// DateRange scans a free-text string for date-shaped substrings and
// returns the first match as the period start and the second as the
// period end. Fewer than two matches is a FormatError.
func DateRange(raw string) (domain.BillingPeriod, error) {
	matches := datePattern.FindAllString(raw, -1)
	if len(matches) < 2 {
		return domain.BillingPeriod{}, domain.NewFormatError("period", raw,
			fmt.Errorf("expected at least two dates, found %d", len(matches)))
	}

	start, err := time.Parse(DateLayout, matches[0])
	if err != nil {
		return domain.BillingPeriod{}, domain.NewFormatError("period", raw, err)
	}
	end, err := time.Parse(DateLayout, matches[1])
	if err != nil {
		return domain.BillingPeriod{}, domain.NewFormatError("period", raw, err)
	}
	if end.Before(start) {
		return domain.BillingPeriod{}, domain.NewFormatError("period", raw,
			errors.New("period end precedes period start"))
	}

	return domain.BillingPeriod{Start: start, End: end}, nil
}
