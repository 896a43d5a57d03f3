package layout

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"billscan/internal/domain"
	"billscan/internal/normalize"
	"billscan/internal/port"
)

// Fixed block indices of the water-utility print template, read from the
// last page of the document.
const (
	waterPeriodBlock  = 7
	waterAmountBlock  = 19
	waterAccountBlock = 24
	waterCallBlock    = 25
)

const waterProvider = "water"

// softHyphen is embedded by the water utility's PDF producer inside long
// numbers.
const softHyphen = "­"

var digits18 = regexp.MustCompile(`^\d{18}$`)

// WaterBill carries the fields reconstructed from a water-utility bill
// that has no scannable payment code at all.
type WaterBill struct {
	Account    string
	Amount     decimal.Decimal
	CallNumber string
	Period     domain.BillingPeriod
}

// ExtractWaterBill reconstructs a full payment record from the positional
// text blocks of a water-utility bill. It is the fallback used when no
// barcode is decodable anywhere in the document.
func ExtractWaterBill(blocks []port.TextBlock) (*WaterBill, error) {
	page := pageFor(blocks, LastPage)

	account, err := waterAccount(blocks, page)
	if err != nil {
		return nil, err
	}
	amount, err := waterAmount(blocks, page)
	if err != nil {
		return nil, err
	}
	call, err := waterCallNumber(blocks, page)
	if err != nil {
		return nil, err
	}
	periodText, err := blockText(blocks, waterProvider, page, waterPeriodBlock)
	if err != nil {
		return nil, err
	}
	period, err := tailTokenPeriod(periodText)
	if err != nil {
		return nil, err
	}

	return &WaterBill{
		Account:    account,
		Amount:     amount,
		CallNumber: call,
		Period:     period,
	}, nil
}

// waterAccount rebuilds the payee account number from its three printed
// parts. The middle numeric part is printed without leading zeros and is
// padded back to 13 digits.
func waterAccount(blocks []port.TextBlock, page int) (string, error) {
	text, err := blockText(blocks, waterProvider, page, waterAccountBlock)
	if err != nil {
		return "", err
	}

	parts := strings.Fields(strings.ReplaceAll(text, softHyphen, " "))
	if len(parts) != 3 {
		return "", &domain.LayoutMismatchError{
			Provider: waterProvider,
			Page:     page,
			Block:    waterAccountBlock,
			Reason:   fmt.Sprintf("expected 3 account parts, found %d", len(parts)),
		}
	}

	middle := parts[1]
	if len(middle) < 13 {
		middle = strings.Repeat("0", 13-len(middle)) + middle
	}
	account := parts[0] + middle + parts[2]
	if !digits18.MatchString(account) {
		return "", &domain.LayoutMismatchError{
			Provider: waterProvider,
			Page:     page,
			Block:    waterAccountBlock,
			Reason:   fmt.Sprintf("reconstructed account %q is not 18 digits", account),
		}
	}
	return account, nil
}

// waterAmount reads the instructed amount from the third-from-last
// whitespace token of the amount block.
func waterAmount(blocks []port.TextBlock, page int) (decimal.Decimal, error) {
	text, err := blockText(blocks, waterProvider, page, waterAmountBlock)
	if err != nil {
		return decimal.Zero, err
	}

	fields := strings.Fields(text)
	if len(fields) < 3 {
		return decimal.Zero, &domain.LayoutMismatchError{
			Provider: waterProvider,
			Page:     page,
			Block:    waterAmountBlock,
			Reason:   fmt.Sprintf("expected at least 3 tokens, found %d", len(fields)),
		}
	}
	return normalize.Amount(fields[len(fields)-3])
}

// waterCallNumber reads the last whitespace token of the call-number
// block, with soft hyphens stripped.
func waterCallNumber(blocks []port.TextBlock, page int) (string, error) {
	text, err := blockText(blocks, waterProvider, page, waterCallBlock)
	if err != nil {
		return "", err
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", &domain.LayoutMismatchError{
			Provider: waterProvider,
			Page:     page,
			Block:    waterCallBlock,
			Reason:   "block is empty",
		}
	}
	return strings.ReplaceAll(fields[len(fields)-1], softHyphen, ""), nil
}
