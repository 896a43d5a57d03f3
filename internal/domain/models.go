package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountPattern matches the 18-digit domestic bank account format.
var accountPattern = regexp.MustCompile(`^\d{18}$`)

// Address represents a postal address shared by businesses.
type Address struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Street     string    `db:"street" json:"street"`
	Number     string    `db:"number" json:"number"`
	City       string    `db:"city" json:"city"`
	PostalCode int       `db:"postal_code" json:"postal_code"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Validate checks address invariants.
func (a *Address) Validate() error {
	if a.PostalCode < 10000 || a.PostalCode > 99999 {
		return fmt.Errorf("postal code must be a 5-digit number, got %d", a.PostalCode)
	}
	return nil
}

// Business represents a utility provider that issues bills. It is resolved
// during reconciliation by exact match on its bank account number.
type Business struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	Name        string       `db:"name" json:"name"`
	BankAccount string       `db:"bank_account" json:"bank_account"`
	PDFProducer string       `db:"pdf_producer" json:"pdf_producer"`
	Type        BusinessType `db:"type" json:"type"`
	URL         string       `db:"url" json:"url"`
	AddressID   *uuid.UUID   `db:"address_id" json:"address_id,omitempty"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

// Validate checks business invariants: an 18-digit account number, a known
// provider type and an http(s) URL.
func (b *Business) Validate() error {
	if !accountPattern.MatchString(b.BankAccount) {
		return fmt.Errorf("bank account number must be exactly 18 digits, got %q", b.BankAccount)
	}
	if !ValidBusinessTypes[b.Type] {
		return fmt.Errorf("unknown business type %q", b.Type)
	}
	if b.URL != "" {
		u, err := url.Parse(b.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("url must start with http or https, got %q", b.URL)
		}
	}
	return nil
}

// BillingPeriod is the ordered pair of calendar dates a bill covers.
type BillingPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// periodDateLayout is the day.month.year shape bills print dates in.
const periodDateLayout = "02.01.2006"

// String renders the period as printed on the source documents.
func (p BillingPeriod) String() string {
	return p.Start.Format(periodDateLayout) + " to " + p.End.Format(periodDateLayout)
}

// Bill is the normalized payment record assembled from one document.
type Bill struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	BusinessID  uuid.UUID       `db:"business_id" json:"business_id"`
	Name        string          `db:"name" json:"name"`
	Paid        bool            `db:"paid" json:"paid"`
	DatePaid    time.Time       `db:"date_paid" json:"date_paid"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	PayCode     string          `db:"pay_code" json:"pay_code"`
	PayModel    string          `db:"pay_model" json:"pay_model"`
	CallNumber  string          `db:"call_number" json:"call_number"`
	PeriodStart time.Time       `db:"period_start" json:"period_start"`
	PeriodEnd   time.Time       `db:"period_end" json:"period_end"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// Period returns the billing period the bill covers.
func (b *Bill) Period() BillingPeriod {
	return BillingPeriod{Start: b.PeriodStart, End: b.PeriodEnd}
}

// Ingestion is the audit record of one processed document: either the
// bill it produced or enough context to correct a rejection by hand.
type Ingestion struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	FileName  string          `db:"file_name" json:"file_name"`
	S3Bucket  string          `db:"s3_bucket" json:"s3_bucket"`
	S3Key     string          `db:"s3_key" json:"s3_key"`
	Status    IngestionStatus `db:"status" json:"status"`
	Stage     Stage           `db:"stage" json:"stage,omitempty"`
	Reason    string          `db:"reason" json:"reason,omitempty"`
	RawValue  string          `db:"raw_value" json:"raw_value,omitempty"`
	BillID    *uuid.UUID      `db:"bill_id" json:"bill_id,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
