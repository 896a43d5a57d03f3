package layout

import (
	"fmt"
	"strings"

	"billscan/internal/domain"
	"billscan/internal/normalize"
	"billscan/internal/port"
)

// PagePolicy selects which page of a document a rule reads from.
type PagePolicy int

const (
	// FirstPage reads from the first page only.
	FirstPage PagePolicy = iota
	// LastPage reads from the last page encountered.
	LastPage
)

// PeriodRule describes where one provider's print template carries the
// billing period: a page policy, a fixed block index established
// empirically for that template, and the parse applied to the block text.
// Adding a provider is a data-table change, not a new extractor.
type PeriodRule struct {
	Provider string
	Page     PagePolicy
	Block    int
	Parse    func(text string) (domain.BillingPeriod, error)
}

// Extract resolves the billing period from a document's text blocks
// according to the rule. A missing block or a block whose text does not
// parse is fatal for the document.
func (r PeriodRule) Extract(blocks []port.TextBlock) (domain.BillingPeriod, error) {
	page := pageFor(blocks, r.Page)
	text, err := blockText(blocks, r.Provider, page, r.Block)
	if err != nil {
		return domain.BillingPeriod{}, err
	}
	return r.Parse(text)
}

// Registry maps provider type to its period extraction rule.
type Registry struct {
	rules map[domain.BusinessType]PeriodRule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[domain.BusinessType]PeriodRule)}
}

// Register adds a rule for a provider type.
func (r *Registry) Register(t domain.BusinessType, rule PeriodRule) {
	r.rules[t] = rule
}

// Lookup returns the rule for a provider type, if one is registered.
func (r *Registry) Lookup(t domain.BusinessType) (PeriodRule, bool) {
	rule, ok := r.rules[t]
	return rule, ok
}

// DefaultRegistry returns the rules for the supported provider templates.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(domain.BusinessCable, PeriodRule{
		Provider: "cable",
		Page:     FirstPage,
		Block:    7,
		Parse:    inlineDateRange,
	})
	r.Register(domain.BusinessElectrical, PeriodRule{
		Provider: "electrical",
		Page:     FirstPage,
		Block:    9,
		Parse:    inlineDateRange,
	})
	r.Register(domain.BusinessWater, PeriodRule{
		Provider: "water",
		Page:     LastPage,
		Block:    waterPeriodBlock,
		Parse:    tailTokenPeriod,
	})
	return r
}

// pageFor resolves a page policy against the blocks actually present.
func pageFor(blocks []port.TextBlock, policy PagePolicy) int {
	if policy == FirstPage {
		return 0
	}
	last := 0
	for _, b := range blocks {
		if b.Page > last {
			last = b.Page
		}
	}
	return last
}

// blockText finds the block at a fixed index on a page. An out-of-range
// index means the document does not match the provider template.
func blockText(blocks []port.TextBlock, provider string, page, index int) (string, error) {
	for _, b := range blocks {
		if b.Page == page && b.Index == index {
			return b.Text, nil
		}
	}
	return "", &domain.LayoutMismatchError{
		Provider: provider,
		Page:     page,
		Block:    index,
		Reason:   "block index out of range",
	}
}

// inlineDateRange strips layout newlines and reads the two printed dates.
func inlineDateRange(text string) (domain.BillingPeriod, error) {
	return normalize.DateRange(strings.ReplaceAll(text, "\n", ""))
}

// tailTokenPeriod reads the period start from the third-from-last
// whitespace token and the period end from the last one.
func tailTokenPeriod(text string) (domain.BillingPeriod, error) {
	fields := strings.Fields(text)
	if len(fields) < 3 {
		return domain.BillingPeriod{}, domain.NewFormatError("period", text,
			fmt.Errorf("expected at least 3 tokens, found %d", len(fields)))
	}
	return normalize.DateRange(fields[len(fields)-3] + " " + fields[len(fields)-1])
}
