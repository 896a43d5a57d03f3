package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billscan/internal/domain"
	"billscan/internal/layout"
	"billscan/internal/normalize"
	"billscan/internal/port"
	"billscan/internal/scan"
)

// defaultPayCode is the payment purpose code assumed when the document
// does not carry one.
const defaultPayCode = "189"

// OutcomeStatus tags the result of reconciling one document.
type OutcomeStatus string

const (
	OutcomeAssembled OutcomeStatus = "assembled"
	OutcomeRejected  OutcomeStatus = "rejected"
)

// Outcome is the tagged result of one reconciliation. A document either
// yields an assembled bill or a rejection carrying the failing stage, the
// reason and the raw offending value; there is no silent third state.
type Outcome struct {
	Status   OutcomeStatus
	Bill     *domain.Bill
	Stage    domain.Stage
	Reason   string
	RawValue string
}

func assembled(bill *domain.Bill) *Outcome {
	return &Outcome{Status: OutcomeAssembled, Bill: bill}
}

func rejected(stage domain.Stage, reason error, rawValue string) *Outcome {
	return &Outcome{
		Status:   OutcomeRejected,
		Stage:    stage,
		Reason:   reason.Error(),
		RawValue: rawValue,
	}
}

// ReconcileService turns one scanned bill document into a normalized
// payment record.
type ReconcileService interface {
	Reconcile(ctx context.Context, doc []byte) (*Outcome, error)
}

type reconcileService struct {
	decoder      *scan.PayloadDecoder
	layoutReader port.TextLayoutReader
	businessRepo port.BusinessRepository
	rules        *layout.Registry
	now          func() time.Time
}

// NewReconcileService creates a ReconcileService over the given
// collaborators.
func NewReconcileService(
	decoder *scan.PayloadDecoder,
	layoutReader port.TextLayoutReader,
	businessRepo port.BusinessRepository,
	rules *layout.Registry,
) ReconcileService {
	return &reconcileService{
		decoder:      decoder,
		layoutReader: layoutReader,
		businessRepo: businessRepo,
		rules:        rules,
		now:          time.Now,
	}
}

// Reconcile decodes the document's payment code and assembles a bill from
// it, falling back to full text-layout extraction when no code is
// decodable anywhere. Document-level failures come back as a rejected
// Outcome; the error return is reserved for collaborator failures
// (rendering, persistence) where retrying with the same input could
// succeed.
func (s *reconcileService) Reconcile(ctx context.Context, doc []byte) (*Outcome, error) {
	records, err := s.decoder.Records(ctx, doc)
	switch {
	case errors.Is(err, domain.ErrNoPayload):
		return s.reconcileFromLayout(ctx, doc)
	case err != nil:
		var formatErr *domain.FormatError
		if errors.As(err, &formatErr) {
			return rejected(domain.StageTokenize, formatErr, formatErr.Value), nil
		}
		return nil, fmt.Errorf("decoding payloads: %w", err)
	}

	return s.reconcileFromRecord(ctx, doc, records[0])
}

// reconcileFromRecord assembles a bill from the first field record of a
// decoded payment code.
func (s *reconcileService) reconcileFromRecord(ctx context.Context, doc []byte, rec scan.FieldRecord) (*Outcome, error) {
	amount, err := normalize.Amount(rec[scan.FieldAmount])
	if err != nil {
		return rejected(domain.StageNormalize, err, rec[scan.FieldAmount]), nil
	}

	business, outcome, err := s.resolvePayee(ctx, rec[scan.FieldAccount])
	if outcome != nil || err != nil {
		return outcome, err
	}

	period, outcome, err := s.resolvePeriod(ctx, doc, business, rec[scan.FieldPeriod])
	if outcome != nil || err != nil {
		return outcome, err
	}

	payModel, callNumber := scan.SplitReference(rec[scan.FieldReference])
	payCode := rec[scan.FieldPayCode]
	if payCode == "" {
		payCode = defaultPayCode
	}

	return assembled(s.assemble(business, amount, period, payCode, payModel, callNumber)), nil
}

// reconcileFromLayout is the no-code path: the document carries no
// scannable payment code and is fully reconstructed from the water
// utility's print template.
func (s *reconcileService) reconcileFromLayout(ctx context.Context, doc []byte) (*Outcome, error) {
	log.Printf("service.Reconcile: no payload found, falling back to layout extraction")

	blocks, err := s.layoutReader.Blocks(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("reading text layout: %w", err)
	}

	water, err := layout.ExtractWaterBill(blocks)
	if err != nil {
		return rejected(domain.StageLayout, err, ""), nil
	}

	business, outcome, err := s.resolvePayee(ctx, water.Account)
	if outcome != nil || err != nil {
		return outcome, err
	}

	// Reconstructed bills never carry a pay model.
	return assembled(s.assemble(business, water.Amount, water.Period, defaultPayCode, "", water.CallNumber)), nil
}

// resolvePayee looks up the payee business by exact account-number match.
// An unknown account is a rejection, not a silent drop.
func (s *reconcileService) resolvePayee(ctx context.Context, account string) (*domain.Business, *Outcome, error) {
	business, err := s.businessRepo.GetByAccount(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, rejected(domain.StageResolve, domain.ErrUnresolvedPayee, account), nil
		}
		return nil, nil, fmt.Errorf("resolving payee: %w", err)
	}
	return business, nil, nil
}

// resolvePeriod resolves the billing period: the inline S field when
// present, otherwise the payee provider's layout rule.
func (s *reconcileService) resolvePeriod(ctx context.Context, doc []byte, business *domain.Business, inline string) (domain.BillingPeriod, *Outcome, error) {
	if strings.TrimSpace(inline) != "" {
		period, err := normalize.DateRange(inline)
		if err != nil {
			return domain.BillingPeriod{}, rejected(domain.StageNormalize, err, inline), nil
		}
		return period, nil, nil
	}

	rule, ok := s.rules.Lookup(business.Type)
	if !ok {
		return domain.BillingPeriod{}, rejected(domain.StageLayout, domain.ErrPeriodUnresolved, string(business.Type)), nil
	}

	blocks, err := s.layoutReader.Blocks(ctx, doc)
	if err != nil {
		return domain.BillingPeriod{}, nil, fmt.Errorf("reading text layout: %w", err)
	}
	period, err := rule.Extract(blocks)
	if err != nil {
		return domain.BillingPeriod{}, rejected(domain.StageLayout, err, ""), nil
	}
	return period, nil, nil
}

// assemble builds the final normalized bill record.
func (s *reconcileService) assemble(
	business *domain.Business,
	amount decimal.Decimal,
	period domain.BillingPeriod,
	payCode, payModel, callNumber string,
) *domain.Bill {
	now := s.now()
	return &domain.Bill{
		ID:          uuid.New(),
		BusinessID:  business.ID,
		Name:        fmt.Sprintf("%s from %s", business.Name, period),
		Paid:        true,
		DatePaid:    now,
		Amount:      amount,
		PayCode:     payCode,
		PayModel:    payModel,
		CallNumber:  callNumber,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
