package service_test

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billscan/internal/domain"
	"billscan/internal/layout"
	"billscan/internal/port"
	"billscan/internal/scan"
	"billscan/internal/service"
	"billscan/mocks"
)

const softHyphen = "­"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testPages(n int) []image.Image {
	pages := make([]image.Image, n)
	for i := range pages {
		pages[i] = image.NewGray(image.Rect(0, 0, i+1, 1))
	}
	return pages
}

func testBusiness(businessType domain.BusinessType, account string) *domain.Business {
	return &domain.Business{
		ID:          uuid.New(),
		Name:        "JKP Test",
		BankAccount: account,
		Type:        businessType,
	}
}

// reconcileFixture wires a reconcile service over a mocked renderer,
// scanner, layout reader and business repository.
type reconcileFixture struct {
	renderer     *mocks.MockPageRenderer
	scanner      *mocks.MockBarcodeScanner
	layoutReader *mocks.MockTextLayoutReader
	businessRepo *mocks.MockBusinessRepo
	svc          service.ReconcileService
}

func newReconcileFixture() *reconcileFixture {
	f := &reconcileFixture{
		renderer:     new(mocks.MockPageRenderer),
		scanner:      new(mocks.MockBarcodeScanner),
		layoutReader: new(mocks.MockTextLayoutReader),
		businessRepo: new(mocks.MockBusinessRepo),
	}
	decoder := scan.NewPayloadDecoder(f.renderer, f.scanner, 0)
	f.svc = service.NewReconcileService(decoder, f.layoutReader, f.businessRepo, layout.DefaultRegistry())
	return f
}

// scansPayload arranges a two-page document whose second page decodes to
// the given payload.
func (f *reconcileFixture) scansPayload(payload string) {
	pages := testPages(2)
	f.renderer.On("RenderPages", mock.Anything, mock.Anything, scan.RenderDPI).Return(pages, nil)
	f.scanner.On("Scan", mock.Anything, pages[0]).Return(nil, domain.ErrNoBarcode)
	f.scanner.On("Scan", mock.Anything, pages[1]).Return([]byte(payload), nil)
}

// scansNothing arranges a document with no decodable barcode anywhere.
func (f *reconcileFixture) scansNothing() {
	pages := testPages(1)
	f.renderer.On("RenderPages", mock.Anything, mock.Anything, scan.RenderDPI).Return(pages, nil)
	f.scanner.On("Scan", mock.Anything, mock.Anything).Return(nil, domain.ErrNoBarcode)
}

func TestReconcile_AssemblesBillFromPayload(t *testing.T) {
	f := newReconcileFixture()
	f.scansPayload("R:160000000000001234|I:RSD2500,00|S:01.03.2024-31.03.2024|SF:189|RO:97765432100")
	business := testBusiness(domain.BusinessElectrical, "160000000000001234")
	f.businessRepo.On("GetByAccount", mock.Anything, "160000000000001234").Return(business, nil)

	outcome, err := f.svc.Reconcile(context.Background(), []byte("doc"))

	require.NoError(t, err)
	require.Equal(t, service.OutcomeAssembled, outcome.Status)
	bill := outcome.Bill
	require.NotNil(t, bill)
	assert.Equal(t, business.ID, bill.BusinessID)
	assert.Equal(t, "JKP Test from 01.03.2024 to 31.03.2024", bill.Name)
	assert.Equal(t, "2500.00", bill.Amount.StringFixed(2))
	assert.Equal(t, "189", bill.PayCode)
	assert.Equal(t, "97", bill.PayModel)
	assert.Equal(t, "765432100", bill.CallNumber)
	assert.True(t, bill.PeriodStart.Equal(date(2024, time.March, 1)))
	assert.True(t, bill.PeriodEnd.Equal(date(2024, time.March, 31)))
	assert.True(t, bill.Paid)
	// The period came inline, so the text layout was never read.
	f.layoutReader.AssertNotCalled(t, "Blocks", mock.Anything, mock.Anything)
}

func TestReconcile_MissingPayCodeDefaults(t *testing.T) {
	f := newReconcileFixture()
	f.scansPayload("R:160000000000001234|I:RSD100,00|S:01.03.2024-31.03.2024|RO:123456")
	f.businessRepo.On("GetByAccount", mock.Anything, "160000000000001234").
		Return(testBusiness(domain.BusinessElectrical, "160000000000001234"), nil)

	outcome, err := f.svc.Reconcile(context.Background(), []byte("doc"))

	require.NoError(t, err)
	require.Equal(t, service.OutcomeAssembled, outcome.Status)
	assert.Equal(t, "189", outcome.Bill.PayCode)
	assert.Equal(t, "", outcome.Bill.PayModel)
	assert.Equal(t, "123456", outcome.Bill.CallNumber)
}

func TestReconcile_PeriodFromProviderLayout(t *testing.T) {
	f := newReconcileFixture()
	f.scansPayload("R:160000000000001234|I:RSD100,00|SF:189")
	f.businessRepo.On("GetByAccount", mock.Anything, "160000000000001234").
		Return(testBusiness(domain.BusinessElectrical, "160000000000001234"), nil)
	f.layoutReader.On("Blocks", mock.Anything, mock.Anything).Return([]port.TextBlock{
		{Page: 0, Index: 9, Text: "od 01.02.2024 do 29.02.2024"},
	}, nil).Once()

	outcome, err := f.svc.Reconcile(context.Background(), []byte("doc"))

	require.NoError(t, err)
	require.Equal(t, service.OutcomeAssembled, outcome.Status)
	assert.True(t, outcome.Bill.PeriodStart.Equal(date(2024, time.February, 1)))
	assert.True(t, outcome.Bill.PeriodEnd.Equal(date(2024, time.February, 29)))
	f.layoutReader.AssertExpectations(t)
}

func TestReconcile_UnresolvedPayeeIsRejected(t *testing.T) {
	f := newReconcileFixture()
	f.scansPayload("R:999000000000000999|I:RSD100,00|S:01.03.2024-31.03.2024")
	f.businessRepo.On("GetByAccount", mock.Anything, "999000000000000999").Return(nil, domain.ErrNotFound)

	outcome, err := f.svc.Reconcile(context.Background(), []byte("doc"))

	require.NoError(t, err)
	assert.Equal(t, service.OutcomeRejected, outcome.Status)
	assert.Equal(t, domain.StageResolve, outcome.Stage)
	assert.Equal(t, "999000000000000999", outcome.RawValue)
	assert.Nil(t, outcome.Bill)
}

func TestReconcile_UnparsableAmountIsRejected(t *testing.T) {
	f := newReconcileFixture()
	f.scansPayload("R:160000000000001234|I:RSDxx|S:01.03.2024-31.03.2024")

	outcome, err := f.svc.Reconcile(context.Background(), []byte("doc"))

	require.NoError(t, err)
	assert.Equal(t, service.OutcomeRejected, outcome.Status)
	assert.Equal(t, domain.StageNormalize, outcome.Stage)
	assert.Equal(t, "RSDxx", outcome.RawValue)
}

func TestReconcile_NoPeriodRuleIsRejected(t *testing.T) {
	f := newReconcileFixture()
	f.scansPayload("R:160000000000001234|I:RSD100,00")
	f.businessRepo.On("GetByAccount", mock.Anything, "160000000000001234").
		Return(testBusiness(domain.BusinessHeating, "160000000000001234"), nil)

	outcome, err := f.svc.Reconcile(context.Background(), []byte("doc"))

	require.NoError(t, err)
	assert.Equal(t, service.OutcomeRejected, outcome.Status)
	assert.Equal(t, domain.StageLayout, outcome.Stage)
	assert.Equal(t, "heating", outcome.RawValue)
}

func TestReconcile_NoBarcodeFallsBackToWaterLayout(t *testing.T) {
	f := newReconcileFixture()
	f.scansNothing()
	f.layoutReader.On("Blocks", mock.Anything, mock.Anything).Return([]port.TextBlock{
		{Page: 0, Index: 7, Text: "za period 01.04.2024 do 30.04.2024"},
		{Page: 0, Index: 19, Text: "ukupno 1.318,77 RSD dug"},
		{Page: 0, Index: 24, Text: "205" + softHyphen + "98765" + softHyphen + "21"},
		{Page: 0, Index: 25, Text: "poziv na broj 12" + softHyphen + "345678"},
	}, nil).Once()
	f.businessRepo.On("GetByAccount", mock.Anything, "205000000009876521").
		Return(testBusiness(domain.BusinessWater, "205000000009876521"), nil)

	outcome, err := f.svc.Reconcile(context.Background(), []byte("doc"))

	require.NoError(t, err)
	require.Equal(t, service.OutcomeAssembled, outcome.Status)
	bill := outcome.Bill
	assert.Equal(t, "1318.77", bill.Amount.StringFixed(2))
	assert.Equal(t, "189", bill.PayCode)
	assert.Equal(t, "", bill.PayModel)
	assert.Equal(t, "12345678", bill.CallNumber)
	assert.True(t, bill.PeriodStart.Equal(date(2024, time.April, 1)))
	assert.True(t, bill.PeriodEnd.Equal(date(2024, time.April, 30)))
	f.layoutReader.AssertExpectations(t)
}

func TestReconcile_NoBarcodeLayoutMismatchIsRejected(t *testing.T) {
	f := newReconcileFixture()
	f.scansNothing()
	f.layoutReader.On("Blocks", mock.Anything, mock.Anything).Return([]port.TextBlock{
		{Page: 0, Index: 0, Text: "not a water bill at all"},
	}, nil)

	outcome, err := f.svc.Reconcile(context.Background(), []byte("doc"))

	require.NoError(t, err)
	assert.Equal(t, service.OutcomeRejected, outcome.Status)
	assert.Equal(t, domain.StageLayout, outcome.Stage)
}
