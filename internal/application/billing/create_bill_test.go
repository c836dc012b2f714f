package billing_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minatoent/backoffice-api/internal/application/billing"
	"github.com/minatoent/backoffice-api/internal/application/dto"
	"github.com/minatoent/backoffice-api/internal/application/inventory"
	"github.com/minatoent/backoffice-api/internal/domain"
	"github.com/minatoent/backoffice-api/internal/domain/entity"
	"github.com/minatoent/backoffice-api/pkg/logger"
)

type fakeRegistry struct {
	units     map[string]map[string]*entity.InventoryUnit
	soldRefs  []inventory.UnitRef
	soldCalls int
	soldErr   error
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{units: map[string]map[string]*entity.InventoryUnit{
		entity.UnitKindChassis: {},
		entity.UnitKindBattery: {},
	}}
}

func (f *fakeRegistry) add(u *entity.InventoryUnit) {
	f.units[u.Kind][u.SerialNumber] = u
}

func (f *fakeRegistry) Find(kind, serial string) (*entity.InventoryUnit, error) {
	u, ok := f.units[kind][serial]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRegistry) MarkSold(refs []inventory.UnitRef) error {
	f.soldCalls++
	if f.soldErr != nil {
		return f.soldErr
	}
	f.soldRefs = append(f.soldRefs, refs...)
	for _, ref := range refs {
		if u, ok := f.units[ref.Kind][ref.Serial]; ok {
			u.Status = entity.UnitStatusSold
		}
	}
	return nil
}

type fakeCounters struct{ n map[string]int }

func (f *fakeCounters) Next(kind string) string {
	if f.n == nil {
		f.n = map[string]int{}
	}
	f.n[kind]++
	return fmt.Sprintf("%s-%03d", kind, f.n[kind])
}

type fakeLedger struct {
	records []*entity.SaleRecord
	err     error
}

func (f *fakeLedger) Append(rec *entity.SaleRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

type fakeRenderer struct {
	err  error
	docs []*billing.BillDocument
}

func (f *fakeRenderer) RenderBill(_ context.Context, doc *billing.BillDocument) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.docs = append(f.docs, doc)
	return []byte("%PDF-1.7 fake"), nil
}

type billFixture struct {
	uc       *billing.GenerateBillUseCase
	registry *fakeRegistry
	counters *fakeCounters
	ledger   *fakeLedger
	renderer *fakeRenderer
	billsDir string
}

func newBillFixture(t *testing.T) *billFixture {
	t.Helper()
	f := &billFixture{
		registry: newFakeRegistry(),
		counters: &fakeCounters{},
		ledger:   &fakeLedger{},
		renderer: &fakeRenderer{},
		billsDir: t.TempDir(),
	}
	f.registry.add(&entity.InventoryUnit{
		Kind: entity.UnitKindChassis, SerialNumber: "CH-100", MakeModel: "SARTHI",
		MotorNumber: "MT-77", Status: entity.UnitStatusAvailable,
	})
	f.registry.add(&entity.InventoryUnit{
		Kind: entity.UnitKindBattery, SerialNumber: "BT-1", Make: "EASTMAN",
		Warranty: "12M", Model: "TALL", Ampere: "150AH", Status: entity.UnitStatusAvailable,
	})
	cfg := billing.Config{
		Seller:   billing.SellerInfo{Name: "MINATO ENTERPRISES", GSTIN: "20ABCDE1234F1Z5", StateCode: "20"},
		HSNCode:  "870390",
		BillsDir: f.billsDir,
	}
	f.uc = billing.NewGenerateBillUseCase(f.registry, f.counters, f.ledger, f.renderer,
		cfg, logger.New(logger.Config{Env: "test", Level: "error"}))
	return f
}

func validRequest() dto.GenerateBillRequest {
	return dto.GenerateBillRequest{
		CustomerName:   "Nandu Singh",
		AadhaarNumber:  "123456789012",
		MobileNumber:   "9876543210",
		Address:        "House 4, Main Road, Jharkhand",
		ChassisSerial:  "CH-100",
		BatterySerials: []string{"BT-1"},
		FinalAmount:    decimal.NewFromFloat(105000),
	}
}

func TestGenerateBill_HappyPath(t *testing.T) {
	f := newBillFixture(t)

	resp, err := f.uc.GenerateBill(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "bill-001", resp.BillNumber)
	assert.Equal(t, "invoice-001", resp.InvoiceNumber)
	assert.Equal(t, "100000.00", resp.Tax.BaseAmount.StringFixed(2))
	assert.Equal(t, "2500.00", resp.Tax.CGST.StringFixed(2))
	assert.Equal(t, "2500.00", resp.Tax.SGST.StringFixed(2))
	assert.Equal(t, entity.TaxTypeIntraState, resp.Tax.TaxType)
	assert.Contains(t, resp.Description, "CHASSIS NO-CH-100")
	assert.Contains(t, resp.Description, "EASTMAN 12M TALL 150AH")
	assert.Empty(t, resp.Warnings)

	// the bill file was written
	data, err := os.ReadFile(resp.BillFilePath)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "Bill_NANDU_SINGH_bill-001.pdf", filepath.Base(resp.BillFilePath))
	assert.Equal(t, "/api/bills/Bill_NANDU_SINGH_bill-001.pdf", resp.DownloadURL)

	// both units marked sold in one batch
	require.Len(t, f.registry.soldRefs, 2)
	assert.Equal(t, inventory.UnitRef{Kind: entity.UnitKindChassis, Serial: "CH-100"}, f.registry.soldRefs[0])
	assert.Equal(t, inventory.UnitRef{Kind: entity.UnitKindBattery, Serial: "BT-1"}, f.registry.soldRefs[1])

	// exactly one ledger row, fully populated
	require.Len(t, f.ledger.records, 1)
	rec := f.ledger.records[0]
	assert.Equal(t, "bill-001", rec.BillNumber)
	assert.Equal(t, "Nandu Singh", rec.CustomerName)
	assert.Equal(t, "CH-100", rec.ChassisNumber)
	assert.Equal(t, []string{"BT-1"}, rec.BatterySerialNumbers)
	assert.Equal(t, 1, rec.BatteryCount)
	assert.True(t, rec.Subtotal.Add(rec.CGST).Add(rec.SGST).Add(rec.IGST).Add(rec.RoundOff).Equal(rec.Total))
	assert.NotEmpty(t, rec.ID)

	// renderer got a resolved document, not raw request fields
	require.Len(t, f.renderer.docs, 1)
	doc := f.renderer.docs[0]
	assert.Equal(t, "1234 5678 9012", doc.AadhaarDisplay)
	assert.Equal(t, 2, doc.Quantity)
	assert.Equal(t, "870390", doc.HSNCode)
}

func TestGenerateBill_Validation(t *testing.T) {
	f := newBillFixture(t)

	cases := []struct {
		name   string
		mutate func(*dto.GenerateBillRequest)
	}{
		{"missing customer name", func(r *dto.GenerateBillRequest) { r.CustomerName = "  " }},
		{"no units selected", func(r *dto.GenerateBillRequest) {
			r.ChassisSerial = ""
			r.BatterySerials = nil
		}},
		{"zero amount", func(r *dto.GenerateBillRequest) { r.FinalAmount = decimal.Zero }},
		{"negative amount", func(r *dto.GenerateBillRequest) { r.FinalAmount = decimal.NewFromInt(-5) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := f.uc.GenerateBill(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Zero(t, f.registry.soldCalls, "no mutation on rejected input")
	assert.Empty(t, f.ledger.records)
}

func TestGenerateBill_UnknownAndSoldUnits(t *testing.T) {
	f := newBillFixture(t)

	req := validRequest()
	req.ChassisSerial = "NO-SUCH"
	_, err := f.uc.GenerateBill(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f.registry.units[entity.UnitKindBattery]["BT-1"].Status = entity.UnitStatusSold
	req = validRequest()
	_, err = f.uc.GenerateBill(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnitSold)

	assert.Zero(t, f.registry.soldCalls)
	assert.Empty(t, f.ledger.records)
	entries, _ := os.ReadDir(f.billsDir)
	assert.Empty(t, entries, "no bill file before a valid sale")
}

func TestGenerateBill_InterState(t *testing.T) {
	f := newBillFixture(t)

	req := validRequest()
	req.InterState = true
	resp, err := f.uc.GenerateBill(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, entity.TaxTypeInterState, resp.Tax.TaxType)
	assert.Equal(t, "5000.00", resp.Tax.IGST.StringFixed(2))
	assert.True(t, resp.Tax.CGST.IsZero())
	assert.True(t, resp.Tax.SGST.IsZero())
}

func TestGenerateBill_RenderFailureAbortsBeforeMutation(t *testing.T) {
	f := newBillFixture(t)
	f.renderer.err = fmt.Errorf("layout broke")

	_, err := f.uc.GenerateBill(context.Background(), validRequest())
	require.Error(t, err)

	assert.Zero(t, f.registry.soldCalls, "render failure must not touch inventory")
	assert.Empty(t, f.ledger.records)
	entries, _ := os.ReadDir(f.billsDir)
	assert.Empty(t, entries)
}

func TestGenerateBill_BookkeepingFailuresAreWarnings(t *testing.T) {
	f := newBillFixture(t)
	f.registry.soldErr = fmt.Errorf("disk full")
	f.ledger.err = fmt.Errorf("sheet locked")

	resp, err := f.uc.GenerateBill(context.Background(), validRequest())
	require.NoError(t, err, "the sale stands once the bill file exists")

	require.Len(t, resp.Warnings, 2)
	assert.Contains(t, resp.Warnings[0], "inventory")
	assert.Contains(t, resp.Warnings[1], "ledger")

	_, statErr := os.Stat(resp.BillFilePath)
	assert.NoError(t, statErr)
}

func TestGenerateBill_BatteryOnlySale(t *testing.T) {
	f := newBillFixture(t)

	req := validRequest()
	req.ChassisSerial = ""
	resp, err := f.uc.GenerateBill(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, resp.Description, "BATTERIES:")
	require.Len(t, f.ledger.records, 1)
	assert.Empty(t, f.ledger.records[0].ChassisNumber)
	assert.Equal(t, 1, f.ledger.records[0].BatteryCount)
}
