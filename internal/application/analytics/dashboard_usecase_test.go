package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minatoent/backoffice-api/internal/application/analytics"
	"github.com/minatoent/backoffice-api/internal/domain/entity"
	"github.com/minatoent/backoffice-api/pkg/logger"
)

type fakeLedgerReader struct{ records []*entity.SaleRecord }

func (f *fakeLedgerReader) All() ([]*entity.SaleRecord, error) { return f.records, nil }

type fakeStats struct {
	counts   map[string]int
	soldCost decimal.Decimal
}

func (f *fakeStats) AvailableCounts() map[string]int { return f.counts }
func (f *fakeStats) SoldCostTotal() decimal.Decimal  { return f.soldCost }

func saleOn(date time.Time, base, total float64) *entity.SaleRecord {
	b := decimal.NewFromFloat(base)
	return &entity.SaleRecord{
		Date:     date,
		Subtotal: b,
		CGST:     b.Mul(decimal.NewFromFloat(0.025)).Round(2),
		SGST:     b.Mul(decimal.NewFromFloat(0.025)).Round(2),
		Total:    decimal.NewFromFloat(total),
		TaxType:  entity.TaxTypeIntraState,
	}
}

func TestSummary_Aggregates(t *testing.T) {
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	ledger := &fakeLedgerReader{records: []*entity.SaleRecord{
		saleOn(jan, 100000, 105000),
		saleOn(jan, 50000, 52500),
		saleOn(feb, 100000, 105000),
	}}
	stats := &fakeStats{
		counts:   map[string]int{entity.UnitKindChassis: 7, entity.UnitKindBattery: 12},
		soldCost: decimal.NewFromInt(180000),
	}
	uc := analytics.NewDashboardUseCase(ledger, stats, logger.New(logger.Config{Env: "test", Level: "error"}))

	got, err := uc.Summary()
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalSales)
	assert.Equal(t, "262500.00", got.TotalRevenue.StringFixed(2))
	assert.Equal(t, "250000.00", got.TotalBase.StringFixed(2))
	assert.Equal(t, "6250.00", got.TotalCGST.StringFixed(2))
	assert.Equal(t, "6250.00", got.TotalSGST.StringFixed(2))
	assert.True(t, got.TotalIGST.IsZero())
	assert.Equal(t, "70000.00", got.EstimatedProfit.StringFixed(2), "base revenue minus sold cost")
	assert.Equal(t, 7, got.AvailableUnits[entity.UnitKindChassis])

	require.Len(t, got.Monthly, 2)
	assert.Equal(t, "2026-01", got.Monthly[0].Month)
	assert.Equal(t, 2, got.Monthly[0].Count)
	assert.Equal(t, "157500.00", got.Monthly[0].Revenue.StringFixed(2))
	assert.Equal(t, "2026-02", got.Monthly[1].Month)
}

func TestSummary_EmptyLedger(t *testing.T) {
	uc := analytics.NewDashboardUseCase(
		&fakeLedgerReader{},
		&fakeStats{counts: map[string]int{}, soldCost: decimal.Zero},
		logger.New(logger.Config{Env: "test", Level: "error"}))

	got, err := uc.Summary()
	require.NoError(t, err)
	assert.Zero(t, got.TotalSales)
	assert.True(t, got.TotalRevenue.IsZero())
	assert.Empty(t, got.Monthly)
}
