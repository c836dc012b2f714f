// Package analytics aggregates the sales ledger into dashboard figures.
package analytics

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/minatoent/backoffice-api/internal/application/dto"
	"github.com/minatoent/backoffice-api/internal/domain/entity"
	"github.com/minatoent/backoffice-api/pkg/logger"
)

// LedgerReader reads the full sales ledger. The ledger stays small enough
// (a few bills a day) that whole-table reads are fine.
type LedgerReader interface {
	All() ([]*entity.SaleRecord, error)
}

// InventoryStats is the slice of the inventory registry the dashboard needs.
type InventoryStats interface {
	AvailableCounts() map[string]int
	SoldCostTotal() decimal.Decimal
}

// DashboardUseCase builds the summary shown on the operator dashboard.
type DashboardUseCase struct {
	ledger LedgerReader
	stats  InventoryStats
	log    *logger.Logger
}

func NewDashboardUseCase(ledger LedgerReader, stats InventoryStats, log *logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{ledger: ledger, stats: stats, log: log}
}

// Summary aggregates every ledger row: totals, per-month breakdown, and an
// estimated profit (pre-tax revenue minus cost price of the sold units).
func (uc *DashboardUseCase) Summary() (*dto.DashboardSummary, error) {
	records, err := uc.ledger.All()
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	out := &dto.DashboardSummary{
		TotalSales:     len(records),
		TotalRevenue:   decimal.Zero,
		TotalBase:      decimal.Zero,
		TotalCGST:      decimal.Zero,
		TotalSGST:      decimal.Zero,
		TotalIGST:      decimal.Zero,
		AvailableUnits: uc.stats.AvailableCounts(),
	}

	byMonth := map[string]*dto.MonthlySales{}
	for _, r := range records {
		out.TotalRevenue = out.TotalRevenue.Add(r.Total)
		out.TotalBase = out.TotalBase.Add(r.Subtotal)
		out.TotalCGST = out.TotalCGST.Add(r.CGST)
		out.TotalSGST = out.TotalSGST.Add(r.SGST)
		out.TotalIGST = out.TotalIGST.Add(r.IGST)

		key := r.Date.Format("2006-01")
		m, ok := byMonth[key]
		if !ok {
			m = &dto.MonthlySales{Month: key, Revenue: decimal.Zero}
			byMonth[key] = m
		}
		m.Count++
		m.Revenue = m.Revenue.Add(r.Total)
	}

	months := make([]string, 0, len(byMonth))
	for k := range byMonth {
		months = append(months, k)
	}
	sort.Strings(months)
	out.Monthly = make([]dto.MonthlySales, 0, len(months))
	for _, k := range months {
		out.Monthly = append(out.Monthly, *byMonth[k])
	}

	out.EstimatedProfit = out.TotalBase.Sub(uc.stats.SoldCostTotal())

	uc.log.Debug().Int("sales", out.TotalSales).Msg("dashboard summary built")
	return out, nil
}
