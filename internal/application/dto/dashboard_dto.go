package dto

import "github.com/shopspring/decimal"

// MonthlySales aggregated ledger figures for one calendar month.
type MonthlySales struct {
	Month   string          `json:"month"` // "2026-08"
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardSummary ledger aggregates for the dashboard.
type DashboardSummary struct {
	TotalSales      int             `json:"total_sales"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalBase       decimal.Decimal `json:"total_base"`
	TotalCGST       decimal.Decimal `json:"total_cgst"`
	TotalSGST       decimal.Decimal `json:"total_sgst"`
	TotalIGST       decimal.Decimal `json:"total_igst"`
	EstimatedProfit decimal.Decimal `json:"estimated_profit"`
	AvailableUnits  map[string]int  `json:"available_units"` // by kind
	Monthly         []MonthlySales  `json:"monthly"`
}
