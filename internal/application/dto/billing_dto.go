package dto

import "github.com/shopspring/decimal"

// GenerateBillRequest is the operator's input for one bill. The final amount
// is the tax-inclusive price already agreed with the customer; the base price
// is back-calculated from it, never the other way around.
type GenerateBillRequest struct {
	CustomerName  string `json:"customer_name"`
	AadhaarNumber string `json:"aadhaar_number"`
	MobileNumber  string `json:"mobile_number"`
	Address       string `json:"address"`
	ParentName    string `json:"parent_name"`

	ChassisSerial  string   `json:"chassis_serial"`
	BatterySerials []string `json:"battery_serials"`

	FinalAmount decimal.Decimal `json:"final_amount"`
	InterState  bool            `json:"inter_state"` // true = IGST, false = CGST+SGST
	FinanceTeam string          `json:"finance_team"`
}

// TaxBreakdownResponse mirrors the computed GST decomposition.
type TaxBreakdownResponse struct {
	BaseAmount  decimal.Decimal `json:"base_amount"`
	CGST        decimal.Decimal `json:"cgst"`
	SGST        decimal.Decimal `json:"sgst"`
	IGST        decimal.Decimal `json:"igst"`
	RoundOff    decimal.Decimal `json:"round_off"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TaxType     string          `json:"tax_type"`
}

// BillResponse is returned after a successful bill generation. Warnings carry
// the non-fatal bookkeeping failures (ledger append, inventory save) that do
// not undo an already-completed sale.
type BillResponse struct {
	BillNumber    string               `json:"bill_number"`
	InvoiceNumber string               `json:"invoice_number"`
	Date          string               `json:"date"`
	Description   string               `json:"description"`
	Tax           TaxBreakdownResponse `json:"tax"`
	AmountInWords string               `json:"amount_in_words"`
	BillFilePath  string               `json:"bill_file_path"`
	DownloadURL   string               `json:"download_url"`
	Warnings      []string             `json:"warnings,omitempty"`
}
