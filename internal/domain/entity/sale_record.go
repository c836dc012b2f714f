package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tax types recorded on a sale.
const (
	TaxTypeIntraState = "CGST+SGST"
	TaxTypeInterState = "IGST"
)

// SaleRecord is one finalized sale, appended to the ledger at the moment a
// bill is successfully generated. Rows are never updated or deleted: the
// ledger is a log, not a mutable table.
type SaleRecord struct {
	ID            string
	BillNumber    string
	InvoiceNumber string
	Date          time.Time

	CustomerName  string
	AadhaarNumber string
	MobileNumber  string
	Address       string

	ChassisNumber           string
	ChassisMakeModel        string
	ChassisMotorNumber      string
	ChassisControllerNumber string
	ChassisColor            string

	BatterySerialNumbers []string
	BatteryDetails       []string
	BatteryCount         int

	HSNCode     string
	Description string

	Subtotal decimal.Decimal // pre-tax base amount
	CGST     decimal.Decimal
	SGST     decimal.Decimal
	IGST     decimal.Decimal
	RoundOff decimal.Decimal
	Total    decimal.Decimal // tax-inclusive, equals the amount the customer pays

	AmountInWords string
	TaxType       string // TaxTypeIntraState | TaxTypeInterState
	FinanceTeam   string // financier name when the sale is financed, else empty
	BillFilePath  string

	CreatedAt time.Time
}
