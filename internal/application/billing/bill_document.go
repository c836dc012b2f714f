package billing

import (
	"time"

	domainbilling "github.com/minatoent/backoffice-api/internal/domain/billing"
)

// SellerInfo static company details printed on every bill.
type SellerInfo struct {
	Name      string
	GSTIN     string
	Address   string
	Phone     string
	Email     string
	StateCode string
}

// BillDocument is the complete, typed context handed to the renderer. Every
// field is resolved and stringified before rendering so a template/layout
// mismatch cannot pass silently.
type BillDocument struct {
	Seller SellerInfo

	BillNumber    string
	InvoiceNumber string
	Date          time.Time

	CustomerName   string
	ParentName     string
	AddressLine1   string
	AddressLine2   string
	AadhaarDisplay string // "XXXX XXXX XXXX"
	Mobile         string

	Description string
	HSNCode     string
	Quantity    int

	Tax           domainbilling.TaxBreakdown
	AmountInWords string
	FinanceTeam   string
}
