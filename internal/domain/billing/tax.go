// Package billing holds the pure bill computations: the reverse GST breakdown,
// line-item description composition, document numbering and rupee words.
// Nothing here touches the filesystem or the network.
package billing

import (
	"github.com/minatoent/backoffice-api/internal/domain"
	"github.com/minatoent/backoffice-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// GST on e-rickshaw sales is a flat 5% of the base price, split as
// 2.5% CGST + 2.5% SGST within the state or 5% IGST across states.
var (
	gstDivisor = decimal.NewFromFloat(1.05)
	rateFull   = decimal.NewFromFloat(0.05)
	rateHalf   = decimal.NewFromFloat(0.025)
)

// TaxBreakdown is the GST decomposition of a tax-inclusive final amount.
// Base + CGST + SGST + IGST + RoundOff always equals Total exactly at two
// decimal places; RoundOff absorbs the rounding residue.
type TaxBreakdown struct {
	Base     decimal.Decimal
	CGST     decimal.Decimal
	SGST     decimal.Decimal
	IGST     decimal.Decimal
	RoundOff decimal.Decimal
	Total    decimal.Decimal
	TaxType  string // entity.TaxTypeIntraState | entity.TaxTypeInterState
}

// ComputeBreakdown back-computes the GST breakdown from the final,
// tax-inclusive price agreed with the customer. The price is fixed by the
// caller; the base is derived downward, never the other way around.
// A non-positive amount is rejected here so the policy is explicit at the
// boundary rather than silently defaulted.
func ComputeBreakdown(finalAmount decimal.Decimal, interState bool) (TaxBreakdown, error) {
	if !finalAmount.GreaterThan(decimal.Zero) {
		return TaxBreakdown{}, domain.ErrInvalidInput
	}

	base := finalAmount.Div(gstDivisor).Round(2)

	b := TaxBreakdown{
		Base:  base,
		Total: finalAmount,
	}
	if interState {
		b.IGST = base.Mul(rateFull).Round(2)
		b.CGST = decimal.Zero
		b.SGST = decimal.Zero
		b.TaxType = entity.TaxTypeInterState
	} else {
		half := base.Mul(rateHalf).Round(2)
		b.CGST = half
		b.SGST = half
		b.IGST = decimal.Zero
		b.TaxType = entity.TaxTypeIntraState
	}

	// Whatever rounding left behind goes into RoundOff so the identity
	// Base+CGST+SGST+IGST+RoundOff == Total holds exactly.
	b.RoundOff = finalAmount.Sub(base).Sub(b.CGST).Sub(b.SGST).Sub(b.IGST).Round(2)

	return b, nil
}
