// Package pdf renders the customer-facing GST sales bill.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Company name + GSTIN  │  Bill No + Invoice + Date  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SELLER: Address / Phone / Email / State code               │
//	│  BUYER: Name, S/O, Address, Aadhaar, Mobile                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Description | HSN | Amount                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Taxable value / CGST+SGST or IGST / Round off /    │
//	│          GRAND TOTAL + amount in words                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: finance line + signature box                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/minatoent/backoffice-api/internal/application/billing"
	"github.com/minatoent/backoffice-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Compile-time check against the renderer port.
var _ appbilling.BillRenderer = (*MarotoBillRenderer)(nil)

// MarotoBillRenderer implements billing.BillRenderer with Maroto v2.
type MarotoBillRenderer struct{}

func NewMarotoBillRenderer() *MarotoBillRenderer { return &MarotoBillRenderer{} }

// RenderBill lays out the bill and returns the PDF bytes.
func (r *MarotoBillRenderer) RenderBill(_ context.Context, doc *appbilling.BillDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Tax Invoice "+doc.BillNumber, true).
		WithAuthor(doc.Seller.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sellerRow(doc.Seller))
	m.AddRows(buyerRows(doc)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRow(doc))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(doc)...)
	m.AddRows(wordsRow(doc.AmountInWords))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return out.GetBytes(), nil
}

// headerRow: company name + GSTIN (left), bill/invoice numbers + date (right).
func headerRow(doc *appbilling.BillDocument) core.Row {
	date := doc.Date.Format("02/01/2006")

	return row.New(22).Add(
		col.New(7).Add(
			text.New(doc.Seller.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("GSTIN: "+doc.Seller.GSTIN, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(doc.BillNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Invoice: "+doc.InvoiceNumber, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Date: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

func sellerRow(s appbilling.SellerInfo) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SELLER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Ph: %s   |   %s   |   State Code: %s",
				nonEmpty(s.Address, "-"),
				nonEmpty(s.Phone, "-"),
				nonEmpty(s.Email, "-"),
				nonEmpty(s.StateCode, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func buyerRows(doc *appbilling.BillDocument) []core.Row {
	name := doc.CustomerName
	if doc.ParentName != "" {
		name += "   S/O " + doc.ParentName
	}
	rows := []core.Row{
		row.New(10).Add(col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		)),
	}
	if doc.AddressLine1 != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(doc.AddressLine1, props.Text{Size: 8, Color: colorGray}),
		)))
	}
	if doc.AddressLine2 != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(doc.AddressLine2, props.Text{Size: 8, Color: colorGray}),
		)))
	}
	contact := ""
	if doc.AadhaarDisplay != "" {
		contact = "Aadhaar: " + doc.AadhaarDisplay
	}
	if doc.Mobile != "" {
		if contact != "" {
			contact += "   |   "
		}
		contact += "Mobile: " + doc.Mobile
	}
	if contact != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(contact, props.Text{Size: 8, Color: colorGray}),
		)))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Description of goods", 7, align.Left),
		h("HSN", 1, align.Center),
		h("Amount", 3, align.Right),
	)
}

// itemRow: the whole sale is one line item; the description carries the
// serial numbers.
func itemRow(doc *appbilling.BillDocument) core.Row {
	return row.New(16).Add(
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", doc.Quantity),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(7).Add(text.New(
			doc.Description,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(1).Add(text.New(
			doc.HSNCode,
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(3).Add(text.New(
			rupees(doc.Tax.Base),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

func totalsRows(doc *appbilling.BillDocument) []core.Row {
	type totalLine struct {
		label string
		value decimal.Decimal
	}
	lines := []totalLine{{"Taxable value:", doc.Tax.Base}}
	if doc.Tax.TaxType == entity.TaxTypeInterState {
		lines = append(lines, totalLine{"IGST @ 5%:", doc.Tax.IGST})
	} else {
		lines = append(lines,
			totalLine{"CGST @ 2.5%:", doc.Tax.CGST},
			totalLine{"SGST @ 2.5%:", doc.Tax.SGST})
	}
	if !doc.Tax.RoundOff.IsZero() {
		lines = append(lines, totalLine{"Round off:", doc.Tax.RoundOff})
	}

	rows := make([]core.Row, 0, len(lines)+1)
	for _, l := range lines {
		rows = append(rows, row.New(5).Add(
			col.New(6),
			col.New(3).Add(text.New(l.label, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			})),
			col.New(3).Add(text.New(rupees(l.value), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			})),
		))
	}
	rows = append(rows, row.New(7).Add(
		col.New(6),
		col.New(3).Add(text.New("GRAND TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})),
		col.New(3).Add(text.New(rupees(doc.Tax.Total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})),
	))
	return rows
}

func wordsRow(words string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(words, props.Text{
			Style: fontstyle.Italic, Size: 8, Top: 2, Color: colorGray,
		}),
	))
}

func footerRows(doc *appbilling.BillDocument) []core.Row {
	var rows []core.Row
	if doc.FinanceTeam != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Financed by: "+doc.FinanceTeam, props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1,
			}),
		)))
	}
	rows = append(rows,
		row.New(14).Add(
			col.New(8).Add(text.New(
				"Goods once sold will not be taken back. Subject to local jurisdiction.",
				props.Text{Size: 6.5, Color: colorGray, Top: 8},
			)),
			col.New(4).Add(text.New("For "+doc.Seller.Name, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2,
			}),
				text.New("Authorised Signatory", props.Text{
					Size: 7, Align: align.Right, Top: 10, Color: colorGray,
				}),
			),
		),
	)
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// rupees renders an amount as "Rs. 1,05,000.00" with Indian digit grouping.
func rupees(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	intPart, fracPart := s[:len(s)-3], s[len(s)-3:]

	// Indian grouping: last three digits, then pairs.
	var groups []string
	if len(intPart) > 3 {
		groups = append(groups, intPart[len(intPart)-3:])
		rest := intPart[:len(intPart)-3]
		for len(rest) > 2 {
			groups = append([]string{rest[len(rest)-2:]}, groups...)
			rest = rest[:len(rest)-2]
		}
		if rest != "" {
			groups = append([]string{rest}, groups...)
		}
	} else {
		groups = []string{intPart}
	}

	out := "Rs. "
	if neg {
		out += "-"
	}
	for i, g := range groups {
		if i > 0 {
			out += ","
		}
		out += g
	}
	return out + fracPart
}
