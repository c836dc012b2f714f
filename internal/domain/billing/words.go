package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var wordOnes = []string{
	"", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE",
	"TEN", "ELEVEN", "TWELVE", "THIRTEEN", "FOURTEEN", "FIFTEEN", "SIXTEEN",
	"SEVENTEEN", "EIGHTEEN", "NINETEEN",
}

var wordTens = []string{
	"", "", "TWENTY", "THIRTY", "FORTY", "FIFTY", "SIXTY", "SEVENTY", "EIGHTY", "NINETY",
}

// AmountInWords renders a rupee amount in the Indian numbering system
// (crore/lakh), the way it is printed on the bill and recorded in the ledger.
//
//	510000.00 -> "RUPEES FIVE LAKH TEN THOUSAND ONLY"
//	105.50    -> "RUPEES ONE HUNDRED FIVE AND FIFTY PAISE ONLY"
func AmountInWords(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "MINUS " + AmountInWords(amount.Neg())
	}

	rounded := amount.Round(2)
	rupees := rounded.IntPart()
	paise := rounded.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).IntPart()

	var b strings.Builder
	b.WriteString("RUPEES ")
	if rupees == 0 {
		b.WriteString("ZERO")
	} else {
		b.WriteString(indianWords(rupees))
	}
	if paise > 0 {
		b.WriteString(" AND ")
		b.WriteString(indianWords(paise))
		b.WriteString(" PAISE")
	}
	b.WriteString(" ONLY")
	return b.String()
}

// indianWords converts a positive integer using crore/lakh/thousand/hundred
// grouping. n must be > 0.
func indianWords(n int64) string {
	parts := []string{}
	appendGroup := func(v int64, label string) {
		if v > 0 {
			s := belowThousand(v)
			if label != "" {
				s += " " + label
			}
			parts = append(parts, s)
		}
	}

	appendGroup(n/10000000, "CRORE")
	n %= 10000000
	appendGroup(n/100000, "LAKH")
	n %= 100000
	appendGroup(n/1000, "THOUSAND")
	n %= 1000
	appendGroup(n, "")

	return strings.Join(parts, " ")
}

func belowThousand(n int64) string {
	parts := []string{}
	if h := n / 100; h > 0 {
		parts = append(parts, wordOnes[h]+" HUNDRED")
	}
	n %= 100
	switch {
	case n >= 20:
		t := wordTens[n/10]
		if u := n % 10; u > 0 {
			t += " " + wordOnes[u]
		}
		parts = append(parts, t)
	case n > 0:
		parts = append(parts, wordOnes[n])
	}
	return strings.Join(parts, " ")
}
