package billing

import (
	"fmt"
	"time"
)

// Document kinds with their own persistent counters.
const (
	CounterKindBill    = "bill"
	CounterKindInvoice = "invoice"
)

// FinancialYear returns the Indian financial year (April to March) that t
// falls in, as two-digit start/end years. August 2026 -> (26, 27);
// February 2026 -> (25, 26).
func FinancialYear(t time.Time) (start, end int) {
	y := t.Year()
	if t.Month() < time.April {
		y--
	}
	return y % 100, (y + 1) % 100
}

// FormatBillNumber renders a bill counter value, e.g. "BILL-2026-0042".
func FormatBillNumber(t time.Time, n int64) string {
	return fmt.Sprintf("BILL-%d-%04d", t.Year(), n)
}

// FormatInvoiceNumber renders a GST invoice counter value against the Indian
// financial year, e.g. "ME/GST/26-27/007".
func FormatInvoiceNumber(prefix string, t time.Time, n int64) string {
	fyStart, fyEnd := FinancialYear(t)
	return fmt.Sprintf("%s/%02d-%02d/%03d", prefix, fyStart, fyEnd, n)
}

// FallbackBillNumber is used when the counter file cannot be read or written:
// numbering degrades to a timestamp so bill generation never aborts over
// bookkeeping. Uniqueness is best-effort at one bill per second.
func FallbackBillNumber(t time.Time) string {
	return fmt.Sprintf("BILL-%d-T%s", t.Year(), t.Format("20060102150405"))
}

// FallbackInvoiceNumber is the timestamp-derived invoice counterpart.
func FallbackInvoiceNumber(prefix string, t time.Time) string {
	fyStart, fyEnd := FinancialYear(t)
	return fmt.Sprintf("%s/%02d-%02d/T%s", prefix, fyStart, fyEnd, t.Format("20060102150405"))
}
