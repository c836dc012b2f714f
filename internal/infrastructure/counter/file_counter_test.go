package counter_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minatoent/backoffice-api/internal/domain/billing"
	"github.com/minatoent/backoffice-api/internal/infrastructure/counter"
	"github.com/minatoent/backoffice-api/pkg/logger"
)

func newCounter(dir string) *counter.FileCounter {
	return counter.NewFileCounter(dir, "ME/GST",
		logger.New(logger.Config{Env: "test", Level: "error"}))
}

func TestNext_SequentialAndPersistent(t *testing.T) {
	dir := t.TempDir()
	c := newCounter(dir)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("BILL-%d-0001", year), c.Next(billing.CounterKindBill))
	assert.Equal(t, fmt.Sprintf("BILL-%d-0002", year), c.Next(billing.CounterKindBill))

	// a fresh instance on the same directory continues the sequence
	c2 := newCounter(dir)
	assert.Equal(t, fmt.Sprintf("BILL-%d-0003", year), c2.Next(billing.CounterKindBill))
}

func TestNext_InvoiceUsesFinancialYear(t *testing.T) {
	c := newCounter(t.TempDir())

	start, end := billing.FinancialYear(time.Now())
	want := fmt.Sprintf("ME/GST/%02d-%02d/001", start, end)
	assert.Equal(t, want, c.Next(billing.CounterKindInvoice))
}

func TestNext_IndependentCounters(t *testing.T) {
	c := newCounter(t.TempDir())

	c.Next(billing.CounterKindBill)
	c.Next(billing.CounterKindBill)
	got := c.Next(billing.CounterKindInvoice)
	assert.Contains(t, got, "/001", "invoice counter unaffected by bill counter")
}

func TestNext_CorruptFileFallsBackToTimestamp(t *testing.T) {
	dir := t.TempDir()
	c := newCounter(dir)
	c.Next(billing.CounterKindBill)

	path := filepath.Join(dir, fmt.Sprintf("bill_counter_%d.json", time.Now().Year()))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got := c.Next(billing.CounterKindBill)
	assert.Contains(t, got, "-T", "timestamp fallback number")
}
