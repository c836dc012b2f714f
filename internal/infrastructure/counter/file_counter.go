// Package counter issues sequential bill and invoice numbers backed by small
// JSON files, one per counter. The numbers must survive restarts, so the
// incremented value is persisted before the formatted number is handed out.
package counter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	appbilling "github.com/minatoent/backoffice-api/internal/application/billing"
	"github.com/minatoent/backoffice-api/internal/domain/billing"
	"github.com/minatoent/backoffice-api/pkg/logger"
)

// Compile-time check against the billing port.
var _ appbilling.CounterService = (*FileCounter)(nil)

type counterFile struct {
	Counter int64 `json:"counter"`
}

// FileCounter persists one JSON file per counter kind under dir. The bill
// counter resets each calendar year and the invoice counter each Indian
// financial year, so the period is baked into the filename.
type FileCounter struct {
	mu            sync.Mutex
	dir           string
	invoicePrefix string
	log           *logger.Logger
	now           func() time.Time
}

func NewFileCounter(dir, invoicePrefix string, log *logger.Logger) *FileCounter {
	return &FileCounter{dir: dir, invoicePrefix: invoicePrefix, log: log, now: time.Now}
}

// Next increments the kind's counter and returns the formatted number. When
// the counter file cannot be read or written, a timestamp-derived fallback
// number is returned instead: billing must not stop over a numbering file.
func (c *FileCounter) Next(kind string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	path := c.pathFor(kind, now)

	n, err := c.nextValue(path)
	if err != nil {
		c.log.Error().Err(err).Str("kind", kind).Msg("counter unavailable, using timestamp fallback")
		if kind == billing.CounterKindInvoice {
			return billing.FallbackInvoiceNumber(c.invoicePrefix, now)
		}
		return billing.FallbackBillNumber(now)
	}

	if kind == billing.CounterKindInvoice {
		return billing.FormatInvoiceNumber(c.invoicePrefix, now, n)
	}
	return billing.FormatBillNumber(now, n)
}

// pathFor encodes the numbering period into the filename, so a new year
// naturally starts a fresh file at 1.
func (c *FileCounter) pathFor(kind string, now time.Time) string {
	if kind == billing.CounterKindInvoice {
		start, end := billing.FinancialYear(now)
		return filepath.Join(c.dir, fmt.Sprintf("invoice_counter_%02d-%02d.json", start, end))
	}
	return filepath.Join(c.dir, fmt.Sprintf("bill_counter_%d.json", now.Year()))
}

// nextValue reads, increments and persists the counter. The write goes to a
// temp file first and is renamed over the original, so a crash cannot leave a
// half-written counter behind.
func (c *FileCounter) nextValue(path string) (int64, error) {
	var state counterFile
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(data, &state); jsonErr != nil {
			return 0, fmt.Errorf("counter: parse %s: %w", path, jsonErr)
		}
	case os.IsNotExist(err):
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return 0, fmt.Errorf("counter: create dir: %w", mkErr)
		}
	default:
		return 0, fmt.Errorf("counter: read %s: %w", path, err)
	}

	state.Counter++

	out, err := json.Marshal(state)
	if err != nil {
		return 0, fmt.Errorf("counter: marshal: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return 0, fmt.Errorf("counter: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return 0, fmt.Errorf("counter: replace %s: %w", path, err)
	}
	return state.Counter, nil
}
