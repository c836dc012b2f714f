package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/minatoent/backoffice-api/internal/application/analytics"
	appbilling "github.com/minatoent/backoffice-api/internal/application/billing"
	"github.com/minatoent/backoffice-api/internal/domain/entity"
	"github.com/minatoent/backoffice-api/pkg/logger"
)

// listSep joins multi-valued cells (battery serials, battery details).
const listSep = "; "

var ledgerHeader = []string{
	"id", "bill_number", "invoice_number", "date",
	"customer_name", "aadhaar_number", "mobile_number", "address",
	"chassis_number", "chassis_make_model", "chassis_motor_number",
	"chassis_controller_number", "chassis_color",
	"battery_serial_numbers", "battery_details", "battery_count",
	"hsn_code", "description",
	"subtotal", "cgst", "sgst", "igst", "round_off", "total",
	"amount_in_words", "tax_type", "finance_team", "bill_file_path",
	"created_at",
}

// Compile-time checks against both ledger ports.
var (
	_ appbilling.LedgerWriter = (*LedgerStore)(nil)
	_ analytics.LedgerReader  = (*LedgerStore)(nil)
)

// LedgerStore is the append-only sales ledger workbook. Rows are only ever
// added at the bottom; nothing rewrites or deletes existing rows.
type LedgerStore struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
}

func NewLedgerStore(path string, log *logger.Logger) *LedgerStore {
	return &LedgerStore{path: path, log: log}
}

// Append writes one sale as the next row, creating the workbook with its
// header on first use.
func (s *LedgerStore) Append(rec *entity.SaleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.openOrCreate()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return fmt.Errorf("excel: read ledger: %w", err)
	}
	rowNum := len(rows) + 1

	values := []any{
		rec.ID, rec.BillNumber, rec.InvoiceNumber, rec.Date.Format("2006-01-02"),
		rec.CustomerName, rec.AadhaarNumber, rec.MobileNumber, rec.Address,
		rec.ChassisNumber, rec.ChassisMakeModel, rec.ChassisMotorNumber,
		rec.ChassisControllerNumber, rec.ChassisColor,
		strings.Join(rec.BatterySerialNumbers, listSep),
		strings.Join(rec.BatteryDetails, listSep),
		rec.BatteryCount,
		rec.HSNCode, rec.Description,
		rec.Subtotal.StringFixed(2), rec.CGST.StringFixed(2), rec.SGST.StringFixed(2),
		rec.IGST.StringFixed(2), rec.RoundOff.StringFixed(2), rec.Total.StringFixed(2),
		rec.AmountInWords, rec.TaxType, rec.FinanceTeam, rec.BillFilePath,
		rec.CreatedAt.Format(time.RFC3339),
	}
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("excel: write ledger row: %w", err)
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("excel: save ledger: %w", err)
	}
	s.log.Debug().Str("bill", rec.BillNumber).Int("row", rowNum).Msg("ledger row appended")
	return nil
}

// All reads every ledger row. Malformed rows are skipped with a warning
// rather than failing the whole read; the ledger is hand-visible and the
// operator may have touched it.
func (s *LedgerStore) All() ([]*entity.SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("excel: open ledger: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("excel: read ledger: %w", err)
	}

	records := make([]*entity.SaleRecord, 0, len(rows))
	for i, r := range rows {
		if i == 0 {
			continue
		}
		rec, err := parseLedgerRow(r)
		if err != nil {
			s.log.Warn().Err(err).Int("row", i+1).Msg("skipping malformed ledger row")
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *LedgerStore) openOrCreate() (*excelize.File, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return nil, fmt.Errorf("excel: create data dir: %w", err)
		}
		f := excelize.NewFile()
		for col, h := range ledgerHeader {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(sheetName, cell, h); err != nil {
				f.Close()
				return nil, fmt.Errorf("excel: write ledger header: %w", err)
			}
		}
		if err := f.SaveAs(s.path); err != nil {
			f.Close()
			return nil, fmt.Errorf("excel: create ledger: %w", err)
		}
		s.log.Info().Str("file", s.path).Msg("ledger workbook created")
		return f, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("excel: open ledger: %w", err)
	}
	return f, nil
}

func parseLedgerRow(r []string) (*entity.SaleRecord, error) {
	get := func(i int) string {
		if i < len(r) {
			return strings.TrimSpace(r[i])
		}
		return ""
	}
	money := func(i int) decimal.Decimal {
		d, err := decimal.NewFromString(get(i))
		if err != nil {
			return decimal.Zero
		}
		return d
	}
	splitList := func(i int) []string {
		v := get(i)
		if v == "" {
			return nil
		}
		return strings.Split(v, listSep)
	}

	if get(1) == "" {
		return nil, fmt.Errorf("missing bill number")
	}
	date, err := time.Parse("2006-01-02", get(3))
	if err != nil {
		return nil, fmt.Errorf("bad date %q", get(3))
	}
	count, _ := strconv.Atoi(get(15))
	createdAt, err := time.Parse(time.RFC3339, get(28))
	if err != nil {
		createdAt = date
	}

	return &entity.SaleRecord{
		ID:                      get(0),
		BillNumber:              get(1),
		InvoiceNumber:           get(2),
		Date:                    date,
		CustomerName:            get(4),
		AadhaarNumber:           get(5),
		MobileNumber:            get(6),
		Address:                 get(7),
		ChassisNumber:           get(8),
		ChassisMakeModel:        get(9),
		ChassisMotorNumber:      get(10),
		ChassisControllerNumber: get(11),
		ChassisColor:            get(12),
		BatterySerialNumbers:    splitList(13),
		BatteryDetails:          splitList(14),
		BatteryCount:            count,
		HSNCode:                 get(16),
		Description:             get(17),
		Subtotal:                money(18),
		CGST:                    money(19),
		SGST:                    money(20),
		IGST:                    money(21),
		RoundOff:                money(22),
		Total:                   money(23),
		AmountInWords:           get(24),
		TaxType:                 get(25),
		FinanceTeam:             get(26),
		BillFilePath:            get(27),
		CreatedAt:               createdAt,
	}, nil
}
