// Package excel persists the inventory tables and the sales ledger as .xlsx
// workbooks. The files double as the operator's own spreadsheets, so the
// column layout is part of the contract: headers are written on first use and
// expected back verbatim on load.
package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/minatoent/backoffice-api/internal/application/inventory"
	"github.com/minatoent/backoffice-api/internal/domain/entity"
	"github.com/minatoent/backoffice-api/pkg/logger"
)

const sheetName = "Sheet1"

var chassisHeader = []string{
	"serial_number", "make_model", "motor_number", "controller_number",
	"color", "cost_price", "status",
}

var batteryHeader = []string{
	"serial_number", "make", "model", "ampere",
	"warranty", "cost_price", "status",
}

// Compile-time check against the registry's store port.
var _ inventory.Store = (*InventoryStore)(nil)

// InventoryStore maps unit kinds to workbook files. Loads and saves are
// whole-table; the registry owns ordering and status transitions.
type InventoryStore struct {
	mu    sync.Mutex
	paths map[string]string
	log   *logger.Logger
}

// NewInventoryStore builds the store for the two unit kinds.
func NewInventoryStore(chassisPath, batteryPath string, log *logger.Logger) *InventoryStore {
	return &InventoryStore{
		paths: map[string]string{
			entity.UnitKindChassis: chassisPath,
			entity.UnitKindBattery: batteryPath,
		},
		log: log,
	}
}

// LoadUnits reads every row of the kind's workbook. A missing file is created
// with its header so the operator can fill it in by hand.
func (s *InventoryStore) LoadUnits(kind string) ([]*entity.InventoryUnit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok := s.paths[kind]
	if !ok {
		return nil, fmt.Errorf("excel: unknown unit kind %q", kind)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.createEmpty(kind, path); err != nil {
			return nil, err
		}
		s.log.Info().Str("file", path).Msg("inventory workbook created")
		return nil, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excel: open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("excel: read %s: %w", path, err)
	}

	units := make([]*entity.InventoryUnit, 0, len(rows))
	for i, r := range rows {
		if i == 0 {
			continue // header
		}
		u := parseUnitRow(kind, r)
		if u == nil {
			continue
		}
		units = append(units, u)
	}
	return units, nil
}

// SaveUnits rewrites the kind's workbook from scratch and swaps it into
// place, so a crash mid-save leaves the old file intact.
func (s *InventoryStore) SaveUnits(kind string, units []*entity.InventoryUnit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok := s.paths[kind]
	if !ok {
		return fmt.Errorf("excel: unknown unit kind %q", kind)
	}

	f := excelize.NewFile()
	defer f.Close()

	header := headerFor(kind)
	for col, h := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("excel: write header: %w", err)
		}
	}
	for i, u := range units {
		if err := writeUnitRow(f, i+2, kind, u); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("excel: save %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("excel: replace %s: %w", path, err)
	}
	return nil
}

func (s *InventoryStore) createEmpty(kind, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("excel: create data dir: %w", err)
	}
	f := excelize.NewFile()
	defer f.Close()
	for col, h := range headerFor(kind) {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("excel: write header: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("excel: save %s: %w", path, err)
	}
	return nil
}

func headerFor(kind string) []string {
	if kind == entity.UnitKindBattery {
		return batteryHeader
	}
	return chassisHeader
}

// parseUnitRow maps one sheet row onto a unit. Rows without a serial number
// are skipped; a blank status means Available.
func parseUnitRow(kind string, r []string) *entity.InventoryUnit {
	get := func(i int) string {
		if i < len(r) {
			return strings.TrimSpace(r[i])
		}
		return ""
	}
	serial := get(0)
	if serial == "" {
		return nil
	}

	cost, err := decimal.NewFromString(get(5))
	if err != nil {
		cost = decimal.Zero
	}
	status := strings.ToUpper(get(6))
	if status == "" {
		status = entity.UnitStatusAvailable
	}

	u := &entity.InventoryUnit{
		Kind:         kind,
		SerialNumber: serial,
		Status:       status,
		CostPrice:    cost,
	}
	if kind == entity.UnitKindBattery {
		u.Make = get(1)
		u.Model = get(2)
		u.Ampere = get(3)
		u.Warranty = get(4)
	} else {
		u.MakeModel = get(1)
		u.MotorNumber = get(2)
		u.ControllerNumber = get(3)
		u.Color = get(4)
	}
	return u
}

func writeUnitRow(f *excelize.File, rowNum int, kind string, u *entity.InventoryUnit) error {
	var values []any
	if kind == entity.UnitKindBattery {
		values = []any{u.SerialNumber, u.Make, u.Model, u.Ampere, u.Warranty, u.CostPrice.StringFixed(2), u.Status}
	} else {
		values = []any{u.SerialNumber, u.MakeModel, u.MotorNumber, u.ControllerNumber, u.Color, u.CostPrice.StringFixed(2), u.Status}
	}
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("excel: write row %d: %w", rowNum, err)
		}
	}
	return nil
}
