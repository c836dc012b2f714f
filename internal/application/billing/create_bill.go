package billing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/minatoent/backoffice-api/internal/application/dto"
	"github.com/minatoent/backoffice-api/internal/application/inventory"
	"github.com/minatoent/backoffice-api/internal/domain"
	domainbilling "github.com/minatoent/backoffice-api/internal/domain/billing"
	"github.com/minatoent/backoffice-api/internal/domain/entity"
	"github.com/minatoent/backoffice-api/internal/domain/identity"
	"github.com/minatoent/backoffice-api/pkg/logger"
)

// Config static parameters of the billing flow.
type Config struct {
	Seller   SellerInfo
	HSNCode  string
	BillsDir string
}

// GenerateBillUseCase runs the whole bill-generation transaction:
//
//	validate -> resolve units -> compose description -> tax breakdown ->
//	issue numbers -> render bill -> mark units sold -> append ledger row
//
// A mutex serializes concurrent callers: the registry's load-all/save-all
// persistence and the counters are not safe under interleaved transactions.
type GenerateBillUseCase struct {
	mu       sync.Mutex
	registry UnitRegistry
	counters CounterService
	ledger   LedgerWriter
	renderer BillRenderer
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
}

// NewGenerateBillUseCase wires the transaction.
func NewGenerateBillUseCase(
	registry UnitRegistry,
	counters CounterService,
	ledger LedgerWriter,
	renderer BillRenderer,
	cfg Config,
	log *logger.Logger,
) *GenerateBillUseCase {
	return &GenerateBillUseCase{
		registry: registry,
		counters: counters,
		ledger:   ledger,
		renderer: renderer,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// GenerateBill executes one sale. Validation happens before any state
// mutation; after the bill file exists the sale has happened from the
// business standpoint, so inventory-save and ledger failures downgrade to
// warnings instead of rolling anything back.
func (uc *GenerateBillUseCase) GenerateBill(ctx context.Context, in dto.GenerateBillRequest) (*dto.BillResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	in.CustomerName = strings.TrimSpace(in.CustomerName)
	if in.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", domain.ErrInvalidInput)
	}
	if in.ChassisSerial == "" && len(in.BatterySerials) == 0 {
		return nil, fmt.Errorf("%w: select a chassis or at least one battery", domain.ErrInvalidInput)
	}

	// Resolve the selection up front; a stale or double-sold serial must fail
	// the request before anything is written anywhere.
	var chassis *entity.InventoryUnit
	if in.ChassisSerial != "" {
		u, err := uc.registry.Find(entity.UnitKindChassis, in.ChassisSerial)
		if err != nil {
			return nil, fmt.Errorf("%w: chassis %s", domain.ErrNotFound, in.ChassisSerial)
		}
		if !u.IsAvailable() {
			return nil, fmt.Errorf("%w: chassis %s", domain.ErrUnitSold, in.ChassisSerial)
		}
		chassis = u
	}
	batteries := make([]*entity.InventoryUnit, 0, len(in.BatterySerials))
	for _, serial := range in.BatterySerials {
		u, err := uc.registry.Find(entity.UnitKindBattery, serial)
		if err != nil {
			return nil, fmt.Errorf("%w: battery %s", domain.ErrNotFound, serial)
		}
		if !u.IsAvailable() {
			return nil, fmt.Errorf("%w: battery %s", domain.ErrUnitSold, serial)
		}
		batteries = append(batteries, u)
	}

	breakdown, err := domainbilling.ComputeBreakdown(in.FinalAmount, in.InterState)
	if err != nil {
		return nil, fmt.Errorf("%w: final amount must be positive", domain.ErrInvalidInput)
	}

	now := uc.now()
	description := domainbilling.ComposeDescription(chassis, batteries)
	words := domainbilling.AmountInWords(breakdown.Total)
	billNumber := uc.counters.Next(domainbilling.CounterKindBill)
	invoiceNumber := uc.counters.Next(domainbilling.CounterKindInvoice)

	addr1, addr2 := identity.SplitAddress(in.Address)
	doc := &BillDocument{
		Seller:         uc.cfg.Seller,
		BillNumber:     billNumber,
		InvoiceNumber:  invoiceNumber,
		Date:           now,
		CustomerName:   in.CustomerName,
		ParentName:     in.ParentName,
		AddressLine1:   addr1,
		AddressLine2:   addr2,
		AadhaarDisplay: identity.FormatAadhaar(in.AadhaarNumber),
		Mobile:         in.MobileNumber,
		Description:    description,
		HSNCode:        uc.cfg.HSNCode,
		Quantity:       unitCount(chassis, batteries),
		Tax:            breakdown,
		AmountInWords:  words,
		FinanceTeam:    in.FinanceTeam,
	}

	pdf, err := uc.renderer.RenderBill(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("render bill: %w", err)
	}
	billPath := filepath.Join(uc.cfg.BillsDir, billFilename(in.CustomerName, billNumber))
	if err := os.MkdirAll(uc.cfg.BillsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create bills dir: %w", err)
	}
	if err := os.WriteFile(billPath, pdf, 0o644); err != nil {
		return nil, fmt.Errorf("write bill file: %w", err)
	}

	// Point of no return: the bill exists. Everything below is best-effort
	// bookkeeping and must not undo the sale.
	var warnings []string

	refs := make([]inventory.UnitRef, 0, 1+len(batteries))
	if chassis != nil {
		refs = append(refs, inventory.UnitRef{Kind: entity.UnitKindChassis, Serial: chassis.SerialNumber})
	}
	for _, b := range batteries {
		refs = append(refs, inventory.UnitRef{Kind: entity.UnitKindBattery, Serial: b.SerialNumber})
	}
	if err := uc.registry.MarkSold(refs); err != nil {
		uc.log.Error().Err(err).Str("bill", billNumber).Msg("inventory save failed; in-memory status stands until restart")
		warnings = append(warnings, "inventory table could not be saved: "+err.Error())
	}

	record := uc.buildSaleRecord(in, chassis, batteries, description, words, breakdown, billNumber, invoiceNumber, billPath, now)
	if err := uc.ledger.Append(record); err != nil {
		uc.log.Error().Err(err).Str("bill", billNumber).Msg("ledger append failed; sale record lost")
		warnings = append(warnings, "sale could not be recorded in the ledger: "+err.Error())
	}

	uc.log.Info().
		Str("bill", billNumber).
		Str("invoice", invoiceNumber).
		Str("customer", in.CustomerName).
		Str("total", breakdown.Total.StringFixed(2)).
		Msg("bill generated")

	return &dto.BillResponse{
		BillNumber:    billNumber,
		InvoiceNumber: invoiceNumber,
		Date:          now.Format("02/01/2006"),
		Description:   description,
		Tax: dto.TaxBreakdownResponse{
			BaseAmount:  breakdown.Base,
			CGST:        breakdown.CGST,
			SGST:        breakdown.SGST,
			IGST:        breakdown.IGST,
			RoundOff:    breakdown.RoundOff,
			TotalAmount: breakdown.Total,
			TaxType:     breakdown.TaxType,
		},
		AmountInWords: words,
		BillFilePath:  billPath,
		DownloadURL:   "/api/bills/" + filepath.Base(billPath),
		Warnings:      warnings,
	}, nil
}

func (uc *GenerateBillUseCase) buildSaleRecord(
	in dto.GenerateBillRequest,
	chassis *entity.InventoryUnit,
	batteries []*entity.InventoryUnit,
	description, words string,
	breakdown domainbilling.TaxBreakdown,
	billNumber, invoiceNumber, billPath string,
	now time.Time,
) *entity.SaleRecord {
	rec := &entity.SaleRecord{
		ID:            uuid.New().String(),
		BillNumber:    billNumber,
		InvoiceNumber: invoiceNumber,
		Date:          now,
		CustomerName:  in.CustomerName,
		AadhaarNumber: in.AadhaarNumber,
		MobileNumber:  in.MobileNumber,
		Address:       in.Address,
		HSNCode:       uc.cfg.HSNCode,
		Description:   description,
		Subtotal:      breakdown.Base,
		CGST:          breakdown.CGST,
		SGST:          breakdown.SGST,
		IGST:          breakdown.IGST,
		RoundOff:      breakdown.RoundOff,
		Total:         breakdown.Total,
		AmountInWords: words,
		TaxType:       breakdown.TaxType,
		FinanceTeam:   in.FinanceTeam,
		BillFilePath:  billPath,
		CreatedAt:     now,
	}
	if chassis != nil {
		rec.ChassisNumber = chassis.SerialNumber
		rec.ChassisMakeModel = chassis.MakeModel
		rec.ChassisMotorNumber = chassis.MotorNumber
		rec.ChassisControllerNumber = chassis.ControllerNumber
		rec.ChassisColor = chassis.Color
	}
	for _, b := range batteries {
		rec.BatterySerialNumbers = append(rec.BatterySerialNumbers, b.SerialNumber)
		rec.BatteryDetails = append(rec.BatteryDetails, b.BatteryDetails())
	}
	rec.BatteryCount = len(batteries)
	return rec
}

func unitCount(chassis *entity.InventoryUnit, batteries []*entity.InventoryUnit) int {
	n := len(batteries)
	if chassis != nil {
		n++
	}
	return n
}

var reUnsafeFilename = regexp.MustCompile(`[^\w\-]+`)

// billFilename builds "Bill_NANDU_SINGH_BILL-2026-0042.pdf" from free-text
// customer input.
func billFilename(customerName, billNumber string) string {
	safe := reUnsafeFilename.ReplaceAllString(strings.TrimSpace(customerName), "_")
	safe = strings.Trim(safe, "_")
	if safe == "" {
		safe = "Customer"
	}
	return fmt.Sprintf("Bill_%s_%s.pdf", strings.ToUpper(safe), billNumber)
}
