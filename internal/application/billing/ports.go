package billing

import (
	"context"

	"github.com/minatoent/backoffice-api/internal/application/inventory"
	"github.com/minatoent/backoffice-api/internal/domain/entity"
)

// CounterService issues formatted document numbers. Implementations persist
// the counter before returning and degrade to a timestamp-derived number when
// persistence fails; they never abort bill generation over numbering.
type CounterService interface {
	Next(kind string) string
}

// LedgerWriter appends one finalized sale to the durable ledger. Append is
// not idempotent: the use case must call it exactly once per successful bill.
type LedgerWriter interface {
	Append(rec *entity.SaleRecord) error
}

// UnitRegistry is the slice of the inventory registry the billing flow needs.
type UnitRegistry interface {
	Find(kind, serial string) (*entity.InventoryUnit, error)
	MarkSold(refs []inventory.UnitRef) error
}

// BillRenderer turns a fully-populated bill document into the customer-facing
// file. The use case supplies a complete, typed context; the renderer owns
// layout only.
type BillRenderer interface {
	RenderBill(ctx context.Context, doc *BillDocument) ([]byte, error)
}
