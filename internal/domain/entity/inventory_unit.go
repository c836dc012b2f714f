package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kinds of serialized inventory units.
const (
	UnitKindChassis = "CHASSIS"
	UnitKindBattery = "BATTERY"
)

// Unit lifecycle. A unit moves AVAILABLE -> SOLD exactly once; there is no way
// back (returns and refunds are handled outside this system).
const (
	UnitStatusAvailable = "AVAILABLE"
	UnitStatusSold      = "SOLD"
)

// InventoryUnit is one physically serialized item: an e-rickshaw chassis or a
// battery. The serial number is the primary key within its kind. Chassis units
// fill the chassis-specific fields, batteries the battery-specific ones.
type InventoryUnit struct {
	Kind         string
	SerialNumber string
	Status       string

	// Chassis fields
	MakeModel        string
	MotorNumber      string
	ControllerNumber string
	Color            string

	// Battery fields
	Make     string
	Model    string
	Ampere   string
	Warranty string

	// Purchase cost, used only for profit reporting. May be zero when the
	// purchase record never captured it.
	CostPrice decimal.Decimal
}

// IsAvailable reports whether the unit can still be sold.
func (u *InventoryUnit) IsAvailable() bool {
	return u.Status == UnitStatusAvailable
}

// BatteryDetails renders the battery as it appears in bill descriptions and
// the ledger, e.g. "EASTMAN 12M EM-130 130AH".
func (u *InventoryUnit) BatteryDetails() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{u.Make, u.Warranty, u.Model, u.Ampere} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
