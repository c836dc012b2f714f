package billing

import (
	"fmt"
	"strings"

	"github.com/minatoent/backoffice-api/internal/domain/entity"
)

// ComposeDescription builds the human-readable line-item description for a
// sale from the resolved chassis and battery records.
//
//	chassis only:      "E-RICKSHAW XYZ CHASSIS NO-C1 MOTOR NO-M1"
//	chassis+batteries: ... + " WITH EASTMAN 12M EM-130 130AH, ..."
//	batteries only:    "BATTERIES: EASTMAN 12M EM-130 130AH, ..."
//	neither:           ""
func ComposeDescription(chassis *entity.InventoryUnit, batteries []*entity.InventoryUnit) string {
	batteryParts := make([]string, 0, len(batteries))
	for _, b := range batteries {
		batteryParts = append(batteryParts, b.BatteryDetails())
	}
	batteryText := strings.Join(batteryParts, ", ")

	if chassis == nil {
		if batteryText == "" {
			return ""
		}
		return "BATTERIES: " + batteryText
	}

	desc := fmt.Sprintf("E-RICKSHAW %s CHASSIS NO-%s MOTOR NO-%s",
		chassis.MakeModel, chassis.SerialNumber, chassis.MotorNumber)
	if batteryText != "" {
		desc += " WITH " + batteryText
	}
	return desc
}
