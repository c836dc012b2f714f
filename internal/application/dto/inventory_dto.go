package dto

import "github.com/shopspring/decimal"

// InventoryUnitResponse one serialized unit as returned by search/find.
type InventoryUnitResponse struct {
	Kind         string `json:"kind"`
	SerialNumber string `json:"serial_number"`
	Status       string `json:"status"`

	MakeModel        string `json:"make_model,omitempty"`
	MotorNumber      string `json:"motor_number,omitempty"`
	ControllerNumber string `json:"controller_number,omitempty"`
	Color            string `json:"color,omitempty"`

	Make     string `json:"make,omitempty"`
	Model    string `json:"model,omitempty"`
	Ampere   string `json:"ampere,omitempty"`
	Warranty string `json:"warranty,omitempty"`

	CostPrice decimal.Decimal `json:"cost_price,omitempty"`
}
