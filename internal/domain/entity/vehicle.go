package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// VehicleStatus situación operativa de un vehículo.
type VehicleStatus string

// Estados operativos válidos.
const (
	VehicleOperating      VehicleStatus = "OPERATING"
	VehicleReserve        VehicleStatus = "RESERVE"
	VehicleDecommissioned VehicleStatus = "DECOMMISSIONED"
)

// Valid informa si el estado es uno de los definidos.
func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleOperating, VehicleReserve, VehicleDecommissioned:
		return true
	}
	return false
}

// MaterialItem ítem de la relación de material de un vehículo.
type MaterialItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Specification string          `json:"specification,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Compartment   string          `json:"compartment,omitempty"`
}

// MarshalJSON serializa la cantidad con la escala con que fue cargada: "1.50" no se vuelve "1.5".
func (m MaterialItem) MarshalJSON() ([]byte, error) {
	type plain MaterialItem
	return json.Marshal(struct {
		plain
		Quantity string `json:"quantity"`
	}{plain(m), QuantityText(m.Quantity)})
}

// QuantityText texto de una cantidad conservando sus decimales.
func QuantityText(q decimal.Decimal) string {
	if exp := q.Exponent(); exp < 0 {
		return q.StringFixed(-exp)
	}
	return q.String()
}

// Vehicle vehículo de emergencia con su lista ordenada de material.
// StationID vacío = vehículo no vinculado a ningún cuartel.
type Vehicle struct {
	ID        string         `json:"id"`
	Prefix    string         `json:"prefix"`
	Name      string         `json:"name"`
	Status    VehicleStatus  `json:"status"`
	Materials []MaterialItem `json:"materials"`
	StationID string         `json:"station_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Linked informa si el vehículo referencia un cuartel.
func (v *Vehicle) Linked() bool {
	return v.StationID != ""
}

// DisplayName prefijo + nombre, como se muestra en pantallas y reportes.
func (v *Vehicle) DisplayName() string {
	if v.Prefix == "" {
		return v.Name
	}
	return v.Prefix + " " + v.Name
}

// CloneMaterials copia la lista de material; la copia no comparte el arreglo subyacente.
func CloneMaterials(items []MaterialItem) []MaterialItem {
	if items == nil {
		return nil
	}
	out := make([]MaterialItem, len(items))
	copy(out, items)
	return out
}
