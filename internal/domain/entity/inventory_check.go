package entity

import (
	"time"

	"github.com/jhoicas/Inventario-vtr/pkg/civil"
)

// EntryStatus resultado de la conferencia de un ítem.
type EntryStatus string

// Resultados válidos de una entrada.
const (
	EntryOK         EntryStatus = "OK"
	EntryNoted      EntryStatus = "NOTED"       // alteración encontrada en esta conferencia
	EntryPriorNoted EntryStatus = "PRIOR_NOTED" // alteración ya registrada anteriormente
)

// Valid informa si el resultado es uno de los definidos.
func (s EntryStatus) Valid() bool {
	switch s {
	case EntryOK, EntryNoted, EntryPriorNoted:
		return true
	}
	return false
}

// RequiresObservation todo resultado distinto de OK exige observación.
func (s EntryStatus) RequiresObservation() bool {
	return s != EntryOK
}

// CheckEntry resultado de un ítem dentro de una conferencia.
type CheckEntry struct {
	ItemID      string      `json:"item_id"`
	Status      EntryStatus `json:"status"`
	Observation string      `json:"observation,omitempty"`
}

// CheckHeader nombres organizacionales resueltos en el momento de la conferencia.
type CheckHeader struct {
	UnitName              string `json:"unit_name"`
	SubunitName           string `json:"subunit_name"`
	StationName           string `json:"station_name"`
	StationClassification string `json:"station_classification"`
	Municipality          string `json:"municipality"`
	VehiclePrefix         string `json:"vehicle_prefix"`
	VehicleName           string `json:"vehicle_name"`
}

// InventoryCheck registro de auditoría de una conferencia de material. Inmutable una vez creado:
// MaterialSnapshot y Entries no cambian aunque el vehículo se edite después.
type InventoryCheck struct {
	ID               string         `json:"id"`
	VehicleID        string         `json:"vehicle_id"`
	Date             civil.Date     `json:"date"`
	ShiftColor       string         `json:"shift_color"`
	Responsibles     []string       `json:"responsibles"`
	Commander        string         `json:"commander"`
	Entries          []CheckEntry   `json:"entries"`
	CreatedAt        time.Time      `json:"created_at"`
	CreatedBy        string         `json:"created_by,omitempty"`
	Justification    string         `json:"justification,omitempty"`
	Header           CheckHeader    `json:"header"`
	MaterialSnapshot []MaterialItem `json:"material_snapshot"`
	VehicleStatus    VehicleStatus  `json:"vehicle_status"`
}

// CountByStatus cuántas entradas tienen el resultado indicado.
func (c *InventoryCheck) CountByStatus(s EntryStatus) int {
	n := 0
	for _, e := range c.Entries {
		if e.Status == s {
			n++
		}
	}
	return n
}

// SnapshotItem busca un ítem del snapshot por ID.
func (c *InventoryCheck) SnapshotItem(id string) (MaterialItem, bool) {
	for _, it := range c.MaterialSnapshot {
		if it.ID == id {
			return it, true
		}
	}
	return MaterialItem{}, false
}

// Clone copia profunda: el resultado no comparte listas con el original.
func (c *InventoryCheck) Clone() InventoryCheck {
	out := *c
	out.Responsibles = append([]string(nil), c.Responsibles...)
	out.Entries = append([]CheckEntry(nil), c.Entries...)
	out.MaterialSnapshot = CloneMaterials(c.MaterialSnapshot)
	return out
}
