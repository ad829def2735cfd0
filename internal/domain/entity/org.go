package entity

import "time"

// Unit nodo superior de la jerarquía organizacional (p. ej. comando regional).
type Unit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Acronym   string    `json:"acronym,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subunit nodo intermedio; pertenece a exactamente una Unit.
type Subunit struct {
	ID        string    `json:"id"`
	UnitID    string    `json:"unit_id"`
	Name      string    `json:"name"`
	Acronym   string    `json:"acronym,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Station nodo hoja (cuartel); pertenece a exactamente una Subunit y agrupa vehículos.
type Station struct {
	ID             string    `json:"id"`
	SubunitID      string    `json:"subunit_id"`
	Name           string    `json:"name"`
	Classification string    `json:"classification,omitempty"` // etiqueta libre (p. ej. "posto avançado")
	Municipality   string    `json:"municipality,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
