package dto

import (
	"time"

	"github.com/jhoicas/Inventario-vtr/internal/domain/readiness"
)

// ReadinessResponse estado de prontitud de un instante.
type ReadinessResponse struct {
	At             time.Time `json:"at"`
	OperationalDay string    `json:"operational_day"`
	State          string    `json:"state"`
	Index          int       `json:"index"`
	ShiftStart     time.Time `json:"shift_start"`
	States         []string  `json:"states"`
}

// RangeResponse estados de varios días operativos consecutivos.
type RangeResponse struct {
	From string               `json:"from"`
	Days []readiness.DayState `json:"days"`
}

// RefreshResponse resultado de una recarga de tablas.
type RefreshResponse struct {
	LoadedAt  time.Time `json:"loaded_at"`
	FromCache bool      `json:"from_cache"`
	Units     int       `json:"units"`
	Subunits  int       `json:"subunits"`
	Stations  int       `json:"stations"`
	Vehicles  int       `json:"vehicles"`
	Checks    int       `json:"checks"`
}
