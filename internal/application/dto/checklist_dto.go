package dto

import "time"

// StartSessionRequest abre una sesión; con VehicleID pasa directo a FILLING.
type StartSessionRequest struct {
	VehicleID string `json:"vehicle_id" validate:"omitempty,max=64"`
}

// SelectVehicleRequest elige el vehículo de una sesión en SELECTING.
type SelectVehicleRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required,max=64"`
}

// SetEntryRequest resultado de un ítem. Observación obligatoria si Status ≠ OK (la valida el dominio).
type SetEntryRequest struct {
	Status      string `json:"status" validate:"required"`
	Observation string `json:"observation" validate:"max=1000"`
}

// SubmitRequest cabecera de la conferencia. Date vacío = día operacional en curso.
type SubmitRequest struct {
	Date          string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Responsibles  []string `json:"responsibles" validate:"dive,max=120"`
	Commander     string   `json:"commander" validate:"max=120"`
	Justification string   `json:"justification" validate:"max=1000"`
}

// CheckSummary fila del listado de conferencias.
type CheckSummary struct {
	ID            string    `json:"id"`
	VehicleID     string    `json:"vehicle_id"`
	Vehicle       string    `json:"vehicle"`
	Station       string    `json:"station"`
	Date          string    `json:"date"`
	ShiftColor    string    `json:"shift_color"`
	Commander     string    `json:"commander"`
	Items         int       `json:"items"`
	Noted         int       `json:"noted"`
	PriorNoted    int       `json:"prior_noted"`
	Justified     bool      `json:"justified"`
	VehicleStatus string    `json:"vehicle_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// CheckQuery filtros del listado y la exportación. Fechas YYYY-MM-DD inclusive.
type CheckQuery struct {
	VehicleID string `query:"vehicle_id" validate:"omitempty,max=64"`
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}
