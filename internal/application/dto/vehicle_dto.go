package dto

import "github.com/shopspring/decimal"

// MaterialItemRequest ítem de la relación de material. ID vacío = ítem nuevo.
type MaterialItemRequest struct {
	ID            string          `json:"id" validate:"omitempty,max=64"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Specification string          `json:"specification" validate:"omitempty,max=500"`
	Quantity      decimal.Decimal `json:"quantity"`
	Compartment   string          `json:"compartment" validate:"omitempty,max=100"`
}

// CreateVehicleRequest entrada para crear un vehículo. StationID vacío = no vinculado.
type CreateVehicleRequest struct {
	Prefix    string                `json:"prefix" validate:"required,min=1,max=20"`
	Name      string                `json:"name" validate:"required,min=1,max=100"`
	Status    string                `json:"status" validate:"required,oneof=OPERATING RESERVE DECOMMISSIONED"`
	StationID string                `json:"station_id" validate:"omitempty,max=64"`
	Materials []MaterialItemRequest `json:"materials" validate:"omitempty,dive"`
}

// UpdateVehicleRequest campos opcionales; StationID "" desvincula el vehículo.
type UpdateVehicleRequest struct {
	Prefix    *string `json:"prefix" validate:"omitempty,min=1,max=20"`
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	Status    *string `json:"status" validate:"omitempty,oneof=OPERATING RESERVE DECOMMISSIONED"`
	StationID *string `json:"station_id" validate:"omitempty,max=64"`
}

// ReplaceMaterialsRequest nueva relación de material completa (reemplaza la anterior).
type ReplaceMaterialsRequest struct {
	Materials []MaterialItemRequest `json:"materials" validate:"dive"`
}
