package dto

// CreateUnitRequest entrada para crear una unidad.
type CreateUnitRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Acronym string `json:"acronym" validate:"omitempty,max=30"`
}

// UpdateUnitRequest campos opcionales; nil = sin cambio.
type UpdateUnitRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Acronym *string `json:"acronym" validate:"omitempty,max=30"`
}

// CreateSubunitRequest entrada para crear una subunidad bajo una unidad existente.
type CreateSubunitRequest struct {
	UnitID  string `json:"unit_id" validate:"required"`
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Acronym string `json:"acronym" validate:"omitempty,max=30"`
}

// UpdateSubunitRequest campos opcionales; UnitID mueve la subunidad a otra unidad.
type UpdateSubunitRequest struct {
	UnitID  *string `json:"unit_id" validate:"omitempty,min=1"`
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Acronym *string `json:"acronym" validate:"omitempty,max=30"`
}

// CreateStationRequest entrada para crear un cuartel bajo una subunidad existente.
type CreateStationRequest struct {
	SubunitID      string `json:"subunit_id" validate:"required"`
	Name           string `json:"name" validate:"required,min=1,max=200"`
	Classification string `json:"classification" validate:"omitempty,max=100"`
	Municipality   string `json:"municipality" validate:"omitempty,max=120"`
}

// UpdateStationRequest campos opcionales; nil = sin cambio.
type UpdateStationRequest struct {
	SubunitID      *string `json:"subunit_id" validate:"omitempty,min=1"`
	Name           *string `json:"name" validate:"omitempty,min=1,max=200"`
	Classification *string `json:"classification" validate:"omitempty,max=100"`
	Municipality   *string `json:"municipality" validate:"omitempty,max=120"`
}
