package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-vtr/internal/application/catalog"
	"github.com/jhoicas/Inventario-vtr/internal/application/dto"
	"github.com/jhoicas/Inventario-vtr/internal/application/usecase"
)

// OrgHandler jerarquía organizacional: lectura filtrada por alcance y gestión (SUPER).
type OrgHandler struct {
	uc      *usecase.OrgUseCase
	catalog *catalog.Store
}

// NewOrgHandler construye el handler.
func NewOrgHandler(uc *usecase.OrgUseCase, cat *catalog.Store) *OrgHandler {
	return &OrgHandler{uc: uc, catalog: cat}
}

// ListUnits godoc
// @Summary      Unidades visibles
// @Tags         org
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Unit
// @Router       /api/units [get]
func (h *OrgHandler) ListUnits(c *fiber.Ctx) error {
	return c.JSON(h.catalog.Units(GetPrincipal(c)))
}

// ListSubunits godoc
// @Summary      Subunidades visibles
// @Tags         org
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Subunit
// @Router       /api/subunits [get]
func (h *OrgHandler) ListSubunits(c *fiber.Ctx) error {
	return c.JSON(h.catalog.Subunits(GetPrincipal(c)))
}

// ListStations godoc
// @Summary      Cuarteles visibles
// @Tags         org
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Station
// @Router       /api/stations [get]
func (h *OrgHandler) ListStations(c *fiber.Ctx) error {
	return c.JSON(h.catalog.Stations(GetPrincipal(c)))
}

// CreateUnit godoc
// @Summary      Crear unidad
// @Tags         org
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUnitRequest  true  "Datos de la unidad"
// @Success      201   {object}  entity.Unit
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/units [post]
func (h *OrgHandler) CreateUnit(c *fiber.Ctx) error {
	var in dto.CreateUnitRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateUnit(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateUnit godoc
// @Summary      Actualizar unidad
// @Tags         org
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la unidad"
// @Param        body  body  dto.UpdateUnitRequest  true  "Campos a actualizar"
// @Success      200   {object}  entity.Unit
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/units/{id} [put]
func (h *OrgHandler) UpdateUnit(c *fiber.Ctx) error {
	var in dto.UpdateUnitRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateUnit(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteUnit godoc
// @Summary      Eliminar unidad (sin subunidades)
// @Tags         org
// @Security     Bearer
// @Param        id   path  string  true  "ID de la unidad"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/units/{id} [delete]
func (h *OrgHandler) DeleteUnit(c *fiber.Ctx) error {
	if err := h.uc.DeleteUnit(c.UserContext(), GetPrincipal(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateSubunit godoc
// @Summary      Crear subunidad
// @Tags         org
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSubunitRequest  true  "Datos de la subunidad"
// @Success      201   {object}  entity.Subunit
// @Router       /api/subunits [post]
func (h *OrgHandler) CreateSubunit(c *fiber.Ctx) error {
	var in dto.CreateSubunitRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateSubunit(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateSubunit godoc
// @Summary      Actualizar subunidad
// @Tags         org
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la subunidad"
// @Param        body  body  dto.UpdateSubunitRequest  true  "Campos a actualizar"
// @Success      200   {object}  entity.Subunit
// @Router       /api/subunits/{id} [put]
func (h *OrgHandler) UpdateSubunit(c *fiber.Ctx) error {
	var in dto.UpdateSubunitRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateSubunit(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteSubunit godoc
// @Summary      Eliminar subunidad (sin cuarteles)
// @Tags         org
// @Security     Bearer
// @Param        id   path  string  true  "ID de la subunidad"
// @Success      204
// @Router       /api/subunits/{id} [delete]
func (h *OrgHandler) DeleteSubunit(c *fiber.Ctx) error {
	if err := h.uc.DeleteSubunit(c.UserContext(), GetPrincipal(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateStation godoc
// @Summary      Crear cuartel
// @Tags         org
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStationRequest  true  "Datos del cuartel"
// @Success      201   {object}  entity.Station
// @Router       /api/stations [post]
func (h *OrgHandler) CreateStation(c *fiber.Ctx) error {
	var in dto.CreateStationRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateStation(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStation godoc
// @Summary      Actualizar cuartel
// @Tags         org
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cuartel"
// @Param        body  body  dto.UpdateStationRequest  true  "Campos a actualizar"
// @Success      200   {object}  entity.Station
// @Router       /api/stations/{id} [put]
func (h *OrgHandler) UpdateStation(c *fiber.Ctx) error {
	var in dto.UpdateStationRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateStation(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteStation godoc
// @Summary      Eliminar cuartel (sin vehículos)
// @Tags         org
// @Security     Bearer
// @Param        id   path  string  true  "ID del cuartel"
// @Success      204
// @Router       /api/stations/{id} [delete]
func (h *OrgHandler) DeleteStation(c *fiber.Ctx) error {
	if err := h.uc.DeleteStation(c.UserContext(), GetPrincipal(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
