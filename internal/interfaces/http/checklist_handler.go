package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-vtr/internal/application/checklist"
	"github.com/jhoicas/Inventario-vtr/internal/application/dto"
	"github.com/jhoicas/Inventario-vtr/internal/domain"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/pkg/civil"
)

// ChecklistHandler flujo de conferencia: sesión → vehículo → entradas → envío.
type ChecklistHandler struct {
	svc *checklist.Service
}

// NewChecklistHandler construye el handler.
func NewChecklistHandler(svc *checklist.Service) *ChecklistHandler {
	return &ChecklistHandler{svc: svc}
}

// Create godoc
// @Summary      Abrir sesión de conferencia
// @Description  Con vehicle_id la sesión queda en FILLING; sin él, en SELECTING.
// @Tags         checklist
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartSessionRequest  false  "Vehículo opcional"
// @Success      201   {object}  checklist.View
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/checklist/sessions [post]
func (h *ChecklistHandler) Create(c *fiber.Ctx) error {
	var in dto.StartSessionRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &in); err != nil {
			return writeError(c, err)
		}
	}
	var (
		view checklist.View
		err  error
	)
	if in.VehicleID == "" {
		view, err = h.svc.NewSession(GetPrincipal(c))
	} else {
		view, err = h.svc.StartSession(c.UserContext(), GetPrincipal(c), in.VehicleID)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// Get godoc
// @Summary      Estado de la sesión
// @Tags         checklist
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  checklist.View
// @Router       /api/checklist/sessions/{id} [get]
func (h *ChecklistHandler) Get(c *fiber.Ctx) error {
	view, err := h.svc.Session(GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

// SelectVehicle godoc
// @Summary      Elegir vehículo (SELECTING → FILLING)
// @Tags         checklist
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.SelectVehicleRequest  true  "Vehículo"
// @Success      200   {object}  checklist.View
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/checklist/sessions/{id}/vehicle [put]
func (h *ChecklistHandler) SelectVehicle(c *fiber.Ctx) error {
	var in dto.SelectVehicleRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	view, err := h.svc.SelectVehicle(c.UserContext(), GetPrincipal(c), c.Params("id"), in.VehicleID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

// SetEntry godoc
// @Summary      Registrar el resultado de un ítem
// @Tags         checklist
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "ID de la sesión"
// @Param        item_id  path  string  true  "ID del ítem"
// @Param        body     body  dto.SetEntryRequest  true  "OK, NOTED o PRIOR_NOTED"
// @Success      200      {object}  checklist.View
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/checklist/sessions/{id}/entries/{item_id} [put]
func (h *ChecklistHandler) SetEntry(c *fiber.Ctx) error {
	var in dto.SetEntryRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	view, err := h.svc.SetEntry(GetPrincipal(c), c.Params("id"), c.Params("item_id"),
		entity.EntryStatus(in.Status), in.Observation)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

// Submit godoc
// @Summary      Enviar la conferencia
// @Description  Valida completitud, observaciones, personal y justificación; persiste el registro inmutable.
// @Tags         checklist
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.SubmitRequest  true  "Cabecera"
// @Success      201   {object}  entity.InventoryCheck
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/checklist/sessions/{id}/submit [post]
func (h *ChecklistHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	var date civil.Date
	if in.Date != "" {
		d, err := civil.Parse(in.Date)
		if err != nil {
			return writeError(c, fmt.Errorf("%w: date", domain.ErrInvalidInput))
		}
		date = d
	}
	check, err := h.svc.Submit(c.UserContext(), GetPrincipal(c), c.Params("id"), checklist.SubmitInput{
		Date:          date,
		Responsibles:  in.Responsibles,
		Commander:     in.Commander,
		Justification: in.Justification,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(check)
}

// Reset godoc
// @Summary      Volver a SELECTING para otra conferencia
// @Tags         checklist
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  checklist.View
// @Router       /api/checklist/sessions/{id}/reset [post]
func (h *ChecklistHandler) Reset(c *fiber.Ctx) error {
	view, err := h.svc.Reset(GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

// Delete godoc
// @Summary      Descartar la sesión sin guardar
// @Tags         checklist
// @Security     Bearer
// @Param        id   path  string  true  "ID de la sesión"
// @Success      204
// @Router       /api/checklist/sessions/{id} [delete]
func (h *ChecklistHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Cancel(GetPrincipal(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
