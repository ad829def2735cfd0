package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-vtr/internal/application/catalog"
	"github.com/jhoicas/Inventario-vtr/internal/application/dto"
	"github.com/jhoicas/Inventario-vtr/internal/application/report"
	"github.com/jhoicas/Inventario-vtr/internal/domain"
	"github.com/jhoicas/Inventario-vtr/internal/domain/authz"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/pkg/civil"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CheckHandler consulta y documentos de conferencias ya registradas.
type CheckHandler struct {
	catalog *catalog.Store
	reports *report.ReportUseCase
}

// NewCheckHandler construye el handler.
func NewCheckHandler(cat *catalog.Store, reports *report.ReportUseCase) *CheckHandler {
	return &CheckHandler{catalog: cat, reports: reports}
}

// List godoc
// @Summary      Conferencias visibles, más recientes primero
// @Tags         checks
// @Security     Bearer
// @Produce      json
// @Param        vehicle_id  query  string  false  "Filtrar por vehículo"
// @Param        from        query  string  false  "Desde YYYY-MM-DD"
// @Param        to          query  string  false  "Hasta YYYY-MM-DD"
// @Success      200  {array}  dto.CheckSummary
// @Router       /api/checks [get]
func (h *CheckHandler) List(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if !p.Can(authz.CapViewChecks) {
		return writeError(c, domain.ErrForbidden)
	}
	f, err := checkFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	checks := h.catalog.Checks(p, f)
	out := make([]dto.CheckSummary, len(checks))
	for i := range checks {
		out[i] = toCheckSummary(&checks[i])
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Conferencia completa
// @Tags         checks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la conferencia"
// @Success      200  {object}  entity.InventoryCheck
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checks/{id} [get]
func (h *CheckHandler) GetByID(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if !p.Can(authz.CapViewChecks) {
		return writeError(c, domain.ErrForbidden)
	}
	out, err := h.catalog.Check(p, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar PDF de la conferencia
// @Tags         checks
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la conferencia"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checks/{id}/pdf [get]
func (h *CheckHandler) PDF(c *fiber.Ctx) error {
	b, name, err := h.reports.CheckPDF(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(b)
}

// Export godoc
// @Summary      Exportar conferencias a XLSX
// @Tags         checks
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        vehicle_id  query  string  false  "Filtrar por vehículo"
// @Param        from        query  string  false  "Desde YYYY-MM-DD"
// @Param        to          query  string  false  "Hasta YYYY-MM-DD"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/checks/export [get]
func (h *CheckHandler) Export(c *fiber.Ctx) error {
	f, err := checkFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	b, name, err := h.reports.ExportChecks(c.UserContext(), GetPrincipal(c), f)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(b)
}

func checkFilter(c *fiber.Ctx) (catalog.CheckFilter, error) {
	var q dto.CheckQuery
	if err := parseQuery(c, &q); err != nil {
		return catalog.CheckFilter{}, err
	}
	f := catalog.CheckFilter{VehicleID: q.VehicleID}
	var err error
	if q.From != "" {
		if f.From, err = civil.Parse(q.From); err != nil {
			return f, fmt.Errorf("%w: from", domain.ErrInvalidInput)
		}
	}
	if q.To != "" {
		if f.To, err = civil.Parse(q.To); err != nil {
			return f, fmt.Errorf("%w: to", domain.ErrInvalidInput)
		}
	}
	return f, nil
}

func toCheckSummary(ch *entity.InventoryCheck) dto.CheckSummary {
	return dto.CheckSummary{
		ID:            ch.ID,
		VehicleID:     ch.VehicleID,
		Vehicle:       strings.TrimSpace(ch.Header.VehiclePrefix + " " + ch.Header.VehicleName),
		Station:       ch.Header.StationName,
		Date:          ch.Date.String(),
		ShiftColor:    ch.ShiftColor,
		Commander:     ch.Commander,
		Items:         len(ch.Entries),
		Noted:         ch.CountByStatus(entity.EntryNoted),
		PriorNoted:    ch.CountByStatus(entity.EntryPriorNoted),
		Justified:     ch.Justification != "",
		VehicleStatus: string(ch.VehicleStatus),
		CreatedAt:     ch.CreatedAt,
	}
}
