package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-vtr/internal/application/dto"
	"github.com/jhoicas/Inventario-vtr/internal/domain"
	"github.com/jhoicas/Inventario-vtr/internal/domain/readiness"
	"github.com/jhoicas/Inventario-vtr/pkg/civil"
)

// maxRangeDays límite de días por consulta de rango.
const maxRangeDays = 366

// CalendarHandler expone el calendario de prontitud.
type CalendarHandler struct {
	cal *readiness.Calendar
	now func() time.Time
}

// NewCalendarHandler construye el handler.
func NewCalendarHandler(cal *readiness.Calendar, now func() time.Time) *CalendarHandler {
	if now == nil {
		now = time.Now
	}
	return &CalendarHandler{cal: cal, now: now}
}

// Readiness godoc
// @Summary      Estado de prontitud de un instante
// @Tags         calendar
// @Security     Bearer
// @Produce      json
// @Param        at  query  string  false  "Instante RFC3339 (por defecto ahora)"
// @Success      200  {object}  dto.ReadinessResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/calendar/readiness [get]
func (h *CalendarHandler) Readiness(c *fiber.Ctx) error {
	at := h.now()
	if s := c.Query("at"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return writeError(c, fmt.Errorf("%w: at debe ser RFC3339", domain.ErrInvalidInput))
		}
		at = t
	}
	day := h.cal.ShiftReferenceDate(at)
	states := h.cal.States()
	return c.JSON(dto.ReadinessResponse{
		At:             at,
		OperationalDay: day.String(),
		State:          h.cal.ReadinessState(at),
		Index:          h.cal.StateIndex(at),
		ShiftStart:     h.cal.ShiftStart(day),
		States:         states[:],
	})
}

// Range godoc
// @Summary      Estados de varios días operativos
// @Tags         calendar
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD (por defecto el día operativo actual)"
// @Param        days  query  int     false  "Cantidad de días (1-366)"  default(7)
// @Success      200   {object}  dto.RangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calendar/range [get]
func (h *CalendarHandler) Range(c *fiber.Ctx) error {
	from := h.cal.ShiftReferenceDate(h.now())
	if s := c.Query("from"); s != "" {
		d, err := civil.Parse(s)
		if err != nil {
			return writeError(c, fmt.Errorf("%w: from debe ser YYYY-MM-DD", domain.ErrInvalidInput))
		}
		from = d
	}
	days := c.QueryInt("days", 7)
	if days < 1 || days > maxRangeDays {
		return writeError(c, fmt.Errorf("%w: days debe estar entre 1 y %d", domain.ErrInvalidInput, maxRangeDays))
	}
	return c.JSON(dto.RangeResponse{From: from.String(), Days: h.cal.Range(from, days)})
}
