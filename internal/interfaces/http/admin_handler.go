package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-vtr/internal/application/catalog"
	"github.com/jhoicas/Inventario-vtr/internal/application/dto"
)

// SessionCounter cantidad de sesiones de conferencia abiertas (health).
type SessionCounter interface {
	Open() int
}

// AdminHandler recarga de datos y estado del servicio.
type AdminHandler struct {
	catalog  *catalog.Store
	sessions SessionCounter
}

// NewAdminHandler construye el handler.
func NewAdminHandler(cat *catalog.Store, sessions SessionCounter) *AdminHandler {
	return &AdminHandler{catalog: cat, sessions: sessions}
}

// Refresh godoc
// @Summary      Recargar todas las tablas desde la base de datos
// @Description  Si la lectura falla se sigue operando con el último snapshot válido (503, stale=true).
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RefreshResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/admin/refresh [post]
func (h *AdminHandler) Refresh(c *fiber.Ctx) error {
	if err := h.catalog.Refresh(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	snap := h.catalog.Current()
	return c.JSON(dto.RefreshResponse{
		LoadedAt:  snap.LoadedAt,
		FromCache: snap.FromCache,
		Units:     len(snap.Units),
		Subunits:  len(snap.Subunits),
		Stations:  len(snap.Stations),
		Vehicles:  len(snap.Vehicles),
		Checks:    len(snap.Checks),
	})
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         admin
// @Produce      json
// @Router       /api/health [get]
func (h *AdminHandler) Health(c *fiber.Ctx) error {
	snap := h.catalog.Current()
	status := "ok"
	if !h.catalog.Loaded() || snap.FromCache {
		status = "degraded"
	}
	return c.JSON(fiber.Map{
		"status":        status,
		"loaded_at":     snap.LoadedAt,
		"from_cache":    snap.FromCache,
		"open_sessions": h.sessions.Open(),
	})
}
