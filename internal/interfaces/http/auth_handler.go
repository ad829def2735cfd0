package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-vtr/internal/application/auth"
	"github.com/jhoicas/Inventario-vtr/internal/application/dto"
	"github.com/jhoicas/Inventario-vtr/internal/domain/authz"
)

// AuthHandler maneja login y logout.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión (descarta las conferencias en curso del usuario)
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LogoutResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	out, err := h.uc.Logout(GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Principal actual y sus capacidades
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	caps := authz.Capabilities(p.Role)
	names := make([]string, len(caps))
	for i, cp := range caps {
		names[i] = string(cp)
	}
	return c.JSON(fiber.Map{
		"user_id":      p.UserID,
		"username":     p.Username,
		"role":         p.Role,
		"scope_level":  p.Scope.Level,
		"scope_id":     p.Scope.ID,
		"capabilities": names,
	})
}
