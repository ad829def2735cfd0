package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-vtr/internal/application/dto"
	"github.com/jhoicas/Inventario-vtr/internal/domain/authz"
)

// RequireCapability devuelve un middleware Fiber que verifica que el rol del token tenga la
// capacidad. Debe usarse DESPUÉS de AuthMiddleware (necesita el Principal).
//
// Comportamiento:
//   - 401 Unauthorized → no hay Principal en el contexto.
//   - 403 Forbidden    → el rol no tiene la capacidad.
//
// El alcance (qué cuarteles ve el usuario) no se evalúa aquí sino en cada caso de uso.
func RequireCapability(capability authz.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if !p.Authenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "usuario no autenticado",
			})
		}
		if !p.Can(capability) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el perfil " + string(p.Role) + " no permite esta acción",
			})
		}
		return c.Next()
	}
}
