package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-vtr/internal/application/appctx"
	"github.com/jhoicas/Inventario-vtr/internal/application/dto"
	"github.com/jhoicas/Inventario-vtr/internal/domain"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/pkg/jwt"
)

// LocalPrincipal clave de c.Locals con el appctx.Principal de la petición.
const LocalPrincipal = "principal"

// Authenticator resuelve el principal vigente de un token con firma y vencimiento ya validados.
type Authenticator interface {
	Authenticate(ctx context.Context, claims *jwt.Claims) (appctx.Principal, error)
}

// AuthMiddleware valida el Bearer Token JWT, resuelve el usuario con authn y deja el
// Principal en c.Locals.
func AuthMiddleware(jwtSecret string, authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if !entity.Role(claims.Role).Valid() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene un rol válido"})
		}
		p, err := authn.Authenticate(c.UserContext(), claims)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "REVOKED_TOKEN", Message: err.Error()})
			}
			return writeError(c, err)
		}
		c.Locals(LocalPrincipal, p)
		return c.Next()
	}
}

// GetPrincipal devuelve el Principal del contexto (después del middleware de auth).
// Sin middleware devuelve el principal vacío, que no está autenticado.
func GetPrincipal(c *fiber.Ctx) appctx.Principal {
	p, _ := c.Locals(LocalPrincipal).(appctx.Principal)
	return p
}
