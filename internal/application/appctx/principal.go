// Package appctx define el contexto de aplicación explícito de un usuario autenticado.
// Se construye por petición a partir del token y del registro vigente del usuario, y se pasa
// a los casos de uso; no hay estado de sesión global.
package appctx

import (
	"time"

	"github.com/jhoicas/Inventario-vtr/internal/domain/authz"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
)

// Principal usuario autenticado: identidad, rol (capacidades) y alcance (visibilidad).
type Principal struct {
	UserID   string
	Username string
	Role     entity.Role
	Scope    authz.Scope

	// Token del que proviene el principal; vacío fuera de una petición HTTP.
	TokenID        string
	TokenExpiresAt time.Time
}

// FromUser construye el principal a partir del registro de usuario.
func FromUser(u *entity.User) Principal {
	return Principal{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		Scope:    authz.ScopeOf(u),
	}
}

// Authenticated informa si el principal identifica a un usuario.
func (p Principal) Authenticated() bool {
	return p.UserID != ""
}

// Can informa si el rol del principal tiene la capacidad.
func (p Principal) Can(c authz.Capability) bool {
	return authz.Can(p.Role, c)
}

// LogoutHook recibe la baja del contexto de un usuario (cierre de sesión).
type LogoutHook interface {
	OnLogout(userID string) int
}
