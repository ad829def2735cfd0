package entity

import "time"

// Role perfil del usuario; define capacidades, no visibilidad.
type Role string

// Roles válidos para User.
const (
	RoleBasic Role = "BASIC"
	RoleAdmin Role = "ADMIN"
	RoleSuper Role = "SUPER"
)

// Valid informa si el rol es uno de los definidos.
func (r Role) Valid() bool {
	switch r {
	case RoleBasic, RoleAdmin, RoleSuper:
		return true
	}
	return false
}

// ScopeLevel nivel de la jerarquía al que está restringido un usuario.
type ScopeLevel string

// Niveles de alcance.
const (
	ScopeGlobal  ScopeLevel = "GLOBAL"
	ScopeUnit    ScopeLevel = "UNIT"
	ScopeSubunit ScopeLevel = "SUBUNIT"
	ScopeStation ScopeLevel = "STATION"
)

// Valid informa si el nivel es uno de los definidos.
func (l ScopeLevel) Valid() bool {
	switch l {
	case ScopeGlobal, ScopeUnit, ScopeSubunit, ScopeStation:
		return true
	}
	return false
}

// Estados de cuenta.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User representa un usuario del sistema. ScopeID se ignora cuando ScopeLevel es GLOBAL.
type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         Role
	ScopeLevel   ScopeLevel
	ScopeID      string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
