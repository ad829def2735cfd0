package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// ScopeID se ignora cuando ScopeLevel es GLOBAL.
type CreateUserRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=60"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Role       string `json:"role" validate:"required,oneof=BASIC ADMIN SUPER"`
	ScopeLevel string `json:"scope_level" validate:"required,oneof=GLOBAL UNIT SUBUNIT STATION"`
	ScopeID    string `json:"scope_id" validate:"omitempty,max=64"`
}

// UpdateUserRequest campos opcionales; nil = sin cambio.
type UpdateUserRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	Password   *string `json:"password" validate:"omitempty,min=8"`
	Role       *string `json:"role" validate:"omitempty,oneof=BASIC ADMIN SUPER"`
	ScopeLevel *string `json:"scope_level" validate:"omitempty,oneof=GLOBAL UNIT SUBUNIT STATION"`
	ScopeID    *string `json:"scope_id" validate:"omitempty,max=64"`
	Status     *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	ScopeLevel string    `json:"scope_level"`
	ScopeID    string    `json:"scope_id,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT, usuario y capacidades de su rol.
type LoginResponse struct {
	Token        string       `json:"token"`
	ExpiresAt    time.Time    `json:"expires_at"`
	User         UserResponse `json:"user"`
	Capabilities []string     `json:"capabilities"`
}

// LogoutResponse sesiones de conferencia descartadas al cerrar sesión.
type LogoutResponse struct {
	DiscardedSessions int `json:"discarded_sessions"`
}
