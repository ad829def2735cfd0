package entity

import "time"

// Acciones registradas en la bitácora.
const (
	AuditCheckCreated = "CHECK_CREATED"
)

// AuditEntry entrada de la bitácora de auditoría (una por acción de negocio relevante).
type AuditEntry struct {
	ID          string
	UserID      string
	Username    string
	Action      string
	EntityType  string
	EntityID    string
	Description string
	CreatedAt   time.Time
}
