package repository

import (
	"context"

	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
)

// CheckRepository define el puerto de persistencia para conferencias. Solo inserción: un registro no se edita.
type CheckRepository interface {
	Create(ctx context.Context, check *entity.InventoryCheck) error
	GetByID(ctx context.Context, id string) (*entity.InventoryCheck, error)
}

// AuditLogRepository define el puerto de escritura de la bitácora.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *entity.AuditEntry) error
}
