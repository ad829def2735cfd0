package checklist

import (
	"context"

	"github.com/jhoicas/Inventario-vtr/internal/application/catalog"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/internal/domain/repository"
)

// Catalog snapshot vigente de las tablas y alta en memoria de conferencias persistidas.
// Implementado por *catalog.Store.
type Catalog interface {
	Current() *catalog.Snapshot
	AppendCheck(c entity.InventoryCheck)
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// La conferencia y su entrada de bitácora se guardan juntas o no se guarda ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		checks repository.CheckRepository,
		audit repository.AuditLogRepository,
	) error) error
}
