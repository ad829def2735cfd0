package usecase

import (
	"context"

	"github.com/jhoicas/Inventario-vtr/internal/application/catalog"
)

// Catalog snapshot en memoria; los casos de uso de gestión lo recargan tras cada escritura.
// Implementado por *catalog.Store.
type Catalog interface {
	Current() *catalog.Snapshot
	Refresh(ctx context.Context) error
}
