package repository

import (
	"context"

	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
)

// Tables contenido completo del almacén remoto, leído de una sola vez.
type Tables struct {
	Units    []entity.Unit           `json:"units"`
	Subunits []entity.Subunit        `json:"subunits"`
	Stations []entity.Station        `json:"stations"`
	Vehicles []entity.Vehicle        `json:"vehicles"`
	Checks   []entity.InventoryCheck `json:"checks"`
}

// SnapshotReader lectura masiva de todas las tablas (fuente única de verdad).
type SnapshotReader interface {
	LoadAll(ctx context.Context) (*Tables, error)
}

// SnapshotCache guarda el último conjunto de tablas leído con éxito.
// Load devuelve (nil, nil) si no hay nada guardado.
type SnapshotCache interface {
	Save(ctx context.Context, tables *Tables) error
	Load(ctx context.Context) (*Tables, error)
}
