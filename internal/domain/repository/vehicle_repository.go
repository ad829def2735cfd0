package repository

import (
	"context"

	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
)

// VehicleRepository define el puerto de persistencia para vehículos y su relación de material.
type VehicleRepository interface {
	Create(ctx context.Context, v *entity.Vehicle) error
	Update(ctx context.Context, v *entity.Vehicle) error
	Delete(ctx context.Context, id string) error
}
