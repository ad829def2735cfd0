package postgres

import (
	"context"

	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implementación de VehicleRepository. La relación de material se guarda
// como JSONB en el orden de la lista.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador de vehículos. Pasar pool o tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create persiste un vehículo con su material.
func (r *VehicleRepo) Create(ctx context.Context, v *entity.Vehicle) error {
	materials, err := jsonb(materialsOrEmpty(v.Materials))
	if err != nil {
		return err
	}
	query := `
		INSERT INTO vehicles (id, prefix, name, status, station_id, materials, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(ctx, query,
		v.ID, v.Prefix, v.Name, v.Status, nullable(v.StationID), materials, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return mutationError("insert vehicle", err)
	}
	return nil
}

// Update reemplaza todos los campos, incluida la lista de material.
func (r *VehicleRepo) Update(ctx context.Context, v *entity.Vehicle) error {
	materials, err := jsonb(materialsOrEmpty(v.Materials))
	if err != nil {
		return err
	}
	query := `
		UPDATE vehicles
		SET prefix = $2, name = $3, status = $4, station_id = $5, materials = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		v.ID, v.Prefix, v.Name, v.Status, nullable(v.StationID), materials, v.UpdatedAt,
	)
	if err != nil {
		return mutationError("update vehicle", err)
	}
	return mustAffect(tag, "update vehicle")
}

// Delete elimina el vehículo. Las conferencias históricas conservan vehicle_id y su snapshot.
func (r *VehicleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return mutationError("delete vehicle", err)
	}
	return mustAffect(tag, "delete vehicle")
}

func materialsOrEmpty(items []entity.MaterialItem) []entity.MaterialItem {
	if items == nil {
		return []entity.MaterialItem{}
	}
	return items
}
