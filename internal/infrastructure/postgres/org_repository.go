package postgres

import (
	"context"

	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/internal/domain/repository"
)

var _ repository.OrgRepository = (*OrgRepo)(nil)

// OrgRepo implementación de OrgRepository sobre PostgreSQL (usable con pool o tx).
type OrgRepo struct {
	q Querier
}

// NewOrgRepository construye el adaptador de la jerarquía. Pasar pool o tx (Querier).
func NewOrgRepository(q Querier) *OrgRepo {
	return &OrgRepo{q: q}
}

// CreateUnit persiste una unidad.
func (r *OrgRepo) CreateUnit(ctx context.Context, u *entity.Unit) error {
	query := `
		INSERT INTO units (id, name, acronym, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, u.ID, u.Name, u.Acronym, u.CreatedAt, u.UpdatedAt); err != nil {
		return mutationError("insert unit", err)
	}
	return nil
}

// UpdateUnit actualiza nombre y sigla.
func (r *OrgRepo) UpdateUnit(ctx context.Context, u *entity.Unit) error {
	query := `UPDATE units SET name = $2, acronym = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, u.ID, u.Name, u.Acronym, u.UpdatedAt)
	if err != nil {
		return mutationError("update unit", err)
	}
	return mustAffect(tag, "update unit")
}

// DeleteUnit elimina una unidad sin subunidades (FK RESTRICT).
func (r *OrgRepo) DeleteUnit(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return mutationError("delete unit", err)
	}
	return mustAffect(tag, "delete unit")
}

// CreateSubunit persiste una subunidad.
func (r *OrgRepo) CreateSubunit(ctx context.Context, s *entity.Subunit) error {
	query := `
		INSERT INTO subunits (id, unit_id, name, acronym, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, s.ID, s.UnitID, s.Name, s.Acronym, s.CreatedAt, s.UpdatedAt); err != nil {
		return mutationError("insert subunit", err)
	}
	return nil
}

// UpdateSubunit actualiza datos y unidad de la subunidad.
func (r *OrgRepo) UpdateSubunit(ctx context.Context, s *entity.Subunit) error {
	query := `UPDATE subunits SET unit_id = $2, name = $3, acronym = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.UnitID, s.Name, s.Acronym, s.UpdatedAt)
	if err != nil {
		return mutationError("update subunit", err)
	}
	return mustAffect(tag, "update subunit")
}

// DeleteSubunit elimina una subunidad sin cuarteles.
func (r *OrgRepo) DeleteSubunit(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM subunits WHERE id = $1`, id)
	if err != nil {
		return mutationError("delete subunit", err)
	}
	return mustAffect(tag, "delete subunit")
}

// CreateStation persiste un cuartel.
func (r *OrgRepo) CreateStation(ctx context.Context, s *entity.Station) error {
	query := `
		INSERT INTO stations (id, subunit_id, name, classification, municipality, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.SubunitID, s.Name, s.Classification, s.Municipality, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return mutationError("insert station", err)
	}
	return nil
}

// UpdateStation actualiza datos y subunidad del cuartel.
func (r *OrgRepo) UpdateStation(ctx context.Context, s *entity.Station) error {
	query := `
		UPDATE stations
		SET subunit_id = $2, name = $3, classification = $4, municipality = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.SubunitID, s.Name, s.Classification, s.Municipality, s.UpdatedAt)
	if err != nil {
		return mutationError("update station", err)
	}
	return mustAffect(tag, "update station")
}

// DeleteStation elimina un cuartel sin vehículos vinculados.
func (r *OrgRepo) DeleteStation(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stations WHERE id = $1`, id)
	if err != nil {
		return mutationError("delete station", err)
	}
	return mustAffect(tag, "delete station")
}
