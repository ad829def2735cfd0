package repository

import (
	"context"

	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
)

// OrgRepository define el puerto de persistencia para la jerarquía (unidades, subunidades, cuarteles).
type OrgRepository interface {
	CreateUnit(ctx context.Context, u *entity.Unit) error
	UpdateUnit(ctx context.Context, u *entity.Unit) error
	DeleteUnit(ctx context.Context, id string) error

	CreateSubunit(ctx context.Context, s *entity.Subunit) error
	UpdateSubunit(ctx context.Context, s *entity.Subunit) error
	DeleteSubunit(ctx context.Context, id string) error

	CreateStation(ctx context.Context, s *entity.Station) error
	UpdateStation(ctx context.Context, s *entity.Station) error
	DeleteStation(ctx context.Context, id string) error
}
