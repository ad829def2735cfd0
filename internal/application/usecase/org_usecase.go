package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-vtr/internal/application/appctx"
	"github.com/jhoicas/Inventario-vtr/internal/application/dto"
	"github.com/jhoicas/Inventario-vtr/internal/domain"
	"github.com/jhoicas/Inventario-vtr/internal/domain/authz"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/internal/domain/repository"
	"github.com/jhoicas/Inventario-vtr/pkg/logger"
)

// OrgUseCase altas, cambios y bajas de la jerarquía (unidades, subunidades, cuarteles).
// Un nodo con dependientes (subunidades, cuarteles, vehículos vinculados o usuarios con
// alcance en él) no se puede eliminar.
type OrgUseCase struct {
	repo    repository.OrgRepository
	users   repository.UserRepository
	catalog Catalog
	log     *logger.Logger
	now     func() time.Time
}

// NewOrgUseCase construye el caso de uso.
func NewOrgUseCase(repo repository.OrgRepository, users repository.UserRepository, cat Catalog, log *logger.Logger) *OrgUseCase {
	return &OrgUseCase{repo: repo, users: users, catalog: cat, log: log.Component("org"), now: time.Now}
}

// scopedUsers rechaza la baja de un nodo al que algún usuario está restringido.
func (uc *OrgUseCase) scopedUsers(ctx context.Context, level entity.ScopeLevel, id string) error {
	n, err := uc.users.CountByScope(ctx, level, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d usuario(s) con alcance en el nodo", domain.ErrConflict, n)
	}
	return nil
}

func (uc *OrgUseCase) authorize(p appctx.Principal) error {
	if !p.Authenticated() {
		return domain.ErrUnauthorized
	}
	if !p.Can(authz.CapManageHierarchy) {
		return domain.ErrForbidden
	}
	return nil
}

// CreateUnit crea una unidad.
func (uc *OrgUseCase) CreateUnit(ctx context.Context, p appctx.Principal, in dto.CreateUnitRequest) (*entity.Unit, error) {
	if err := uc.authorize(p); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	u := &entity.Unit{
		ID:        uuid.New().String(),
		Name:      name,
		Acronym:   strings.TrimSpace(in.Acronym),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.CreateUnit(ctx, u); err != nil {
		return nil, err
	}
	reload(ctx, uc.catalog, uc.log)
	return u, nil
}

// UpdateUnit actualiza una unidad.
func (uc *OrgUseCase) UpdateUnit(ctx context.Context, p appctx.Principal, id string, in dto.UpdateUnitRequest) (*entity.Unit, error) {
	if err := uc.authorize(p); err != nil {
		return nil, err
	}
	cur, ok := uc.catalog.Current().Index.Unit(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if cur.Name = strings.TrimSpace(*in.Name); cur.Name == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Acronym != nil {
		cur.Acronym = strings.TrimSpace(*in.Acronym)
	}
	cur.UpdatedAt = uc.now()
	if err := uc.repo.UpdateUnit(ctx, &cur); err != nil {
		return nil, err
	}
	reload(ctx, uc.catalog, uc.log)
	return &cur, nil
}

// DeleteUnit elimina una unidad sin subunidades ni usuarios con alcance en ella.
func (uc *OrgUseCase) DeleteUnit(ctx context.Context, p appctx.Principal, id string) error {
	if err := uc.authorize(p); err != nil {
		return err
	}
	ix := uc.catalog.Current().Index
	if !ix.NodeExists(entity.ScopeUnit, id) {
		return domain.ErrNotFound
	}
	if n := ix.ChildCount(entity.ScopeUnit, id); n > 0 {
		return fmt.Errorf("%w: la unidad tiene %d subunidad(es)", domain.ErrConflict, n)
	}
	if err := uc.scopedUsers(ctx, entity.ScopeUnit, id); err != nil {
		return err
	}
	if err := uc.repo.DeleteUnit(ctx, id); err != nil {
		return err
	}
	reload(ctx, uc.catalog, uc.log)
	return nil
}

// CreateSubunit crea una subunidad bajo una unidad existente.
func (uc *OrgUseCase) CreateSubunit(ctx context.Context, p appctx.Principal, in dto.CreateSubunitRequest) (*entity.Subunit, error) {
	if err := uc.authorize(p); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !uc.catalog.Current().Index.NodeExists(entity.ScopeUnit, in.UnitID) {
		return nil, fmt.Errorf("%w: unidad %q inexistente", domain.ErrInvalidInput, in.UnitID)
	}
	now := uc.now()
	s := &entity.Subunit{
		ID:        uuid.New().String(),
		UnitID:    in.UnitID,
		Name:      name,
		Acronym:   strings.TrimSpace(in.Acronym),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.CreateSubunit(ctx, s); err != nil {
		return nil, err
	}
	reload(ctx, uc.catalog, uc.log)
	return s, nil
}

// UpdateSubunit actualiza una subunidad; puede moverla a otra unidad existente.
func (uc *OrgUseCase) UpdateSubunit(ctx context.Context, p appctx.Principal, id string, in dto.UpdateSubunitRequest) (*entity.Subunit, error) {
	if err := uc.authorize(p); err != nil {
		return nil, err
	}
	ix := uc.catalog.Current().Index
	cur, ok := ix.Subunit(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.UnitID != nil {
		if !ix.NodeExists(entity.ScopeUnit, *in.UnitID) {
			return nil, fmt.Errorf("%w: unidad %q inexistente", domain.ErrInvalidInput, *in.UnitID)
		}
		cur.UnitID = *in.UnitID
	}
	if in.Name != nil {
		if cur.Name = strings.TrimSpace(*in.Name); cur.Name == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Acronym != nil {
		cur.Acronym = strings.TrimSpace(*in.Acronym)
	}
	cur.UpdatedAt = uc.now()
	if err := uc.repo.UpdateSubunit(ctx, &cur); err != nil {
		return nil, err
	}
	reload(ctx, uc.catalog, uc.log)
	return &cur, nil
}

// DeleteSubunit elimina una subunidad sin cuarteles ni usuarios con alcance en ella.
func (uc *OrgUseCase) DeleteSubunit(ctx context.Context, p appctx.Principal, id string) error {
	if err := uc.authorize(p); err != nil {
		return err
	}
	ix := uc.catalog.Current().Index
	if !ix.NodeExists(entity.ScopeSubunit, id) {
		return domain.ErrNotFound
	}
	if n := ix.ChildCount(entity.ScopeSubunit, id); n > 0 {
		return fmt.Errorf("%w: la subunidad tiene %d cuartel(es)", domain.ErrConflict, n)
	}
	if err := uc.scopedUsers(ctx, entity.ScopeSubunit, id); err != nil {
		return err
	}
	if err := uc.repo.DeleteSubunit(ctx, id); err != nil {
		return err
	}
	reload(ctx, uc.catalog, uc.log)
	return nil
}

// CreateStation crea un cuartel bajo una subunidad existente.
func (uc *OrgUseCase) CreateStation(ctx context.Context, p appctx.Principal, in dto.CreateStationRequest) (*entity.Station, error) {
	if err := uc.authorize(p); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !uc.catalog.Current().Index.NodeExists(entity.ScopeSubunit, in.SubunitID) {
		return nil, fmt.Errorf("%w: subunidad %q inexistente", domain.ErrInvalidInput, in.SubunitID)
	}
	now := uc.now()
	st := &entity.Station{
		ID:             uuid.New().String(),
		SubunitID:      in.SubunitID,
		Name:           name,
		Classification: strings.TrimSpace(in.Classification),
		Municipality:   strings.TrimSpace(in.Municipality),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.CreateStation(ctx, st); err != nil {
		return nil, err
	}
	reload(ctx, uc.catalog, uc.log)
	return st, nil
}

// UpdateStation actualiza un cuartel; puede moverlo a otra subunidad existente.
func (uc *OrgUseCase) UpdateStation(ctx context.Context, p appctx.Principal, id string, in dto.UpdateStationRequest) (*entity.Station, error) {
	if err := uc.authorize(p); err != nil {
		return nil, err
	}
	ix := uc.catalog.Current().Index
	cur, ok := ix.Station(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.SubunitID != nil {
		if !ix.NodeExists(entity.ScopeSubunit, *in.SubunitID) {
			return nil, fmt.Errorf("%w: subunidad %q inexistente", domain.ErrInvalidInput, *in.SubunitID)
		}
		cur.SubunitID = *in.SubunitID
	}
	if in.Name != nil {
		if cur.Name = strings.TrimSpace(*in.Name); cur.Name == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Classification != nil {
		cur.Classification = strings.TrimSpace(*in.Classification)
	}
	if in.Municipality != nil {
		cur.Municipality = strings.TrimSpace(*in.Municipality)
	}
	cur.UpdatedAt = uc.now()
	if err := uc.repo.UpdateStation(ctx, &cur); err != nil {
		return nil, err
	}
	reload(ctx, uc.catalog, uc.log)
	return &cur, nil
}

// DeleteStation elimina un cuartel sin vehículos vinculados ni usuarios con alcance en él.
func (uc *OrgUseCase) DeleteStation(ctx context.Context, p appctx.Principal, id string) error {
	if err := uc.authorize(p); err != nil {
		return err
	}
	snap := uc.catalog.Current()
	if !snap.Index.NodeExists(entity.ScopeStation, id) {
		return domain.ErrNotFound
	}
	if n := snap.VehiclesAtStation(id); n > 0 {
		return fmt.Errorf("%w: el cuartel tiene %d vehículo(s) vinculado(s)", domain.ErrConflict, n)
	}
	if err := uc.scopedUsers(ctx, entity.ScopeStation, id); err != nil {
		return err
	}
	if err := uc.repo.DeleteStation(ctx, id); err != nil {
		return err
	}
	reload(ctx, uc.catalog, uc.log)
	return nil
}

// reload recarga el catálogo tras una escritura exitosa. Un fallo no revierte la escritura:
// el snapshot anterior sigue vigente hasta la próxima recarga.
func reload(ctx context.Context, cat Catalog, log *logger.Logger) {
	if err := cat.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("recarga tras escritura")
	}
}
