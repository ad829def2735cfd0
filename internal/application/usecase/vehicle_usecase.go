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

// VehicleUseCase casos de uso CRUD para vehículos y su relación de material.
// Las conferencias ya registradas no se tocan: llevan su propio snapshot de material.
type VehicleUseCase struct {
	repo    repository.VehicleRepository
	catalog Catalog
	log     *logger.Logger
	now     func() time.Time
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(repo repository.VehicleRepository, cat Catalog, log *logger.Logger) *VehicleUseCase {
	return &VehicleUseCase{repo: repo, catalog: cat, log: log.Component("vehicles"), now: time.Now}
}

func (uc *VehicleUseCase) authorize(p appctx.Principal) error {
	if !p.Authenticated() {
		return domain.ErrUnauthorized
	}
	if !p.Can(authz.CapManageVehicles) {
		return domain.ErrForbidden
	}
	return nil
}

// checkStation el cuartel debe existir y estar en el alcance del usuario. Sin cuartel solo
// lo puede dejar un usuario GLOBAL (para los demás el vehículo quedaría invisible).
func (uc *VehicleUseCase) checkStation(ix *authz.Index, p appctx.Principal, stationID string) error {
	if stationID == "" {
		if !p.Scope.IsGlobal() {
			return fmt.Errorf("%w: solo el alcance GLOBAL administra vehículos sin cuartel", domain.ErrForbidden)
		}
		return nil
	}
	if !ix.NodeExists(entity.ScopeStation, stationID) {
		return fmt.Errorf("%w: cuartel %q inexistente", domain.ErrInvalidInput, stationID)
	}
	if !ix.StationVisible(p.Scope, stationID) {
		return domain.ErrForbidden
	}
	return nil
}

// Create crea un vehículo con su relación de material.
func (uc *VehicleUseCase) Create(ctx context.Context, p appctx.Principal, in dto.CreateVehicleRequest) (*entity.Vehicle, error) {
	if err := uc.authorize(p); err != nil {
		return nil, err
	}
	status := entity.VehicleStatus(in.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}
	prefix, name := strings.TrimSpace(in.Prefix), strings.TrimSpace(in.Name)
	if prefix == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkStation(uc.catalog.Current().Index, p, in.StationID); err != nil {
		return nil, err
	}
	items, err := buildMaterials(in.Materials)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	v := &entity.Vehicle{
		ID:        uuid.New().String(),
		Prefix:    prefix,
		Name:      name,
		Status:    status,
		Materials: items,
		StationID: in.StationID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	reload(ctx, uc.catalog, uc.log)
	return v, nil
}

// visible vehículo vigente si existe y el usuario lo puede ver.
func (uc *VehicleUseCase) visible(p appctx.Principal, id string) (*entity.Vehicle, error) {
	snap := uc.catalog.Current()
	v, ok := snap.Vehicle(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !snap.Index.VehicleVisible(p.Scope, v) {
		return nil, domain.ErrForbidden
	}
	return v, nil
}

// Update actualiza datos del vehículo (no la relación de material).
func (uc *VehicleUseCase) Update(ctx context.Context, p appctx.Principal, id string, in dto.UpdateVehicleRequest) (*entity.Vehicle, error) {
	if err := uc.authorize(p); err != nil {
		return nil, err
	}
	v, err := uc.visible(p, id)
	if err != nil {
		return nil, err
	}
	if in.Prefix != nil {
		if v.Prefix = strings.TrimSpace(*in.Prefix); v.Prefix == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Name != nil {
		if v.Name = strings.TrimSpace(*in.Name); v.Name == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Status != nil {
		st := entity.VehicleStatus(*in.Status)
		if !st.Valid() {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, *in.Status)
		}
		v.Status = st
	}
	if in.StationID != nil && *in.StationID != v.StationID {
		if err := uc.checkStation(uc.catalog.Current().Index, p, *in.StationID); err != nil {
			return nil, err
		}
		v.StationID = *in.StationID
	}
	v.Materials = entity.CloneMaterials(v.Materials)
	v.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	reload(ctx, uc.catalog, uc.log)
	return v, nil
}

// ReplaceMaterials reemplaza la relación de material completa. Los ítems sin ID reciben uno nuevo.
func (uc *VehicleUseCase) ReplaceMaterials(ctx context.Context, p appctx.Principal, id string, in dto.ReplaceMaterialsRequest) (*entity.Vehicle, error) {
	if err := uc.authorize(p); err != nil {
		return nil, err
	}
	v, err := uc.visible(p, id)
	if err != nil {
		return nil, err
	}
	items, err := buildMaterials(in.Materials)
	if err != nil {
		return nil, err
	}
	v.Materials = items
	v.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	uc.log.Info().Str("vehicle_id", v.ID).Int("items", len(items)).Str("user_id", p.UserID).Msg("relación de material reemplazada")
	reload(ctx, uc.catalog, uc.log)
	return v, nil
}

// Delete elimina el vehículo. Sus conferencias permanecen (visibles solo para GLOBAL).
func (uc *VehicleUseCase) Delete(ctx context.Context, p appctx.Principal, id string) error {
	if err := uc.authorize(p); err != nil {
		return err
	}
	if _, err := uc.visible(p, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	reload(ctx, uc.catalog, uc.log)
	return nil
}

// buildMaterials valida la relación de material: nombre obligatorio, cantidad no negativa, IDs únicos.
func buildMaterials(in []dto.MaterialItemRequest) ([]entity.MaterialItem, error) {
	out := make([]entity.MaterialItem, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for i, r := range in {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: ítem %d sin nombre", domain.ErrInvalidInput, i+1)
		}
		if r.Quantity.IsNegative() {
			return nil, fmt.Errorf("%w: cantidad negativa en %q", domain.ErrInvalidInput, name)
		}
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = uuid.New().String()
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: ítem repetido %q", domain.ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		out = append(out, entity.MaterialItem{
			ID:            id,
			Name:          name,
			Specification: strings.TrimSpace(r.Specification),
			Quantity:      r.Quantity,
			Compartment:   strings.TrimSpace(r.Compartment),
		})
	}
	return out, nil
}
