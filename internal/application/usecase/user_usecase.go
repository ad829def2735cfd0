package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Inventario-vtr/internal/application/appctx"
	"github.com/jhoicas/Inventario-vtr/internal/application/dto"
	"github.com/jhoicas/Inventario-vtr/internal/domain"
	"github.com/jhoicas/Inventario-vtr/internal/domain/authz"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/internal/domain/repository"
	"github.com/jhoicas/Inventario-vtr/pkg/logger"
)

// UserUseCase aplica reglas de negocio para usuarios.
// Invariante: ScopeLevel ≠ GLOBAL ⇒ ScopeID referencia un nodo existente del nivel.
type UserUseCase struct {
	repo    repository.UserRepository
	catalog Catalog
	hooks   []appctx.LogoutHook
	log     *logger.Logger
	now     func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia. hooks reciben la baja
// del contexto de un usuario eliminado, desactivado o con rol o alcance modificados.
func NewUserUseCase(repo repository.UserRepository, cat Catalog, log *logger.Logger, hooks ...appctx.LogoutHook) *UserUseCase {
	return &UserUseCase{repo: repo, catalog: cat, hooks: hooks, log: log.Component("users"), now: time.Now}
}

// teardown descarta lo que el usuario tenga abierto con sus permisos anteriores.
func (uc *UserUseCase) teardown(userID, reason string) {
	n := 0
	for _, h := range uc.hooks {
		n += h.OnLogout(userID)
	}
	uc.log.Info().Str("user_id", userID).Str("reason", reason).Int("discarded", n).Msg("contexto del usuario descartado")
}

func (uc *UserUseCase) authorize(p appctx.Principal) error {
	if !p.Authenticated() {
		return domain.ErrUnauthorized
	}
	if !p.Can(authz.CapManageUsers) {
		return domain.ErrForbidden
	}
	return nil
}

// checkScope valida nivel y nodo; devuelve el ScopeID normalizado (vacío para GLOBAL).
func (uc *UserUseCase) checkScope(level entity.ScopeLevel, id string) (string, error) {
	if !level.Valid() {
		return "", fmt.Errorf("%w: nivel de alcance %q", domain.ErrInvalidInput, level)
	}
	if level == entity.ScopeGlobal {
		return "", nil
	}
	id = strings.TrimSpace(id)
	if !uc.catalog.Current().Index.NodeExists(level, id) {
		return "", fmt.Errorf("%w: nodo %s %q inexistente", domain.ErrInvalidInput, level, id)
	}
	return id, nil
}

// Create crea un usuario con el password hasheado con bcrypt.
func (uc *UserUseCase) Create(ctx context.Context, p appctx.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := uc.authorize(p); err != nil {
		return nil, err
	}
	role := entity.Role(in.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	}
	level := entity.ScopeLevel(in.ScopeLevel)
	scopeID, err := uc.checkScope(level, in.ScopeID)
	if err != nil {
		return nil, err
	}
	user, err := uc.newUser(ctx, in.Username, in.Password, in.Name, role, level, scopeID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", string(role)).Str("scope", string(level)).Msg("usuario creado")
	return entityToUserResponse(user), nil
}

func (uc *UserUseCase) newUser(ctx context.Context, username, password, name string, role entity.Role, level entity.ScopeLevel, scopeID string) (*entity.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || len(password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name == "" {
		name = username
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		ScopeLevel:   level,
		ScopeID:      scopeID,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Bootstrap crea la cuenta SUPER/GLOBAL inicial si el username no existe. No requiere principal:
// solo la usa el comando de siembra. Devuelve false si la cuenta ya existía.
func (uc *UserUseCase) Bootstrap(ctx context.Context, username, password, name string) (bool, error) {
	existing, err := uc.repo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	user, err := uc.newUser(ctx, username, password, name, entity.RoleSuper, entity.ScopeGlobal, "")
	if err != nil {
		return false, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("cuenta inicial creada")
	return true, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, p appctx.Principal, id string) (*dto.UserResponse, error) {
	if err := uc.authorize(p); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return entityToUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(ctx context.Context, p appctx.Principal, page dto.PageRequest) (*dto.UserListResponse, error) {
	if err := uc.authorize(p); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualiza datos, rol, alcance, estado o password.
func (uc *UserUseCase) Update(ctx context.Context, p appctx.Principal, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := uc.authorize(p); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	prev := *user
	if in.Name != nil {
		if user.Name = strings.TrimSpace(*in.Name); user.Name == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Role != nil {
		role := entity.Role(*in.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, *in.Role)
		}
		if user.ID == p.UserID && role != user.Role {
			return nil, fmt.Errorf("%w: no puede cambiar su propio rol", domain.ErrConflict)
		}
		user.Role = role
	}
	if in.ScopeLevel != nil || in.ScopeID != nil {
		level, scopeID := user.ScopeLevel, user.ScopeID
		if in.ScopeLevel != nil {
			level = entity.ScopeLevel(*in.ScopeLevel)
		}
		if in.ScopeID != nil {
			scopeID = *in.ScopeID
		}
		if scopeID, err = uc.checkScope(level, scopeID); err != nil {
			return nil, err
		}
		user.ScopeLevel, user.ScopeID = level, scopeID
	}
	if in.Status != nil {
		if *in.Status != entity.UserActive && *in.Status != entity.UserInactive {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, *in.Status)
		}
		if user.ID == p.UserID && *in.Status != entity.UserActive {
			return nil, fmt.Errorf("%w: no puede desactivar su propia cuenta", domain.ErrConflict)
		}
		user.Status = *in.Status
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	switch {
	case prev.Status == entity.UserActive && user.Status != entity.UserActive:
		uc.teardown(user.ID, "desactivado")
	case prev.Role != user.Role || prev.ScopeLevel != user.ScopeLevel || prev.ScopeID != user.ScopeID:
		uc.teardown(user.ID, "permisos modificados")
	}
	return entityToUserResponse(user), nil
}

// Delete elimina un usuario. Nadie puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, p appctx.Principal, id string) error {
	if err := uc.authorize(p); err != nil {
		return err
	}
	if id == p.UserID {
		return fmt.Errorf("%w: no puede eliminar su propia cuenta", domain.ErrConflict)
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.teardown(id, "eliminado")
	return nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Role:       string(u.Role),
		ScopeLevel: string(u.ScopeLevel),
		ScopeID:    u.ScopeID,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
