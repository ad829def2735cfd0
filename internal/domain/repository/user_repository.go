package repository

import (
	"context"

	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Get* devuelven (nil, nil) cuando no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
	// CountByScope cuenta los usuarios cuyo alcance apunta al nodo (level, id).
	CountByScope(ctx context.Context, level entity.ScopeLevel, id string) (int, error)
}
