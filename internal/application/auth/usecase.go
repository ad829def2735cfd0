package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Inventario-vtr/internal/application/appctx"
	"github.com/jhoicas/Inventario-vtr/internal/application/dto"
	"github.com/jhoicas/Inventario-vtr/internal/domain"
	"github.com/jhoicas/Inventario-vtr/internal/domain/authz"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/internal/domain/repository"
	"github.com/jhoicas/Inventario-vtr/pkg/jwt"
	"github.com/jhoicas/Inventario-vtr/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y cierre de sesión.
// No hay credenciales maestras: toda cuenta vive en el repositorio de usuarios.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	hooks    []appctx.LogoutHook
	revoked  *revocations
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. hooks reciben cada cierre de sesión.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger, hooks ...appctx.LogoutHook) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, hooks: hooks, revoked: newRevocations(), log: log.Component("auth")}
}

// Login verifica username/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(in.Username)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserActive {
		return nil, domain.ErrForbidden
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Subject{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       string(user.Role),
		ScopeLevel: string(user.ScopeLevel),
		ScopeID:    user.ScopeID,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	caps := authz.Capabilities(user.Role)
	names := make([]string, 0, len(caps))
	for _, c := range caps {
		names = append(names, string(c))
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login")
	return &dto.LoginResponse{
		Token:        token,
		ExpiresAt:    exp,
		User:         *toUserResponse(user),
		Capabilities: names,
	}, nil
}

// Logout desmonta el contexto del usuario: revoca el token usado y cada hook descarta lo que
// tenga abierto a su nombre.
func (uc *AuthUseCase) Logout(p appctx.Principal) (*dto.LogoutResponse, error) {
	if !p.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	uc.revoked.revoke(p.TokenID, p.TokenExpiresAt)
	n := 0
	for _, h := range uc.hooks {
		n += h.OnLogout(p.UserID)
	}
	uc.log.Info().Str("user_id", p.UserID).Int("discarded", n).Msg("logout")
	return &dto.LogoutResponse{DiscardedSessions: n}, nil
}

// Authenticate arma el principal de una petición a partir de un token ya validado.
// Rol y alcance salen del registro vigente: un token de un usuario eliminado, desactivado
// o que cerró sesión deja de servir aunque no haya vencido.
func (uc *AuthUseCase) Authenticate(ctx context.Context, c *jwt.Claims) (appctx.Principal, error) {
	if uc.revoked.revoked(c.ID) {
		return appctx.Principal{}, fmt.Errorf("%w: sesión cerrada", domain.ErrUnauthorized)
	}
	user, err := uc.userRepo.GetByID(ctx, c.UserID)
	if err != nil {
		return appctx.Principal{}, err
	}
	if user == nil {
		return appctx.Principal{}, fmt.Errorf("%w: usuario inexistente", domain.ErrUnauthorized)
	}
	if user.Status != entity.UserActive {
		return appctx.Principal{}, fmt.Errorf("%w: usuario inactivo", domain.ErrUnauthorized)
	}
	p := appctx.FromUser(user)
	p.TokenID = c.ID
	if c.ExpiresAt != nil {
		p.TokenExpiresAt = c.ExpiresAt.Time
	}
	return p, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
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
