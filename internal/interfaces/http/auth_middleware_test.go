package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-vtr/internal/application/auth"
	"github.com/jhoicas/Inventario-vtr/internal/domain/authz"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	apphttp "github.com/jhoicas/Inventario-vtr/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Inventario-vtr/pkg/jwt"
	"github.com/jhoicas/Inventario-vtr/pkg/logger"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "inventario-vtr-test"
	testExpMin    = 60
)

// memUsers repositorio de usuarios en memoria.
type memUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[string]*entity.User)}
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(ctx context.Context, u *entity.User) error { return m.Create(ctx, u) }

func (m *memUsers) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*entity.User, 0, len(m.byID))
	for _, u := range m.byID {
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })
	if offset >= len(all) {
		return []*entity.User{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func (m *memUsers) CountByScope(_ context.Context, level entity.ScopeLevel, id string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.byID {
		if u.ScopeLevel == level && u.ScopeID == id {
			n++
		}
	}
	return n, nil
}

// issue registra un usuario activo con ese rol y alcance y firma un token para él.
// El ID se deriva del rol y del alcance: la misma combinación reutiliza el usuario.
func (m *memUsers) issue(t *testing.T, role, level, scopeID string) string {
	t.Helper()
	id := "u-" + role + "-" + level + "-" + scopeID
	require.NoError(t, m.Create(context.Background(), &entity.User{
		ID: id, Username: id, Name: "Silva", Role: entity.Role(role),
		ScopeLevel: entity.ScopeLevel(level), ScopeID: scopeID, Status: entity.UserActive,
	}))
	tok, _, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Subject{
		UserID:     id,
		Username:   id,
		Role:       role,
		ScopeLevel: level,
		ScopeID:    scopeID,
	}, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func newTestAuth(users *memUsers) *auth.AuthUseCase {
	return auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, logger.Nop())
}

// buildTestApp aplicación Fiber mínima con AuthMiddleware + RequireCapability.
func buildTestApp(capability authz.Capability, users *memUsers) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, newTestAuth(users)),
		apphttp.RequireCapability(capability),
		func(c *fiber.Ctx) error {
			p := apphttp.GetPrincipal(c)
			return c.JSON(fiber.Map{
				"ok":       true,
				"role":     string(p.Role),
				"scope":    string(p.Scope.Level),
				"scope_id": p.Scope.ID,
			})
		},
	)
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireCapability_SuperGestionaJerarquia(t *testing.T) {
	users := newMemUsers()
	app := buildTestApp(authz.CapManageHierarchy, users)
	resp := doRequest(t, app, users.issue(t, "SUPER", "GLOBAL", ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "SUPER", body["role"])
	assert.Equal(t, "GLOBAL", body["scope"])
}

func TestRequireCapability_AdminNoGestionaJerarquia(t *testing.T) {
	users := newMemUsers()
	app := buildTestApp(authz.CapManageHierarchy, users)
	resp := doRequest(t, app, users.issue(t, "ADMIN", "STATION", "ST1"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireCapability_BasicConfiereConAlcance(t *testing.T) {
	users := newMemUsers()
	app := buildTestApp(authz.CapSubmitCheck, users)
	resp := doRequest(t, app, users.issue(t, "BASIC", "STATION", "ST1"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "STATION", body["scope"])
	assert.Equal(t, "ST1", body["scope_id"])
}

func TestRequireCapability_BasicNoExporta(t *testing.T) {
	users := newMemUsers()
	app := buildTestApp(authz.CapExportReports, users)
	resp := doRequest(t, app, users.issue(t, "BASIC", "STATION", "ST1"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireCapability_SinAuthMiddlewareEs401(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", apphttp.RequireCapability(authz.CapViewChecks), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	resp := doRequest(t, app, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SinHeaderEs401(t *testing.T) {
	resp := doRequest(t, buildTestApp(authz.CapViewChecks, newMemUsers()), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalidoEs401(t *testing.T) {
	resp := doRequest(t, buildTestApp(authz.CapViewChecks, newMemUsers()), "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_FirmaIncorrectaEs401(t *testing.T) {
	tok, _, err := pkgjwt.Generate("otro-secret", pkgjwt.Subject{UserID: "u-1", Role: "SUPER", ScopeLevel: "GLOBAL"}, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(authz.CapViewChecks, newMemUsers()), "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpiradoEs401(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Subject{UserID: "u-1", Role: "SUPER", ScopeLevel: "GLOBAL"}, testIssuer, -1)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(authz.CapViewChecks, newMemUsers()), "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_RolDesconocidoEs401(t *testing.T) {
	users := newMemUsers()
	resp := doRequest(t, buildTestApp(authz.CapViewChecks, users), users.issue(t, "vendedor", "GLOBAL", ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestAuthMiddleware_UsuarioDesconocidoEs401(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Subject{UserID: "u-fantasma", Role: "SUPER", ScopeLevel: "GLOBAL"}, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(authz.CapViewChecks, newMemUsers()), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "REVOKED_TOKEN")
}

func TestAuthMiddleware_PrincipalSaleDelRegistroVigente(t *testing.T) {
	users := newMemUsers()
	app := buildTestApp(authz.CapExportReports, users)
	token := users.issue(t, "ADMIN", "STATION", "ST1")

	u, err := users.GetByID(context.Background(), "u-ADMIN-STATION-ST1")
	require.NoError(t, err)
	u.Role = entity.RoleBasic
	require.NoError(t, users.Update(context.Background(), u))

	resp := doRequest(t, app, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "el rol rebajado se aplica sin esperar al vencimiento del token")

	u.Status = entity.UserInactive
	require.NoError(t, users.Update(context.Background(), u))
	resp2 := doRequest(t, app, token)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}
