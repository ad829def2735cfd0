package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-vtr/internal/application/auth"
	"github.com/jhoicas/Inventario-vtr/internal/application/catalog"
	"github.com/jhoicas/Inventario-vtr/internal/application/checklist"
	"github.com/jhoicas/Inventario-vtr/internal/application/dto"
	"github.com/jhoicas/Inventario-vtr/internal/application/usecase"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/internal/domain/readiness"
	"github.com/jhoicas/Inventario-vtr/internal/domain/repository"
	apphttp "github.com/jhoicas/Inventario-vtr/internal/interfaces/http"
	"github.com/jhoicas/Inventario-vtr/pkg/civil"
	"github.com/jhoicas/Inventario-vtr/pkg/logger"
)

type staticReader struct{ tables *repository.Tables }

func (r *staticReader) LoadAll(context.Context) (*repository.Tables, error) { return r.tables, nil }

type memChecks struct{ list []entity.InventoryCheck }

func (m *memChecks) Create(_ context.Context, c *entity.InventoryCheck) error {
	m.list = append(m.list, *c)
	return nil
}

func (m *memChecks) GetByID(context.Context, string) (*entity.InventoryCheck, error) {
	return nil, nil
}

type memAudit struct{ n int }

func (m *memAudit) Create(context.Context, *entity.AuditEntry) error {
	m.n++
	return nil
}

type memTx struct {
	checks memChecks
	audit  memAudit
}

func (m *memTx) Run(_ context.Context, fn func(repository.CheckRepository, repository.AuditLogRepository) error) error {
	return fn(&m.checks, &m.audit)
}

type testServer struct {
	app   *fiber.App
	tx    *memTx
	svc   *checklist.Service
	users *memUsers
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	tables := &repository.Tables{
		Units:    []entity.Unit{{ID: "U1", Name: "1º Comando"}},
		Subunits: []entity.Subunit{{ID: "S1", UnitID: "U1", Name: "2º Batalhão"}},
		Stations: []entity.Station{
			{ID: "ST1", SubunitID: "S1", Name: "Posto Centro"},
			{ID: "ST2", SubunitID: "S1", Name: "Posto Norte"},
		},
		Vehicles: []entity.Vehicle{
			{ID: "V1", Prefix: "ABT", Name: "01", Status: entity.VehicleOperating, StationID: "ST1", Materials: []entity.MaterialItem{
				{ID: "M1", Name: "Mangueira 38mm", Quantity: decimal.RequireFromString("4"), Compartment: "C1"},
				{ID: "M2", Name: "Esguicho", Quantity: decimal.RequireFromString("2"), Compartment: "C1"},
			}},
			{ID: "V2", Prefix: "UR", Name: "02", Status: entity.VehicleOperating, StationID: "ST2"},
		},
	}
	store := catalog.NewStore(&staticReader{tables: tables}, logger.Nop())
	require.NoError(t, store.Refresh(context.Background()))

	cal, err := readiness.New(readiness.Config{
		Epoch:    civil.MustParse("2024-01-01"),
		Cutoff:   "07:30",
		States:   [3]string{"VERDE", "AMARELA", "AZUL"},
		Location: time.UTC,
	})
	require.NoError(t, err)

	tx := &memTx{}
	svc := checklist.NewService(cal, store, tx, logger.Nop())
	svc.SetClock(func() time.Time { return time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC) })

	users := newMemUsers()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
			logger.Nop(), svc),
		UserUC:    usecase.NewUserUseCase(users, store, logger.Nop(), svc),
		Checklist: svc,
		Catalog:   store,
		Calendar:  cal,
		JWTSecret: testJWTSecret,
	})
	return &testServer{app: app, tx: tx, svc: svc, users: users}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out bytes.Buffer
	_, _ = out.ReadFrom(resp.Body)
	return resp, out.Bytes()
}

func TestFlujoConferencia_DeSesionARegistro(t *testing.T) {
	srv := newTestServer(t)
	token := srv.users.issue(t, "BASIC", "STATION", "ST1")

	resp, body := srv.do(t, http.MethodPost, "/api/checklist/sessions", token, dto.StartSessionRequest{VehicleID: "V1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var view checklist.View
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, checklist.PhaseFilling, view.Phase)
	assert.Equal(t, 2, view.Missing)
	base := "/api/checklist/sessions/" + view.ID

	resp, body = srv.do(t, http.MethodPut, base+"/entries/M2", token, dto.SetEntryRequest{Status: "NOTED"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errBody))
	assert.Equal(t, "MISSING_OBSERVATION", errBody.Code)
	assert.Equal(t, []string{"M2"}, errBody.ItemIDs)

	resp, body = srv.do(t, http.MethodPost, base+"/submit", token, dto.SubmitRequest{Responsibles: []string{"Sd Souza"}, Commander: "Ten Lima"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &errBody))
	assert.Equal(t, "INCOMPLETE", errBody.Code)
	assert.Equal(t, 2, errBody.Missing)

	resp, _ = srv.do(t, http.MethodPut, base+"/entries/M1", token, dto.SetEntryRequest{Status: "OK"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = srv.do(t, http.MethodPut, base+"/entries/M2", token, dto.SetEntryRequest{Status: "NOTED", Observation: "ponta amassada"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = srv.do(t, http.MethodPost, base+"/submit", token, dto.SubmitRequest{Responsibles: []string{"Sd Souza"}, Commander: "Ten Lima"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var check entity.InventoryCheck
	require.NoError(t, json.Unmarshal(body, &check))
	assert.Equal(t, "V1", check.VehicleID)
	assert.Equal(t, "2024-05-10", check.Date.String())
	assert.Len(t, srv.tx.checks.list, 1)
	assert.Equal(t, 1, srv.tx.audit.n)

	resp, body = srv.do(t, http.MethodGet, "/api/checks", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.CheckSummary
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Noted)
	assert.False(t, list[0].Justified)

	resp, _ = srv.do(t, http.MethodPost, base+"/submit", token, dto.SubmitRequest{Responsibles: []string{"Sd Souza"}, Commander: "Ten Lima"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "la sesión terminada no admite un segundo envío")
}

func TestFlujoConferencia_VehiculoFueraDeAlcance(t *testing.T) {
	srv := newTestServer(t)
	token := srv.users.issue(t, "BASIC", "STATION", "ST1")

	resp, _ := srv.do(t, http.MethodPost, "/api/checklist/sessions", token, dto.StartSessionRequest{VehicleID: "V2"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := srv.do(t, http.MethodGet, "/api/vehicles", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "V1")
	assert.NotContains(t, string(body), "V2")
}

func TestFlujoConferencia_SesionAjenaNoEsVisible(t *testing.T) {
	srv := newTestServer(t)
	owner := srv.users.issue(t, "BASIC", "STATION", "ST1")

	resp, body := srv.do(t, http.MethodPost, "/api/checklist/sessions", owner, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var view checklist.View
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, checklist.PhaseSelecting, view.Phase)

	other := srv.users.issue(t, "ADMIN", "STATION", "ST1")
	resp, _ = srv.do(t, http.MethodGet, "/api/checklist/sessions/"+view.ID, other, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = srv.do(t, http.MethodGet, "/api/checklist/sessions/no-existe", owner, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_CapacidadesPorRol(t *testing.T) {
	srv := newTestServer(t)
	basic := srv.users.issue(t, "BASIC", "STATION", "ST1")

	resp, _ := srv.do(t, http.MethodGet, "/api/checks/export", basic, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = srv.do(t, http.MethodPost, "/api/admin/refresh", basic, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = srv.do(t, http.MethodPost, "/api/units", basic, dto.CreateUnitRequest{Name: "X"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = srv.do(t, http.MethodGet, "/api/users", srv.users.issue(t, "ADMIN", "GLOBAL", ""), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := srv.do(t, http.MethodPost, "/api/admin/refresh", srv.users.issue(t, "ADMIN", "GLOBAL", ""), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var refreshed dto.RefreshResponse
	require.NoError(t, json.Unmarshal(body, &refreshed))
	assert.Equal(t, 2, refreshed.Vehicles)
	assert.Equal(t, 2, refreshed.Stations)
}

func TestRouter_CalendarioYHealth(t *testing.T) {
	srv := newTestServer(t)
	token := srv.users.issue(t, "BASIC", "STATION", "ST1")

	// 2024-01-01 07:29 pertenece aún al día operativo anterior (índice -1 → AZUL)
	resp, body := srv.do(t, http.MethodGet, "/api/calendar/readiness?at=2024-01-01T07:29:00Z", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var r dto.ReadinessResponse
	require.NoError(t, json.Unmarshal(body, &r))
	assert.Equal(t, "2023-12-31", r.OperationalDay)
	assert.Equal(t, "AZUL", r.State)

	resp, _ = srv.do(t, http.MethodGet, "/api/calendar/readiness?at=ayer", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = srv.do(t, http.MethodGet, "/api/calendar/range?from=2024-01-01&days=400", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = srv.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)
}

func TestRouter_TokenDeUsuarioEliminadoEs401(t *testing.T) {
	srv := newTestServer(t)
	super := srv.users.issue(t, "SUPER", "GLOBAL", "")
	token := srv.users.issue(t, "BASIC", "STATION", "ST1")

	resp, _ := srv.do(t, http.MethodPost, "/api/checklist/sessions", token, dto.StartSessionRequest{VehicleID: "V1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, 1, srv.svc.Open())

	resp, body := srv.do(t, http.MethodDelete, "/api/users/u-BASIC-STATION-ST1", super, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode, string(body))
	assert.Equal(t, 0, srv.svc.Open(), "la baja descarta las conferencias abiertas del usuario")

	resp, body = srv.do(t, http.MethodGet, "/api/vehicles", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "REVOKED_TOKEN")
}

func TestRouter_TokenRevocadoTrasLogout(t *testing.T) {
	srv := newTestServer(t)
	token := srv.users.issue(t, "BASIC", "STATION", "ST1")

	resp, _ := srv.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := srv.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, _ = srv.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	fresh := srv.users.issue(t, "BASIC", "STATION", "ST1")
	resp, _ = srv.do(t, http.MethodGet, "/api/auth/me", fresh, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "un token nuevo del mismo usuario sigue valiendo")
}
