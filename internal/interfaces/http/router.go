package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-vtr/internal/application/auth"
	"github.com/jhoicas/Inventario-vtr/internal/application/catalog"
	"github.com/jhoicas/Inventario-vtr/internal/application/checklist"
	"github.com/jhoicas/Inventario-vtr/internal/application/report"
	"github.com/jhoicas/Inventario-vtr/internal/application/usecase"
	"github.com/jhoicas/Inventario-vtr/internal/domain/authz"
	"github.com/jhoicas/Inventario-vtr/internal/domain/readiness"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	OrgUC     *usecase.OrgUseCase
	VehicleUC *usecase.VehicleUseCase
	UserUC    *usecase.UserUseCase
	ReportUC  *report.ReportUseCase
	Checklist *checklist.Service
	Catalog   *catalog.Store
	Calendar  *readiness.Calendar
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	admin := NewAdminHandler(deps.Catalog, deps.Checklist)
	api.Get("/health", admin.Health)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Calendario de prontitud
	calendar := NewCalendarHandler(deps.Calendar, nil)
	protected.Get("/calendar/readiness", calendar.Readiness)
	protected.Get("/calendar/range", calendar.Range)

	// Jerarquía: lectura por alcance, escritura SUPER
	org := NewOrgHandler(deps.OrgUC, deps.Catalog)
	manageOrg := RequireCapability(authz.CapManageHierarchy)
	protected.Get("/units", org.ListUnits)
	protected.Post("/units", manageOrg, org.CreateUnit)
	protected.Put("/units/:id", manageOrg, org.UpdateUnit)
	protected.Delete("/units/:id", manageOrg, org.DeleteUnit)
	protected.Get("/subunits", org.ListSubunits)
	protected.Post("/subunits", manageOrg, org.CreateSubunit)
	protected.Put("/subunits/:id", manageOrg, org.UpdateSubunit)
	protected.Delete("/subunits/:id", manageOrg, org.DeleteSubunit)
	protected.Get("/stations", org.ListStations)
	protected.Post("/stations", manageOrg, org.CreateStation)
	protected.Put("/stations/:id", manageOrg, org.UpdateStation)
	protected.Delete("/stations/:id", manageOrg, org.DeleteStation)

	// Vehículos
	vehicles := NewVehicleHandler(deps.VehicleUC, deps.Catalog)
	manageVehicles := RequireCapability(authz.CapManageVehicles)
	protected.Get("/vehicles", vehicles.List)
	protected.Get("/vehicles/:id", vehicles.GetByID)
	protected.Post("/vehicles", manageVehicles, vehicles.Create)
	protected.Put("/vehicles/:id", manageVehicles, vehicles.Update)
	protected.Put("/vehicles/:id/materials", manageVehicles, vehicles.ReplaceMaterials)
	protected.Delete("/vehicles/:id", manageVehicles, vehicles.Delete)

	// Conferencias registradas (export antes de :id)
	checks := NewCheckHandler(deps.Catalog, deps.ReportUC)
	protected.Get("/checks/export", RequireCapability(authz.CapExportReports), checks.Export)
	protected.Get("/checks", checks.List)
	protected.Get("/checks/:id", checks.GetByID)
	protected.Get("/checks/:id/pdf", checks.PDF)

	// Flujo de conferencia
	cl := NewChecklistHandler(deps.Checklist)
	sessions := protected.Group("/checklist/sessions", RequireCapability(authz.CapSubmitCheck))
	sessions.Post("/", cl.Create)
	sessions.Get("/:id", cl.Get)
	sessions.Put("/:id/vehicle", cl.SelectVehicle)
	sessions.Put("/:id/entries/:item_id", cl.SetEntry)
	sessions.Post("/:id/submit", cl.Submit)
	sessions.Post("/:id/reset", cl.Reset)
	sessions.Delete("/:id", cl.Delete)

	// Administración
	protected.Post("/admin/refresh", RequireCapability(authz.CapRefreshData), admin.Refresh)

	users := NewUserHandler(deps.UserUC)
	manageUsers := protected.Group("/users", RequireCapability(authz.CapManageUsers))
	manageUsers.Get("/", users.List)
	manageUsers.Post("/", users.Create)
	manageUsers.Get("/:id", users.GetByID)
	manageUsers.Put("/:id", users.Update)
	manageUsers.Delete("/:id", users.Delete)
}
