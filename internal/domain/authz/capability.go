package authz

import "github.com/jhoicas/Inventario-vtr/internal/domain/entity"

// Capability acción de negocio protegida por rol. Es independiente del alcance:
// un ADMIN de cuartel gestiona vehículos, pero solo ve los de su cuartel.
type Capability string

// Capacidades conocidas.
const (
	CapSubmitCheck     Capability = "submit_check"
	CapViewChecks      Capability = "view_checks"
	CapExportReports   Capability = "export_reports"
	CapManageVehicles  Capability = "manage_vehicles"
	CapManageHierarchy Capability = "manage_hierarchy"
	CapManageUsers     Capability = "manage_users"
	CapRefreshData     Capability = "refresh_data"
)

var roleCapabilities = map[entity.Role][]Capability{
	entity.RoleBasic: {CapSubmitCheck, CapViewChecks},
	entity.RoleAdmin: {CapSubmitCheck, CapViewChecks, CapExportReports, CapManageVehicles, CapRefreshData},
	entity.RoleSuper: {
		CapSubmitCheck, CapViewChecks, CapExportReports, CapManageVehicles,
		CapManageHierarchy, CapManageUsers, CapRefreshData,
	},
}

// Can informa si el rol tiene la capacidad.
func Can(role entity.Role, c Capability) bool {
	for _, have := range roleCapabilities[role] {
		if have == c {
			return true
		}
	}
	return false
}

// Capabilities capacidades del rol (copia).
func Capabilities(role entity.Role) []Capability {
	caps := roleCapabilities[role]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}
