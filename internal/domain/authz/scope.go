// Package authz contiene los dos predicados de autorización, independientes entre sí:
// visibilidad por alcance jerárquico (qué cuarteles y vehículos incluye un alcance) y
// capacidades por rol (qué acciones puede ejecutar un perfil).
package authz

import "github.com/jhoicas/Inventario-vtr/internal/domain/entity"

// Scope alcance de un usuario: nivel de la jerarquía y nodo concreto.
type Scope struct {
	Level entity.ScopeLevel `json:"level"`
	ID    string            `json:"id,omitempty"`
}

// Global alcance sin restricción.
func Global() Scope {
	return Scope{Level: entity.ScopeGlobal}
}

// ScopeOf alcance declarado por el usuario.
func ScopeOf(u *entity.User) Scope {
	if u == nil {
		return Scope{}
	}
	if u.ScopeLevel == entity.ScopeGlobal {
		return Global()
	}
	return Scope{Level: u.ScopeLevel, ID: u.ScopeID}
}

// IsGlobal informa si el alcance no restringe nada.
func (s Scope) IsGlobal() bool {
	return s.Level == entity.ScopeGlobal
}

// VisibleStations cuarteles incluidos en el alcance. Proyección pura: no modifica las tablas
// y devuelve vacío si el alcance referencia un nodo inexistente.
func VisibleStations(sc Scope, units []entity.Unit, subunits []entity.Subunit, stations []entity.Station) []entity.Station {
	return NewIndex(units, subunits, stations).VisibleStations(sc)
}

// VisibleVehicles vehículos cuyos cuarteles están en el alcance. Los vehículos sin cuartel
// solo son visibles para el alcance GLOBAL.
func VisibleVehicles(sc Scope, vehicles []entity.Vehicle, units []entity.Unit, subunits []entity.Subunit, stations []entity.Station) []entity.Vehicle {
	return NewIndex(units, subunits, stations).VisibleVehicles(sc, vehicles)
}
