package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-vtr/internal/domain/authz"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
)

// Jerarquía de prueba:
//
//	U1 ─ S2 ─ ST1, ST2
//	   └ S3 ─ ST3
//	U9 ─ S9 ─ ST9
//	(huérfano) S404 → U404 inexistente ─ ST404
type fixture struct {
	units    []entity.Unit
	subunits []entity.Subunit
	stations []entity.Station
	vehicles []entity.Vehicle
}

func newFixture() fixture {
	return fixture{
		units: []entity.Unit{
			{ID: "U1", Name: "1º Comando"},
			{ID: "U9", Name: "9º Comando"},
		},
		subunits: []entity.Subunit{
			{ID: "S2", UnitID: "U1", Name: "2º Batalhão"},
			{ID: "S3", UnitID: "U1", Name: "3º Batalhão"},
			{ID: "S9", UnitID: "U9", Name: "9º Batalhão"},
			{ID: "S404", UnitID: "U404", Name: "Órfão"},
		},
		stations: []entity.Station{
			{ID: "ST1", SubunitID: "S2", Name: "Posto Centro", Classification: "sede", Municipality: "Campinas"},
			{ID: "ST2", SubunitID: "S2", Name: "Posto Norte"},
			{ID: "ST3", SubunitID: "S3", Name: "Posto Sul"},
			{ID: "ST9", SubunitID: "S9", Name: "Posto Leste"},
			{ID: "ST404", SubunitID: "S404", Name: "Posto Órfão"},
		},
		vehicles: []entity.Vehicle{
			{ID: "V1", Prefix: "ABT", Name: "01", StationID: "ST1"},
			{ID: "V2", Prefix: "UR", Name: "02", StationID: "ST2"},
			{ID: "V3", Prefix: "ABT", Name: "03", StationID: "ST3"},
			{ID: "V9", Prefix: "AS", Name: "09", StationID: "ST9"},
			{ID: "VX", Prefix: "RES", Name: "99"},
		},
	}
}

func stationIDs(list []entity.Station) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func vehicleIDs(list []entity.Vehicle) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		out = append(out, v.ID)
	}
	return out
}

func TestVisibleStations_PorNivel(t *testing.T) {
	f := newFixture()
	cases := []struct {
		name  string
		scope authz.Scope
		want  []string
	}{
		{"global", authz.Global(), []string{"ST1", "ST2", "ST3", "ST9", "ST404"}},
		{"unidad U1", authz.Scope{Level: entity.ScopeUnit, ID: "U1"}, []string{"ST1", "ST2", "ST3"}},
		{"unidad hermana U9", authz.Scope{Level: entity.ScopeUnit, ID: "U9"}, []string{"ST9"}},
		{"subunidad S2", authz.Scope{Level: entity.ScopeSubunit, ID: "S2"}, []string{"ST1", "ST2"}},
		{"cuartel ST1", authz.Scope{Level: entity.ScopeStation, ID: "ST1"}, []string{"ST1"}},
		{"unidad inexistente", authz.Scope{Level: entity.ScopeUnit, ID: "U404"}, []string{}},
		{"subunidad inexistente", authz.Scope{Level: entity.ScopeSubunit, ID: "nope"}, []string{}},
		{"cuartel inexistente", authz.Scope{Level: entity.ScopeStation, ID: "nope"}, []string{}},
		{"nivel desconocido", authz.Scope{Level: "REGION", ID: "U1"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := authz.VisibleStations(tc.scope, f.units, f.subunits, f.stations)
			assert.Equal(t, tc.want, stationIDs(got))
		})
	}
}

func TestVisibleStations_UnidadHermanaNoVe(t *testing.T) {
	f := newFixture()
	got := authz.VisibleStations(authz.Scope{Level: entity.ScopeUnit, ID: "U9"}, f.units, f.subunits, f.stations)
	assert.NotContains(t, stationIDs(got), "ST1")
}

func TestVisibleVehicles_SinCuartel(t *testing.T) {
	f := newFixture()

	global := authz.VisibleVehicles(authz.Global(), f.vehicles, f.units, f.subunits, f.stations)
	assert.Contains(t, vehicleIDs(global), "VX", "GLOBAL ve vehículos sin cuartel")
	assert.Len(t, global, len(f.vehicles))

	for _, sc := range []authz.Scope{
		{Level: entity.ScopeUnit, ID: "U1"},
		{Level: entity.ScopeSubunit, ID: "S2"},
		{Level: entity.ScopeStation, ID: "ST1"},
	} {
		got := authz.VisibleVehicles(sc, f.vehicles, f.units, f.subunits, f.stations)
		assert.NotContains(t, vehicleIDs(got), "VX", string(sc.Level))
	}
}

func TestVisibleVehicles_PorAlcance(t *testing.T) {
	f := newFixture()
	ix := authz.NewIndex(f.units, f.subunits, f.stations)

	assert.Equal(t, []string{"V1", "V2", "V3"}, vehicleIDs(ix.VisibleVehicles(authz.Scope{Level: entity.ScopeUnit, ID: "U1"}, f.vehicles)))
	assert.Equal(t, []string{"V1", "V2"}, vehicleIDs(ix.VisibleVehicles(authz.Scope{Level: entity.ScopeSubunit, ID: "S2"}, f.vehicles)))
	assert.Equal(t, []string{"V1"}, vehicleIDs(ix.VisibleVehicles(authz.Scope{Level: entity.ScopeStation, ID: "ST1"}, f.vehicles)))
	assert.Empty(t, ix.VisibleVehicles(authz.Scope{Level: entity.ScopeStation, ID: "borrado"}, f.vehicles))
}

func TestVisibleVehicles_NoModificaEntrada(t *testing.T) {
	f := newFixture()
	before := append([]entity.Vehicle(nil), f.vehicles...)

	got := authz.VisibleVehicles(authz.Global(), f.vehicles, f.units, f.subunits, f.stations)
	got[0].Name = "mutado"

	assert.Equal(t, before, f.vehicles)
}

func TestIndex_Header(t *testing.T) {
	f := newFixture()
	ix := authz.NewIndex(f.units, f.subunits, f.stations)

	h := ix.Header("ST1")
	assert.Equal(t, "1º Comando", h.UnitName)
	assert.Equal(t, "2º Batalhão", h.SubunitName)
	assert.Equal(t, "Posto Centro", h.StationName)
	assert.Equal(t, "sede", h.StationClassification)
	assert.Equal(t, "Campinas", h.Municipality)

	orphan := ix.Header("ST404")
	assert.Equal(t, authz.Placeholder, orphan.UnitName)
	assert.Equal(t, "Órfão", orphan.SubunitName)

	missing := ix.Header("")
	assert.Equal(t, authz.Placeholder, missing.StationName)
	assert.Equal(t, authz.Placeholder, missing.UnitName)

	vh := ix.VehicleHeader(&f.vehicles[0])
	assert.Equal(t, "ABT", vh.VehiclePrefix)
	assert.Equal(t, "01", vh.VehicleName)
}

func TestIndex_NodeExistsYChildCount(t *testing.T) {
	f := newFixture()
	ix := authz.NewIndex(f.units, f.subunits, f.stations)

	assert.True(t, ix.NodeExists(entity.ScopeGlobal, ""))
	assert.True(t, ix.NodeExists(entity.ScopeUnit, "U1"))
	assert.False(t, ix.NodeExists(entity.ScopeUnit, "S2"))
	assert.True(t, ix.NodeExists(entity.ScopeSubunit, "S2"))
	assert.True(t, ix.NodeExists(entity.ScopeStation, "ST9"))
	assert.False(t, ix.NodeExists("REGION", "U1"))

	assert.Equal(t, 2, ix.ChildCount(entity.ScopeUnit, "U1"))
	assert.Equal(t, 2, ix.ChildCount(entity.ScopeSubunit, "S2"))
	assert.Equal(t, 0, ix.ChildCount(entity.ScopeSubunit, "S9X"))
}

func TestIndex_VisibleUnitsYSubunits(t *testing.T) {
	f := newFixture()
	ix := authz.NewIndex(f.units, f.subunits, f.stations)

	sc := authz.Scope{Level: entity.ScopeStation, ID: "ST3"}
	units := ix.VisibleUnits(sc, f.units)
	require.Len(t, units, 1)
	assert.Equal(t, "U1", units[0].ID)

	subs := ix.VisibleSubunits(sc, f.subunits)
	require.Len(t, subs, 1)
	assert.Equal(t, "S3", subs[0].ID)

	assert.Len(t, ix.VisibleSubunits(authz.Scope{Level: entity.ScopeUnit, ID: "U1"}, f.subunits), 2)
	assert.Len(t, ix.VisibleUnits(authz.Global(), f.units), 2)
}

func TestCan_CapacidadSeparadaDelAlcance(t *testing.T) {
	assert.True(t, authz.Can(entity.RoleBasic, authz.CapSubmitCheck))
	assert.False(t, authz.Can(entity.RoleBasic, authz.CapManageVehicles))
	assert.True(t, authz.Can(entity.RoleAdmin, authz.CapManageVehicles))
	assert.False(t, authz.Can(entity.RoleAdmin, authz.CapManageHierarchy))
	assert.True(t, authz.Can(entity.RoleSuper, authz.CapManageHierarchy))
	assert.True(t, authz.Can(entity.RoleSuper, authz.CapManageUsers))
	assert.False(t, authz.Can("GUEST", authz.CapViewChecks))

	caps := authz.Capabilities(entity.RoleBasic)
	caps[0] = authz.CapManageUsers
	assert.False(t, authz.Can(entity.RoleBasic, authz.CapManageUsers), "Capabilities devuelve una copia")
}

func TestScopeOf(t *testing.T) {
	assert.Equal(t, authz.Global(), authz.ScopeOf(&entity.User{ScopeLevel: entity.ScopeGlobal, ScopeID: "ignorado"}))
	assert.Equal(t, authz.Scope{Level: entity.ScopeSubunit, ID: "S2"},
		authz.ScopeOf(&entity.User{ScopeLevel: entity.ScopeSubunit, ScopeID: "S2"}))
	assert.Equal(t, authz.Scope{}, authz.ScopeOf(nil))
}
