package authz

import "github.com/jhoicas/Inventario-vtr/internal/domain/entity"

// Placeholder nombre usado en encabezados cuando un eslabón de la jerarquía no existe.
const Placeholder = "N/D"

// Chain ancestros de un cuartel. SubunitID/UnitID quedan vacíos si el eslabón no existe.
type Chain struct {
	StationID string
	SubunitID string
	UnitID    string
}

// Index índice de la jerarquía construido una vez por recarga de datos:
// evita recorrer vehículo→cuartel→subunidad→unidad en cada consulta.
type Index struct {
	units    map[string]entity.Unit
	subunits map[string]entity.Subunit
	stations map[string]entity.Station
	order    []string // IDs de cuarteles en el orden de entrada
	chains   map[string]Chain
	children map[string]int // nodo → cantidad de hijos directos (subunidades o cuarteles)
}

// NewIndex construye el índice a partir de las tablas planas.
func NewIndex(units []entity.Unit, subunits []entity.Subunit, stations []entity.Station) *Index {
	ix := &Index{
		units:    make(map[string]entity.Unit, len(units)),
		subunits: make(map[string]entity.Subunit, len(subunits)),
		stations: make(map[string]entity.Station, len(stations)),
		order:    make([]string, 0, len(stations)),
		chains:   make(map[string]Chain, len(stations)),
		children: make(map[string]int),
	}
	for _, u := range units {
		ix.units[u.ID] = u
	}
	for _, s := range subunits {
		ix.subunits[s.ID] = s
		ix.children[unitKey(s.UnitID)]++
	}
	for _, st := range stations {
		if _, dup := ix.stations[st.ID]; !dup {
			ix.order = append(ix.order, st.ID)
		}
		ix.stations[st.ID] = st
		ix.children[subunitKey(st.SubunitID)]++

		ch := Chain{StationID: st.ID}
		if sub, ok := ix.subunits[st.SubunitID]; ok {
			ch.SubunitID = sub.ID
			if _, ok := ix.units[sub.UnitID]; ok {
				ch.UnitID = sub.UnitID
			}
		}
		ix.chains[st.ID] = ch
	}
	return ix
}

func unitKey(id string) string    { return "u:" + id }
func subunitKey(id string) string { return "s:" + id }

// Chain ancestros del cuartel.
func (ix *Index) Chain(stationID string) (Chain, bool) {
	ch, ok := ix.chains[stationID]
	return ch, ok
}

// Unit busca una unidad.
func (ix *Index) Unit(id string) (entity.Unit, bool) {
	u, ok := ix.units[id]
	return u, ok
}

// Subunit busca una subunidad.
func (ix *Index) Subunit(id string) (entity.Subunit, bool) {
	s, ok := ix.subunits[id]
	return s, ok
}

// Station busca un cuartel.
func (ix *Index) Station(id string) (entity.Station, bool) {
	s, ok := ix.stations[id]
	return s, ok
}

// NodeExists informa si existe un nodo del nivel indicado. GLOBAL siempre existe.
func (ix *Index) NodeExists(level entity.ScopeLevel, id string) bool {
	switch level {
	case entity.ScopeGlobal:
		return true
	case entity.ScopeUnit:
		_, ok := ix.units[id]
		return ok
	case entity.ScopeSubunit:
		_, ok := ix.subunits[id]
		return ok
	case entity.ScopeStation:
		_, ok := ix.stations[id]
		return ok
	}
	return false
}

// ChildCount hijos directos de una unidad (subunidades) o subunidad (cuarteles).
func (ix *Index) ChildCount(level entity.ScopeLevel, id string) int {
	switch level {
	case entity.ScopeUnit:
		return ix.children[unitKey(id)]
	case entity.ScopeSubunit:
		return ix.children[subunitKey(id)]
	}
	return 0
}

// StationVisible informa si el cuartel está dentro del alcance.
func (ix *Index) StationVisible(sc Scope, stationID string) bool {
	ch, ok := ix.chains[stationID]
	if !ok {
		return false
	}
	switch sc.Level {
	case entity.ScopeGlobal:
		return true
	case entity.ScopeUnit:
		return sc.ID != "" && ch.UnitID == sc.ID
	case entity.ScopeSubunit:
		return sc.ID != "" && ch.SubunitID == sc.ID
	case entity.ScopeStation:
		return sc.ID != "" && ch.StationID == sc.ID
	}
	return false
}

// VehicleVisible informa si el vehículo está dentro del alcance.
func (ix *Index) VehicleVisible(sc Scope, v *entity.Vehicle) bool {
	if v == nil {
		return false
	}
	if sc.IsGlobal() {
		return true
	}
	if !v.Linked() {
		return false
	}
	return ix.StationVisible(sc, v.StationID)
}

// VisibleStations cuarteles del alcance, en el orden de las tablas de origen.
func (ix *Index) VisibleStations(sc Scope) []entity.Station {
	out := make([]entity.Station, 0)
	for _, id := range ix.order {
		if ix.StationVisible(sc, id) {
			out = append(out, ix.stations[id])
		}
	}
	return out
}

// VisibleStationIDs conjunto de IDs de cuarteles del alcance.
func (ix *Index) VisibleStationIDs(sc Scope) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, id := range ix.order {
		if ix.StationVisible(sc, id) {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// VisibleVehicles filtra vehicles según el alcance sin modificar la tabla de entrada.
func (ix *Index) VisibleVehicles(sc Scope, vehicles []entity.Vehicle) []entity.Vehicle {
	out := make([]entity.Vehicle, 0, len(vehicles))
	if sc.IsGlobal() {
		return append(out, vehicles...)
	}
	ids := ix.VisibleStationIDs(sc)
	for _, v := range vehicles {
		if !v.Linked() {
			continue
		}
		if _, ok := ids[v.StationID]; ok {
			out = append(out, v)
		}
	}
	return out
}

// VisibleSubunits subunidades que contienen al menos un cuartel visible, o todas si el alcance es GLOBAL.
// Para alcance UNIT o SUBUNIT se incluye además el propio nodo aunque no tenga cuarteles.
func (ix *Index) VisibleSubunits(sc Scope, subunits []entity.Subunit) []entity.Subunit {
	out := make([]entity.Subunit, 0, len(subunits))
	if sc.IsGlobal() {
		return append(out, subunits...)
	}
	keep := make(map[string]bool)
	for id := range ix.VisibleStationIDs(sc) {
		keep[ix.chains[id].SubunitID] = true
	}
	for _, s := range subunits {
		switch {
		case keep[s.ID]:
		case sc.Level == entity.ScopeSubunit && s.ID == sc.ID:
		case sc.Level == entity.ScopeUnit && s.UnitID == sc.ID && ix.NodeExists(entity.ScopeUnit, sc.ID):
		default:
			continue
		}
		out = append(out, s)
	}
	return out
}

// VisibleUnits unidades relacionadas con el alcance (la propia o la ancestra de los nodos visibles).
func (ix *Index) VisibleUnits(sc Scope, units []entity.Unit) []entity.Unit {
	out := make([]entity.Unit, 0, len(units))
	if sc.IsGlobal() {
		return append(out, units...)
	}
	keep := make(map[string]bool)
	switch sc.Level {
	case entity.ScopeUnit:
		keep[sc.ID] = true
	case entity.ScopeSubunit:
		if s, ok := ix.subunits[sc.ID]; ok {
			keep[s.UnitID] = true
		}
	case entity.ScopeStation:
		if ch, ok := ix.chains[sc.ID]; ok {
			keep[ch.UnitID] = true
		}
	}
	for _, u := range units {
		if keep[u.ID] {
			out = append(out, u)
		}
	}
	return out
}

// Header resuelve los nombres organizacionales del cuartel. Eslabones faltantes = Placeholder.
func (ix *Index) Header(stationID string) entity.CheckHeader {
	h := entity.CheckHeader{
		UnitName:              Placeholder,
		SubunitName:           Placeholder,
		StationName:           Placeholder,
		StationClassification: Placeholder,
		Municipality:          Placeholder,
	}
	st, ok := ix.stations[stationID]
	if !ok {
		return h
	}
	h.StationName = nonEmpty(st.Name)
	h.StationClassification = nonEmpty(st.Classification)
	h.Municipality = nonEmpty(st.Municipality)
	sub, ok := ix.subunits[st.SubunitID]
	if !ok {
		return h
	}
	h.SubunitName = nonEmpty(sub.Name)
	if u, ok := ix.units[sub.UnitID]; ok {
		h.UnitName = nonEmpty(u.Name)
	}
	return h
}

// VehicleHeader encabezado completo de un vehículo (jerarquía + identificación).
func (ix *Index) VehicleHeader(v *entity.Vehicle) entity.CheckHeader {
	h := ix.Header(v.StationID)
	h.VehiclePrefix = v.Prefix
	h.VehicleName = v.Name
	return h
}

func nonEmpty(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
