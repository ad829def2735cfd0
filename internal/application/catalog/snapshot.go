package catalog

import (
	"time"

	"github.com/jhoicas/Inventario-vtr/internal/domain/authz"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/internal/domain/repository"
	"github.com/jhoicas/Inventario-vtr/pkg/civil"
)

// Snapshot copia en memoria de todas las tablas más el índice de jerarquía.
// Es inmutable: cada recarga o alta de conferencia produce un Snapshot nuevo.
type Snapshot struct {
	Units     []entity.Unit
	Subunits  []entity.Subunit
	Stations  []entity.Station
	Vehicles  []entity.Vehicle
	Checks    []entity.InventoryCheck
	Index     *authz.Index
	LoadedAt  time.Time
	FromCache bool // cargado desde la caché tras un fallo de lectura remota

	vehicleByID map[string]int
}

func newSnapshot(t *repository.Tables, at time.Time) *Snapshot {
	if t == nil {
		t = &repository.Tables{}
	}
	s := &Snapshot{
		Units:       t.Units,
		Subunits:    t.Subunits,
		Stations:    t.Stations,
		Vehicles:    t.Vehicles,
		Checks:      t.Checks,
		Index:       authz.NewIndex(t.Units, t.Subunits, t.Stations),
		LoadedAt:    at,
		vehicleByID: make(map[string]int, len(t.Vehicles)),
	}
	for i, v := range t.Vehicles {
		s.vehicleByID[v.ID] = i
	}
	return s
}

func emptySnapshot() *Snapshot {
	return newSnapshot(nil, time.Time{})
}

// withCheck copia superficial con la conferencia agregada al final.
func (s *Snapshot) withCheck(c entity.InventoryCheck) *Snapshot {
	next := *s
	next.Checks = make([]entity.InventoryCheck, len(s.Checks), len(s.Checks)+1)
	copy(next.Checks, s.Checks)
	next.Checks = append(next.Checks, c)
	return &next
}

// Tables contenido del snapshot en el formato del almacén.
func (s *Snapshot) Tables() *repository.Tables {
	return &repository.Tables{
		Units:    s.Units,
		Subunits: s.Subunits,
		Stations: s.Stations,
		Vehicles: s.Vehicles,
		Checks:   s.Checks,
	}
}

// Vehicle busca un vehículo por ID (copia del registro).
func (s *Snapshot) Vehicle(id string) (*entity.Vehicle, bool) {
	i, ok := s.vehicleByID[id]
	if !ok {
		return nil, false
	}
	v := s.Vehicles[i]
	return &v, true
}

// Check busca una conferencia por ID (copia del registro).
func (s *Snapshot) Check(id string) (*entity.InventoryCheck, bool) {
	for i := range s.Checks {
		if s.Checks[i].ID == id {
			c := s.Checks[i]
			return &c, true
		}
	}
	return nil, false
}

// HasCheckOn informa si ya existe una conferencia del vehículo para la fecha.
func (s *Snapshot) HasCheckOn(vehicleID string, date civil.Date) bool {
	for i := range s.Checks {
		if s.Checks[i].VehicleID == vehicleID && s.Checks[i].Date == date {
			return true
		}
	}
	return false
}

// VehiclesAtStation cantidad de vehículos vinculados al cuartel.
func (s *Snapshot) VehiclesAtStation(stationID string) int {
	n := 0
	for i := range s.Vehicles {
		if s.Vehicles[i].StationID == stationID {
			n++
		}
	}
	return n
}

// CheckVisible informa si la conferencia pertenece a un vehículo visible en el alcance.
// Las conferencias de vehículos eliminados solo son visibles para el alcance GLOBAL.
func (s *Snapshot) CheckVisible(sc authz.Scope, c *entity.InventoryCheck) bool {
	if sc.IsGlobal() {
		return true
	}
	v, ok := s.Vehicle(c.VehicleID)
	if !ok {
		return false
	}
	return s.Index.VehicleVisible(sc, v)
}
