// Package checklist implementa el flujo de conferencia de material de un vehículo:
// selección del vehículo, llenado de las entradas y emisión del registro inmutable.
package checklist

import (
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-vtr/internal/domain"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/pkg/civil"
)

// Phase estado de una sesión de conferencia.
type Phase string

// Estados de la sesión. SELECTING es el inicial y FINISHED el terminal.
const (
	PhaseSelecting Phase = "SELECTING"
	PhaseFilling   Phase = "FILLING"
	PhaseFinished  Phase = "FINISHED"
)

// Session conferencia en curso de un usuario. Sus métodos no son seguros para uso
// concurrente; el Service serializa el acceso con mu.
type Session struct {
	mu sync.Mutex

	id        string
	ownerID   string
	phase     Phase
	createdAt time.Time
	touchedAt time.Time

	// Datos capturados al elegir el vehículo.
	vehicle    entity.Vehicle
	shiftColor string
	openedDay  civil.Date
	entries    []entity.CheckEntry // una por ítem del snapshot, en el mismo orden
	position   map[string][]int    // ID de ítem → posiciones (IDs repetidos en datos antiguos)

	result *entity.InventoryCheck
}

func newSession(id, ownerID string, now time.Time) *Session {
	return &Session{
		id:        id,
		ownerID:   ownerID,
		phase:     PhaseSelecting,
		createdAt: now,
		touchedAt: now,
	}
}

// selectVehicle SELECTING → FILLING. Copia la lista de material: ediciones posteriores
// del vehículo no alteran la sesión.
func (s *Session) selectVehicle(v entity.Vehicle, shiftColor string, day civil.Date, now time.Time) error {
	if s.phase != PhaseSelecting {
		return domain.ErrInvalidState
	}
	v.Materials = entity.CloneMaterials(v.Materials)
	s.vehicle = v
	s.shiftColor = shiftColor
	s.openedDay = day
	s.entries = make([]entity.CheckEntry, len(v.Materials))
	s.position = make(map[string][]int, len(v.Materials))
	for i, it := range v.Materials {
		s.entries[i] = entity.CheckEntry{ItemID: it.ID}
		s.position[it.ID] = append(s.position[it.ID], i)
	}
	s.phase = PhaseFilling
	s.touchedAt = now
	return nil
}

// setEntry registra el resultado de un ítem. Los resultados distintos de OK exigen observación.
func (s *Session) setEntry(itemID string, status entity.EntryStatus, observation string, now time.Time) error {
	if s.phase != PhaseFilling {
		return domain.ErrInvalidState
	}
	idx, ok := s.position[itemID]
	if !ok {
		return domain.NewValidationError(domain.CodeUnknownItem, "ítem inexistente en la sesión", itemID)
	}
	if !status.Valid() {
		return domain.NewValidationError(domain.CodeInvalidStatus, "resultado inválido: "+string(status), itemID)
	}
	observation = strings.TrimSpace(observation)
	if status.RequiresObservation() && observation == "" {
		return domain.NewValidationError(domain.CodeMissingObservation, "observación obligatoria", itemID)
	}
	if status == entity.EntryOK {
		observation = ""
	}
	for _, i := range idx {
		s.entries[i] = entity.CheckEntry{ItemID: itemID, Status: status, Observation: observation}
	}
	s.touchedAt = now
	return nil
}

// missing IDs de los ítems sin responder.
func (s *Session) missing() []string {
	var ids []string
	for _, e := range s.entries {
		if e.Status == "" {
			ids = append(ids, e.ItemID)
		}
	}
	return ids
}

// validateEntries reglas de completitud y observación, repetidas al enviar.
func (s *Session) validateEntries() error {
	if ids := s.missing(); len(ids) > 0 {
		return domain.NewIncompleteError(len(ids), ids)
	}
	var noObs []string
	for _, e := range s.entries {
		if e.Status.RequiresObservation() && strings.TrimSpace(e.Observation) == "" {
			noObs = append(noObs, e.ItemID)
		}
	}
	if len(noObs) > 0 {
		return domain.NewValidationError(domain.CodeMissingObservation, "observación obligatoria", noObs...)
	}
	return nil
}

// finish FILLING → FINISHED.
func (s *Session) finish(c *entity.InventoryCheck, now time.Time) {
	s.result = c
	s.phase = PhaseFinished
	s.touchedAt = now
}

// reset vuelve a SELECTING descartando todo lo anterior.
func (s *Session) reset(now time.Time) {
	s.vehicle = entity.Vehicle{}
	s.shiftColor = ""
	s.openedDay = civil.Date{}
	s.entries = nil
	s.position = nil
	s.result = nil
	s.phase = PhaseSelecting
	s.touchedAt = now
}

// ItemView ítem del snapshot con su respuesta actual.
type ItemView struct {
	Item        entity.MaterialItem `json:"item"`
	Status      entity.EntryStatus  `json:"status,omitempty"`
	Observation string              `json:"observation,omitempty"`
	Answered    bool                `json:"answered"`
}

// View copia de solo lectura del estado de una sesión.
type View struct {
	ID             string                 `json:"id"`
	Phase          Phase                  `json:"phase"`
	VehicleID      string                 `json:"vehicle_id,omitempty"`
	VehicleName    string                 `json:"vehicle_name,omitempty"`
	ShiftColor     string                 `json:"shift_color,omitempty"`
	OperationalDay *civil.Date            `json:"operational_day,omitempty"`
	Items          []ItemView             `json:"items"`
	Missing        int                    `json:"missing"`
	Check          *entity.InventoryCheck `json:"check,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

func (s *Session) view() View {
	v := View{
		ID:        s.id,
		Phase:     s.phase,
		Items:     make([]ItemView, 0, len(s.entries)),
		Check:     s.result,
		CreatedAt: s.createdAt,
		UpdatedAt: s.touchedAt,
	}
	if s.phase == PhaseSelecting {
		return v
	}
	v.VehicleID = s.vehicle.ID
	v.VehicleName = s.vehicle.DisplayName()
	v.ShiftColor = s.shiftColor
	day := s.openedDay
	v.OperationalDay = &day
	for i, it := range s.vehicle.Materials {
		e := s.entries[i]
		v.Items = append(v.Items, ItemView{
			Item:        it,
			Status:      e.Status,
			Observation: e.Observation,
			Answered:    e.Status != "",
		})
		if e.Status == "" {
			v.Missing++
		}
	}
	return v
}
