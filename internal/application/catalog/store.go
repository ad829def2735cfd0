// Package catalog mantiene la copia en memoria de las tablas del almacén remoto
// (unidades, subunidades, cuarteles, vehículos y conferencias). La copia se reemplaza
// completa tras cada lectura exitosa; solo se conservan las conferencias agregadas en
// memoria mientras la lectura estaba en curso.
package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/Inventario-vtr/internal/application/appctx"
	"github.com/jhoicas/Inventario-vtr/internal/domain"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/internal/domain/repository"
	"github.com/jhoicas/Inventario-vtr/pkg/civil"
	"github.com/jhoicas/Inventario-vtr/pkg/logger"
)

// Store guarda el snapshot vigente. Seguro para uso concurrente.
type Store struct {
	reader repository.SnapshotReader
	cache  repository.SnapshotCache // opcional
	log    *logger.Logger
	lang   language.Tag
	now    func() time.Time

	mu      sync.RWMutex
	current *Snapshot
	loading int                     // recargas en curso
	recent  []entity.InventoryCheck // agregadas mientras loading > 0
}

// Option configura el Store.
type Option func(*Store)

// WithCache respaldo del último snapshot válido (p. ej. Redis).
func WithCache(c repository.SnapshotCache) Option {
	return func(s *Store) { s.cache = c }
}

// WithLanguage idioma usado para ordenar nombres.
func WithLanguage(tag language.Tag) Option {
	return func(s *Store) { s.lang = tag }
}

// WithClock reloj alternativo (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore construye el store. No lee nada hasta el primer Refresh.
func NewStore(reader repository.SnapshotReader, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		reader: reader,
		log:    log,
		lang:   language.Spanish,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Refresh lee todas las tablas y reemplaza el snapshot. Si la lectura falla conserva el
// último snapshot válido (o lo recupera de la caché) y devuelve un *domain.PersistenceError
// con Stale=true cuando hay datos para seguir operando.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	mark := len(s.recent)
	s.loading++
	s.mu.Unlock()

	tables, err := s.reader.LoadAll(ctx)
	if err != nil {
		s.mu.Lock()
		s.endLoad()
		s.mu.Unlock()

		perr := domain.NewPersistenceError("cargar tablas", err)

		s.mu.RLock()
		hasCurrent := s.current != nil
		s.mu.RUnlock()

		if !hasCurrent && s.cache != nil {
			cached, cerr := s.cache.Load(ctx)
			if cerr != nil {
				s.log.Warn().Err(cerr).Msg("leer snapshot de caché")
			} else if cached != nil {
				snap := newSnapshot(cached, s.now())
				snap.FromCache = true
				s.mu.Lock()
				if s.current == nil {
					s.current = snap
				}
				s.mu.Unlock()
				hasCurrent = true
			}
		}
		perr.Stale = hasCurrent
		s.log.Warn().Err(err).Bool("stale", hasCurrent).Msg("recarga de tablas fallida")
		return perr
	}

	s.mu.Lock()
	tables = withMissing(tables, s.recent[mark:])
	s.current = newSnapshot(tables, s.now())
	s.endLoad()
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Save(ctx, tables); err != nil {
			s.log.Warn().Err(err).Msg("guardar snapshot en caché")
		}
	}
	s.log.Debug().
		Int("units", len(tables.Units)).
		Int("stations", len(tables.Stations)).
		Int("vehicles", len(tables.Vehicles)).
		Int("checks", len(tables.Checks)).
		Msg("tablas recargadas")
	return nil
}

// endLoad cierra una recarga; requiere s.mu.
func (s *Store) endLoad() {
	if s.loading--; s.loading == 0 {
		s.recent = nil
	}
}

// withMissing agrega a las tablas leídas las conferencias que la lectura no alcanzó a ver.
// Devuelve t sin copiar cuando no falta ninguna.
func withMissing(t *repository.Tables, recent []entity.InventoryCheck) *repository.Tables {
	if len(recent) == 0 {
		return t
	}
	seen := make(map[string]struct{}, len(t.Checks))
	for _, c := range t.Checks {
		seen[c.ID] = struct{}{}
	}
	var missing []entity.InventoryCheck
	for _, c := range recent {
		if _, ok := seen[c.ID]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return t
	}
	out := *t
	out.Checks = make([]entity.InventoryCheck, 0, len(t.Checks)+len(missing))
	out.Checks = append(append(out.Checks, t.Checks...), missing...)
	return &out
}

// Current snapshot vigente; vacío si todavía no se cargó nada.
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return emptySnapshot()
	}
	return s.current
}

// Loaded informa si hay datos cargados.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// AppendCheck agrega una conferencia ya persistida a la lista en memoria. Si hay una
// recarga en curso la conferencia sobrevive al reemplazo del snapshot.
func (s *Store) AppendCheck(c entity.InventoryCheck) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading > 0 {
		s.recent = append(s.recent, c)
	}
	if s.current == nil {
		s.current = emptySnapshot()
	}
	s.current = s.current.withCheck(c)
}

// ── Consultas filtradas por alcance ──────────────────────────────────────────

// Units unidades relacionadas con el alcance del principal, ordenadas por nombre.
func (s *Store) Units(p appctx.Principal) []entity.Unit {
	snap := s.Current()
	list := snap.Index.VisibleUnits(p.Scope, snap.Units)
	c := collate.New(s.lang)
	sort.SliceStable(list, func(i, j int) bool { return c.CompareString(list[i].Name, list[j].Name) < 0 })
	return list
}

// Subunits subunidades relacionadas con el alcance del principal, ordenadas por nombre.
func (s *Store) Subunits(p appctx.Principal) []entity.Subunit {
	snap := s.Current()
	list := snap.Index.VisibleSubunits(p.Scope, snap.Subunits)
	c := collate.New(s.lang)
	sort.SliceStable(list, func(i, j int) bool { return c.CompareString(list[i].Name, list[j].Name) < 0 })
	return list
}

// Stations cuarteles visibles para el principal, ordenados por nombre.
func (s *Store) Stations(p appctx.Principal) []entity.Station {
	snap := s.Current()
	list := snap.Index.VisibleStations(p.Scope)
	c := collate.New(s.lang)
	sort.SliceStable(list, func(i, j int) bool { return c.CompareString(list[i].Name, list[j].Name) < 0 })
	return list
}

// Vehicles vehículos visibles para el principal, ordenados por prefijo y nombre.
// stationID opcional restringe a un cuartel.
func (s *Store) Vehicles(p appctx.Principal, stationID string) []entity.Vehicle {
	snap := s.Current()
	list := snap.Index.VisibleVehicles(p.Scope, snap.Vehicles)
	if stationID != "" {
		filtered := list[:0]
		for _, v := range list {
			if v.StationID == stationID {
				filtered = append(filtered, v)
			}
		}
		list = filtered
	}
	c := collate.New(s.lang)
	sort.SliceStable(list, func(i, j int) bool {
		return c.CompareString(list[i].DisplayName(), list[j].DisplayName()) < 0
	})
	return list
}

// Vehicle vehículo por ID si es visible para el principal.
func (s *Store) Vehicle(p appctx.Principal, id string) (*entity.Vehicle, error) {
	snap := s.Current()
	v, ok := snap.Vehicle(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !snap.Index.VehicleVisible(p.Scope, v) {
		return nil, domain.ErrForbidden
	}
	return v, nil
}

// CheckFilter filtros para listar conferencias.
type CheckFilter struct {
	VehicleID string
	From      civil.Date // inclusive; cero = sin límite
	To        civil.Date // inclusive; cero = sin límite
}

// Checks conferencias visibles para el principal, de la más reciente a la más antigua.
func (s *Store) Checks(p appctx.Principal, f CheckFilter) []entity.InventoryCheck {
	snap := s.Current()
	out := make([]entity.InventoryCheck, 0)
	for i := range snap.Checks {
		c := &snap.Checks[i]
		if f.VehicleID != "" && c.VehicleID != f.VehicleID {
			continue
		}
		if !f.From.IsZero() && c.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && c.Date.After(f.To) {
			continue
		}
		if !snap.CheckVisible(p.Scope, c) {
			continue
		}
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Check conferencia por ID si es visible para el principal.
func (s *Store) Check(p appctx.Principal, id string) (*entity.InventoryCheck, error) {
	snap := s.Current()
	c, ok := snap.Check(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !snap.CheckVisible(p.Scope, c) {
		return nil, domain.ErrForbidden
	}
	return c, nil
}
