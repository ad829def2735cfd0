package checklist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-vtr/internal/application/appctx"
	"github.com/jhoicas/Inventario-vtr/internal/domain"
	"github.com/jhoicas/Inventario-vtr/internal/domain/authz"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/internal/domain/readiness"
	"github.com/jhoicas/Inventario-vtr/internal/domain/repository"
	"github.com/jhoicas/Inventario-vtr/pkg/civil"
	"github.com/jhoicas/Inventario-vtr/pkg/logger"
)

// Service administra las sesiones de conferencia abiertas. Cada sesión pertenece a un único
// usuario; no hay bloqueo por vehículo: dos usuarios pueden conferir el mismo vehículo a la vez.
type Service struct {
	cal     *readiness.Calendar
	catalog Catalog
	tx      TxRunner
	log     *logger.Logger
	now     func() time.Time
	newID   func() string

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewService construye el servicio.
func NewService(cal *readiness.Calendar, cat Catalog, tx TxRunner, log *logger.Logger) *Service {
	return &Service{
		cal:      cal,
		catalog:  cat,
		tx:       tx,
		log:      log.Component("checklist"),
		now:      time.Now,
		newID:    uuid.NewString,
		sessions: make(map[string]*Session),
	}
}

// SetClock reemplaza el reloj (tests).
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// SubmitInput datos de cabecera de la conferencia.
// Date cero = día operacional en curso.
type SubmitInput struct {
	Date          civil.Date
	Responsibles  []string
	Commander     string
	Justification string
}

// NewSession abre una sesión en SELECTING.
func (s *Service) NewSession(p appctx.Principal) (View, error) {
	if !p.Authenticated() {
		return View{}, domain.ErrUnauthorized
	}
	if !p.Can(authz.CapSubmitCheck) {
		return View{}, domain.ErrForbidden
	}
	sess := newSession(s.newID(), p.UserID, s.now())

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return sess.view(), nil
}

// StartSession abre una sesión y elige el vehículo en un solo paso.
func (s *Service) StartSession(ctx context.Context, p appctx.Principal, vehicleID string) (View, error) {
	v, err := s.NewSession(p)
	if err != nil {
		return View{}, err
	}
	view, err := s.SelectVehicle(ctx, p, v.ID, vehicleID)
	if err != nil {
		s.drop(v.ID)
		return View{}, err
	}
	return view, nil
}

// SelectVehicle SELECTING → FILLING. El vehículo debe existir en el snapshot vigente y ser
// visible para el alcance del usuario. La lista de material se copia en este momento.
func (s *Service) SelectVehicle(_ context.Context, p appctx.Principal, sessionID, vehicleID string) (View, error) {
	sess, err := s.owned(p, sessionID)
	if err != nil {
		return View{}, err
	}
	snap := s.catalog.Current()
	v, ok := snap.Vehicle(vehicleID)
	if !ok {
		return View{}, domain.ErrNotFound
	}
	if !snap.Index.VehicleVisible(p.Scope, v) {
		return View{}, domain.ErrForbidden
	}

	now := s.now()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.selectVehicle(*v, s.cal.ReadinessState(now), s.cal.ShiftReferenceDate(now), now); err != nil {
		return View{}, err
	}
	s.log.Debug().
		Str("session_id", sess.id).
		Str("vehicle_id", v.ID).
		Int("items", len(v.Materials)).
		Msg("sesión de conferencia iniciada")
	return sess.view(), nil
}

// Session estado actual de una sesión del usuario.
func (s *Service) Session(p appctx.Principal, sessionID string) (View, error) {
	sess, err := s.owned(p, sessionID)
	if err != nil {
		return View{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

// SetEntry registra el resultado de un ítem del snapshot.
func (s *Service) SetEntry(p appctx.Principal, sessionID, itemID string, status entity.EntryStatus, observation string) (View, error) {
	sess, err := s.owned(p, sessionID)
	if err != nil {
		return View{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.setEntry(itemID, status, observation, s.now()); err != nil {
		return View{}, err
	}
	return sess.view(), nil
}

// Submit valida la sesión, construye la conferencia inmutable y la persiste junto con su
// entrada de bitácora. Un error de validación no deja rastro; un error de persistencia
// mantiene la sesión en FILLING para reintentar.
func (s *Service) Submit(ctx context.Context, p appctx.Principal, sessionID string, in SubmitInput) (*entity.InventoryCheck, error) {
	sess, err := s.owned(p, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.phase != PhaseFilling {
		return nil, domain.ErrInvalidState
	}
	if err := sess.validateEntries(); err != nil {
		return nil, err
	}

	responsibles := cleanNames(in.Responsibles)
	commander := strings.TrimSpace(in.Commander)
	if len(responsibles) == 0 || commander == "" {
		return nil, domain.NewValidationError(domain.CodeMissingPersonnel, "informe al menos un responsable y el comandante")
	}

	now := s.now()
	today := s.cal.ShiftReferenceDate(now)
	date := in.Date
	if date.IsZero() {
		date = today
	}
	if date.After(today) {
		return nil, domain.NewValidationError(domain.CodeInvalidDate, "la fecha no puede ser posterior al día operacional "+today.String())
	}

	snap := s.catalog.Current()
	justification := strings.TrimSpace(in.Justification)
	if date != today || snap.HasCheckOn(sess.vehicle.ID, date) {
		if justification == "" {
			return nil, domain.NewValidationError(domain.CodeMissingJustification, "justificación obligatoria para fecha distinta de hoy o conferencia repetida")
		}
	} else {
		justification = ""
	}

	live, _ := snap.Vehicle(sess.vehicle.ID)
	check := s.buildCheck(sess, snap.Index, live, p, date, responsibles, commander, justification, now)
	entry := &entity.AuditEntry{
		ID:          s.newID(),
		UserID:      p.UserID,
		Username:    p.Username,
		Action:      entity.AuditCheckCreated,
		EntityType:  "inventory_check",
		EntityID:    check.ID,
		Description: fmt.Sprintf("Conferencia de %s del %s (%s)", sess.vehicle.DisplayName(), date, check.ShiftColor),
		CreatedAt:   now,
	}

	err = s.tx.Run(ctx, func(checks repository.CheckRepository, audit repository.AuditLogRepository) error {
		if err := checks.Create(ctx, check); err != nil {
			return err
		}
		return audit.Create(ctx, entry)
	})
	if err != nil {
		s.log.Error().Err(err).Str("session_id", sess.id).Str("vehicle_id", check.VehicleID).Msg("guardar conferencia")
		var perr *domain.PersistenceError
		if errors.As(err, &perr) {
			return nil, perr
		}
		return nil, domain.NewPersistenceError("guardar conferencia", err)
	}

	s.catalog.AppendCheck(check.Clone())
	kept := check.Clone()
	sess.finish(&kept, now)
	s.log.Info().
		Str("check_id", check.ID).
		Str("vehicle_id", check.VehicleID).
		Str("date", check.Date.String()).
		Str("shift", check.ShiftColor).
		Int("noted", check.CountByStatus(entity.EntryNoted)).
		Bool("justified", check.Justification != "").
		Str("user_id", p.UserID).
		Msg("conferencia registrada")
	return check, nil
}

// buildCheck arma el registro. El snapshot de material es el de la sesión; estado y
// encabezado se resuelven con el vehículo vigente (o la copia de la sesión si ya no existe).
func (s *Service) buildCheck(
	sess *Session,
	ix *authz.Index,
	live *entity.Vehicle,
	p appctx.Principal,
	date civil.Date,
	responsibles []string,
	commander, justification string,
	now time.Time,
) *entity.InventoryCheck {
	current := &sess.vehicle
	if live != nil {
		current = live
	}
	entries := make([]entity.CheckEntry, len(sess.entries))
	copy(entries, sess.entries)

	return &entity.InventoryCheck{
		ID:               s.newID(),
		VehicleID:        sess.vehicle.ID,
		Date:             date,
		ShiftColor:       s.cal.StateForDate(date),
		Responsibles:     responsibles,
		Commander:        commander,
		Entries:          entries,
		CreatedAt:        now,
		CreatedBy:        p.UserID,
		Justification:    justification,
		Header:           ix.VehicleHeader(current),
		MaterialSnapshot: entity.CloneMaterials(sess.vehicle.Materials),
		VehicleStatus:    current.Status,
	}
}

// Reset vuelve la sesión a SELECTING para comenzar otra conferencia.
func (s *Service) Reset(p appctx.Principal, sessionID string) (View, error) {
	sess, err := s.owned(p, sessionID)
	if err != nil {
		return View{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.reset(s.now())
	return sess.view(), nil
}

// Cancel descarta la sesión sin dejar rastro persistido.
func (s *Service) Cancel(p appctx.Principal, sessionID string) error {
	if _, err := s.owned(p, sessionID); err != nil {
		return err
	}
	s.drop(sessionID)
	return nil
}

// DiscardOwner elimina todas las sesiones de un usuario. Devuelve cuántas había.
func (s *Service) DiscardOwner(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.ownerID == userID {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// OnLogout implementa appctx.LogoutHook.
func (s *Service) OnLogout(userID string) int {
	n := s.DiscardOwner(userID)
	if n > 0 {
		s.log.Debug().Str("user_id", userID).Int("sessions", n).Msg("sesiones descartadas al cerrar sesión")
	}
	return n
}

// Purge descarta las sesiones sin actividad desde hace más de ttl.
func (s *Service) Purge(ttl time.Duration) int {
	limit := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		stale := sess.touchedAt.Before(limit)
		sess.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// RunJanitor ejecuta Purge cada every hasta que ctx se cancele.
func (s *Service) RunJanitor(ctx context.Context, ttl, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Purge(ttl); n > 0 {
				s.log.Info().Int("sessions", n).Msg("sesiones vencidas descartadas")
			}
		}
	}
}

// Open cantidad de sesiones abiertas.
func (s *Service) Open() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Service) owned(p appctx.Principal, sessionID string) (*Session, error) {
	if !p.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	if sess.ownerID != p.UserID {
		return nil, domain.ErrForbidden
	}
	return sess, nil
}

func (s *Service) drop(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

func cleanNames(in []string) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
