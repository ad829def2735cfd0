// Package readiness implementa el calendario de prontitud: tres estados que rotan
// un paso por día operativo a partir de una época fija. El día operativo no cambia a
// medianoche sino en la hora de corte (07:30 por defecto).
package readiness

import (
	"fmt"
	"math"
	"time"

	"github.com/jhoicas/Inventario-vtr/pkg/civil"
)

// StateCount número de estados del ciclo. Solo se soporta un ciclo de tres.
const StateCount = 3

// Config parámetros del calendario.
type Config struct {
	Epoch    civil.Date         // día operativo con índice 0
	Cutoff   string             // "HH:MM", inicio del día operativo
	States   [StateCount]string // orden del ciclo
	Location *time.Location     // zona donde se interpreta la hora local
}

// Calendar asigna a cada instante un día operativo y un estado de prontitud. Es inmutable.
type Calendar struct {
	epoch        time.Time
	cutoffHour   int
	cutoffMinute int
	states       [StateCount]string
	loc          *time.Location
}

// DayState estado de prontitud de un día operativo.
type DayState struct {
	Date  civil.Date `json:"date"`
	State string     `json:"state"`
	Index int        `json:"index"`
}

// New valida la configuración y construye el calendario.
func New(cfg Config) (*Calendar, error) {
	if cfg.Epoch.IsZero() {
		return nil, fmt.Errorf("readiness: época requerida")
	}
	hour, minute, err := parseCutoff(cfg.Cutoff)
	if err != nil {
		return nil, err
	}
	for i, s := range cfg.States {
		if s == "" {
			return nil, fmt.Errorf("readiness: estado %d vacío", i)
		}
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{
		epoch:        cfg.Epoch.In(loc, hour, minute),
		cutoffHour:   hour,
		cutoffMinute: minute,
		states:       cfg.States,
		loc:          loc,
	}, nil
}

func parseCutoff(s string) (int, int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("readiness: hora de corte inválida %q", s)
	}
	return t.Hour(), t.Minute(), nil
}

// Location zona horaria del calendario.
func (c *Calendar) Location() *time.Location { return c.loc }

// States estados en el orden del ciclo.
func (c *Calendar) States() [StateCount]string { return c.states }

// ShiftReferenceDate devuelve el día operativo al que pertenece t: la fecha local de t,
// o el día anterior si la hora local es estrictamente anterior al minuto de corte.
func (c *Calendar) ShiftReferenceDate(t time.Time) civil.Date {
	local := t.In(c.loc)
	day := civil.Of(local)
	if local.Hour()*60+local.Minute() < c.cutoffHour*60+c.cutoffMinute {
		return day.AddDays(-1)
	}
	return day
}

// ShiftStart instante en que comienza el día operativo d.
func (c *Calendar) ShiftStart(d civil.Date) time.Time {
	return d.In(c.loc, c.cutoffHour, c.cutoffMinute)
}

// IndexForDate posición en el ciclo del día operativo d. Total también para fechas anteriores a la época.
func (c *Calendar) IndexForDate(d civil.Date) int {
	// El redondeo absorbe los días de 23 o 25 horas por cambios de horario.
	diffDays := int(math.Round(c.ShiftStart(d).Sub(c.epoch).Hours() / 24))
	return ((diffDays % StateCount) + StateCount) % StateCount
}

// StateForDate estado de prontitud del día operativo d.
func (c *Calendar) StateForDate(d civil.Date) string {
	return c.states[c.IndexForDate(d)]
}

// StateIndex posición en el ciclo del instante t.
func (c *Calendar) StateIndex(t time.Time) int {
	return c.IndexForDate(c.ShiftReferenceDate(t))
}

// ReadinessState estado de prontitud del instante t.
func (c *Calendar) ReadinessState(t time.Time) string {
	return c.states[c.StateIndex(t)]
}

// Range estados de days días operativos consecutivos a partir de from.
func (c *Calendar) Range(from civil.Date, days int) []DayState {
	if days <= 0 {
		return nil
	}
	out := make([]DayState, 0, days)
	for i := 0; i < days; i++ {
		d := from.AddDays(i)
		idx := c.IndexForDate(d)
		out = append(out, DayState{Date: d, State: c.states[idx], Index: idx})
	}
	return out
}
