// Package civil modela fechas de calendario (año-mes-día) sin hora ni zona horaria.
package civil

import (
	"fmt"
	"time"
)

// Layout formato canónico de una fecha civil (clave del día operativo).
const Layout = "2006-01-02"

// Date fecha de calendario. El valor cero no es una fecha válida.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Of extrae la fecha de t en su propia zona horaria.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Parse interpreta una fecha en formato 2006-01-02.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("civil: fecha inválida %q: %w", s, err)
	}
	return Of(t), nil
}

// MustParse como Parse pero entra en pánico ante error (constantes y tests).
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String devuelve la fecha como 2006-01-02.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero informa si la fecha no fue asignada.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// In devuelve el instante de la fecha a la hora y minuto indicados en loc.
func (d Date) In(loc *time.Location, hour, minute int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, loc)
}

// AddDays suma n días (n puede ser negativo) normalizando fin de mes y año.
func (d Date) AddDays(n int) Date {
	return Of(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC))
}

// Before informa si d es anterior a o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// After informa si d es posterior a o.
func (d Date) After(o Date) bool {
	return o.Before(d)
}

// MarshalText serializa la fecha como 2006-01-02.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText lee una fecha en formato 2006-01-02.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
