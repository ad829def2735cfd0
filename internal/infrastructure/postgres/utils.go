package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Inventario-vtr/internal/domain"
	"github.com/jhoicas/Inventario-vtr/pkg/civil"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503: fila referenciada por otra tabla o referencia inexistente.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// mutationError traduce errores de escritura a errores de dominio.
func mutationError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s: registro duplicado", domain.ErrConflict, op)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %s: referencia en uso o inexistente", domain.ErrConflict, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// mustAffect ErrNotFound si el UPDATE/DELETE no tocó filas.
func mustAffect(tag pgconn.CommandTag, op string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, op)
	}
	return nil
}

// nullable "" → NULL para columnas FK opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// pgDate columna DATE ↔ civil.Date.
func pgDate(d civil.Date) time.Time { return d.In(time.UTC, 0, 0) }

func jsonb(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serializar jsonb: %w", err)
	}
	return b, nil
}
