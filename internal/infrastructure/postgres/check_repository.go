package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/internal/domain/repository"
	"github.com/jhoicas/Inventario-vtr/pkg/civil"
)

var _ repository.CheckRepository = (*CheckRepo)(nil)

// CheckRepo implementación de CheckRepository. Entradas, encabezado y snapshot de material
// se guardan como JSONB; el orden de las entradas se conserva.
type CheckRepo struct {
	q Querier
}

// NewCheckRepository construye el adaptador de conferencias. Pasar pool o tx (Querier).
func NewCheckRepository(q Querier) *CheckRepo {
	return &CheckRepo{q: q}
}

const checkColumns = `id, vehicle_id, check_date, shift_color, responsibles, commander, entries,
	created_at, created_by, justification, header, material_snapshot, vehicle_status`

// Create inserta una conferencia. No existe Update: el registro es inmutable.
func (r *CheckRepo) Create(ctx context.Context, c *entity.InventoryCheck) error {
	entries, err := jsonb(c.Entries)
	if err != nil {
		return err
	}
	header, err := jsonb(c.Header)
	if err != nil {
		return err
	}
	snapshot, err := jsonb(materialsOrEmpty(c.MaterialSnapshot))
	if err != nil {
		return err
	}
	responsibles := c.Responsibles
	if responsibles == nil {
		responsibles = []string{}
	}
	query := `INSERT INTO inventory_checks (` + checkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.q.Exec(ctx, query,
		c.ID, c.VehicleID, pgDate(c.Date), c.ShiftColor, responsibles, c.Commander, entries,
		c.CreatedAt, nullable(c.CreatedBy), c.Justification, header, snapshot, c.VehicleStatus,
	)
	if err != nil {
		return mutationError("insert inventory check", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CheckRepo) GetByID(ctx context.Context, id string) (*entity.InventoryCheck, error) {
	query := `SELECT ` + checkColumns + ` FROM inventory_checks WHERE id = $1`
	c, err := scanCheck(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory check: %w", err)
	}
	return c, nil
}

// ListAll todas las conferencias, más recientes primero.
func (r *CheckRepo) ListAll(ctx context.Context) ([]entity.InventoryCheck, error) {
	rows, err := r.q.Query(ctx, `SELECT `+checkColumns+` FROM inventory_checks ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list inventory checks: %w", err)
	}
	defer rows.Close()
	var list []entity.InventoryCheck
	for rows.Next() {
		c, err := scanCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory check: %w", err)
		}
		list = append(list, *c)
	}
	return list, rows.Err()
}

func scanCheck(row pgx.Row) (*entity.InventoryCheck, error) {
	var (
		c         entity.InventoryCheck
		date      time.Time
		createdBy *string
	)
	err := row.Scan(
		&c.ID, &c.VehicleID, &date, &c.ShiftColor, &c.Responsibles, &c.Commander, &c.Entries,
		&c.CreatedAt, &createdBy, &c.Justification, &c.Header, &c.MaterialSnapshot, &c.VehicleStatus,
	)
	if err != nil {
		return nil, err
	}
	c.Date = civil.Of(date)
	c.CreatedBy = deref(createdBy)
	return &c, nil
}
