package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/internal/domain/repository"
)

var _ repository.SnapshotReader = (*SnapshotReader)(nil)

// SnapshotReader lee todas las tablas en una transacción de solo lectura REPEATABLE READ
// para que el conjunto sea consistente.
type SnapshotReader struct {
	db TxBeginner
}

// TxBeginner implementado por *pgxpool.Pool.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// NewSnapshotReader construye el lector sobre el pool.
func NewSnapshotReader(db TxBeginner) *SnapshotReader {
	return &SnapshotReader{db: db}
}

// LoadAll lee unidades, subunidades, cuarteles, vehículos y conferencias.
func (r *SnapshotReader) LoadAll(ctx context.Context) (*repository.Tables, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var t repository.Tables
	if t.Units, err = loadUnits(ctx, tx); err != nil {
		return nil, err
	}
	if t.Subunits, err = loadSubunits(ctx, tx); err != nil {
		return nil, err
	}
	if t.Stations, err = loadStations(ctx, tx); err != nil {
		return nil, err
	}
	if t.Vehicles, err = loadVehicles(ctx, tx); err != nil {
		return nil, err
	}
	if t.Checks, err = NewCheckRepository(tx).ListAll(ctx); err != nil {
		return nil, err
	}
	return &t, nil
}

func loadUnits(ctx context.Context, q Querier) ([]entity.Unit, error) {
	rows, err := q.Query(ctx, `SELECT id, name, acronym, created_at, updated_at FROM units`)
	if err != nil {
		return nil, fmt.Errorf("load units: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Unit, error) {
		var u entity.Unit
		err := row.Scan(&u.ID, &u.Name, &u.Acronym, &u.CreatedAt, &u.UpdatedAt)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan units: %w", err)
	}
	return list, nil
}

func loadSubunits(ctx context.Context, q Querier) ([]entity.Subunit, error) {
	rows, err := q.Query(ctx, `SELECT id, unit_id, name, acronym, created_at, updated_at FROM subunits`)
	if err != nil {
		return nil, fmt.Errorf("load subunits: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Subunit, error) {
		var s entity.Subunit
		err := row.Scan(&s.ID, &s.UnitID, &s.Name, &s.Acronym, &s.CreatedAt, &s.UpdatedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan subunits: %w", err)
	}
	return list, nil
}

func loadStations(ctx context.Context, q Querier) ([]entity.Station, error) {
	rows, err := q.Query(ctx, `
		SELECT id, subunit_id, name, classification, municipality, created_at, updated_at
		FROM stations`)
	if err != nil {
		return nil, fmt.Errorf("load stations: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Station, error) {
		var s entity.Station
		err := row.Scan(&s.ID, &s.SubunitID, &s.Name, &s.Classification, &s.Municipality, &s.CreatedAt, &s.UpdatedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan stations: %w", err)
	}
	return list, nil
}

func loadVehicles(ctx context.Context, q Querier) ([]entity.Vehicle, error) {
	rows, err := q.Query(ctx, `
		SELECT id, prefix, name, status, station_id, materials, created_at, updated_at
		FROM vehicles`)
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Vehicle, error) {
		var (
			v         entity.Vehicle
			stationID *string
		)
		err := row.Scan(&v.ID, &v.Prefix, &v.Name, &v.Status, &stationID, &v.Materials, &v.CreatedAt, &v.UpdatedAt)
		v.StationID = deref(stationID)
		return v, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan vehicles: %w", err)
	}
	return list, nil
}
