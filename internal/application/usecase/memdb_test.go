package usecase_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/internal/domain/repository"
)

// memDB almacén en memoria: repositorios de escritura y lectura masiva sobre las mismas tablas.
type memDB struct {
	mu     sync.Mutex
	tables repository.Tables
	users  map[string]*entity.User
}

func newMemDB() *memDB {
	return &memDB{
		tables: repository.Tables{
			Units:    []entity.Unit{{ID: "U1", Name: "1º Comando"}, {ID: "U2", Name: "2º Comando"}},
			Subunits: []entity.Subunit{{ID: "S1", UnitID: "U1", Name: "1º Batalhão"}},
			Stations: []entity.Station{
				{ID: "ST1", SubunitID: "S1", Name: "Posto Centro"},
				{ID: "ST2", SubunitID: "S1", Name: "Posto Norte"},
			},
			Vehicles: []entity.Vehicle{{ID: "V1", Prefix: "ABT", Name: "01", Status: entity.VehicleOperating, StationID: "ST1"}},
		},
		users: make(map[string]*entity.User),
	}
}

func (m *memDB) LoadAll(context.Context) (*repository.Tables, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := repository.Tables{
		Units:    append([]entity.Unit(nil), m.tables.Units...),
		Subunits: append([]entity.Subunit(nil), m.tables.Subunits...),
		Stations: append([]entity.Station(nil), m.tables.Stations...),
		Vehicles: append([]entity.Vehicle(nil), m.tables.Vehicles...),
		Checks:   append([]entity.InventoryCheck(nil), m.tables.Checks...),
	}
	return &t, nil
}

func (m *memDB) CreateUnit(_ context.Context, u *entity.Unit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables.Units = append(m.tables.Units, *u)
	return nil
}

func (m *memDB) UpdateUnit(_ context.Context, u *entity.Unit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tables.Units {
		if m.tables.Units[i].ID == u.ID {
			m.tables.Units[i] = *u
		}
	}
	return nil
}

func (m *memDB) DeleteUnit(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.tables.Units[:0]
	for _, u := range m.tables.Units {
		if u.ID != id {
			out = append(out, u)
		}
	}
	m.tables.Units = out
	return nil
}

func (m *memDB) CreateSubunit(_ context.Context, s *entity.Subunit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables.Subunits = append(m.tables.Subunits, *s)
	return nil
}

func (m *memDB) UpdateSubunit(_ context.Context, s *entity.Subunit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tables.Subunits {
		if m.tables.Subunits[i].ID == s.ID {
			m.tables.Subunits[i] = *s
		}
	}
	return nil
}

func (m *memDB) DeleteSubunit(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.tables.Subunits[:0]
	for _, s := range m.tables.Subunits {
		if s.ID != id {
			out = append(out, s)
		}
	}
	m.tables.Subunits = out
	return nil
}

func (m *memDB) CreateStation(_ context.Context, s *entity.Station) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables.Stations = append(m.tables.Stations, *s)
	return nil
}

func (m *memDB) UpdateStation(_ context.Context, s *entity.Station) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tables.Stations {
		if m.tables.Stations[i].ID == s.ID {
			m.tables.Stations[i] = *s
		}
	}
	return nil
}

func (m *memDB) DeleteStation(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.tables.Stations[:0]
	for _, s := range m.tables.Stations {
		if s.ID != id {
			out = append(out, s)
		}
	}
	m.tables.Stations = out
	return nil
}

// vehicleRepo adapta memDB a repository.VehicleRepository (Create/Update/Delete chocan con los de org).
type vehicleRepo struct{ db *memDB }

func (r vehicleRepo) Create(_ context.Context, v *entity.Vehicle) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.tables.Vehicles = append(r.db.tables.Vehicles, *v)
	return nil
}

func (r vehicleRepo) Update(_ context.Context, v *entity.Vehicle) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i := range r.db.tables.Vehicles {
		if r.db.tables.Vehicles[i].ID == v.ID {
			r.db.tables.Vehicles[i] = *v
		}
	}
	return nil
}

func (r vehicleRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := r.db.tables.Vehicles[:0]
	for _, v := range r.db.tables.Vehicles {
		if v.ID != id {
			out = append(out, v)
		}
	}
	r.db.tables.Vehicles = out
	return nil
}

// userRepo adapta memDB a repository.UserRepository.
type userRepo struct{ db *memDB }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r userRepo) Update(ctx context.Context, u *entity.User) error {
	return r.Create(ctx, u)
}

func (r userRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	all := make([]*entity.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })
	if offset >= len(all) {
		return []*entity.User{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r userRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.users, id)
	return nil
}

func (r userRepo) CountByScope(_ context.Context, level entity.ScopeLevel, id string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n := 0
	for _, u := range r.db.users {
		if u.ScopeLevel == level && u.ScopeID == id {
			n++
		}
	}
	return n, nil
}
