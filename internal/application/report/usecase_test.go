package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-vtr/internal/application/appctx"
	"github.com/jhoicas/Inventario-vtr/internal/application/catalog"
	"github.com/jhoicas/Inventario-vtr/internal/application/report"
	"github.com/jhoicas/Inventario-vtr/internal/domain"
	"github.com/jhoicas/Inventario-vtr/internal/domain/authz"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/pkg/civil"
)

type fakeCatalog struct {
	checks []entity.InventoryCheck
	filter catalog.CheckFilter
}

func (f *fakeCatalog) Check(_ appctx.Principal, id string) (*entity.InventoryCheck, error) {
	for i := range f.checks {
		if f.checks[i].ID == id {
			return &f.checks[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCatalog) Checks(_ appctx.Principal, filter catalog.CheckFilter) []entity.InventoryCheck {
	f.filter = filter
	return f.checks
}

type fakePDF struct{ err error }

func (g fakePDF) GenerateCheckPDF(_ context.Context, c *entity.InventoryCheck) ([]byte, error) {
	return []byte("%PDF-" + c.ID), g.err
}

type fakeSheet struct{ got int }

func (s *fakeSheet) WriteChecks(_ context.Context, checks []entity.InventoryCheck, _ report.Period) ([]byte, error) {
	s.got = len(checks)
	return []byte("PK"), nil
}

func sample() entity.InventoryCheck {
	return entity.InventoryCheck{
		ID: "C1", VehicleID: "V1", Date: civil.MustParse("2024-05-10"),
		Header: entity.CheckHeader{VehiclePrefix: "ABT", VehicleName: "01 / Centro"},
	}
}

func principal(role entity.Role) appctx.Principal {
	return appctx.Principal{UserID: "u", Role: role, Scope: authz.Global()}
}

func TestCheckPDF(t *testing.T) {
	uc := report.NewReportUseCase(&fakeCatalog{checks: []entity.InventoryCheck{sample()}}, fakePDF{}, &fakeSheet{})

	b, name, err := uc.CheckPDF(context.Background(), principal(entity.RoleBasic), "C1")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-C1", string(b))
	assert.Equal(t, "conferencia_ABT-01___Centro_2024-05-10.pdf", name)

	_, _, err = uc.CheckPDF(context.Background(), principal(entity.RoleBasic), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = uc.CheckPDF(context.Background(), principal("GUEST"), "C1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCheckPDF_ErrorDelGenerador(t *testing.T) {
	boom := errors.New("fuente ausente")
	uc := report.NewReportUseCase(&fakeCatalog{checks: []entity.InventoryCheck{sample()}}, fakePDF{err: boom}, &fakeSheet{})

	_, _, err := uc.CheckPDF(context.Background(), principal(entity.RoleBasic), "C1")
	assert.ErrorIs(t, err, boom)
}

func TestExportChecks(t *testing.T) {
	cat := &fakeCatalog{checks: []entity.InventoryCheck{sample(), sample()}}
	sheet := &fakeSheet{}
	uc := report.NewReportUseCase(cat, fakePDF{}, sheet)

	_, _, err := uc.ExportChecks(context.Background(), principal(entity.RoleBasic), catalog.CheckFilter{})
	assert.ErrorIs(t, err, domain.ErrForbidden, "BASIC no exporta")

	f := catalog.CheckFilter{From: civil.MustParse("2024-05-01"), To: civil.MustParse("2024-05-31")}
	b, name, err := uc.ExportChecks(context.Background(), principal(entity.RoleAdmin), f)
	require.NoError(t, err)
	assert.Equal(t, "PK", string(b))
	assert.Equal(t, "conferencias_2024-05-01_2024-05-31.xlsx", name)
	assert.Equal(t, 2, sheet.got)
	assert.Equal(t, f, cat.filter)

	_, _, err = uc.ExportChecks(context.Background(), principal(entity.RoleAdmin), catalog.CheckFilter{
		From: civil.MustParse("2024-05-31"), To: civil.MustParse("2024-05-01"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "OK", report.StatusLabel(entity.EntryOK))
	assert.Equal(t, "Alteración", report.StatusLabel(entity.EntryNoted))
	assert.Equal(t, "Alteración previa", report.StatusLabel(entity.EntryPriorNoted))
}
