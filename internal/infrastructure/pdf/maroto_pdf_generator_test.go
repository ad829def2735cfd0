package pdf_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-vtr/pkg/civil"
)

func sampleCheck() *entity.InventoryCheck {
	return &entity.InventoryCheck{
		ID:           "c-1",
		VehicleID:    "v-1",
		Date:         civil.MustParse("2024-05-10"),
		ShiftColor:   "AMARELA",
		Responsibles: []string{"Sd Silva", "Cb Souza"},
		Commander:    "Sgt Lima",
		Entries: []entity.CheckEntry{
			{ItemID: "m1", Status: entity.EntryOK},
			{ItemID: "m2", Status: entity.EntryNoted, Observation: "mangueira com furo"},
		},
		CreatedAt:     time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
		Justification: strings.Repeat("segunda conferência do dia ", 10),
		Header: entity.CheckHeader{
			UnitName: "1º CRBM", SubunitName: "1º GB", StationName: "Centro",
			VehiclePrefix: "ABT", VehicleName: "01",
		},
		MaterialSnapshot: []entity.MaterialItem{
			{ID: "m1", Name: "Esguicho", Quantity: decimal.NewFromInt(2), Compartment: "A"},
			{ID: "m2", Name: "Mangueira 1½\"", Specification: "15 m", Quantity: decimal.NewFromInt(4)},
		},
		VehicleStatus: entity.VehicleOperating,
	}
}

func TestGenerateCheckPDF_GeneraDocumento(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("Corpo de Bombeiros")

	out, err := g.GenerateCheckPDF(context.Background(), sampleCheck())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestGenerateCheckPDF_SinSnapshotNiEntradas(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("")
	c := sampleCheck()
	c.Entries = nil
	c.MaterialSnapshot = nil
	c.Justification = ""

	out, err := g.GenerateCheckPDF(context.Background(), c)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}
