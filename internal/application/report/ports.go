package report

import (
	"context"

	"github.com/jhoicas/Inventario-vtr/internal/application/appctx"
	"github.com/jhoicas/Inventario-vtr/internal/application/catalog"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/pkg/civil"
)

// Catalog consultas de conferencias ya filtradas por el alcance del principal.
type Catalog interface {
	Check(p appctx.Principal, id string) (*entity.InventoryCheck, error)
	Checks(p appctx.Principal, f catalog.CheckFilter) []entity.InventoryCheck
}

// CheckPDFGenerator genera el PDF de una conferencia.
type CheckPDFGenerator interface {
	GenerateCheckPDF(ctx context.Context, check *entity.InventoryCheck) ([]byte, error)
}

// Period rango de fechas de una exportación; extremos cero = sin límite.
type Period struct {
	From civil.Date
	To   civil.Date
}

// ChecksSheetWriter genera la planilla de conferencias.
type ChecksSheetWriter interface {
	WriteChecks(ctx context.Context, checks []entity.InventoryCheck, period Period) ([]byte, error)
}
