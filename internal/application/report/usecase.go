// Package report arma los documentos de salida de las conferencias: PDF individual
// y planilla XLSX de un período.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-vtr/internal/application/appctx"
	"github.com/jhoicas/Inventario-vtr/internal/application/catalog"
	"github.com/jhoicas/Inventario-vtr/internal/domain"
	"github.com/jhoicas/Inventario-vtr/internal/domain/authz"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
)

// ReportUseCase genera PDF y planillas respetando capacidades y alcance.
type ReportUseCase struct {
	catalog Catalog
	pdf     CheckPDFGenerator
	sheet   ChecksSheetWriter
}

// NewReportUseCase construye el caso de uso inyectando los generadores.
func NewReportUseCase(cat Catalog, pdf CheckPDFGenerator, sheet ChecksSheetWriter) *ReportUseCase {
	return &ReportUseCase{catalog: cat, pdf: pdf, sheet: sheet}
}

// CheckPDF PDF de una conferencia visible para el principal.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la conferencia no existe.
//   - domain.ErrForbidden        si el vehículo está fuera del alcance o el rol no puede ver conferencias.
func (uc *ReportUseCase) CheckPDF(ctx context.Context, p appctx.Principal, checkID string) ([]byte, string, error) {
	if !p.Can(authz.CapViewChecks) {
		return nil, "", domain.ErrForbidden
	}
	c, err := uc.catalog.Check(p, checkID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateCheckPDF(ctx, c)
	if err != nil {
		return nil, "", fmt.Errorf("report: pdf: %w", err)
	}
	return b, CheckFilename(c), nil
}

// ExportChecks planilla con las conferencias visibles del período.
func (uc *ReportUseCase) ExportChecks(ctx context.Context, p appctx.Principal, f catalog.CheckFilter) ([]byte, string, error) {
	if !p.Can(authz.CapExportReports) {
		return nil, "", domain.ErrForbidden
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return nil, "", fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	checks := uc.catalog.Checks(p, f)
	b, err := uc.sheet.WriteChecks(ctx, checks, Period{From: f.From, To: f.To})
	if err != nil {
		return nil, "", fmt.Errorf("report: xlsx: %w", err)
	}
	name := "conferencias"
	if !f.From.IsZero() {
		name += "_" + f.From.String()
	}
	if !f.To.IsZero() {
		name += "_" + f.To.String()
	}
	return b, name + ".xlsx", nil
}

// CheckFilename nombre de archivo del PDF: conferencia_<prefijo>-<nombre>_<fecha>.pdf
func CheckFilename(c *entity.InventoryCheck) string {
	vehicle := strings.TrimSpace(c.Header.VehiclePrefix + "-" + c.Header.VehicleName)
	vehicle = strings.Trim(strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '_'
	}, vehicle), "-_")
	if vehicle == "" {
		vehicle = c.VehicleID
	}
	return fmt.Sprintf("conferencia_%s_%s.pdf", vehicle, c.Date)
}

// StatusLabel texto del resultado de un ítem en documentos.
func StatusLabel(s entity.EntryStatus) string {
	switch s {
	case entity.EntryOK:
		return "OK"
	case entity.EntryNoted:
		return "Alteración"
	case entity.EntryPriorNoted:
		return "Alteración previa"
	}
	return string(s)
}
