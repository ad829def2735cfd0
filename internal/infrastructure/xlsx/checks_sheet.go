// Package xlsx exporta conferencias a planillas Excel con excelize.
package xlsx

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Inventario-vtr/internal/application/report"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
)

// Nombres de las hojas generadas.
const (
	SheetChecks  = "Conferencias"
	SheetChanges = "Alteraciones"
)

var checkColumns = []string{
	"Fecha", "Prontitud", "Vehículo", "Unidad", "Subunidad", "Cuartel", "Municipio",
	"Estado vehículo", "Comandante", "Responsables", "Ítems", "OK", "Alteraciones",
	"Alteraciones previas", "Justificación", "Registrado", "ID",
}

var changeColumns = []string{
	"Fecha", "Vehículo", "Cuartel", "Ítem", "Compartimento", "Cant.", "Resultado", "Observación", "ID conferencia",
}

// ChecksSheet implementa report.ChecksSheetWriter.
type ChecksSheet struct{}

// NewChecksSheet construye el escritor.
func NewChecksSheet() *ChecksSheet { return &ChecksSheet{} }

var _ report.ChecksSheetWriter = (*ChecksSheet)(nil)

// WriteChecks una fila por conferencia en la primera hoja y una fila por entrada distinta
// de OK en la segunda. Las conferencias se escriben en el orden recibido.
func (w *ChecksSheet) WriteChecks(_ context.Context, checks []entity.InventoryCheck, period report.Period) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetChecks); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(SheetChanges); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#8C1414"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	if err := writeHeader(f, SheetChecks, checkColumns, header); err != nil {
		return nil, err
	}
	if err := writeHeader(f, SheetChanges, changeColumns, header); err != nil {
		return nil, err
	}

	changeRow := 2
	for i := range checks {
		c := &checks[i]
		if err := f.SetSheetRow(SheetChecks, cell(1, i+2), checkRow(c)); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
		for _, e := range c.Entries {
			if e.Status == entity.EntryOK {
				continue
			}
			if err := f.SetSheetRow(SheetChanges, cell(1, changeRow), changeRowValues(c, e)); err != nil {
				return nil, fmt.Errorf("xlsx: alteración %d: %w", changeRow, err)
			}
			changeRow++
		}
	}

	_ = f.SetColWidth(SheetChecks, "A", "B", 12)
	_ = f.SetColWidth(SheetChecks, "C", "J", 22)
	_ = f.SetColWidth(SheetChecks, "O", "O", 40)
	_ = f.SetColWidth(SheetChanges, "A", "C", 16)
	_ = f.SetColWidth(SheetChanges, "D", "D", 30)
	_ = f.SetColWidth(SheetChanges, "H", "H", 50)

	_ = f.SetDocProps(&excelize.DocProperties{
		Title:   periodTitle(period),
		Creator: "Inventario VTR",
	})
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, cols []string, style int) error {
	values := make([]interface{}, len(cols))
	for i, c := range cols {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &values); err != nil {
		return fmt.Errorf("xlsx: encabezado %s: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", cell(len(cols), 1), style); err != nil {
		return fmt.Errorf("xlsx: estilo %s: %w", sheet, err)
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	})
}

func checkRow(c *entity.InventoryCheck) *[]interface{} {
	h := c.Header
	row := []interface{}{
		c.Date.String(),
		c.ShiftColor,
		strings.TrimSpace(h.VehiclePrefix + " " + h.VehicleName),
		h.UnitName,
		h.SubunitName,
		h.StationName,
		h.Municipality,
		string(c.VehicleStatus),
		c.Commander,
		strings.Join(c.Responsibles, ", "),
		len(c.Entries),
		c.CountByStatus(entity.EntryOK),
		c.CountByStatus(entity.EntryNoted),
		c.CountByStatus(entity.EntryPriorNoted),
		c.Justification,
		c.CreatedAt.Format("2006-01-02 15:04"),
		c.ID,
	}
	return &row
}

func changeRowValues(c *entity.InventoryCheck, e entity.CheckEntry) *[]interface{} {
	item, _ := c.SnapshotItem(e.ItemID)
	row := []interface{}{
		c.Date.String(),
		strings.TrimSpace(c.Header.VehiclePrefix + " " + c.Header.VehicleName),
		c.Header.StationName,
		item.Name,
		item.Compartment,
		item.Quantity.InexactFloat64(),
		report.StatusLabel(e.Status),
		e.Observation,
		c.ID,
	}
	return &row
}

func periodTitle(p report.Period) string {
	switch {
	case p.From.IsZero() && p.To.IsZero():
		return "Conferencias"
	case p.To.IsZero():
		return "Conferencias desde " + p.From.String()
	case p.From.IsZero():
		return "Conferencias hasta " + p.To.String()
	}
	return fmt.Sprintf("Conferencias del %s al %s", p.From, p.To)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
