// Package pdf genera el comprobante en PDF de una conferencia de material.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Conferencia de material + vehículo │ Fecha + color │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORGANIZACIÓN: Unidad / Subunidad / Cuartel / Municipio     │
//	│  EQUIPO: Responsables + Comandante + estado del vehículo    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ítem | Espec. | Cant. | Compart. | Resultado | Obs. │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: OK / Alteraciones / Alteraciones previas          │
//	│  JUSTIFICACIÓN (si corresponde)                             │
//	│  FOOTER: ID del registro + fecha de emisión                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Inventario-vtr/internal/application/report"
	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 140, Green: 20, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 190, Green: 90, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.CheckPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	org string // nombre de la institución en el encabezado
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(org string) *MarotoPDFGenerator { return &MarotoPDFGenerator{org: org} }

var _ report.CheckPDFGenerator = (*MarotoPDFGenerator)(nil)

// GenerateCheckPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateCheckPDF(_ context.Context, c *entity.InventoryCheck) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Conferencia de material", true).
		WithAuthor(nonEmpty(g.org, "Inventario VTR"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.org, c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orgRow(c.Header))
	m.AddRows(crewRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(c)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(c))
	if c.Justification != "" {
		m.AddRows(justificationRows(c.Justification)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(c))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: institución + vehículo (izq) y fecha + color de prontitud (der).
func headerRow(org string, c *entity.InventoryCheck) core.Row {
	vehicle := strings.TrimSpace(c.Header.VehiclePrefix + " " + c.Header.VehicleName)
	fecha := fmt.Sprintf("%02d/%02d/%04d", c.Date.Day, int(c.Date.Month), c.Date.Year)

	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(org, "CONFERENCIA DE MATERIAL"), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(vehicle, c.VehicleID), props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
		),
		col.New(5).Add(
			text.New("CONFERENCIA DE MATERIAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fecha, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Prontitud: "+nonEmpty(c.ShiftColor, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// orgRow: nombres organizacionales tal como estaban al momento de la conferencia.
func orgRow(h entity.CheckHeader) core.Row {
	station := h.StationName
	if h.StationClassification != "" {
		station += " (" + h.StationClassification + ")"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("ORGANIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Unidad: %s   |   Subunidad: %s   |   Cuartel: %s   |   Municipio: %s",
				nonEmpty(h.UnitName, "-"),
				nonEmpty(h.SubunitName, "-"),
				nonEmpty(station, "-"),
				nonEmpty(h.Municipality, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// crewRow: responsables, comandante y estado operativo del vehículo.
func crewRow(c *entity.InventoryCheck) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EQUIPO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Comandante: "+nonEmpty(c.Commander, "-"), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 6,
			}),
			text.New(fmt.Sprintf("Responsables: %s   |   Estado del vehículo: %s",
				nonEmpty(strings.Join(c.Responsibles, ", "), "-"),
				vehicleStatusLabel(c.VehicleStatus),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de ítems.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Ítem", 3, align.Left),
		h("Especificación", 2, align.Left),
		h("Cant.", 1, align.Center),
		h("Compart.", 1, align.Center),
		h("Resultado", 2, align.Center),
		h("Observación", 3, align.Left),
	)
}

// tableRows: una fila por entrada, con los datos del ítem tomados del snapshot.
func tableRows(c *entity.InventoryCheck) []core.Row {
	result := make([]core.Row, 0, len(c.Entries))
	for i, e := range c.Entries {
		item, ok := c.SnapshotItem(e.ItemID)
		if !ok && i < len(c.MaterialSnapshot) {
			item = c.MaterialSnapshot[i]
		}
		resColor := colorGray
		if e.Status != entity.EntryOK {
			resColor = colorAlert
		}
		lines := 1 + len(e.Observation)/45
		if n := 1 + len(item.Name)/30; n > lines {
			lines = n
		}
		result = append(result, row.New(float64(3+4*lines)).Add(
			col.New(3).Add(text.New(nonEmpty(item.Name, e.ItemID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(item.Specification, props.Text{Size: 7, Top: 1, Color: colorGray})),
			col.New(1).Add(text.New(entity.QuantityText(item.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(item.Compartment, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(report.StatusLabel(e.Status), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: resColor,
			})),
			col.New(3).Add(text.New(e.Observation, props.Text{Size: 7, Top: 1, Right: 1})),
		))
	}
	return result
}

// summaryRow: totales por resultado.
func summaryRow(c *entity.InventoryCheck) core.Row {
	return row.New(10).Add(
		col.New(12).Add(text.New(fmt.Sprintf("Ítems: %d   |   OK: %d   |   Alteraciones: %d   |   Alteraciones previas: %d",
			len(c.Entries),
			c.CountByStatus(entity.EntryOK),
			c.CountByStatus(entity.EntryNoted),
			c.CountByStatus(entity.EntryPriorNoted),
		), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary})),
	)
}

// justificationRows: motivo de una conferencia fuera del día o repetida.
func justificationRows(j string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("JUSTIFICACIÓN", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
	}
	for _, chunk := range splitEvery(j, 110) {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 8, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

// footerRow: identificador del registro y fecha de creación.
func footerRow(c *entity.InventoryCheck) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Registro %s   |   Creado %s", c.ID, c.CreatedAt.Format("02/01/2006 15:04")), props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func vehicleStatusLabel(s entity.VehicleStatus) string {
	switch s {
	case entity.VehicleOperating:
		return "Operando"
	case entity.VehicleReserve:
		return "Reserva"
	case entity.VehicleDecommissioned:
		return "Baja"
	}
	return nonEmpty(string(s), "-")
}

// splitEvery divide s en trozos de max n runas.
func splitEvery(s string, n int) []string {
	r := []rune(s)
	var parts []string
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		parts = append(parts, string(r))
	}
	return parts
}
