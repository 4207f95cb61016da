// Package pdf genera el reporte de auditoría en PDF con Maroto v2.
//
// Layout de la página A4 (horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + total de registros  │  Fecha de generación │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Usuario | Rol | Acción | Descripción | IP    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/intranet-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

const descriptionWidth = 70

// ── Generator ─────────────────────────────────────────────────────────────────

// AuditReportGenerator implementa audit.ReportRenderer usando Maroto v2.
type AuditReportGenerator struct {
	location *time.Location
}

// NewAuditReportGenerator construye el generador. Las fechas se imprimen en loc (nil = UTC).
func NewAuditReportGenerator(loc *time.Location) *AuditReportGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &AuditReportGenerator{location: loc}
}

// RenderAuditReport genera el PDF y devuelve sus bytes.
func (g *AuditReportGenerator) RenderAuditReport(logs []dto.AuditLogResponse, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Reporte de auditoría", true).
		WithAuthor("Intranet", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(len(logs), generatedAt.In(g.location)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	if len(logs) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay registros de auditoría.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	m.AddRows(g.tableDetailRows(logs)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de auditoría: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(total int, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE AUDITORÍA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Últimos %d registros", total), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2),
		h("Usuario", 2),
		h("Rol", 1),
		h("Acción", 2),
		h("Descripción", 4),
		h("IP", 1),
	)
}

// tableDetailRows: una fila por entrada; la altura crece con la descripción.
func (g *AuditReportGenerator) tableDetailRows(logs []dto.AuditLogResponse) []core.Row {
	result := make([]core.Row, 0, len(logs))
	for i, l := range logs {
		lines := splitEvery(l.Description, descriptionWidth)
		height := float64(6)
		if len(lines) > 1 {
			height = float64(4*len(lines) + 2)
		}
		cell := func(size int, s string) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Top: 1, Left: 1}))
		}
		r := row.New(height).Add(
			cell(2, l.CreatedAt.In(g.location).Format("02/01/2006 15:04")),
			cell(2, userLabel(l)),
			cell(1, nonEmpty(l.UserRole, "-")),
			cell(2, l.ActionType),
			col.New(4).Add(descriptionTexts(lines)...),
			cell(1, nonEmpty(l.IPAddress, "-")),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Documento generado automáticamente a partir de la bitácora de auditoría del portal.", props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func userLabel(l dto.AuditLogResponse) string {
	if l.User != nil && l.User.Name != "" {
		return l.User.Name
	}
	return "Desconocido"
}

func descriptionTexts(lines []string) []core.Component {
	if len(lines) == 0 {
		lines = []string{"-"}
	}
	out := make([]core.Component, 0, len(lines))
	for i, s := range lines {
		out = append(out, text.New(s, props.Text{Size: 7.5, Top: 1 + float64(4*i), Left: 1}))
	}
	return out
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// splitEvery divide s en trozos de máximo n runas.
func splitEvery(s string, n int) []string {
	var parts []string
	r := []rune(s)
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		parts = append(parts, string(r))
	}
	return parts
}
