// Package pdf exporta la vista de reportes a PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + sistema      │  Fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTADORES: Productos | Órdenes | Usuarios                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VENTAS TOTALES: Subtotal / IVA (19%) / Total con IVA        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Medio de pago | Subtotal | IVA | Total               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: generado por + leyenda                              │
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const reportTitle = "Reporte de Ventas"

var paymentLabels = map[string]string{
	entity.PaymentEfectivo: "Efectivo",
	entity.PaymentDebito:   "Débito",
	entity.PaymentCredito:  "Crédito",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// ReportGenerator genera el PDF de reportes con Maroto v2.
type ReportGenerator struct {
	system string
}

// NewReportGenerator construye el generador; system aparece como autor y en el encabezado.
func NewReportGenerator(system string) *ReportGenerator {
	if system == "" {
		system = "Sistema de Gestión"
	}
	return &ReportGenerator{system: system}
}

// Generate produce el PDF del snapshot y devuelve sus bytes. generatedBy es el usuario en
// sesión que pidió el reporte.
func (g *ReportGenerator) Generate(_ context.Context, snap *dto.ReportSnapshot, generatedBy string) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("pdf: snapshot vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(reportTitle, true).
		WithAuthor(g.system, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(snap))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(countersRow(snap))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(snap))

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionRow("VENTAS POR MEDIO DE PAGO"))
	m.AddRows(tableHeaderRow())
	for _, r := range paymentRows(snap) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(generatedBy))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *ReportGenerator) headerRow(snap *dto.ReportSnapshot) core.Row {
	fecha := "-"
	if !snap.GeneratedAt.IsZero() {
		fecha = snap.GeneratedAt.Format("02/01/2006 15:04")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(reportTitle, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(g.system, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RESUMEN GENERAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func countersRow(snap *dto.ReportSnapshot) core.Row {
	counter := func(label string, n int) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d", n), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Top: 6,
			}),
		)
	}
	return row.New(16).Add(
		counter("Productos", snap.Products),
		counter("Órdenes", snap.Orders),
		counter("Usuarios", snap.Users),
	)
}

func totalsRow(snap *dto.ReportSnapshot) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string, right float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: right, Top: 12,
		})
	}

	return row.New(20).Add(
		col.New(3).Add(text.New("VENTAS TOTALES", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
		})),
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			text.New("IVA (19%):", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6,
			}),
			grand("Total con IVA:", 2),
		),
		col.New(3).Add(
			value(money(snap.Subtotal)),
			text.New(money(snap.IVA), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 6}),
			grand(money(snap.TotalConIVA), 1),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
	))
}

// tableHeaderRow: cabecera de la tabla por medio de pago.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Medio de pago", 3, align.Left),
		h("Subtotal", 3, align.Right),
		h("IVA", 3, align.Right),
		h("Total", 3, align.Right),
	)
}

func paymentRows(snap *dto.ReportSnapshot) []core.Row {
	methods := dto.PaymentMethods()
	result := make([]core.Row, 0, len(methods))
	for _, m := range methods {
		t := snap.ByPayment[m]
		cell := func(s string, a align.Type) core.Col {
			return col.New(3).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		result = append(result, row.New(7).Add(
			cell(paymentLabels[m], align.Left),
			cell(money(t.Subtotal), align.Right),
			cell(money(t.IVA), align.Right),
			cell(money(t.Total), align.Right),
		))
	}
	return result
}

func footerRow(generatedBy string) core.Row {
	legend := "Montos calculados a partir del total de cada orden (IVA incluido)."
	if generatedBy != "" {
		legend = "Generado por " + generatedBy + ". " + legend
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(legend, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con dos decimales, puntos de miles y coma decimal.
// Ej: 1234567.5 → "$1.234.567,50"
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := "$" + formatThousands(intPart) + "," + frac
	if neg {
		return "-" + out
	}
	return out
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
