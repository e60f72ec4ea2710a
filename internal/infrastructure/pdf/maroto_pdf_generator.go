// Package pdf genera el estado de cuenta de un documento con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo + Referencia   │  Estado + Fecha               │
//	│  TABLA: Cant | Ítem | P.Unit | Desc. | Imp. | Total          │
//	│  TOTALES: Líneas / Descuento / Impuesto / Envío / TOTAL      │
//	│  PAGOS: Fecha | Método | Primaria | Secundaria | Tasa | Pago │
//	│  DEVOLUCIONES (si hay)                                       │
//	│  SALDO PENDIENTE                                             │
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

	"github.com/titya18/pos-react-front-office-sub001/internal/application/settlement"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDue     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var kindTitles = map[entity.DocumentKind]string{
	entity.KindInvoice:   "FACTURA",
	entity.KindPurchase:  "COMPRA",
	entity.KindQuotation: "COTIZACIÓN",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ settlement.StatementGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa settlement.StatementGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador; author va en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// GenerateStatement genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStatement(_ context.Context, data settlement.StatementData) ([]byte, error) {
	if data.Order == nil {
		return nil, fmt.Errorf("pdf: documento requerido")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta", true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(linesHeaderRow())
	m.AddRows(lineRows(data)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("PAGOS"))
	m.AddRows(paymentRows(data)...)

	if len(data.Returns) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionTitle("DEVOLUCIONES"))
		m.AddRows(returnRows(data)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(dueRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tipo y referencia (izq) y estado + fecha de emisión (der).
func headerRow(data settlement.StatementData) core.Row {
	doc := data.Order
	ref := nonEmpty(doc.Reference, doc.ID)
	return row.New(18).Add(
		col.New(7).Add(
			text.New(kindTitles[doc.Kind]+" "+ref, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Creado: "+doc.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(strings.ToUpper(string(doc.Status)), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emitido: "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func linesHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Ítem", 4, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Desc.", 1, align.Right),
		h("Imp.", 1, align.Center),
		h("Total", 3, align.Right),
	)
}

// lineRows: una fila por línea; el impuesto se muestra solo si es excluido.
func lineRows(data settlement.StatementData) []core.Row {
	cur := data.PrimaryCurrency
	result := make([]core.Row, 0, len(data.Order.Lines))
	for _, l := range data.Order.Lines {
		discount := l.DiscountValue.String()
		if l.DiscountMethod == entity.DiscountPercent {
			discount += "%"
		}
		tax := "incl."
		if l.TaxMethod == entity.TaxExclude {
			tax = l.TaxRatePercent.String() + "%"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(l.SourceID, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money.Format(l.UnitPrice, cur), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(discount, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(tax, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(money.Format(l.Total, cur), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(data settlement.StatementData) core.Row {
	cur := data.PrimaryCurrency
	t := data.Totals
	labels := []string{"Líneas:", "Descuento:", "Impuesto:", "Envío:", "TOTAL:"}
	values := []decimal.Decimal{t.LineSum, data.Order.DiscountAmount.Neg(), t.TaxAmount, t.ShippingAmount, t.GrandTotal}

	left := col.New(3)
	right := col.New(3)
	for i := range labels {
		top := float64(i) * 5
		left.Add(text.New(labels[i], props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		}))
		right.Add(text.New(money.Format(values[i], cur), props.Text{
			Size: 9, Align: align.Right, Right: 1, Top: top,
		}))
	}
	return row.New(27).Add(col.New(6), left, right)
}

func sectionTitle(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(s, props.Text{
		Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
	})))
}

func paymentRows(data settlement.StatementData) []core.Row {
	if len(data.Payments) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(text.New("Sin pagos registrados.", props.Text{
			Size: 8, Color: colorGray, Top: 1,
		})))}
	}
	result := make([]core.Row, 0, len(data.Payments))
	for _, p := range data.Payments {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(p.CreatedAt.Format("02/01/2006"), props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(p.PaymentMethodID, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(money.Format(p.ReceivedPrimaryCurrency, data.PrimaryCurrency), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(money.Format(p.ReceivedSecondaryCurrency, data.SecondaryCurrency), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(p.ExchangeRate.String(), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(money.Format(p.TotalPaid, data.PrimaryCurrency), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func returnRows(data settlement.StatementData) []core.Row {
	result := make([]core.Row, 0, len(data.Returns))
	for _, r := range data.Returns {
		units := int64(0)
		for _, it := range r.Items {
			units += it.Quantity
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(r.CreatedAt.Format("02/01/2006"), props.Text{Size: 8, Top: 1})),
			col.New(7).Add(text.New(fmt.Sprintf("%d unidades  %s", units, r.Note), props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(money.Format(r.GrandTotal, data.PrimaryCurrency), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func dueRow(data settlement.StatementData) core.Row {
	color := colorPrimary
	if data.DueBalance.IsPositive() {
		color = colorDue
	}
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("SALDO PENDIENTE:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: color, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(money.Format(data.DueBalance, data.PrimaryCurrency), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: color, Right: 1, Top: 2,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
