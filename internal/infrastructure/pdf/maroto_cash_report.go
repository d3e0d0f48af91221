// Package pdf gera o relatório de fechamento de caixa.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CABEÇALHO: Unidade  │  Caixa + período                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: Abertura / Vendas / Suprimentos / Sangrias          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Hora | Tipo | Descrição | Valor                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FECHAMENTO: Esperado / Contado / Diferença                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/ports"
	"github.com/barberpro/barber-analytics-api/pkg/format"
)

var _ ports.CashReportGenerator = (*CashReportGenerator)(nil)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 33, Green: 37, Blue: 41}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 176, Green: 42, Blue: 55}
)

var movementLabels = map[string]string{
	"SUPRIMENTO": "Suprimento",
	"SANGRIA":    "Sangria",
	"VENDA":      "Venda",
}

// CashReportGenerator relatório de caixa com Maroto v2.
type CashReportGenerator struct{}

// NewCashReportGenerator constrói o gerador.
func NewCashReportGenerator() *CashReportGenerator { return &CashReportGenerator{} }

// CashRegisterReport gera o PDF e devolve seus bytes.
func (g *CashReportGenerator) CashRegisterReport(unitName string, reg *dto.CashRegisterResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de caixa", true).
		WithAuthor(unitName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(unitName, reg))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(reg))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(movementRows(reg.Movements)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(closingRow(reg))
	if reg.Notes != nil && *reg.Notes != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Observações: "+*reg.Notes, props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar relatório de caixa: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

func headerRow(unitName string, reg *dto.CashRegisterResponse) core.Row {
	period := "Aberto em " + reg.OpenedAt.Format("02/01/2006 15:04")
	if reg.ClosedAt != nil {
		period += " · Fechado em " + reg.ClosedAt.Format("02/01/2006 15:04")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(unitName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Relatório de fechamento de caixa", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("CAIXA "+statusLabel(reg.Status), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(period, props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

func summaryRow(reg *dto.CashRegisterResponse) core.Row {
	item := func(label string, v decimal.Decimal) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(format.BRL(v), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		item("Abertura", reg.OpeningBalance),
		item("Vendas em dinheiro", reg.Sales),
		item("Suprimentos", reg.Suprimentos),
		item("Sangrias", reg.Sangrias),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Hora", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Descrição", 5, align.Left),
		h("Valor", 3, align.Right),
	)
}

func movementRows(movs []dto.CashMovementResponse) []core.Row {
	if len(movs) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Nenhuma movimentação.", props.Text{Size: 8, Top: 1, Color: colorGray, Align: align.Center}),
		))}
	}
	out := make([]core.Row, 0, len(movs))
	for _, mv := range movs {
		value := format.BRL(mv.Amount)
		style := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if mv.Type == "SANGRIA" {
			value = "-" + value
			style.Color = colorRed
		}
		out = append(out, row.New(6).Add(
			col.New(2).Add(text.New(mv.CreatedAt.Format("15:04"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(movementLabels[mv.Type], mv.Type), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(mv.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(value, style)),
		))
	}
	return out
}

func closingRow(reg *dto.CashRegisterResponse) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64, c *props.Color) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top, Color: c})
	}
	counted, diff := "—", "—"
	diffColor := colorPrimary
	if reg.ClosingBalance != nil {
		counted = format.BRL(*reg.ClosingBalance)
	}
	if reg.Difference != nil {
		diff = format.BRL(*reg.Difference)
		if !reg.Difference.IsZero() {
			diffColor = colorRed
		}
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(label("Saldo esperado:", 1), label("Saldo contado:", 7), label("Diferença:", 13)),
		col.New(3).Add(
			value(format.BRL(reg.ExpectedBalance), 1, colorPrimary),
			value(counted, 7, colorPrimary),
			value(diff, 13, diffColor),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(status string) string {
	if status == "FECHADO" {
		return "FECHADO"
	}
	return "ABERTO"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
