// Package pdf renderiza o comprovante de venda do PDV em PDF (Maroto v2).
//
// Layout da página A5:
//
//	┌──────────────────────────────────────────────┐
//	│  CABEÇALHO: Comprovante de Venda + nº + data │
//	│  ──────────────────────────────────────────  │
//	│  TABELA: Qtd | Produto | Preço Unit | Subtot │
//	│  ──────────────────────────────────────────  │
//	│  TOTAL                                       │
//	│  PAGAMENTOS: forma | valor                   │
//	└──────────────────────────────────────────────┘
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

	appsales "github.com/gestaofacil/erp-api/internal/application/sales"
	"github.com/gestaofacil/erp-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 20, Green: 60, Blue: 100}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReceiptGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	storeName string
}

// NewMarotoReceiptGenerator constrói o gerador. storeName aparece no cabeçalho.
func NewMarotoReceiptGenerator(storeName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{storeName: storeName}
}

var _ appsales.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// GenerateReceipt gera o PDF e devolve seus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(
	sale *entity.Sale,
	lines []appsales.ReceiptLine,
	payments []*entity.SalePayment,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprovante de Venda", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale))

	if len(payments) > 0 {
		m.AddRows(line.NewRow(2))
		for _, r := range paymentRows(payments) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nome da loja (esq) e nº da venda + data (dir).
func (g *MarotoReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprovante de Venda", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("VENDA #%d", sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de itens.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Qtd", 2, align.Center),
		h("Produto", 5, align.Left),
		h("Preço Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableLineRows: uma linha por item da venda.
func tableLineRows(lines []appsales.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name := l.ProductName
		if l.SKU != "" {
			name = fmt.Sprintf("%s (%s)", l.ProductName, l.SKU)
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(l.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(name, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(l.UnitPrice.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(l.Subtotal.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}

// totalRow: total da venda.
func totalRow(sale *entity.Sale) core.Row {
	return row.New(8).Add(
		col.New(9).Add(text.New("TOTAL", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1, Color: colorPrimary,
		})),
		col.New(3).Add(text.New(sale.Total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
		})),
	)
}

// paymentRows: uma linha por pagamento registrado no fechamento.
func paymentRows(payments []*entity.SalePayment) []core.Row {
	result := make([]core.Row, 0, len(payments)+1)
	result = append(result, row.New(6).Add(
		col.New(12).Add(text.New("Pagamentos", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		})),
	))
	for _, p := range payments {
		result = append(result, row.New(5).Add(
			col.New(9).Add(text.New(p.Method, props.Text{Size: 8, Top: 1, Color: colorGray})),
			col.New(3).Add(text.New(p.Amount.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}
