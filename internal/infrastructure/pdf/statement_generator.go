// Package pdf renders a contractor's ledger statement as a printable A4
// document.
//
// Page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Contractor name + contact  │  Statement date       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Design | Quality | Status | Wage | Stock | Pending  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  HELD STOCK: Description | Net kg                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Wages / Stock / Deductions / Fines / Paid / OWED   │
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

	"github.com/mirzacarpets/ledger-api/internal/application/contractors"
)

var (
	colorPrimary = &props.Color{Red: 102, Green: 51, Blue: 0}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ contractors.StatementGenerator = (*StatementGenerator)(nil)

// StatementGenerator implements contractors.StatementGenerator with Maroto v2.
type StatementGenerator struct{}

// NewStatementGenerator builds the generator.
func NewStatementGenerator() *StatementGenerator { return &StatementGenerator{} }

// Statement renders the ledger view and returns the PDF bytes.
func (g *StatementGenerator) Statement(details *contractors.Details) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Contractor Statement", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(details))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("ORDERS"))
	m.AddRows(orderHeaderRow())
	for _, r := range orderRows(details.Orders) {
		m.AddRows(r)
	}

	if len(details.HeldStock) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionTitle("STOCK CURRENTLY HELD"))
		for _, r := range heldStockRows(details.HeldStock) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(details))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate statement: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(details *contractors.Details) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(details.Contractor.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(details.Contractor.ContactInfo, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("LEDGER STATEMENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d orders", len(details.Orders)), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(
		col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		})),
	)
}

func orderHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Design", 2, align.Left),
		h("Quality", 2, align.Left),
		h("Status", 1, align.Center),
		h("Wage", 2, align.Right),
		h("Stock", 2, align.Right),
		h("Fine", 1, align.Right),
		h("Pending", 2, align.Right),
	)
}

func orderRows(views []contractors.OrderView) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1}))
	}
	result := make([]core.Row, 0, len(views))
	for _, v := range views {
		result = append(result, row.New(6).Add(
			cell(v.Order.DesignNumber, 2, align.Left),
			cell(v.Order.Quality, 2, align.Left),
			cell(v.Order.Status, 1, align.Center),
			cell(v.Summary.Wage.StringFixed(2), 2, align.Right),
			cell(v.Summary.NetStockValue.StringFixed(2), 2, align.Right),
			cell(v.Summary.TotalFine.StringFixed(2), 1, align.Right),
			cell(v.Summary.AmountPending.StringFixed(2), 2, align.Right),
		))
	}
	return result
}

func heldStockRows(held []contractors.HeldStockLine) []core.Row {
	result := make([]core.Row, 0, len(held))
	for _, h := range held {
		result = append(result, row.New(6).Add(
			col.New(8).Add(text.New(h.Description, props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(h.NetWeightKg.StringFixed(3)+" kg", props.Text{
				Size: 8, Align: align.Right, Top: 1,
			})),
		))
	}
	return result
}

func totalsRow(details *contractors.Details) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	t := details.Totals
	return row.New(34).Add(
		col.New(4),
		col.New(4).Add(
			label("Total wages:"),
			label("Stock consumed:"),
			label("Deductions:"),
			label("Fines:"),
			label("Paid:"),
			grandLabel("BALANCE OWED:"),
		),
		col.New(4).Add(
			value(t.TotalWages.StringFixed(2)),
			value(t.TotalStockValue.StringFixed(2)),
			value(t.TotalDeductions.StringFixed(2)),
			value(t.TotalFines.StringFixed(2)),
			value(t.TotalPaid.StringFixed(2)),
			grandValue(t.BalanceOwed.StringFixed(2)),
		),
	)
}
