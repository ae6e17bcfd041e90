// Package excel renders the full ledger as an .xlsx workbook, one sheet per
// table.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mirzacarpets/ledger-api/internal/application/reports"
)

var _ reports.Exporter = (*Exporter)(nil)

// Exporter implements the reports.Exporter port with excelize.
type Exporter struct{}

// NewExporter builds the workbook exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

const dateLayout = "2006-01-02"

// Export writes one sheet per entity and returns the workbook bytes.
func (e *Exporter) Export(data *reports.ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.contractorSheet(f, data); err != nil {
		return nil, err
	}
	if err := e.stockSheet(f, data); err != nil {
		return nil, err
	}
	if err := e.orderSheet(f, data); err != nil {
		return nil, err
	}
	if err := e.transactionSheet(f, data); err != nil {
		return nil, err
	}
	if err := e.paymentSheet(f, data); err != nil {
		return nil, err
	}
	if err := e.deductionSheet(f, data); err != nil {
		return nil, err
	}
	// Drop the default sheet so the workbook opens on Contractors.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) contractorSheet(f *excelize.File, data *reports.ExportData) error {
	rows := make([][]any, 0, len(data.Contractors))
	for _, c := range data.Contractors {
		rows = append(rows, []any{c.ID, c.Name, c.ContactInfo, c.CreatedAt.Format(dateLayout)})
	}
	return writeSheet(f, "Contractors", []string{"ID", "Name", "Contact", "Created"}, rows)
}

func (e *Exporter) stockSheet(f *excelize.File, data *reports.ExportData) error {
	rows := make([][]any, 0, len(data.StockItems))
	for _, s := range data.StockItems {
		rows = append(rows, []any{s.ID, s.Type, s.Quality, s.ColorShade, s.PricePerKg.String(), s.QuantityKg.String()})
	}
	return writeSheet(f, "Stock Items",
		[]string{"ID", "Type", "Quality", "Shade", "Price/kg", "Quantity kg"}, rows)
}

func (e *Exporter) orderSheet(f *excelize.File, data *reports.ExportData) error {
	rows := make([][]any, 0, len(data.Orders))
	for _, o := range data.Orders {
		due := ""
		if o.DateDue != nil {
			due = o.DateDue.Format(dateLayout)
		}
		completed := ""
		if o.DateCompleted != nil {
			completed = o.DateCompleted.Format(dateLayout)
		}
		rows = append(rows, []any{
			o.ID, o.ContractorID, o.Quality, o.DesignNumber, o.ShadeCard,
			o.Length.String(), o.Width.String(), o.AreaSqFt().String(),
			o.PricePerSqFt.String(), o.Wage.String(), o.PenaltyPerDay.String(),
			o.DateIssued.Format(dateLayout), due, completed, o.Status, o.Notes,
		})
	}
	return writeSheet(f, "Orders", []string{
		"ID", "Contractor", "Quality", "Design", "Shade Card",
		"Length", "Width", "Area sq ft", "Price/sq ft", "Wage", "Penalty/day",
		"Issued", "Due", "Completed", "Status", "Notes",
	}, rows)
}

func (e *Exporter) transactionSheet(f *excelize.File, data *reports.ExportData) error {
	rows := make([][]any, 0, len(data.Transactions))
	for _, t := range data.Transactions {
		rows = append(rows, []any{
			t.ID, t.OrderID, t.ContractorID, t.StockType, t.StockQuality, t.StockColorShade,
			t.Type, t.WeightKg.String(), t.PricePerKg.String(), t.Value().String(),
			t.Date.Format(dateLayout), t.Notes,
		})
	}
	return writeSheet(f, "Transactions", []string{
		"ID", "Order", "Contractor", "Stock Type", "Quality", "Shade",
		"Direction", "Weight kg", "Price/kg", "Value", "Date", "Notes",
	}, rows)
}

func (e *Exporter) paymentSheet(f *excelize.File, data *reports.ExportData) error {
	rows := make([][]any, 0, len(data.Payments))
	for _, p := range data.Payments {
		scope := "General"
		if !p.IsGeneral() {
			scope = p.OrderID
		}
		rows = append(rows, []any{p.ID, p.ContractorID, scope, p.Amount.String(), p.Date.Format(dateLayout), p.Notes})
	}
	return writeSheet(f, "Payments",
		[]string{"ID", "Contractor", "Order", "Amount", "Date", "Notes"}, rows)
}

func (e *Exporter) deductionSheet(f *excelize.File, data *reports.ExportData) error {
	rows := make([][]any, 0, len(data.Deductions))
	for _, d := range data.Deductions {
		rows = append(rows, []any{d.ID, d.OrderID, d.Reason, d.Amount.String()})
	}
	return writeSheet(f, "Deductions", []string{"ID", "Order", "Reason", "Amount"}, rows)
}

func writeSheet(f *excelize.File, name string, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("new sheet %s: %w", name, err)
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return fmt.Errorf("write header %s: %w", name, err)
		}
	}
	for i, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return fmt.Errorf("write row %s: %w", name, err)
			}
		}
	}
	return nil
}
