package seeder

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "Verification"

// WriteXLSX renders the report as a two-column workbook
func (r *Report) WriteXLSX(w io.Writer) error {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), reportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	rows := [][]any{
		{"metric", "value"},
		{"platforms", r.Platforms},
		{"clients", r.Clients},
		{"invoices", r.Invoices},
		{"transactions", r.Transactions},
		{"clients_with_transactions", r.ClientsWithTransactions},
		{"platforms_used", r.PlatformsUsed},
		{"invoices_with_transactions", r.InvoicesWithTransactions},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := xl.SetSheetRow(reportSheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	bold, err := xl.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	_ = xl.SetCellStyle(reportSheet, "A1", "B1", bold)
	_ = xl.SetColWidth(reportSheet, "A", "A", 30)

	if _, err := xl.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
