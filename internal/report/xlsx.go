package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName    = "Sales"
	WorkbookType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	WorkbookName = "sales.xlsx"
	defaultSheet = "Sheet1"

	// built-in "#,##0.00"
	amountNumFmt = 4
)

// sheetWriter keeps the first cell error so the export reads top to bottom
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) set(col, row int, value interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(SheetName, cell, value)
}

// amount writes the decimal text as a numeric cell, so the workbook holds the
// same digits ComputeTotal produced rather than a float approximation
func (w *sheetWriter) amount(col, row int, value decimal.Decimal) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellDefault(SheetName, cell, value.String())
}

func (w *sheetWriter) style(fromCol, fromRow, toCol, toRow, style int) {
	if w.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		w.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(SheetName, from, to, style)
}

// WriteWorkbook exports the table as a single-sheet workbook: header, one row
// per sale, and the total row. Amounts are numeric cells.
func WriteWorkbook(t Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: amountNumFmt})
	if err != nil {
		return fmt.Errorf("amount style: %w", err)
	}
	boldMoney, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: amountNumFmt})
	if err != nil {
		return fmt.Errorf("total style: %w", err)
	}

	amountCol := len(TableHeader)
	sw := &sheetWriter{f: f}

	for i, caption := range t.Header {
		sw.set(i+1, 1, caption)
	}
	sw.style(1, 1, len(t.Header), 1, bold)

	for i, row := range t.Rows {
		r := i + 2
		sw.set(1, r, row.ProductName)
		sw.set(2, r, row.StoreName)
		sw.set(3, r, row.StockSold)
		sw.set(4, r, row.SaleDate)
		sw.amount(amountCol, r, row.Amount)
	}
	if len(t.Rows) > 0 {
		sw.style(amountCol, 2, amountCol, len(t.Rows)+1, money)
	}

	totalRow := len(t.Rows) + 2
	sw.set(1, totalRow, TotalLabel)
	sw.amount(amountCol, totalRow, t.Total)
	sw.style(1, totalRow, amountCol-1, totalRow, bold)
	sw.style(amountCol, totalRow, amountCol, totalRow, boldMoney)

	if sw.err != nil {
		return fmt.Errorf("fill workbook: %w", sw.err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
