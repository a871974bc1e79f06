package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pagePadding = 20.0
	rowHeight   = 18.0
	ContentType = "application/pdf"
	FileName    = "invoice.pdf"
)

// RenderError reports a failure to materialize an invoice document
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return "render invoice: " + e.Err.Error() }

func (e *RenderError) Unwrap() error { return e.Err }

// RenderPDF materializes doc as a single-column A4 PDF written to w
func RenderPDF(doc *Document, w io.Writer) error {
	if doc == nil {
		return &RenderError{Err: errors.New("nil document")}
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pagePadding, pagePadding, pagePadding)
	pdf.SetAutoPageBreak(true, pagePadding)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("go-retail-sales", true)
	pdf.AddPage()

	// core fonts are cp1252; translate so names with accents survive
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := pdf.GetPageSize()
	printable := pageWidth - 2*pagePadding

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(printable, 30, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.Ln(pagePadding)

	header := make([]string, len(doc.Columns))
	for i, col := range doc.Columns {
		header[i] = col.Caption
	}
	widths := columnWidths(doc.Columns, printable)
	writeRow(pdf, tr, doc.Columns, widths, header)
	for _, row := range doc.Rows {
		writeRow(pdf, tr, doc.Columns, widths, row.Cells())
	}

	// total row: label on the left, amount in the amount column
	pdf.Ln(10)
	amountWidth := printable
	if len(widths) > 0 {
		amountWidth = widths[len(widths)-1]
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(printable-amountWidth, rowHeight, tr(doc.TotalLabel), "B", 0, "L", false, 0, "")
	pdf.SetTextColor(255, 0, 0)
	pdf.CellFormat(amountWidth, rowHeight, tr(doc.TotalText()), "B", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	if doc.TotalInWords != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(printable, rowHeight, tr("Amount in words: "+doc.TotalInWords), "", 1, "L", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return &RenderError{Err: err}
	}
	if err := pdf.Output(w); err != nil {
		return &RenderError{Err: fmt.Errorf("write pdf: %w", err)}
	}
	return nil
}

// RenderPDFBytes is RenderPDF into memory
func RenderPDFBytes(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderPDF(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// columnWidths scales the column weights so that a row spans exactly printable.
// fpdf never shrinks a cell, so weights summing past 1 would push the last
// column off the page.
func columnWidths(cols []Column, printable float64) []float64 {
	total := 0.0
	for _, col := range cols {
		total += col.Width
	}
	widths := make([]float64, len(cols))
	if total <= 0 {
		return widths
	}
	for i, col := range cols {
		widths[i] = printable * col.Width / total
	}
	return widths
}

func writeRow(pdf *fpdf.Fpdf, tr func(string) string, cols []Column, widths []float64, cells []string) {
	for i, col := range cols {
		style := ""
		if col.Bold {
			style += "B"
		}
		if col.Italic {
			style += "I"
		}
		pdf.SetFont("Helvetica", style, 11)
		if col.Red {
			pdf.SetTextColor(255, 0, 0)
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		pdf.CellFormat(widths[i], rowHeight, tr(text), "B", 0, string(col.Align), false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(-1)
}
