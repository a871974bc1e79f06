package report

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"go-retail-sales/internal/model"
)

// ErrInvalidRecord rejects sales that cannot appear on an invoice
var ErrInvalidRecord = errors.New("invalid sale record")

const (
	InvoiceTitle      = "Invoice"
	InvoiceTotalLabel = "Total Amount:"
	InvoiceCurrency   = "Rs."
)

type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Column describes one fixed-width invoice column. Width is a relative weight;
// the renderer scales the weights of a row to fill the printable width.
type Column struct {
	Caption string
	Width   float64
	Align   Align
	Bold    bool
	Italic  bool
	Red     bool
}

// InvoiceColumns is the fixed header row of every invoice. The weights keep
// the 30/25/15/15/20 proportions and are normalized when rendered.
var InvoiceColumns = []Column{
	{Caption: "Product Name", Width: 0.30, Align: AlignLeft, Bold: true},
	{Caption: "Store Name", Width: 0.25, Align: AlignLeft, Italic: true},
	{Caption: "Stock Sold", Width: 0.15, Align: AlignCenter},
	{Caption: "Sales Date", Width: 0.15, Align: AlignCenter},
	{Caption: "Net Amount", Width: 0.20, Align: AlignRight, Bold: true, Red: true},
}

type InvoiceRow struct {
	ProductName string
	StoreName   string
	StockSold   int
	SaleDate    string
	Amount      decimal.Decimal
}

// Cells returns the row text in InvoiceColumns order
func (r InvoiceRow) Cells() []string {
	return []string{r.ProductName, r.StoreName, strconv.Itoa(r.StockSold), r.SaleDate, r.Amount.String()}
}

// Document is the structured description of an invoice, independent of the
// PDF library that eventually materializes it.
type Document struct {
	Title        string
	Columns      []Column
	Rows         []InvoiceRow
	TotalLabel   string
	Total        decimal.Decimal
	TotalInWords string
	Currency     string
}

// TotalText is the amount cell of the total row, e.g. "Rs. 250"
func (d *Document) TotalText() string {
	return d.Currency + " " + d.Total.String()
}

// BuildInvoice describes an invoice for sales: one body row per sale in input
// order and a trailing total row. An empty list yields a valid document with
// no body rows and a zero total.
func BuildInvoice(sales []model.SaleRecord) (*Document, error) {
	rows := make([]InvoiceRow, 0, len(sales))
	for i, sale := range sales {
		if sale.StockSold < 0 || sale.TotalSaleAmount.IsNegative() {
			return nil, fmt.Errorf("%w: row %d (%s)", ErrInvalidRecord, i+1, sale.ID)
		}
		rows = append(rows, InvoiceRow{
			ProductName: sale.ProductName(),
			StoreName:   sale.StoreName(),
			StockSold:   sale.StockSold,
			SaleDate:    sale.SaleDate,
			Amount:      sale.TotalSaleAmount,
		})
	}

	total := ComputeTotal(sales)
	return &Document{
		Title:        InvoiceTitle,
		Columns:      InvoiceColumns,
		Rows:         rows,
		TotalLabel:   InvoiceTotalLabel,
		Total:        total,
		TotalInWords: AmountInWords(total),
		Currency:     InvoiceCurrency,
	}, nil
}
