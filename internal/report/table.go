package report

import (
	"strconv"

	"github.com/shopspring/decimal"

	"go-retail-sales/internal/model"
)

// TableHeader are the column captions of the sales table
var TableHeader = []string{"Product Name", "Store Name", "Stock Sold", "Sales Date", "Total Sale Amount"}

// TotalLabel captions the synthesized final row of the table
const TotalLabel = "Total"

type TableRow struct {
	ProductName string          `json:"product_name"`
	StoreName   string          `json:"store_name"`
	StockSold   int             `json:"stock_sold"`
	SaleDate    string          `json:"sale_date"`
	Amount      decimal.Decimal `json:"amount"`
}

// Cells renders the row as display strings, prefixing the amount with currency
func (r TableRow) Cells(currency string) []string {
	return []string{r.ProductName, r.StoreName, strconv.Itoa(r.StockSold), r.SaleDate, currency + r.Amount.String()}
}

type Table struct {
	Header []string        `json:"header"`
	Rows   []TableRow      `json:"rows"`
	Total  decimal.Decimal `json:"total"`
}

// BuildTable projects sales into one row each, in input order, plus the total
func BuildTable(sales []model.SaleRecord) Table {
	rows := make([]TableRow, 0, len(sales))
	for _, sale := range sales {
		rows = append(rows, TableRow{
			ProductName: sale.ProductName(),
			StoreName:   sale.StoreName(),
			StockSold:   sale.StockSold,
			SaleDate:    sale.SaleDate,
			Amount:      sale.TotalSaleAmount,
		})
	}
	return Table{
		Header: TableHeader,
		Rows:   rows,
		Total:  ComputeTotal(sales),
	}
}
