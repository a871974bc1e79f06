// Package report turns a list of sale records into the two views the sales
// page offers: the on-screen table and the downloadable invoice. Both read
// their total from ComputeTotal so they cannot disagree.
package report

import (
	"github.com/shopspring/decimal"

	"go-retail-sales/internal/model"
)

// ComputeTotal sums TotalSaleAmount over sales. An empty list totals zero.
func ComputeTotal(sales []model.SaleRecord) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.TotalSaleAmount)
	}
	return total
}
