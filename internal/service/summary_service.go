package service

import (
	"go-retail-sales/internal/report"
	"go-retail-sales/internal/repository"

	"github.com/google/uuid"
)

type SummaryService interface {
	GetSummary(userID uuid.UUID) (*repository.SalesSummary, error)
}

type summaryService struct {
	saleRepo repository.SaleRepository
	sales    SaleService
}

func NewSummaryService(saleRepo repository.SaleRepository, sales SaleService) SummaryService {
	return &summaryService{saleRepo: saleRepo, sales: sales}
}

// GetSummary counts in SQL but totals with report.ComputeTotal, so the figure
// matches the sales table and the invoice to the cent.
func (s *summaryService) GetSummary(userID uuid.UUID) (*repository.SalesSummary, error) {
	summary, err := s.saleRepo.GetSummary(userID)
	if err != nil {
		return nil, err
	}
	records, err := s.sales.GetSales(userID)
	if err != nil {
		return nil, err
	}
	summary.TotalSaleValue = report.ComputeTotal(records)
	return summary, nil
}
