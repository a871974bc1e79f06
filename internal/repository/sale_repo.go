package repository

import (
	"go-retail-sales/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindByUser(userID uuid.UUID) ([]model.Sale, error)
	FindByID(userID, id uuid.UUID) (*model.Sale, error)
	GetSummary(userID uuid.UUID) (*SalesSummary, error)
}

// SalesSummary for the overview endpoint
type SalesSummary struct {
	SalesCount     int64           `json:"sales_count"`
	UnitsSold      int64           `json:"units_sold"`
	TotalSaleValue decimal.Decimal `json:"total_sale_amount"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

// FindByUser returns the user's sales newest first. A deleted product or store
// leaves the reference nil rather than failing the query.
func (r *saleRepo) FindByUser(userID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Product").Preload("Store").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(userID, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Product").Preload("Store").First(&sale, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// GetSummary counts rows and units in SQL. The amount is left to the caller,
// which sums it with the same function the sales page uses.
func (r *saleRepo) GetSummary(userID uuid.UUID) (*SalesSummary, error) {
	var summary SalesSummary
	err := r.db.Model(&model.Sale{}).
		Where("user_id = ?", userID).
		Select("COUNT(*) AS sales_count, COALESCE(SUM(stock_sold), 0) AS units_sold").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
