package service

import (
	"context"
	"errors"
	"fmt"

	"go-retail-sales/internal/cache"
	"go-retail-sales/internal/metrics"
	"go-retail-sales/internal/model"
	"go-retail-sales/internal/repository"
	"go-retail-sales/internal/ws"
	"go-retail-sales/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrStoreNotFound     = errors.New("store not found")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrSaleNotFound      = errors.New("sale not found")
)

type SaleService interface {
	RecordSale(ctx context.Context, req *model.SaleInput, actor Actor) (*model.Sale, error)
	GetSales(userID uuid.UUID) ([]model.SaleRecord, error)
	GetSale(userID, id uuid.UUID) (*model.SaleRecord, error)
}

type saleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	catalog     *cache.CatalogCache
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewSaleService(sRepo repository.SaleRepository, pRepo repository.ProductRepository, catalog *cache.CatalogCache, db *gorm.DB, hub *ws.Hub) SaleService {
	return &saleService{
		saleRepo:    sRepo,
		productRepo: pRepo,
		catalog:     catalog,
		db:          db,
		wsHub:       hub,
	}
}

// RecordSale stores a sale for actor and takes the sold quantity out of the
// product's stock. Both happen in one transaction with the product row locked.
func (s *saleService) RecordSale(ctx context.Context, req *model.SaleInput, actor Actor) (*model.Sale, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.TotalSaleAmount.IsNegative() {
		return nil, fmt.Errorf("%w: total_sale_amount must not be negative", ErrValidation)
	}

	userID, err := actor.userID()
	if err != nil {
		return nil, err
	}

	sale := &model.Sale{
		UserID:          userID,
		ProductID:       req.ProductID,
		StoreID:         req.StoreID,
		StockSold:       req.StockSold,
		SaleDate:        req.SaleDate,
		TotalSaleAmount: req.TotalSaleAmount,
	}
	sale.CreatedBy = actor.ID
	sale.UpdatedBy = actor.ID

	var product model.Product
	var store model.Store
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ? AND user_id = ?", req.ProductID, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if err := tx.First(&store, "id = ? AND user_id = ?", req.StoreID, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStoreNotFound
			}
			return err
		}

		if product.Stock < req.StockSold {
			return ErrInsufficientStock
		}
		product.Stock -= req.StockSold

		if err := s.productRepo.UpdateStock(tx, product.ID, product.Stock, actor.ID); err != nil {
			return err
		}
		return s.saleRepo.Create(tx, sale)
	})
	if err != nil {
		return nil, err
	}

	// attach after Create so gorm does not upsert the associations
	sale.Product = &product
	sale.Store = &store

	s.catalog.Invalidate(ctx, userID)
	metrics.SalesRecorded.Inc()
	s.wsHub.Publish(ws.Event{
		Type:   "stock_update",
		Action: "sale_created",
		Data: map[string]interface{}{
			"sale":      sale.ToRecord(),
			"new_stock": product.Stock,
		},
		User:    actor.wsActor(),
		Message: fmt.Sprintf("%s sold %d units of '%s' at '%s'", actor.Name, sale.StockSold, product.Name, store.Name),
	})

	return sale, nil
}

func (s *saleService) GetSales(userID uuid.UUID) ([]model.SaleRecord, error) {
	sales, err := s.saleRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	records := make([]model.SaleRecord, 0, len(sales))
	for i := range sales {
		records = append(records, sales[i].ToRecord())
	}
	return records, nil
}

func (s *saleService) GetSale(userID, id uuid.UUID) (*model.SaleRecord, error) {
	sale, err := s.saleRepo.FindByID(userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	record := sale.ToRecord()
	return &record, nil
}
