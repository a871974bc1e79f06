package service

import (
	"context"
	"errors"
	"fmt"

	"go-retail-sales/internal/cache"
	"go-retail-sales/internal/model"
	"go-retail-sales/internal/repository"
	"go-retail-sales/internal/ws"
	"go-retail-sales/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService manages the reference data the add-sale form picks from
type CatalogService interface {
	GetProducts(ctx context.Context, userID uuid.UUID) ([]model.Product, error)
	GetStores(ctx context.Context, userID uuid.UUID) ([]model.Store, error)
	GetProduct(userID, id uuid.UUID) (*model.Product, error)
	GetStore(userID, id uuid.UUID) (*model.Store, error)
	CreateProduct(ctx context.Context, req *model.Product, actor Actor) error
	CreateStore(ctx context.Context, req *model.Store, actor Actor) error
}

type catalogService struct {
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	cache       *cache.CatalogCache
	wsHub       *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, sRepo repository.StoreRepository, c *cache.CatalogCache, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo: pRepo,
		storeRepo:   sRepo,
		cache:       c,
		wsHub:       hub,
	}
}

func (s *catalogService) GetProducts(ctx context.Context, userID uuid.UUID) ([]model.Product, error) {
	if products, ok := s.cache.GetProducts(ctx, userID); ok {
		return products, nil
	}
	products, err := s.productRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	s.cache.SetProducts(ctx, userID, products)
	return products, nil
}

func (s *catalogService) GetStores(ctx context.Context, userID uuid.UUID) ([]model.Store, error) {
	if stores, ok := s.cache.GetStores(ctx, userID); ok {
		return stores, nil
	}
	stores, err := s.storeRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	s.cache.SetStores(ctx, userID, stores)
	return stores, nil
}

// GetProduct reads one product uncached, so the stock is current
func (s *catalogService) GetProduct(userID, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

func (s *catalogService) GetStore(userID, id uuid.UUID) (*model.Store, error) {
	store, err := s.storeRepo.FindByID(userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStoreNotFound
	}
	return store, err
}

func (s *catalogService) CreateProduct(ctx context.Context, req *model.Product, actor Actor) error {
	if err := validator.FirstError(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	userID, err := actor.userID()
	if err != nil {
		return err
	}

	req.ID = uuid.Nil
	req.UserID = userID
	req.CreatedBy = actor.ID
	req.UpdatedBy = actor.ID
	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, userID)
	s.wsHub.Publish(ws.Event{
		Type:   "stock_update",
		Action: "product_created",
		Data: map[string]interface{}{
			"id":    req.ID,
			"name":  req.Name,
			"stock": req.Stock,
		},
		User:    actor.wsActor(),
		Message: fmt.Sprintf("%s created product '%s'", actor.Name, req.Name),
	})
	return nil
}

func (s *catalogService) CreateStore(ctx context.Context, req *model.Store, actor Actor) error {
	if err := validator.FirstError(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	userID, err := actor.userID()
	if err != nil {
		return err
	}

	req.ID = uuid.Nil
	req.UserID = userID
	req.CreatedBy = actor.ID
	req.UpdatedBy = actor.ID
	if err := s.storeRepo.Create(req); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, userID)
	return nil
}
