package repository

import (
	"go-retail-sales/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(store *model.Store) error
	FindByUser(userID uuid.UUID) ([]model.Store, error)
	FindByID(userID, id uuid.UUID) (*model.Store, error)
}

type storeRepo struct {
	db *gorm.DB
}

func NewStoreRepo(db *gorm.DB) StoreRepository {
	return &storeRepo{db}
}

func (r *storeRepo) Create(store *model.Store) error {
	return r.db.Create(store).Error
}

func (r *storeRepo) FindByUser(userID uuid.UUID) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.Where("user_id = ?", userID).Order("name ASC").Find(&stores).Error
	return stores, err
}

func (r *storeRepo) FindByID(userID, id uuid.UUID) (*model.Store, error) {
	var store model.Store
	if err := r.db.First(&store, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &store, nil
}
