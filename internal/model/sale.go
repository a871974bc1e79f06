package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is one transaction linking a product, a store, the quantity sold and the amount charged
type Sale struct {
	BaseModel
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product         *Product        `json:"product,omitempty"`
	StoreID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"store_id"`
	Store           *Store          `json:"store,omitempty"`
	StockSold       int             `gorm:"not null" json:"stock_sold"`
	SaleDate        string          `gorm:"type:varchar(32);not null" json:"sale_date"` // kept exactly as submitted
	TotalSaleAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_sale_amount"`
}

// SaleInput is the body of POST /api/sales/add. The owner comes from the session, never the body.
type SaleInput struct {
	ProductID       uuid.UUID       `json:"product_id" validate:"uuid_required"`
	StoreID         uuid.UUID       `json:"store_id" validate:"uuid_required"`
	StockSold       int             `json:"stock_sold" validate:"gte=0"`
	SaleDate        string          `json:"sale_date" validate:"required"`
	TotalSaleAmount decimal.Decimal `json:"total_sale_amount"` // non-negative, checked by the service
}

// RefRecord is a server-resolved reference embedded in a SaleRecord
type RefRecord struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// SaleRecord is the read shape of a sale as served to the sales page.
// Product and Store are nil when the reference could not be resolved.
type SaleRecord struct {
	ID              uuid.UUID       `json:"id"`
	Product         *RefRecord      `json:"product,omitempty"`
	Store           *RefRecord      `json:"store,omitempty"`
	StockSold       int             `json:"stock_sold"`
	SaleDate        string          `json:"sale_date"`
	TotalSaleAmount decimal.Decimal `json:"total_sale_amount"`
}

// ProductName returns the resolved product name, or "" when unresolved
func (r SaleRecord) ProductName() string {
	if r.Product == nil {
		return ""
	}
	return r.Product.Name
}

// StoreName returns the resolved store name, or "" when unresolved
func (r SaleRecord) StoreName() string {
	if r.Store == nil {
		return ""
	}
	return r.Store.Name
}

// ToRecord converts a Sale (with Product and Store preloaded) into its read shape
func (s *Sale) ToRecord() SaleRecord {
	record := SaleRecord{
		ID:              s.ID,
		StockSold:       s.StockSold,
		SaleDate:        s.SaleDate,
		TotalSaleAmount: s.TotalSaleAmount,
	}
	if s.Product != nil {
		record.Product = &RefRecord{ID: s.Product.ID, Name: s.Product.Name}
	}
	if s.Store != nil {
		record.Store = &RefRecord{ID: s.Store.ID, Name: s.Store.Name}
	}
	return record
}
