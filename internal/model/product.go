package model

import "github.com/google/uuid"

// Product is reference data offered by the add-sale form. Stock is decremented by every sale.
type Product struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Manufacturer string    `gorm:"type:varchar(255)" json:"manufacturer"`
	Stock        int       `gorm:"default:0" json:"stock" validate:"gte=0"`
	Description  string    `gorm:"type:text" json:"description"`
}
