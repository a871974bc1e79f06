package model

import "github.com/google/uuid"

type Store struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name     string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category string    `gorm:"type:varchar(100)" json:"category"`
	Address  string    `gorm:"type:varchar(255)" json:"address"`
	City     string    `gorm:"type:varchar(100)" json:"city"`
}
