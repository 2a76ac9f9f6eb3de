package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/atelier-edu/atelier/internal/shared/constants"
)

// ProductModel represents the database persistence model for catalog items
type ProductModel struct {
	ID          uint   `gorm:"primarykey"`
	SID         string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: prod_xxx"`
	ContentType string `gorm:"not null;size:30;index:idx_content,priority:1"`
	Title       string `gorm:"not null;size:255"`
	OwnerID     uint   `gorm:"not null;index:idx_owner"`
	Published   bool   `gorm:"not null;default:false;index:idx_published"`
	MinimumAge  int    `gorm:"not null;default:0"`
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (ProductModel) TableName() string {
	return constants.TableProducts
}
