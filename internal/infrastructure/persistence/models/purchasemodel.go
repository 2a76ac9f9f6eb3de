package models

import (
	"time"

	"github.com/atelier-edu/atelier/internal/shared/constants"
)

// PurchaseModel represents the database persistence model for purchases.
// Rows are written by the external payment flow; this core only reads them.
type PurchaseModel struct {
	ID          uint   `gorm:"primarykey"`
	PrincipalID uint   `gorm:"not null;index:idx_purchase_lookup,priority:1"`
	ContentType string `gorm:"not null;size:30;index:idx_purchase_lookup,priority:2"`
	ContentID   uint   `gorm:"not null;index:idx_purchase_lookup,priority:3"`
	Status      string `gorm:"not null;size:20;index:idx_purchase_status"`
	ExpiresAt   *time.Time
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM
func (PurchaseModel) TableName() string {
	return constants.TablePurchases
}
