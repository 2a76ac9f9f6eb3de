package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/atelier-edu/atelier/internal/shared/constants"
)

// PlanModel represents the database persistence model for plans
type PlanModel struct {
	ID        uint           `gorm:"primarykey"`
	SID       string         `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: plan_xxx"`
	Name      string         `gorm:"not null;size:100"`
	Slug      string         `gorm:"uniqueIndex;not null;size:100"`
	Status    string         `gorm:"not null;size:20;default:active"`
	Benefits  datatypes.JSON `gorm:"comment:per content type monthly benefit map"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (PlanModel) TableName() string {
	return constants.TablePlans
}
