package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/atelier-edu/atelier/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for
// subscriptions. BenefitSnapshot freezes the plan's benefit map at
// subscription time; NULL marks legacy rows that fall back to the live plan.
type SubscriptionModel struct {
	ID              uint       `gorm:"primarykey"`
	SID             string     `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: sub_xxx"`
	PrincipalID     uint       `gorm:"not null;index:idx_principal_subscription"`
	PlanID          uint       `gorm:"not null;index:idx_plan_subscription"`
	Status          string     `gorm:"not null;size:20;index:idx_status"`
	EndDate         *time.Time `gorm:"index:idx_end_date"`
	BenefitSnapshot datatypes.JSON
	Metadata        datatypes.JSON
	Version         int `gorm:"not null;default:1"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

// BeforeCreate hook for GORM
func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
