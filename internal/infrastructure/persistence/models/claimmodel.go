package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/atelier-edu/atelier/internal/shared/constants"
)

// ClaimModel represents the database persistence model for claims.
// The composite unique index on (subscription_id, content_type, content_id)
// is the race arbiter for concurrent claim creation: exactly one insert
// wins and the losers surface a duplicate-key error.
type ClaimModel struct {
	ID             uint   `gorm:"primarykey"`
	SID            string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: clm_xxx"`
	SubscriptionID uint   `gorm:"not null;uniqueIndex:uk_claims_subscription_content,priority:1"`
	PrincipalID    uint   `gorm:"not null;index:idx_claim_principal"`
	ContentType    string `gorm:"not null;size:30;uniqueIndex:uk_claims_subscription_content,priority:2"`
	ContentID      uint   `gorm:"not null;uniqueIndex:uk_claims_subscription_content,priority:3"`
	Period         string `gorm:"not null;size:7;index:idx_claim_period;comment:calendar month YYYY-MM"`
	Status         string `gorm:"not null;size:20;index:idx_claim_status"`
	ParentClaimID  *uint  `gorm:"index:idx_claim_parent"`
	Usage          datatypes.JSON
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (ClaimModel) TableName() string {
	return constants.TableClaims
}
