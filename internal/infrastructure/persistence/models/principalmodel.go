package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/atelier-edu/atelier/internal/shared/constants"
)

// PrincipalModel represents the database persistence model for principals
// This is the anti-corruption layer between domain and database
type PrincipalModel struct {
	ID        uint   `gorm:"primarykey"`
	SID       string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: usr_xxx"`
	Role      string `gorm:"not null;size:20;index:idx_role"`
	TeacherID *uint  `gorm:"index:idx_teacher"`
	BirthDate *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (PrincipalModel) TableName() string {
	return constants.TablePrincipals
}
