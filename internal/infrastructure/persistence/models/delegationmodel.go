package models

import (
	"time"

	"github.com/atelier-edu/atelier/internal/shared/constants"
)

// DelegationModel is an explicit assignment edge from a dependent principal
// to a delegate (e.g. a student assigned to a teacher).
type DelegationModel struct {
	ID          uint `gorm:"primarykey"`
	DependentID uint `gorm:"not null;uniqueIndex:uk_delegation_edge,priority:1;index:idx_dependent"`
	DelegateID  uint `gorm:"not null;uniqueIndex:uk_delegation_edge,priority:2"`
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM
func (DelegationModel) TableName() string {
	return constants.TableDelegations
}

// GroupMemberModel records membership of a principal in a delegate-led
// group; membership encodes a delegation edge to the group's leader.
type GroupMemberModel struct {
	ID          uint `gorm:"primarykey"`
	GroupID     uint `gorm:"not null;uniqueIndex:uk_group_member,priority:1"`
	PrincipalID uint `gorm:"not null;uniqueIndex:uk_group_member,priority:2;index:idx_member"`
	LeaderID    uint `gorm:"not null;index:idx_leader"`
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM
func (GroupMemberModel) TableName() string {
	return constants.TableGroupMembers
}
