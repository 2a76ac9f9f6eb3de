// Package principal provides domain models for authenticated actors and the
// delegation relationships through which one principal inherits access from
// another's subscription claims.
package principal

import (
	"fmt"
	"time"
)

// Role represents the role of a principal
type Role string

const (
	// RoleStudent represents a student principal
	RoleStudent Role = "student"
	// RoleTeacher represents a teacher principal
	RoleTeacher Role = "teacher"
	// RoleAdmin represents an administrative principal
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Principal represents an authenticated actor being checked for access.
type Principal struct {
	id        uint
	sid       string
	role      Role
	teacherID *uint
	birthDate *time.Time
	createdAt time.Time
	updatedAt time.Time
}

// ReconstructPrincipal reconstructs a principal from persistence
func ReconstructPrincipal(
	id uint,
	sid string,
	role Role,
	teacherID *uint,
	birthDate *time.Time,
	createdAt, updatedAt time.Time,
) (*Principal, error) {
	if id == 0 {
		return nil, fmt.Errorf("principal ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid principal role: %s", role)
	}
	if teacherID != nil && *teacherID == id {
		return nil, fmt.Errorf("principal cannot delegate to itself")
	}

	return &Principal{
		id:        id,
		sid:       sid,
		role:      role,
		teacherID: teacherID,
		birthDate: birthDate,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// ID returns the principal ID
func (p *Principal) ID() uint {
	return p.id
}

// SID returns the Stripe-style public identifier
func (p *Principal) SID() string {
	return p.sid
}

// Role returns the principal role
func (p *Principal) Role() Role {
	return p.role
}

// TeacherID returns the directly linked teacher, nil when unlinked
func (p *Principal) TeacherID() *uint {
	return p.teacherID
}

// BirthDate returns the principal birth date, nil when unknown
func (p *Principal) BirthDate() *time.Time {
	return p.birthDate
}

// CreatedAt returns when the principal was created
func (p *Principal) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns when the principal was last updated
func (p *Principal) UpdatedAt() time.Time {
	return p.updatedAt
}

// AgeAt computes the principal's age in whole years at the given instant.
// Returns (0, false) when the birth date is unknown.
func (p *Principal) AgeAt(t time.Time) (int, bool) {
	if p.birthDate == nil {
		return 0, false
	}
	age := t.Year() - p.birthDate.Year()
	anniversary := time.Date(t.Year(), p.birthDate.Month(), p.birthDate.Day(), 0, 0, 0, 0, time.UTC)
	if t.Before(anniversary) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age, true
}
