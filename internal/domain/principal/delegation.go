package principal

import (
	"fmt"
	"time"
)

// DelegationSource records how a delegation edge was established.
type DelegationSource string

const (
	// DelegationSourceAssignment is an explicit student-to-teacher assignment
	DelegationSourceAssignment DelegationSource = "assignment"
	// DelegationSourceGroup is membership in a group run by the delegate
	DelegationSourceGroup DelegationSource = "group"
)

// IsValid checks if the delegation source is valid
func (s DelegationSource) IsValid() bool {
	switch s {
	case DelegationSourceAssignment, DelegationSourceGroup:
		return true
	default:
		return false
	}
}

// String returns the string representation of the delegation source
func (s DelegationSource) String() string {
	return string(s)
}

// Delegation is a directed edge from a dependent principal to a delegate
// principal. A dependent may have several delegates; any delegate's claims
// can serve the dependent.
type Delegation struct {
	id          uint
	dependentID uint
	delegateID  uint
	source      DelegationSource
	grantedAt   time.Time
}

// ReconstructDelegation reconstructs a delegation edge from persistence
func ReconstructDelegation(
	id uint,
	dependentID, delegateID uint,
	source DelegationSource,
	grantedAt time.Time,
) (*Delegation, error) {
	if id == 0 {
		return nil, fmt.Errorf("delegation ID cannot be zero")
	}
	if dependentID == 0 {
		return nil, fmt.Errorf("dependent principal ID is required")
	}
	if delegateID == 0 {
		return nil, fmt.Errorf("delegate principal ID is required")
	}
	if dependentID == delegateID {
		return nil, fmt.Errorf("principal cannot delegate to itself")
	}
	if !source.IsValid() {
		return nil, fmt.Errorf("invalid delegation source: %s", source)
	}

	return &Delegation{
		id:          id,
		dependentID: dependentID,
		delegateID:  delegateID,
		source:      source,
		grantedAt:   grantedAt,
	}, nil
}

// ID returns the delegation ID
func (d *Delegation) ID() uint {
	return d.id
}

// DependentID returns the dependent principal
func (d *Delegation) DependentID() uint {
	return d.dependentID
}

// DelegateID returns the delegate principal
func (d *Delegation) DelegateID() uint {
	return d.delegateID
}

// Source returns how the edge was established
func (d *Delegation) Source() DelegationSource {
	return d.source
}

// GrantedAt returns when the edge was established
func (d *Delegation) GrantedAt() time.Time {
	return d.grantedAt
}
