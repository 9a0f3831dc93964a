package shared

import "github.com/google/uuid"

// BaseAggregateRoot provides common fields for aggregate roots. Version
// backs optimistic locking; CreatedBy records the owning user when the
// aggregate has one.
type BaseAggregateRoot struct {
	BaseEntity
	Version   int        `gorm:"not null;default:1"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// IncrementVersion bumps the version on every mutation
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// SetCreatedBy sets the creator user ID
func (a *BaseAggregateRoot) SetCreatedBy(userID uuid.UUID) {
	a.CreatedBy = &userID
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}
