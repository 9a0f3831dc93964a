package voting

import (
	"context"

	"github.com/pollwise/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PollRepository defines the interface for poll persistence
type PollRepository interface {
	// FindByID finds a poll by ID with its options loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Poll, error)

	// FindAll finds all polls matching the filter, options loaded
	FindAll(ctx context.Context, filter shared.Filter) ([]Poll, error)

	// FindByCreator finds all polls created by the given user
	FindByCreator(ctx context.Context, creatorID uuid.UUID, filter shared.Filter) ([]Poll, error)

	// Save creates or updates a poll together with its options
	Save(ctx context.Context, poll *Poll) error

	// Delete deletes a poll; its options and votes cascade
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts polls matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByCreator counts polls created by the given user
	CountByCreator(ctx context.Context, creatorID uuid.UUID, filter shared.Filter) (int64, error)
}
