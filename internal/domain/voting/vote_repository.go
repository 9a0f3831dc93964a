package voting

import (
	"context"

	"github.com/google/uuid"
)

// VoteRepository defines the interface for vote persistence.
//
// Insert is the correctness boundary for the one-vote-per-identity
// invariant: the check-then-insert sequence in the application layer is
// racy under concurrent double-submission, so implementations must back
// Insert with a unique constraint on (poll_id, voter_key) and surface a
// constraint rejection as ErrAlreadyVoted. HasVoted is a fast-path UX
// check only, never the correctness mechanism.
type VoteRepository interface {
	// Insert persists a new vote; returns ErrAlreadyVoted when the
	// storage-level uniqueness constraint rejects the row
	Insert(ctx context.Context, vote *Vote) error

	// HasVoted reports whether any vote exists for (poll, voterKey)
	HasVoted(ctx context.Context, pollID uuid.UUID, voterKey string) (bool, error)

	// FindByPoll returns every vote recorded for a poll
	FindByPoll(ctx context.Context, pollID uuid.UUID) ([]Vote, error)

	// FindByVoter returns the vote history of an identity, newest first
	FindByVoter(ctx context.Context, voterKey string) ([]Vote, error)

	// CountByPoll counts the votes recorded for a poll
	CountByPoll(ctx context.Context, pollID uuid.UUID) (int64, error)
}
