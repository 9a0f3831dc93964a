package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pollwise/backend/internal/domain/voting"
	"gorm.io/gorm"
)

// GormVoteRepository implements VoteRepository using GORM.
//
// The votes table carries a unique index on (poll_id, voter_key); Insert
// maps the resulting duplicate-key rejection to voting.ErrAlreadyVoted so
// concurrent double-submissions lose the race deterministically.
type GormVoteRepository struct {
	db *gorm.DB
}

// NewGormVoteRepository creates a new GormVoteRepository
func NewGormVoteRepository(db *gorm.DB) *GormVoteRepository {
	return &GormVoteRepository{db: db}
}

// Insert persists a new vote. A duplicate (poll_id, voter_key) pair is
// rejected by the unique index and surfaced as ErrAlreadyVoted.
func (r *GormVoteRepository) Insert(ctx context.Context, vote *voting.Vote) error {
	if err := r.db.WithContext(ctx).Create(vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return voting.ErrAlreadyVoted
		}
		return err
	}
	return nil
}

// HasVoted reports whether any vote exists for (poll, voterKey)
func (r *GormVoteRepository) HasVoted(ctx context.Context, pollID uuid.UUID, voterKey string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&voting.Vote{}).
		Where("poll_id = ? AND voter_key = ?", pollID, voterKey).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByPoll returns every vote recorded for a poll
func (r *GormVoteRepository) FindByPoll(ctx context.Context, pollID uuid.UUID) ([]voting.Vote, error) {
	var votes []voting.Vote
	if err := r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Find(&votes).Error; err != nil {
		return nil, err
	}
	return votes, nil
}

// FindByVoter returns the vote history of an identity, newest first
func (r *GormVoteRepository) FindByVoter(ctx context.Context, voterKey string) ([]voting.Vote, error) {
	var votes []voting.Vote
	if err := r.db.WithContext(ctx).
		Where("voter_key = ?", voterKey).
		Order("created_at DESC").
		Find(&votes).Error; err != nil {
		return nil, err
	}
	return votes, nil
}

// CountByPoll counts the votes recorded for a poll
func (r *GormVoteRepository) CountByPoll(ctx context.Context, pollID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&voting.Vote{}).
		Where("poll_id = ?", pollID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormVoteRepository implements VoteRepository
var _ voting.VoteRepository = (*GormVoteRepository)(nil)
