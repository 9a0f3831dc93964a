package voting

import (
	"context"

	"github.com/google/uuid"
	"github.com/pollwise/backend/internal/domain/voting"
)

// ResultService aggregates recorded votes into per-option tallies
type ResultService struct {
	pollRepo voting.PollRepository
	voteRepo voting.VoteRepository
}

// NewResultService creates a new ResultService
func NewResultService(
	pollRepo voting.PollRepository,
	voteRepo voting.VoteRepository,
) *ResultService {
	return &ResultService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
	}
}

// Results computes the current tallies for a poll. Every option appears
// in the output even with zero votes, in its display order.
func (s *ResultService) Results(ctx context.Context, pollID uuid.UUID) (*PollResultsResponse, error) {
	poll, err := s.pollRepo.FindByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	votes, err := s.voteRepo.FindByPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	results := voting.Aggregate(poll.Options, votes)
	return ToPollResultsResponse(poll, results), nil
}
