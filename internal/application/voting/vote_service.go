package voting

import (
	"context"

	"github.com/google/uuid"
	"github.com/pollwise/backend/internal/domain/voting"
)

// VoteServiceConfig holds voting policy settings
type VoteServiceConfig struct {
	// AllowVoteAfterClose permits votes on polls whose end timestamp has
	// passed. Off by default.
	AllowVoteAfterClose bool
}

// VoteService records votes and answers vote-status queries.
//
// The fast-path HasVoted check gives a friendly error for the common
// double-submit, but the unique constraint behind VoteRepository.Insert is
// what actually enforces one vote per identity per poll.
type VoteService struct {
	pollRepo voting.PollRepository
	voteRepo voting.VoteRepository
	config   VoteServiceConfig
}

// NewVoteService creates a new VoteService
func NewVoteService(
	pollRepo voting.PollRepository,
	voteRepo voting.VoteRepository,
	config VoteServiceConfig,
) *VoteService {
	return &VoteService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
		config:   config,
	}
}

// Cast records a vote for the given identity on the given poll
func (s *VoteService) Cast(ctx context.Context, pollID uuid.UUID, identity voting.Identity, req CastVoteRequest) (*VoteResponse, error) {
	poll, err := s.pollRepo.FindByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if !s.config.AllowVoteAfterClose && !poll.IsActive() {
		return nil, voting.ErrPollClosed
	}

	if !poll.HasOption(req.OptionID) {
		return nil, voting.ErrOptionNotInPoll
	}

	voted, err := s.voteRepo.HasVoted(ctx, pollID, identity.VoterKey())
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, voting.ErrAlreadyVoted
	}

	vote, err := voting.NewVote(pollID, req.OptionID, identity)
	if err != nil {
		return nil, err
	}

	// Insert surfaces ErrAlreadyVoted when a concurrent submission won
	// the race between the check above and this write
	if err := s.voteRepo.Insert(ctx, vote); err != nil {
		return nil, err
	}

	return ToVoteResponse(vote), nil
}

// Status reports whether the identity has voted on the poll, and for
// which option
func (s *VoteService) Status(ctx context.Context, pollID uuid.UUID, identity voting.Identity) (*VoteStatusResponse, error) {
	if _, err := s.pollRepo.FindByID(ctx, pollID); err != nil {
		return nil, err
	}

	votes, err := s.voteRepo.FindByVoter(ctx, identity.VoterKey())
	if err != nil {
		return nil, err
	}

	for i := range votes {
		if votes[i].PollID == pollID {
			optionID := votes[i].OptionID
			return &VoteStatusResponse{
				PollID:   pollID,
				HasVoted: true,
				OptionID: &optionID,
			}, nil
		}
	}

	return &VoteStatusResponse{PollID: pollID, HasVoted: false}, nil
}

// History returns the identity's votes, newest first
func (s *VoteService) History(ctx context.Context, identity voting.Identity) ([]VoteResponse, error) {
	votes, err := s.voteRepo.FindByVoter(ctx, identity.VoterKey())
	if err != nil {
		return nil, err
	}

	responses := make([]VoteResponse, len(votes))
	for i := range votes {
		responses[i] = *ToVoteResponse(&votes[i])
	}
	return responses, nil
}
