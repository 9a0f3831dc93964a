package voting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pollwise/backend/internal/domain/shared"
	"github.com/pollwise/backend/internal/domain/voting"
	"github.com/stretchr/testify/mock"
)

// MockPollRepository is a mock implementation of PollRepository
type MockPollRepository struct {
	mock.Mock
}

func (m *MockPollRepository) FindByID(ctx context.Context, id uuid.UUID) (*voting.Poll, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*voting.Poll), args.Error(1)
}

func (m *MockPollRepository) FindAll(ctx context.Context, filter shared.Filter) ([]voting.Poll, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]voting.Poll), args.Error(1)
}

func (m *MockPollRepository) FindByCreator(ctx context.Context, creatorID uuid.UUID, filter shared.Filter) ([]voting.Poll, error) {
	args := m.Called(ctx, creatorID, filter)
	return args.Get(0).([]voting.Poll), args.Error(1)
}

func (m *MockPollRepository) Save(ctx context.Context, poll *voting.Poll) error {
	args := m.Called(ctx, poll)
	return args.Error(0)
}

func (m *MockPollRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPollRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPollRepository) CountByCreator(ctx context.Context, creatorID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, creatorID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockVoteRepository is a mock implementation of VoteRepository
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) Insert(ctx context.Context, vote *voting.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockVoteRepository) HasVoted(ctx context.Context, pollID uuid.UUID, voterKey string) (bool, error) {
	args := m.Called(ctx, pollID, voterKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoteRepository) FindByPoll(ctx context.Context, pollID uuid.UUID) ([]voting.Vote, error) {
	args := m.Called(ctx, pollID)
	return args.Get(0).([]voting.Vote), args.Error(1)
}

func (m *MockVoteRepository) FindByVoter(ctx context.Context, voterKey string) ([]voting.Vote, error) {
	args := m.Called(ctx, voterKey)
	return args.Get(0).([]voting.Vote), args.Error(1)
}

func (m *MockVoteRepository) CountByPoll(ctx context.Context, pollID uuid.UUID) (int64, error) {
	args := m.Called(ctx, pollID)
	return args.Get(0).(int64), args.Error(1)
}

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

// newActivePoll builds a poll with the given option texts that closes in
// one hour
func newActivePoll(options ...string) *voting.Poll {
	poll, err := voting.NewPoll("Best Fruit", "food", time.Now().Add(time.Hour))
	if err != nil {
		panic(err)
	}
	for _, text := range options {
		if err := poll.AddOption(text, ""); err != nil {
			panic(err)
		}
	}
	return poll
}

// newClosedPoll builds a poll whose end timestamp has already passed
func newClosedPoll(options ...string) *voting.Poll {
	poll := newActivePoll(options...)
	poll.EndsAt = time.Now().Add(-time.Hour)
	return poll
}
