package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pollwise/backend/internal/domain/identity"
	"github.com/pollwise/backend/internal/domain/shared"
	"github.com/pollwise/backend/internal/domain/voting"
	"github.com/pollwise/backend/internal/infrastructure/auth"
	"github.com/pollwise/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// MockPollRepository is a mock implementation of voting.PollRepository
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

// MockVoteRepository is a mock implementation of voting.VoteRepository
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

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// newTestPoll builds an active poll with the given option texts
func newTestPoll(options ...string) *voting.Poll {
	poll, err := voting.NewPoll("Favorite fruit?", "food", time.Now().Add(24*time.Hour))
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

// authAs simulates an authenticated request without a real token
func authAs(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &auth.Claims{
			UserID: userID.String(),
			Email:  "tester@example.com",
			Role:   role,
		}
		c.Set(middleware.JWTClaimsKey, claims)
		c.Set(middleware.JWTUserIDKey, claims.UserID)
		c.Set(middleware.JWTEmailKey, claims.Email)
		c.Set(middleware.JWTRoleKey, claims.Role)
		c.Next()
	}
}
