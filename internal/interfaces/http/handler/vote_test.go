package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appvoting "github.com/pollwise/backend/internal/application/voting"
	"github.com/pollwise/backend/internal/domain/voting"
	"github.com/pollwise/backend/internal/interfaces/http/dto"
	"github.com/pollwise/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newVoteTestRouter(pollRepo *MockPollRepository, voteRepo *MockVoteRepository) *gin.Engine {
	svc := appvoting.NewVoteService(pollRepo, voteRepo, appvoting.VoteServiceConfig{})
	h := NewVoteHandler(svc)

	router := gin.New()
	router.Use(middleware.VoterSession())
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func castVoteRequest(t *testing.T, pollID, optionID uuid.UUID, sessionToken string) *http.Request {
	t.Helper()

	body, err := json.Marshal(map[string]string{"option_id": optionID.String()})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/polls/%s/votes", pollID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.Header.Set(middleware.VoterSessionHeader, sessionToken)
	}
	return req
}

func TestVoteHandler_Cast(t *testing.T) {
	t.Run("anonymous session casts a vote", func(t *testing.T) {
		pollRepo := new(MockPollRepository)
		voteRepo := new(MockVoteRepository)
		router := newVoteTestRouter(pollRepo, voteRepo)

		poll := newTestPoll("Apple", "Banana")
		pollRepo.On("FindByID", mock.Anything, poll.ID).Return(poll, nil)
		voteRepo.On("HasVoted", mock.Anything, poll.ID, mock.Anything).Return(false, nil)
		voteRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, castVoteRequest(t, poll.ID, poll.Options[0].ID, "abcdef0123456789abcdef0123456789"))

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "session", data["voter_kind"])
		assert.Equal(t, poll.Options[0].ID.String(), data["option_id"])

		voteRepo.AssertExpectations(t)
	})

	t.Run("fresh session token is issued when none presented", func(t *testing.T) {
		pollRepo := new(MockPollRepository)
		voteRepo := new(MockVoteRepository)
		router := newVoteTestRouter(pollRepo, voteRepo)

		poll := newTestPoll("Apple", "Banana")
		pollRepo.On("FindByID", mock.Anything, poll.ID).Return(poll, nil)
		voteRepo.On("HasVoted", mock.Anything, poll.ID, mock.Anything).Return(false, nil)
		voteRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, castVoteRequest(t, poll.ID, poll.Options[1].ID, ""))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotEmpty(t, w.Header().Get(middleware.VoterSessionHeader))
	})

	t.Run("second vote from same session is rejected", func(t *testing.T) {
		pollRepo := new(MockPollRepository)
		voteRepo := new(MockVoteRepository)
		router := newVoteTestRouter(pollRepo, voteRepo)

		poll := newTestPoll("Apple", "Banana")
		pollRepo.On("FindByID", mock.Anything, poll.ID).Return(poll, nil)
		voteRepo.On("HasVoted", mock.Anything, poll.ID, mock.Anything).Return(true, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, castVoteRequest(t, poll.ID, poll.Options[0].ID, "abcdef0123456789abcdef0123456789"))

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeAlreadyVoted, resp.Error.Code)

		voteRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("constraint rejection surfaces as conflict", func(t *testing.T) {
		pollRepo := new(MockPollRepository)
		voteRepo := new(MockVoteRepository)
		router := newVoteTestRouter(pollRepo, voteRepo)

		poll := newTestPoll("Apple", "Banana")
		pollRepo.On("FindByID", mock.Anything, poll.ID).Return(poll, nil)
		voteRepo.On("HasVoted", mock.Anything, poll.ID, mock.Anything).Return(false, nil)
		voteRepo.On("Insert", mock.Anything, mock.Anything).Return(voting.ErrAlreadyVoted)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, castVoteRequest(t, poll.ID, poll.Options[0].ID, "abcdef0123456789abcdef0123456789"))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown poll returns not found", func(t *testing.T) {
		pollRepo := new(MockPollRepository)
		voteRepo := new(MockVoteRepository)
		router := newVoteTestRouter(pollRepo, voteRepo)

		pollID := uuid.New()
		pollRepo.On("FindByID", mock.Anything, pollID).Return(nil, voting.ErrPollNotFound)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, castVoteRequest(t, pollID, uuid.New(), ""))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("option from another poll is rejected", func(t *testing.T) {
		pollRepo := new(MockPollRepository)
		voteRepo := new(MockVoteRepository)
		router := newVoteTestRouter(pollRepo, voteRepo)

		poll := newTestPoll("Apple", "Banana")
		pollRepo.On("FindByID", mock.Anything, poll.ID).Return(poll, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, castVoteRequest(t, poll.ID, uuid.New(), ""))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeOptionNotInPoll, resp.Error.Code)
	})

	t.Run("malformed poll ID returns bad request", func(t *testing.T) {
		router := newVoteTestRouter(new(MockPollRepository), new(MockVoteRepository))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/polls/not-a-uuid/votes",
			bytes.NewReader([]byte(`{"option_id":"`+uuid.NewString()+`"}`)))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing option ID returns bad request", func(t *testing.T) {
		router := newVoteTestRouter(new(MockPollRepository), new(MockVoteRepository))

		req := httptest.NewRequest(http.MethodPost,
			fmt.Sprintf("/api/v1/polls/%s/votes", uuid.New()), bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVoteHandler_Status(t *testing.T) {
	t.Run("reports voted option", func(t *testing.T) {
		pollRepo := new(MockPollRepository)
		voteRepo := new(MockVoteRepository)
		router := newVoteTestRouter(pollRepo, voteRepo)

		poll := newTestPoll("Apple", "Banana")
		token := "abcdef0123456789abcdef0123456789"
		sessionIdentity, err := voting.SessionIdentity(token)
		require.NoError(t, err)

		vote, err := voting.NewVote(poll.ID, poll.Options[1].ID, sessionIdentity)
		require.NoError(t, err)

		pollRepo.On("FindByID", mock.Anything, poll.ID).Return(poll, nil)
		voteRepo.On("FindByVoter", mock.Anything, sessionIdentity.VoterKey()).Return([]voting.Vote{*vote}, nil)

		req := httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/api/v1/polls/%s/votes/me", poll.ID), nil)
		req.Header.Set(middleware.VoterSessionHeader, token)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, true, data["has_voted"])
		assert.Equal(t, poll.Options[1].ID.String(), data["option_id"])
	})
}
