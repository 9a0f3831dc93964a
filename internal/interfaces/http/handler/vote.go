package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pollwise/backend/internal/application/voting"
	"github.com/pollwise/backend/internal/interfaces/http/middleware"
)

// VoteHandler handles vote submission and vote-status HTTP requests.
// Voting is open to anonymous sessions; identity is resolved by the
// VoterSession middleware.
type VoteHandler struct {
	BaseHandler
	voteService *voting.VoteService
}

// NewVoteHandler creates a new vote handler
func NewVoteHandler(voteService *voting.VoteService) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
	}
}

// RegisterRoutes registers all vote routes
func (h *VoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	polls := rg.Group("/polls")
	{
		polls.POST("/:id/votes", h.Cast)
		polls.GET("/:id/votes/me", h.Status)
	}

	rg.GET("/my/votes", h.History)
}

// Cast records a vote for the resolved identity
func (h *VoteHandler) Cast(c *gin.Context) {
	pollID, ok := bindPollID(c)
	if !ok {
		h.BadRequest(c, "Invalid poll ID")
		return
	}

	identity, ok := middleware.GetVoterIdentity(c)
	if !ok {
		h.InternalError(c, "Voter identity could not be resolved")
		return
	}

	var req voting.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}

	vote, err := h.voteService.Cast(c.Request.Context(), pollID, identity, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, vote)
}

// Status reports whether the resolved identity has voted on the poll
func (h *VoteHandler) Status(c *gin.Context) {
	pollID, ok := bindPollID(c)
	if !ok {
		h.BadRequest(c, "Invalid poll ID")
		return
	}

	identity, ok := middleware.GetVoterIdentity(c)
	if !ok {
		h.InternalError(c, "Voter identity could not be resolved")
		return
	}

	status, err := h.voteService.Status(c.Request.Context(), pollID, identity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, status)
}

// History returns the resolved identity's past votes
func (h *VoteHandler) History(c *gin.Context) {
	identity, ok := middleware.GetVoterIdentity(c)
	if !ok {
		h.InternalError(c, "Voter identity could not be resolved")
		return
	}

	votes, err := h.voteService.History(c.Request.Context(), identity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, votes)
}
