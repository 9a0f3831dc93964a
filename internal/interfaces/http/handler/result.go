package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pollwise/backend/internal/application/voting"
)

// ResultHandler handles poll result HTTP requests. Results are public.
type ResultHandler struct {
	BaseHandler
	resultService *voting.ResultService
}

// NewResultHandler creates a new result handler
func NewResultHandler(resultService *voting.ResultService) *ResultHandler {
	return &ResultHandler{
		resultService: resultService,
	}
}

// RegisterRoutes registers all result routes
func (h *ResultHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/polls/:id/results", h.Results)
}

// Results returns aggregated counts and percentages for a poll
func (h *ResultHandler) Results(c *gin.Context) {
	pollID, ok := bindPollID(c)
	if !ok {
		h.BadRequest(c, "Invalid poll ID")
		return
	}

	results, err := h.resultService.Results(c.Request.Context(), pollID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}
