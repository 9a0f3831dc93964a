package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pollwise/backend/internal/application/voting"
	"github.com/pollwise/backend/internal/interfaces/http/dto"
	"github.com/pollwise/backend/internal/interfaces/http/middleware"
)

// PollHandler handles poll lifecycle HTTP requests. Reads are public;
// writes are admin-gated.
type PollHandler struct {
	BaseHandler
	pollService *voting.PollService
}

// NewPollHandler creates a new poll handler
func NewPollHandler(pollService *voting.PollService) *PollHandler {
	return &PollHandler{
		pollService: pollService,
	}
}

// RegisterRoutes registers all poll routes
func (h *PollHandler) RegisterRoutes(rg *gin.RouterGroup) {
	polls := rg.Group("/polls")
	{
		polls.GET("", h.List)
		polls.GET("/:id", h.Get)
		polls.GET("/:id/attachment", h.AttachmentDownloadURL)
	}

	admin := rg.Group("/polls", middleware.RequireAdmin())
	{
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
		admin.POST("/:id/options", h.AddOption)
		admin.POST("/:id/attachment/initiate", h.InitiateAttachmentUpload)
		admin.POST("/:id/attachment/confirm", h.ConfirmAttachment)
	}

	mine := rg.Group("/my/polls", middleware.RequireAdmin())
	{
		mine.GET("", h.ListMine)
	}
}

func bindPollID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// List returns polls matching the query filter
func (h *PollHandler) List(c *gin.Context) {
	var filter voting.PollListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	polls, total, err := h.pollService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, polls, total, page, pageSize)
}

// Get returns a single poll with its options
func (h *PollHandler) Get(c *gin.Context) {
	id, ok := bindPollID(c)
	if !ok {
		h.BadRequest(c, "Invalid poll ID")
		return
	}

	poll, err := h.pollService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, poll)
}

// ListMine returns polls created by the authenticated admin
func (h *PollHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter voting.PollListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	polls, total, err := h.pollService.ListByCreator(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, polls, total, page, pageSize)
}

// Create creates a new poll with its options
func (h *PollHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req voting.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}
	req.CreatedBy = &userID

	poll, err := h.pollService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, poll)
}

// Update updates a poll's metadata
func (h *PollHandler) Update(c *gin.Context) {
	id, ok := bindPollID(c)
	if !ok {
		h.BadRequest(c, "Invalid poll ID")
		return
	}

	var req voting.UpdatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}

	poll, err := h.pollService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, poll)
}

// Delete deletes a poll
func (h *PollHandler) Delete(c *gin.Context) {
	id, ok := bindPollID(c)
	if !ok {
		h.BadRequest(c, "Invalid poll ID")
		return
	}

	if err := h.pollService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddOption appends an option to a poll without recorded votes
func (h *PollHandler) AddOption(c *gin.Context) {
	id, ok := bindPollID(c)
	if !ok {
		h.BadRequest(c, "Invalid poll ID")
		return
	}

	var req voting.CreatePollOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}

	poll, err := h.pollService.AddOption(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, poll)
}

// InitiateAttachmentUpload returns a presigned upload URL for a poll attachment
func (h *PollHandler) InitiateAttachmentUpload(c *gin.Context) {
	id, ok := bindPollID(c)
	if !ok {
		h.BadRequest(c, "Invalid poll ID")
		return
	}

	var req voting.InitiateAttachmentUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}

	result, err := h.pollService.InitiateAttachmentUpload(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ConfirmAttachment records an uploaded attachment on the poll
func (h *PollHandler) ConfirmAttachment(c *gin.Context) {
	id, ok := bindPollID(c)
	if !ok {
		h.BadRequest(c, "Invalid poll ID")
		return
	}

	var req voting.ConfirmAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}

	poll, err := h.pollService.ConfirmAttachment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, poll)
}

// AttachmentDownloadURL returns a presigned download URL for a poll attachment
func (h *PollHandler) AttachmentDownloadURL(c *gin.Context) {
	id, ok := bindPollID(c)
	if !ok {
		h.BadRequest(c, "Invalid poll ID")
		return
	}

	result, err := h.pollService.AttachmentDownloadURL(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
