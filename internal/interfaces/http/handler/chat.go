package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pollwise/backend/internal/application/chat"
	"github.com/pollwise/backend/internal/interfaces/http/middleware"
)

// ChatHandler relays chat messages to the configured upstream. Any
// upstream failure degrades to the fallback response, never an error.
type ChatHandler struct {
	BaseHandler
	chatService *chat.Service
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *chat.Service) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// RegisterRoutes registers all chat routes
func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.Send)
}

// Send relays a chat message
func (h *ChatHandler) Send(c *gin.Context) {
	var req chat.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}

	h.Success(c, h.chatService.Send(c.Request.Context(), req))
}
