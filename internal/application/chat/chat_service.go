package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// maxUpstreamResponseSize limits the response body size to prevent memory exhaustion
const maxUpstreamResponseSize = 1 * 1024 * 1024 // 1MB max response

// FallbackMessage is returned for any upstream or transport failure.
// The user-visible message is always non-null; technical detail is
// attached only in development mode.
const FallbackMessage = "Sorry, I am unable to answer right now. Please try again later."

// ChatRequest carries a single user message
type ChatRequest struct {
	Message string `json:"message" binding:"required,min=1,max=4000"`
}

// ChatResponse carries the reply or the fallback
type ChatResponse struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
	Detail   string `json:"detail,omitempty"`
}

// upstreamRequest is the payload sent to the completion endpoint
type upstreamRequest struct {
	Message string `json:"message"`
}

// upstreamResponse is the payload expected from the completion endpoint
type upstreamResponse struct {
	Reply string `json:"reply"`
}

// ServiceConfig contains configuration for the chat relay
type ServiceConfig struct {
	UpstreamURL string
	APIKey      string
	Timeout     time.Duration
	Development bool
}

// Service relays chat messages to an upstream completion endpoint
type Service struct {
	config     ServiceConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewService creates a new chat relay service
func NewService(config ServiceConfig, logger *zap.Logger) *Service {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Service{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Send relays the message upstream. A failed relay never surfaces as an
// error to the caller; it degrades to the fallback response.
func (s *Service) Send(ctx context.Context, req ChatRequest) *ChatResponse {
	reply, err := s.relay(ctx, req.Message)
	if err != nil {
		s.logger.Warn("Chat upstream failed", zap.Error(err))
		return s.fallback(err)
	}

	return &ChatResponse{Reply: reply}
}

func (s *Service) relay(ctx context.Context, message string) (string, error) {
	if s.config.UpstreamURL == "" {
		return "", fmt.Errorf("chat upstream is not configured")
	}

	payload, err := json.Marshal(upstreamRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.UpstreamURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat upstream request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamResponseSize))
	if err != nil {
		return "", fmt.Errorf("read chat upstream response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat upstream returned status %d", resp.StatusCode)
	}

	var upstream upstreamResponse
	if err := json.Unmarshal(body, &upstream); err != nil {
		return "", fmt.Errorf("decode chat upstream response: %w", err)
	}
	if upstream.Reply == "" {
		return "", fmt.Errorf("chat upstream returned an empty reply")
	}

	return upstream.Reply, nil
}

func (s *Service) fallback(err error) *ChatResponse {
	resp := &ChatResponse{
		Reply:    FallbackMessage,
		Fallback: true,
	}
	if s.config.Development {
		resp.Detail = err.Error()
	}
	return resp
}
