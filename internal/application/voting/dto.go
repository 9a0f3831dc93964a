package voting

import (
	"time"

	"github.com/google/uuid"
	"github.com/pollwise/backend/internal/domain/voting"
)

// CreatePollOptionRequest is a single option in a poll creation request
type CreatePollOptionRequest struct {
	Text     string `json:"text" binding:"required,min=1,max=200"`
	ImageURL string `json:"image_url" binding:"omitempty,max=500"`
}

// CreatePollRequest represents a request to create a new poll
type CreatePollRequest struct {
	Title       string                    `json:"title" binding:"required,min=1,max=200"`
	Category    string                    `json:"category" binding:"required,min=1,max=50"`
	Description string                    `json:"description" binding:"max=2000"`
	EndsAt      time.Time                 `json:"ends_at" binding:"required,future"`
	Options     []CreatePollOptionRequest `json:"options" binding:"required,min=2,max=20,dive"`

	// CreatedBy is resolved from the JWT context by the handler
	CreatedBy *uuid.UUID `json:"-"`
}

// UpdatePollRequest represents a request to update a poll's metadata.
// Options are fixed once the poll has recorded votes.
type UpdatePollRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Category    string    `json:"category" binding:"required,min=1,max=50"`
	Description string    `json:"description" binding:"max=2000"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
}

// PollOptionResponse represents a poll option in API responses
type PollOptionResponse struct {
	ID       uuid.UUID `json:"id"`
	Text     string    `json:"text"`
	ImageURL string    `json:"image_url,omitempty"`
	Position int       `json:"position"`
}

// PollResponse represents a poll in API responses
type PollResponse struct {
	ID             uuid.UUID            `json:"id"`
	Title          string               `json:"title"`
	Category       string               `json:"category"`
	Description    string               `json:"description"`
	Status         string               `json:"status"`
	EndsAt         time.Time            `json:"ends_at"`
	AttachmentURL  string               `json:"attachment_url,omitempty"`
	AttachmentKind string               `json:"attachment_kind,omitempty"`
	Options        []PollOptionResponse `json:"options"`
	CreatedBy      *uuid.UUID           `json:"created_by,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	Version        int                  `json:"version"`
}

// PollListFilter holds filter options for listing polls
type PollListFilter struct {
	Category string `form:"category"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,max=100"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=created_at ends_at title category"`
	SortDesc bool   `form:"sort_desc"`
}

// CastVoteRequest represents a request to record a vote
type CastVoteRequest struct {
	OptionID uuid.UUID `json:"option_id" binding:"required"`
}

// VoteResponse represents a recorded vote in API responses.
// The voter identity is never echoed beyond its kind.
type VoteResponse struct {
	PollID    uuid.UUID `json:"poll_id"`
	OptionID  uuid.UUID `json:"option_id"`
	VoterKind string    `json:"voter_kind"`
	CreatedAt time.Time `json:"created_at"`
}

// VoteStatusResponse reports whether the requesting identity has voted
type VoteStatusResponse struct {
	PollID   uuid.UUID  `json:"poll_id"`
	HasVoted bool       `json:"has_voted"`
	OptionID *uuid.UUID `json:"option_id,omitempty"`
}

// OptionResultResponse represents one option's tally in poll results
type OptionResultResponse struct {
	OptionID   uuid.UUID `json:"option_id"`
	Text       string    `json:"text"`
	ImageURL   string    `json:"image_url,omitempty"`
	Position   int       `json:"position"`
	Count      int       `json:"count"`
	Percentage int       `json:"percentage"`
}

// PollResultsResponse represents aggregated results of a poll
type PollResultsResponse struct {
	PollID     uuid.UUID              `json:"poll_id"`
	Title      string                 `json:"title"`
	Status     string                 `json:"status"`
	TotalVotes int                    `json:"total_votes"`
	Results    []OptionResultResponse `json:"results"`
}

// InitiateAttachmentUploadRequest requests a presigned upload URL for a
// poll attachment
type InitiateAttachmentUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// InitiateAttachmentUploadResponse carries the presigned upload URL
type InitiateAttachmentUploadResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ConfirmAttachmentRequest confirms a completed attachment upload
type ConfirmAttachmentRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
	Kind       string `json:"kind" binding:"required,min=1,max=50"`
}

// AttachmentDownloadResponse carries a presigned download URL
type AttachmentDownloadResponse struct {
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ToPollResponse maps a domain poll to its API representation
func ToPollResponse(poll *voting.Poll) *PollResponse {
	options := make([]PollOptionResponse, len(poll.Options))
	for i, opt := range poll.Options {
		options[i] = PollOptionResponse{
			ID:       opt.ID,
			Text:     opt.Text,
			ImageURL: opt.ImageURL,
			Position: opt.Position,
		}
	}

	return &PollResponse{
		ID:             poll.ID,
		Title:          poll.Title,
		Category:       poll.Category,
		Description:    poll.Description,
		Status:         string(poll.Status()),
		EndsAt:         poll.EndsAt,
		AttachmentURL:  poll.AttachmentURL,
		AttachmentKind: poll.AttachmentKind,
		Options:        options,
		CreatedBy:      poll.CreatedBy,
		CreatedAt:      poll.CreatedAt,
		UpdatedAt:      poll.UpdatedAt,
		Version:        poll.Version,
	}
}

// ToVoteResponse maps a domain vote to its API representation
func ToVoteResponse(vote *voting.Vote) *VoteResponse {
	return &VoteResponse{
		PollID:    vote.PollID,
		OptionID:  vote.OptionID,
		VoterKind: string(vote.Identity().Kind),
		CreatedAt: vote.CreatedAt,
	}
}

// ToPollResultsResponse maps aggregated results to the API representation
func ToPollResultsResponse(poll *voting.Poll, results []voting.OptionResult) *PollResultsResponse {
	total := 0
	out := make([]OptionResultResponse, len(results))
	for i, r := range results {
		total += r.Count
		out[i] = OptionResultResponse{
			OptionID:   r.Option.ID,
			Text:       r.Option.Text,
			ImageURL:   r.Option.ImageURL,
			Position:   r.Option.Position,
			Count:      r.Count,
			Percentage: r.Percentage,
		}
	}

	return &PollResultsResponse{
		PollID:     poll.ID,
		Title:      poll.Title,
		Status:     string(poll.Status()),
		TotalVotes: total,
		Results:    out,
	}
}
