package voting

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pollwise/backend/internal/domain/shared"
	"github.com/pollwise/backend/internal/domain/voting"
)

// PollServiceConfig holds configuration for the poll service
type PollServiceConfig struct {
	// UploadURLExpiry is the validity window for attachment upload URLs
	UploadURLExpiry time.Duration
	// DownloadURLExpiry is the validity window for attachment download URLs
	DownloadURLExpiry time.Duration
}

// DefaultPollServiceConfig returns the default configuration
func DefaultPollServiceConfig() PollServiceConfig {
	return PollServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: time.Hour,
	}
}

// PollService handles poll lifecycle operations
type PollService struct {
	pollRepo voting.PollRepository
	voteRepo voting.VoteRepository
	storage  ObjectStorage
	config   PollServiceConfig
}

// NewPollService creates a new PollService
func NewPollService(
	pollRepo voting.PollRepository,
	voteRepo voting.VoteRepository,
	storage ObjectStorage,
) *PollService {
	return &PollService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
		storage:  storage,
		config:   DefaultPollServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *PollService) SetConfig(config PollServiceConfig) {
	s.config = config
}

// Create creates a new poll with its full option set
func (s *PollService) Create(ctx context.Context, req CreatePollRequest) (*PollResponse, error) {
	poll, err := voting.NewPoll(req.Title, req.Category, req.EndsAt)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := poll.SetDescription(req.Description); err != nil {
			return nil, err
		}
	}

	for _, opt := range req.Options {
		if err := poll.AddOption(opt.Text, opt.ImageURL); err != nil {
			return nil, err
		}
	}

	if req.CreatedBy != nil {
		poll.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.pollRepo.Save(ctx, poll); err != nil {
		return nil, err
	}

	return ToPollResponse(poll), nil
}

// GetByID retrieves a poll by ID
func (s *PollService) GetByID(ctx context.Context, id uuid.UUID) (*PollResponse, error) {
	poll, err := s.pollRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToPollResponse(poll), nil
}

// List retrieves polls matching the filter together with the total count
func (s *PollService) List(ctx context.Context, filter PollListFilter) ([]PollResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	polls, err := s.pollRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.pollRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PollResponse, len(polls))
	for i := range polls {
		responses[i] = *ToPollResponse(&polls[i])
	}

	return responses, total, nil
}

// ListByCreator retrieves polls created by the given user
func (s *PollService) ListByCreator(ctx context.Context, creatorID uuid.UUID, filter PollListFilter) ([]PollResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	polls, err := s.pollRepo.FindByCreator(ctx, creatorID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.pollRepo.CountByCreator(ctx, creatorID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PollResponse, len(polls))
	for i := range polls {
		responses[i] = *ToPollResponse(&polls[i])
	}

	return responses, total, nil
}

// Update updates a poll's metadata. The option set is immutable once any
// vote has been recorded; edits would silently reinterpret cast ballots.
func (s *PollService) Update(ctx context.Context, id uuid.UUID, req UpdatePollRequest) (*PollResponse, error) {
	poll, err := s.pollRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := poll.Update(req.Title, req.Category, req.Description, req.EndsAt); err != nil {
		return nil, err
	}

	if err := s.pollRepo.Save(ctx, poll); err != nil {
		return nil, err
	}

	return ToPollResponse(poll), nil
}

// AddOption appends an option to a poll that has not recorded any votes yet
func (s *PollService) AddOption(ctx context.Context, id uuid.UUID, req CreatePollOptionRequest) (*PollResponse, error) {
	poll, err := s.pollRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	voteCount, err := s.voteRepo.CountByPoll(ctx, id)
	if err != nil {
		return nil, err
	}
	if voteCount > 0 {
		return nil, shared.NewDomainError("POLL_HAS_VOTES", "Options cannot change after votes have been recorded")
	}

	if err := poll.AddOption(req.Text, req.ImageURL); err != nil {
		return nil, err
	}

	if err := s.pollRepo.Save(ctx, poll); err != nil {
		return nil, err
	}

	return ToPollResponse(poll), nil
}

// Delete deletes a poll; its options and votes cascade
func (s *PollService) Delete(ctx context.Context, id uuid.UUID) error {
	poll, err := s.pollRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if poll.AttachmentURL != "" && s.storage != nil {
		// Attachment cleanup is best effort; the poll row is the source of truth
		_ = s.storage.DeleteObject(ctx, storageKeyFromURL(poll.AttachmentURL))
	}

	return s.pollRepo.Delete(ctx, id)
}

// InitiateAttachmentUpload validates the content type and returns a
// presigned upload URL for a poll attachment
func (s *PollService) InitiateAttachmentUpload(
	ctx context.Context,
	pollID uuid.UUID,
	req InitiateAttachmentUploadRequest,
) (*InitiateAttachmentUploadResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_DISABLED", "Attachment storage is not configured")
	}

	if !AllowedAttachmentContentTypes[strings.ToLower(req.ContentType)] {
		return nil, shared.NewDomainError("UNSUPPORTED_CONTENT_TYPE", fmt.Sprintf("Content type %q is not allowed", req.ContentType))
	}

	if _, err := s.pollRepo.FindByID(ctx, pollID); err != nil {
		return nil, err
	}

	ext := filepath.Ext(req.FileName)
	storageKey := fmt.Sprintf("polls/%s/attachments/%s%s", pollID, uuid.New(), ext)

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &InitiateAttachmentUploadResponse{
		UploadURL:  uploadURL,
		StorageKey: storageKey,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmAttachment verifies the upload landed and records the attachment
// on the poll
func (s *PollService) ConfirmAttachment(ctx context.Context, pollID uuid.UUID, req ConfirmAttachmentRequest) (*PollResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_DISABLED", "Attachment storage is not configured")
	}

	poll, err := s.pollRepo.FindByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, req.StorageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("ATTACHMENT_NOT_UPLOADED", "No object found at the given storage key")
	}

	if err := poll.SetAttachment(req.StorageKey, req.Kind); err != nil {
		return nil, err
	}

	if err := s.pollRepo.Save(ctx, poll); err != nil {
		return nil, err
	}

	return ToPollResponse(poll), nil
}

// AttachmentDownloadURL returns a presigned download URL for a poll's attachment
func (s *PollService) AttachmentDownloadURL(ctx context.Context, pollID uuid.UUID) (*AttachmentDownloadResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_DISABLED", "Attachment storage is not configured")
	}

	poll, err := s.pollRepo.FindByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if poll.AttachmentURL == "" {
		return nil, shared.NewDomainError("NO_ATTACHMENT", "Poll has no attachment")
	}

	downloadURL, expiresAt, err := s.storage.GenerateDownloadURL(ctx, poll.AttachmentURL, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &AttachmentDownloadResponse{
		DownloadURL: downloadURL,
		ExpiresAt:   expiresAt,
	}, nil
}

// storageKeyFromURL extracts the storage key from a stored attachment
// reference. Attachment references are stored as bare keys.
func storageKeyFromURL(ref string) string {
	return strings.TrimPrefix(ref, "/")
}

// toDomainFilter maps the API list filter to the repository filter
func toDomainFilter(filter PollListFilter) shared.Filter {
	domainFilter := shared.Filter{
		Filters: make(map[string]interface{}),
	}

	if filter.Search != "" {
		domainFilter.Search = filter.Search
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	} else {
		domainFilter.Page = 1
		domainFilter.PageSize = 20
	}

	if filter.SortBy != "" {
		domainFilter.OrderBy = filter.SortBy
		if filter.SortDesc {
			domainFilter.OrderDir = "desc"
		} else {
			domainFilter.OrderDir = "asc"
		}
	}

	return domainFilter
}
