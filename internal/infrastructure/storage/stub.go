// Package storage provides object storage implementations for poll attachments.
package storage

import (
	"context"
	"errors"
	"time"

	votingapp "github.com/pollwise/backend/internal/application/voting"
)

// StubObjectStorage is a placeholder implementation of ObjectStorage.
// Use this for development or when storage is disabled in configuration.
type StubObjectStorage struct {
	// BaseURL is the base URL for generated upload/download URLs
	BaseURL string
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
	}
}

// Ensure StubObjectStorage implements ObjectStorage
var _ votingapp.ObjectStorage = (*StubObjectStorage)(nil)

// GenerateUploadURL generates a stub presigned URL for uploading a file
func (s *StubObjectStorage) GenerateUploadURL(
	ctx context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/upload/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)

	return url, expiresAt, nil
}

// GenerateDownloadURL generates a stub presigned URL for downloading a file
func (s *StubObjectStorage) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)

	return url, expiresAt, nil
}

// DeleteObject is a no-op stub that always succeeds
func (s *StubObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	return nil
}

// ObjectExists always returns true in stub mode so the upload
// confirmation flow works during development
func (s *StubObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	return true, nil
}
