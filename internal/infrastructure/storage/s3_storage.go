// Package storage provides object storage implementations for poll attachments.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	votingapp "github.com/pollwise/backend/internal/application/voting"
	infraconfig "github.com/pollwise/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var _ votingapp.ObjectStorage = (*S3ObjectStorage)(nil)

// S3ObjectStorage holds poll attachments on any S3-compatible backend
// (AWS S3, MinIO). Clients upload and download through presigned URLs;
// attachment bytes never pass through this service.
type S3ObjectStorage struct {
	client            *s3.Client
	presignClient     *s3.PresignClient
	bucket            string
	presignExpiration time.Duration
	logger            *zap.Logger
}

// NewS3ObjectStorage creates an attachment store from configuration
func NewS3ObjectStorage(cfg *infraconfig.StorageConfig, logger *zap.Logger) (*S3ObjectStorage, error) {
	switch {
	case cfg == nil:
		return nil, errors.New("storage config is nil")
	case cfg.Bucket == "":
		return nil, errors.New("storage bucket is not set")
	case cfg.AccessKey == "" || cfg.SecretKey == "":
		return nil, errors.New("storage credentials are not set")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	endpoint, err := normalizeEndpoint(cfg)
	if err != nil {
		return nil, err
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		o.BaseEndpoint = aws.String(endpoint)
	})

	presignExpiration := cfg.PresignExpiration
	if presignExpiration == 0 {
		presignExpiration = 15 * time.Minute
	}

	return &S3ObjectStorage{
		client:            client,
		presignClient:     s3.NewPresignClient(client),
		bucket:            cfg.Bucket,
		presignExpiration: presignExpiration,
		logger:            logger,
	}, nil
}

// normalizeEndpoint ensures the configured endpoint carries a scheme and
// parses as a URL. An empty endpoint targets a local MinIO.
func normalizeEndpoint(cfg *infraconfig.StorageConfig) (string, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "http://localhost:9000"
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	if _, err := url.Parse(endpoint); err != nil {
		return "", fmt.Errorf("invalid storage endpoint: %w", err)
	}
	return endpoint, nil
}

// EnsureBucket creates the attachment bucket if it does not exist.
// Called during startup.
func (s *S3ObjectStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("head bucket: %w", err)
	}

	s.logger.Info("creating attachment bucket", zap.String("bucket", s.bucket))
	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	}); err != nil {
		// A concurrent startup may have created it first
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

// GenerateUploadURL produces a presigned PUT URL for a poll attachment
func (s *S3ObjectStorage) GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("object key is empty")
	}
	if expiresIn <= 0 {
		expiresIn = s.presignExpiration
	}

	req, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("presign upload: %w", err)
	}

	return req.URL, time.Now().Add(expiresIn), nil
}

// GenerateDownloadURL produces a presigned GET URL for a poll attachment
func (s *S3ObjectStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("object key is empty")
	}
	if expiresIn <= 0 {
		expiresIn = s.presignExpiration
	}

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("presign download: %w", err)
	}

	return req.URL, time.Now().Add(expiresIn), nil
}

// DeleteObject removes an attachment from storage
func (s *S3ObjectStorage) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("object key is empty")
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// ObjectExists reports whether an attachment has actually been uploaded.
// Used to confirm an upload before the attachment is linked to a poll.
func (s *S3ObjectStorage) ObjectExists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("object key is empty")
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
			return false, nil
		}
		// Some S3-compatible services surface the code as a plain string
		if strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "NoSuchKey") {
			return false, nil
		}
		return false, fmt.Errorf("head object: %w", err)
	}
	return true, nil
}
