// Package objstore adapts an S3-compatible object store (AWS S3, MinIO,
// LocalStack) for the upload pipeline. It owns storage-key generation,
// object upload, and presigned retrieval URLs; the objects themselves are
// owned by the external store.
package objstore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	appcfg "github.com/MKhiriev/go-user-hub/internal/config"
	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectStore is the contract the upload service consumes.
//
//go:generate mockgen -source=objstore.go -destination=../mock/objstore.go -package=mock
type ObjectStore interface {
	// EnsureBucket creates the configured bucket when it does not exist yet.
	EnsureBucket(ctx context.Context) error

	// PutObject streams body to the store under the given key.
	PutObject(ctx context.Context, key string, body io.Reader, contentType string, size int64) error

	// PresignGetURL returns a time-limited URL granting read access to key.
	PresignGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// GenerateKey produces a fresh storage key preserving the extension of
	// the original filename.
	GenerateKey(originalFilename string) string

	// Bucket reports the bucket all objects are stored in.
	Bucket() string
}

// s3Store implements [ObjectStore] on aws-sdk-go-v2.
type s3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	cfg     appcfg.S3
	logger  *logger.Logger
}

// New builds an [ObjectStore] from static credentials and an optional custom
// endpoint (MinIO/LocalStack compatible).
func New(ctx context.Context, cfg appcfg.S3, log *logger.Logger) (ObjectStore, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	if err != nil {
		log.Err(err).Str("func", "objstore.New").Msg("error loading object storage config")
		return nil, fmt.Errorf("error loading object storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	log.Info().Str("bucket", cfg.Bucket).Msg("object storage client created")

	return &s3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		cfg:     cfg,
		logger:  log,
	}, nil
}

// Bucket reports the configured bucket name.
func (s *s3Store) Bucket() string {
	return s.cfg.Bucket
}

// EnsureBucket checks for the configured bucket and creates it when absent.
// Any error from the existence check is treated as "missing" and answered
// with a create attempt, which is idempotent on stores that already have
// the bucket.
func (s *s3Store) EnsureBucket(ctx context.Context) error {
	log := logger.FromContext(ctx)

	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.cfg.Bucket)})
	if err == nil {
		return nil
	}

	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.cfg.Bucket)}); err != nil {
		log.Err(err).Str("bucket", s.cfg.Bucket).Msg("error creating bucket")
		return fmt.Errorf("error creating bucket %s: %w", s.cfg.Bucket, err)
	}

	log.Info().Str("bucket", s.cfg.Bucket).Msg("bucket created")
	return nil
}

// PutObject streams body to the store under the given key.
func (s *s3Store) PutObject(ctx context.Context, key string, body io.Reader, contentType string, size int64) error {
	log := logger.FromContext(ctx)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		log.Err(err).Str("key", key).Msg("error uploading object")
		return fmt.Errorf("error uploading object %s: %w", key, err)
	}

	log.Info().Str("key", key).Int64("size", size).Msg("object uploaded")
	return nil
}

// PresignGetURL returns a presigned GET link for key valid for expiry.
func (s *s3Store) PresignGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	log := logger.FromContext(ctx)

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		log.Err(err).Str("key", key).Msg("error presigning object URL")
		return "", fmt.Errorf("error presigning URL for %s: %w", key, err)
	}

	return req.URL, nil
}

// GenerateKey produces a storage key of the form
// <temp-folder>/<UTC-timestamp>_<8-char-suffix><ext>.
func (s *s3Store) GenerateKey(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	timestamp := time.Now().UTC().Format("20060102_150405")
	suffix := uuid.NewString()[:8]

	folder := s.cfg.TempFolder
	if folder == "" {
		folder = "tmp"
	}

	return fmt.Sprintf("%s/%s_%s%s", folder, timestamp, suffix, ext)
}
