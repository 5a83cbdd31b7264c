package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/go-user-hub/internal/config"
	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/objstore"
	"github.com/MKhiriev/go-user-hub/models"
)

const (
	// maxUploadSize caps inbound files at 10 MB.
	maxUploadSize = 10 << 20

	// maxFilenameLength caps the original filename length.
	maxFilenameLength = 255

	// defaultURLExpiry is applied when the configuration does not set a
	// presigned URL lifetime.
	defaultURLExpiry = time.Hour
)

// allowedImageTypes lists the accepted MIME subtypes of "image/".
var allowedImageTypes = map[string]struct{}{
	"jpeg": {},
	"jpg":  {},
	"png":  {},
	"gif":  {},
	"webp": {},
	"bmp":  {},
}

// uploadService implements UploadService: it validates inbound image files,
// stores them in the configured object store, and brokers presigned URLs.
type uploadService struct {
	objectStore objstore.ObjectStore
	urlExpiry   time.Duration
	logger      *logger.Logger
}

// NewUploadService constructs an UploadService on top of the given object
// store.
func NewUploadService(objectStore objstore.ObjectStore, cfg config.S3, logger *logger.Logger) UploadService {
	urlExpiry := cfg.URLExpiry
	if urlExpiry == 0 {
		urlExpiry = defaultURLExpiry
	}

	return &uploadService{
		objectStore: objectStore,
		urlExpiry:   urlExpiry,
		logger:      logger,
	}
}

// UploadImage validates the file and streams it into the object store under
// a freshly generated key, then returns the descriptor including a presigned
// retrieval URL.
//
// Returns ErrFileValidation (wrapped with the reason) when the filename,
// declared content type, or size is unacceptable, and ErrUpstreamFailure
// (wrapped) when the object store refuses the upload.
func (u *uploadService) UploadImage(ctx context.Context, filename, contentType string, size int64, body io.Reader) (models.UploadArtifact, error) {
	log := logger.FromContext(ctx)

	if err := validateUpload(filename, contentType, size); err != nil {
		log.Error().
			Str("filename", filename).
			Str("content_type", contentType).
			Int64("size", size).
			Msg(err.Error())
		return models.UploadArtifact{}, err
	}

	key := u.objectStore.GenerateKey(filename)

	if err := u.objectStore.PutObject(ctx, key, body, contentType, size); err != nil {
		log.Err(err).Str("key", key).Msg("object upload failed")
		return models.UploadArtifact{}, fmt.Errorf("%w: object upload: %w", ErrUpstreamFailure, err)
	}

	url, err := u.objectStore.PresignGetURL(ctx, key, u.urlExpiry)
	if err != nil {
		log.Err(err).Str("key", key).Msg("presigning uploaded object failed")
		return models.UploadArtifact{}, fmt.Errorf("%w: presigning URL: %w", ErrUpstreamFailure, err)
	}

	log.Info().Str("key", key).Int64("size", size).Msg("image uploaded")

	return models.UploadArtifact{
		URL:              url,
		FileKey:          key,
		OriginalFilename: filename,
		ContentType:      contentType,
		FileSize:         size,
		Bucket:           u.objectStore.Bucket(),
		ExpiresIn:        int64(u.urlExpiry.Seconds()),
	}, nil
}

// PresignURL returns a fresh time-limited URL for an object already stored
// under key.
func (u *uploadService) PresignURL(ctx context.Context, key string) (models.UploadArtifact, error) {
	log := logger.FromContext(ctx)

	if key == "" || strings.Contains(key, "..") {
		log.Error().Str("key", key).Msg("invalid object key")
		return models.UploadArtifact{}, fmt.Errorf("%w: invalid object key", ErrFileValidation)
	}

	url, err := u.objectStore.PresignGetURL(ctx, key, u.urlExpiry)
	if err != nil {
		log.Err(err).Str("key", key).Msg("presigning object failed")
		return models.UploadArtifact{}, fmt.Errorf("%w: presigning URL: %w", ErrUpstreamFailure, err)
	}

	return models.UploadArtifact{
		URL:       url,
		FileKey:   key,
		Bucket:    u.objectStore.Bucket(),
		ExpiresIn: int64(u.urlExpiry.Seconds()),
	}, nil
}

// validateUpload applies the filename, content-type, and size rules shared
// by every upload entry point.
func validateUpload(filename, contentType string, size int64) error {
	if filename == "" {
		return fmt.Errorf("%w: filename is required", ErrFileValidation)
	}
	if len(filename) > maxFilenameLength {
		return fmt.Errorf("%w: filename exceeds %d characters", ErrFileValidation, maxFilenameLength)
	}
	if strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
		return fmt.Errorf("%w: filename contains path separators", ErrFileValidation)
	}

	subtype, ok := strings.CutPrefix(strings.ToLower(contentType), "image/")
	if !ok {
		return fmt.Errorf("%w: content type %q is not an image", ErrFileValidation, contentType)
	}
	if _, allowed := allowedImageTypes[subtype]; !allowed {
		return fmt.Errorf("%w: image type %q is not allowed", ErrFileValidation, subtype)
	}

	if size <= 0 {
		return fmt.Errorf("%w: file is empty", ErrFileValidation)
	}
	if size > maxUploadSize {
		return fmt.Errorf("%w: file exceeds %d bytes", ErrFileValidation, int64(maxUploadSize))
	}

	return nil
}
