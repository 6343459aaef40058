package outfit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
)

// ErrImageNotFound is returned by an ImageStore when the key has no blob.
var ErrImageNotFound = errors.New("image not found")

// Image describes a stored outfit image.
type Image struct {
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
	ETag        string `json:"etag,omitempty"`
}

// ImageStore persists image blobs by key.
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (Image, error)
	Open(ctx context.Context, key string) (io.ReadCloser, Image, error)
	Delete(ctx context.Context, key string) error
}

// ImageService attaches photos to saved outfits. Images are keyed by outfit
// id so the outfit record itself never changes.
type ImageService interface {
	Upload(ctx context.Context, outfitID string, data []byte, contentType string) (Image, error)
	Open(ctx context.Context, outfitID string) (io.ReadCloser, Image, error)
	Remove(ctx context.Context, outfitID string)
}

type imageService struct {
	outfits  Service
	store    ImageStore
	maxBytes int64
	logger   *slog.Logger
}

// NewImageService wires image storage to the outfit service.
func NewImageService(outfits Service, store ImageStore, maxBytes int64, logger *slog.Logger) ImageService {
	return &imageService{
		outfits:  outfits,
		store:    store,
		maxBytes: maxBytes,
		logger:   logger.With("component", "outfit.images"),
	}
}

// ImageKey is the storage key of an outfit's image.
func ImageKey(outfitID string) string {
	return "outfits/" + outfitID
}

func (s *imageService) Upload(ctx context.Context, outfitID string, data []byte, contentType string) (Image, error) {
	if len(data) == 0 {
		return Image{}, apperrors.Wrap(apperrors.CodeInvalidInput, "image is empty", nil)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return Image{}, apperrors.Wrap(apperrors.CodeInvalidInput, "image is too large", nil)
	}
	contentType = strings.TrimSpace(contentType)
	if !strings.HasPrefix(contentType, "image/") {
		return Image{}, apperrors.Wrap(apperrors.CodeInvalidInput, "unsupported image type", nil)
	}
	o, err := s.outfits.Get(ctx, outfitID)
	if err != nil {
		return Image{}, err
	}
	img, err := s.store.Put(ctx, ImageKey(o.ID), data, contentType)
	if err != nil {
		s.logger.Error("image upload failed", "outfit_id", o.ID, "error", err)
		return Image{}, apperrors.Wrap(apperrors.CodePersistenceFailure, "failed to store image", err)
	}
	s.logger.Info("image stored", "outfit_id", o.ID, "size", img.Size)
	return img, nil
}

func (s *imageService) Open(ctx context.Context, outfitID string) (io.ReadCloser, Image, error) {
	outfitID = strings.TrimSpace(outfitID)
	if outfitID == "" {
		return nil, Image{}, apperrors.Wrap(apperrors.CodeInvalidInput, "outfit id cannot be empty", nil)
	}
	rc, img, err := s.store.Open(ctx, ImageKey(outfitID))
	if errors.Is(err, ErrImageNotFound) {
		return nil, Image{}, apperrors.Wrap(apperrors.CodeNotFound, "image not found", err)
	}
	if err != nil {
		return nil, Image{}, apperrors.Wrap(apperrors.CodePersistenceFailure, "failed to read image", err)
	}
	return rc, img, nil
}

// Remove deletes the outfit's image. Failures are logged and otherwise ignored.
func (s *imageService) Remove(ctx context.Context, outfitID string) {
	outfitID = strings.TrimSpace(outfitID)
	if outfitID == "" {
		return
	}
	if err := s.store.Delete(ctx, ImageKey(outfitID)); err != nil {
		s.logger.Warn("image delete failed", "outfit_id", outfitID, "error", err)
	}
}
