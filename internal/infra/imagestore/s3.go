package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/internal/infra/config"
)

// S3Storage stores outfit images in an S3-compatible bucket (MinIO, R2, S3).
type S3Storage struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

var _ outfit.ImageStore = (*S3Storage)(nil)

// NewS3Storage constructs the storage adapter.
func NewS3Storage(cfg config.ImagesConfig, logger *slog.Logger) (*S3Storage, error) {
	client, err := minio.New(sanitizeEndpoint(cfg.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       strings.HasPrefix(strings.ToLower(strings.TrimSpace(cfg.Endpoint)), "https"),
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Storage{client: client, bucket: cfg.Bucket, logger: logger.With("component", "imagestore.s3")}, nil
}

func (s *S3Storage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err == nil && exists {
		return nil
	}
	err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
		return err
	}
	s.logger.Info("bucket created", "bucket", s.bucket)
	return nil
}

// Put uploads the image.
func (s *S3Storage) Put(ctx context.Context, key string, data []byte, contentType string) (outfit.Image, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return outfit.Image{}, err
	}
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:      contentType,
		DisableMultipart: true,
	})
	if err != nil {
		return outfit.Image{}, err
	}
	return outfit.Image{Key: key, Size: info.Size, ContentType: contentType, ETag: info.ETag}, nil
}

// Open fetches an image for reading.
func (s *S3Storage) Open(ctx context.Context, key string) (io.ReadCloser, outfit.Image, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, outfit.Image{}, err
	}
	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		if isNotFound(err) {
			return nil, outfit.Image{}, outfit.ErrImageNotFound
		}
		return nil, outfit.Image{}, err
	}
	return obj, outfit.Image{Key: key, Size: stat.Size, ContentType: stat.ContentType, ETag: stat.ETag}, nil
}

// Delete removes an image. Missing keys are not an error.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return true
	}
	return false
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}
