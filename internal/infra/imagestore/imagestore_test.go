package imagestore

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/internal/infra/config"
)

func TestMemoryStorage(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()
	data := []byte("jpeg")

	meta, err := store.Put(ctx, "outfits/1", data, "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, int64(4), meta.Size)
	require.NotEmpty(t, meta.ETag)
	data[0] = 'X'

	rc, got, err := store.Open(ctx, "outfits/1")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	require.Equal(t, "jpeg", string(body))
	require.Equal(t, "image/jpeg", got.ContentType)

	require.NoError(t, store.Delete(ctx, "outfits/1"))
	_, _, err = store.Open(ctx, "outfits/1")
	require.ErrorIs(t, err, outfit.ErrImageNotFound)
}

func TestSanitizeEndpoint(t *testing.T) {
	require.Equal(t, "minio.local:9000", sanitizeEndpoint(" http://minio.local:9000/bucket "))
	require.Equal(t, "acct.r2.cloudflarestorage.com", sanitizeEndpoint("https://acct.r2.cloudflarestorage.com"))
}

func TestNewS3Storage(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewS3Storage(config.ImagesConfig{
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "outfit-images",
	}, logger)
	require.NoError(t, err)
	require.Equal(t, "outfit-images", store.bucket)
}
