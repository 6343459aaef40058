package imagestore

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"sync"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
)

// MemoryStorage keeps images in memory. Useful for tests and local dev.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string]storedBlob
}

type storedBlob struct {
	data []byte
	meta outfit.Image
}

var _ outfit.ImageStore = (*MemoryStorage)(nil)

// NewMemoryStorage constructs storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string]storedBlob)}
}

// Put stores a copy of data.
func (s *MemoryStorage) Put(_ context.Context, key string, data []byte, contentType string) (outfit.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash := md5.Sum(data)
	meta := outfit.Image{
		Key:         key,
		Size:        int64(len(data)),
		ContentType: contentType,
		ETag:        hex.EncodeToString(hash[:]),
	}
	s.blobs[key] = storedBlob{data: bytes.Clone(data), meta: meta}
	return meta, nil
}

// Open returns a reader for the stored image.
func (s *MemoryStorage) Open(_ context.Context, key string) (io.ReadCloser, outfit.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, outfit.Image{}, outfit.ErrImageNotFound
	}
	return io.NopCloser(bytes.NewReader(blob.data)), blob.meta, nil
}

// Delete removes the image.
func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}
