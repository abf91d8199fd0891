// Package cloud はリモート同期に使う外部ストレージ（S3 / GCS）とキャッシュ（Redis）の薄いラッパーです。
package cloud

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go_5_study_keep/internal/config"
)

// ErrBlobNotFound はキーに対応するオブジェクトがまだ無いことを表します（初回同期前など）
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore はキー単位でJSONなどのバイト列を読み書きするリモートストアです
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// NewBlobStore は sync.provider に応じた BlobStore を返します。同期が無効なら nil を返します。
func NewBlobStore(ctx context.Context, cfg *config.Config) (BlobStore, error) {
	if !cfg.Sync.Enabled {
		return nil, nil
	}
	switch cfg.Sync.Provider {
	case "s3":
		store, err := NewS3BlobStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "gcs":
		store, err := NewGCSBlobStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "memory":
		return NewMemoryBlobStore(), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown sync provider %q", cfg.Sync.Provider)
	}
}

// MemoryBlobStore はプロセス内のマップに保持する BlobStore です
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

func (s *MemoryBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryBlobStore) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), data...)
	return nil
}
