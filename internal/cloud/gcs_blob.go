package cloud

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"go_5_study_keep/internal/config"
	"go_5_study_keep/internal/middleware"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSBlobStore は Google Cloud Storage を使う BlobStore です
type GCSBlobStore struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCSBlobStore(ctx context.Context, cfg *config.Config) (*GCSBlobStore, error) {
	if cfg.Sync.Bucket == "" {
		return nil, errors.New("sync.bucket is required for the gcs provider")
	}

	var opts []option.ClientOption
	if host := strings.TrimRight(strings.TrimSpace(cfg.GCS.EmulatorHost), "/"); host != "" {
		_ = os.Setenv("STORAGE_EMULATOR_HOST", host)
		opts = append(opts, option.WithoutAuthentication())
	} else if cfg.GCS.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCS.CredentialsFile))
	}
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSBlobStore{client: client, bucket: cfg.Sync.Bucket, prefix: cfg.Sync.Prefix}, nil
}

func (s *GCSBlobStore) objectName(key string) string {
	return path.Join(s.prefix, key+".json")
}

func (s *GCSBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	logger := middleware.GetLogger(ctx)
	r, err := s.client.Bucket(s.bucket).Object(s.objectName(key)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrBlobNotFound
		}
		logger.Error("Failed to open GCS object", "error", err, "bucket", s.bucket, "object", s.objectName(key))
		return nil, fmt.Errorf("GCSBlobStore.Get: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("GCSBlobStore.Get: read: %w", err)
	}
	return data, nil
}

func (s *GCSBlobStore) Put(ctx context.Context, key string, data []byte) error {
	logger := middleware.GetLogger(ctx)
	w := s.client.Bucket(s.bucket).Object(s.objectName(key)).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		logger.Error("Failed to write GCS object", "error", err, "bucket", s.bucket, "object", s.objectName(key))
		return fmt.Errorf("GCSBlobStore.Put: %w", err)
	}
	if err := w.Close(); err != nil {
		logger.Error("Failed to finalize GCS object", "error", err, "bucket", s.bucket, "object", s.objectName(key))
		return fmt.Errorf("GCSBlobStore.Put: %w", err)
	}
	return nil
}

// Close はクライアントを閉じます
func (s *GCSBlobStore) Close() error {
	return s.client.Close()
}
