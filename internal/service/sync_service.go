package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"

	"go_5_study_keep/internal/cloud"
	"go_5_study_keep/internal/config"
	"go_5_study_keep/internal/middleware"
	"go_5_study_keep/internal/model"
)

// SyncService はログイン中の利用者の単語帳をリモートのブロブにミラーします。
// 失敗はすべてログに残して握りつぶし、呼び出し側はローカルのデータで続行します。
type SyncService interface {
	// Pull はリモートの単語帳を返します。SyncFound 以外ならローカルを使います。
	Pull(ctx context.Context, userID string) ([]model.StudySet, SyncStatus)
	// Push はリモートのブロブとキャッシュを書き換えます。
	Push(ctx context.Context, userID string, sets []model.StudySet)
}

// SyncStatus は Pull の結果
type SyncStatus int

const (
	SyncFound          SyncStatus = iota
	SyncNotInitialized            // リモートにまだブロブが無い
	SyncUnavailable               // 同期が無効、または読み込みに失敗した
)

// syncBlob はリモートに保存する JSON
type syncBlob struct {
	StudySets []model.StudySet `json:"studySets"`
	UserID    string           `json:"userId"`
}

type syncService struct {
	blobs cloud.BlobStore
	cache cloud.SyncCache
	cfg   *config.Config
}

// NewSyncService は blobs が nil なら何もしない実装を返します
func NewSyncService(blobs cloud.BlobStore, cache cloud.SyncCache, cfg *config.Config) SyncService {
	if blobs == nil {
		return noopSyncService{}
	}
	return &syncService{blobs: blobs, cache: cache, cfg: cfg}
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// BlobKey は利用者ごとのブロブのキーです
func BlobKey(userID string) string {
	return "user-" + nonAlphanumeric.ReplaceAllString(userID, "")
}

func (s *syncService) Pull(ctx context.Context, userID string) ([]model.StudySet, SyncStatus) {
	key := BlobKey(userID)
	logger := middleware.GetLogger(ctx).With("blob_key", key)

	if s.cache != nil {
		raw, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("Sync cache read failed, reading remote", "error", err)
		} else if ok {
			if sets, err := decodeSyncBlob(raw); err == nil {
				logger.Debug("Sync cache hit", "count", len(sets))
				return sets, SyncFound
			}
			logger.Warn("Discarding malformed cached sync blob")
		}
	}

	raw, err := s.blobs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cloud.ErrBlobNotFound) {
			logger.Info("Remote study sets not initialized yet")
			return nil, SyncNotInitialized
		}
		logger.Error("Failed to read remote study sets, falling back to local", "error", err)
		return nil, SyncUnavailable
	}

	sets, err := decodeSyncBlob(raw)
	if err != nil {
		logger.Error("Malformed remote study sets, falling back to local", "error", err)
		return nil, SyncUnavailable
	}
	s.fillCache(ctx, key, raw)
	logger.Debug("Pulled remote study sets", "count", len(sets))
	return sets, SyncFound
}

func (s *syncService) Push(ctx context.Context, userID string, sets []model.StudySet) {
	key := BlobKey(userID)
	logger := middleware.GetLogger(ctx).With("blob_key", key)

	if sets == nil {
		sets = []model.StudySet{}
	}
	raw, err := json.Marshal(syncBlob{StudySets: sets, UserID: userID})
	if err != nil {
		logger.Error("Failed to encode study sets for sync", "error", err)
		return
	}
	if err := s.blobs.Put(ctx, key, raw); err != nil {
		logger.Error("Failed to push study sets to remote", "error", err)
		return
	}
	s.fillCache(ctx, key, raw)
	logger.Info("Pushed study sets to remote", "count", len(sets))
}

func (s *syncService) fillCache(ctx context.Context, key string, raw []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cfg.Sync.CacheTTL); err != nil {
		middleware.GetLogger(ctx).Warn("Failed to write sync cache", "blob_key", key, "error", err)
	}
}

func decodeSyncBlob(raw []byte) ([]model.StudySet, error) {
	var blob syncBlob
	if err := json.Unmarshal(raw, &blob); err != nil {
		return nil, err
	}
	if blob.StudySets == nil {
		blob.StudySets = []model.StudySet{}
	}
	return blob.StudySets, nil
}

type noopSyncService struct{}

func (noopSyncService) Pull(context.Context, string) ([]model.StudySet, SyncStatus) {
	return nil, SyncUnavailable
}

func (noopSyncService) Push(context.Context, string, []model.StudySet) {}
