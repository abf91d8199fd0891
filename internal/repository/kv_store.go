package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go_5_study_keep/internal/middleware"
	"go_5_study_keep/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 永続ストアのキー
const (
	KeyStudySets     = "studySets"
	KeyStudySessions = "studySessions"
)

// NamespacedKey はユーザーごとのキーを返します。owner が空なら未ログイン用の素のキーです。
func NamespacedKey(owner, key string) string {
	if owner == "" {
		return key
	}
	return "users/" + owner + "/" + key
}

// KVStore はキーとバイト列を読み書きする永続ストアです。
// キーが存在しない場合 Get は found=false を返し、エラーにはしません。
type KVStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}

type gormKVStore struct {
	db *gorm.DB
}

func NewGormKVStore(db *gorm.DB) KVStore {
	return &gormKVStore{db: db}
}

func (s *gormKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	logger := middleware.GetLogger(ctx)
	var entry model.KVEntry
	result := s.db.WithContext(ctx).Where("entry_key = ?", key).Take(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		logger.Error("Error reading kv entry from DB", "error", result.Error, "key", key)
		return nil, false, fmt.Errorf("gormKVStore.Get: %w", result.Error)
	}
	return entry.Value, true, nil
}

func (s *gormKVStore) Put(ctx context.Context, key string, value []byte) error {
	logger := middleware.GetLogger(ctx)
	entry := model.KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)
	if result.Error != nil {
		logger.Error("Error writing kv entry to DB", "error", result.Error, "key", key, "bytes", len(value))
		return fmt.Errorf("gormKVStore.Put: %w", result.Error)
	}
	return nil
}

// MemoryKVStore はプロセス内のマップに保持する KVStore です。
type MemoryKVStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{data: make(map[string][]byte)}
}

func (s *MemoryKVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *MemoryKVStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}
