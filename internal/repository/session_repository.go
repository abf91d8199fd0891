//go:generate mockery --name SessionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go_5_study_keep/internal/middleware"
	"go_5_study_keep/internal/model"

	"github.com/google/uuid"
)

// SessionRepository は学習セッションの追記専用ログです。
type SessionRepository interface {
	Append(ctx context.Context, owner string, session *model.StudySession) error
	FindAll(ctx context.Context, owner string) ([]model.StudySession, error)
	FindByStudySet(ctx context.Context, owner, setID string) ([]model.StudySession, error)
}

type kvSessionRepository struct {
	store KVStore
	mu    sync.Mutex
}

func NewSessionRepository(store KVStore) SessionRepository {
	return &kvSessionRepository{store: store}
}

// Append は ID が空なら採番してログの末尾に追加します。
func (r *kvSessionRepository) Append(ctx context.Context, owner string, session *model.StudySession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sessions, err := r.load(ctx, owner)
	if err != nil {
		return err
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	sessions = append(sessions, *session)

	raw, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("kvSessionRepository.Append: %w", err)
	}
	if err := r.store.Put(ctx, NamespacedKey(owner, KeyStudySessions), raw); err != nil {
		return fmt.Errorf("kvSessionRepository.Append: %w", err)
	}
	return nil
}

func (r *kvSessionRepository) FindAll(ctx context.Context, owner string) ([]model.StudySession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx, owner)
}

func (r *kvSessionRepository) FindByStudySet(ctx context.Context, owner, setID string) ([]model.StudySession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sessions, err := r.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	filtered := make([]model.StudySession, 0)
	for _, s := range sessions {
		if s.StudySetID == setID {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

func (r *kvSessionRepository) load(ctx context.Context, owner string) ([]model.StudySession, error) {
	logger := middleware.GetLogger(ctx)
	key := NamespacedKey(owner, KeyStudySessions)
	raw, found, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("kvSessionRepository.load: %w", err)
	}
	sessions := []model.StudySession{}
	if !found || len(raw) == 0 {
		return sessions, nil
	}
	if err := json.Unmarshal(raw, &sessions); err != nil {
		logger.Error("Stored study sessions are not valid JSON", "error", err, "key", key)
		return nil, fmt.Errorf("kvSessionRepository.load: %w", err)
	}
	return sessions, nil
}
