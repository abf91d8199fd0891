//go:generate mockery --name StudySetRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go_5_study_keep/internal/middleware"
	"go_5_study_keep/internal/model"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// StudySetRepository は単語帳の CRUD を提供します。owner が空文字の場合は未ログインの名前空間です。
type StudySetRepository interface {
	FindAll(ctx context.Context, owner string) ([]model.StudySet, error)
	FindByID(ctx context.Context, owner, setID string) (*model.StudySet, error)
	Create(ctx context.Context, owner string, set *model.StudySet) error
	Update(ctx context.Context, owner string, set *model.StudySet) error
	Delete(ctx context.Context, owner, setID string) error
	ReplaceAll(ctx context.Context, owner string, sets []model.StudySet) error
}

type kvStudySetRepository struct {
	store KVStore
	mu    sync.Mutex // 読み込み→変更→書き込みを直列化する
	now   func() time.Time
}

func NewStudySetRepository(store KVStore) StudySetRepository {
	return &kvStudySetRepository{store: store, now: time.Now}
}

func (r *kvStudySetRepository) FindAll(ctx context.Context, owner string) ([]model.StudySet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx, owner)
}

func (r *kvStudySetRepository) FindByID(ctx context.Context, owner, setID string) (*model.StudySet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sets, err := r.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	for i := range sets {
		if sets[i].ID == setID {
			return &sets[i], nil
		}
	}
	return nil, model.ErrNotFound
}

// Create は ID・カードID・作成日時を採番して保存します。set は採番後の値で更新されます。
func (r *kvStudySetRepository) Create(ctx context.Context, owner string, set *model.StudySet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sets, err := r.load(ctx, owner)
	if err != nil {
		return err
	}

	set.ID = uuid.NewString()
	cards, err := assignCardIDs(set.Cards, nil)
	if err != nil {
		return fmt.Errorf("kvStudySetRepository.Create: %w", err)
	}
	set.Cards = cards
	now := r.now()
	set.CreatedAt = now
	set.UpdatedAt = now

	sets = append(sets, *set)
	return r.save(ctx, owner, sets)
}

// Update はタイトル・説明・カードを置き換えます。既存カードのIDを指定したカードはIDを維持します。
func (r *kvStudySetRepository) Update(ctx context.Context, owner string, set *model.StudySet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sets, err := r.load(ctx, owner)
	if err != nil {
		return err
	}

	idx := indexOfSet(sets, set.ID)
	if idx < 0 {
		return model.ErrNotFound
	}
	current := sets[idx]

	known := make(map[string]bool, len(current.Cards))
	for _, c := range current.Cards {
		known[c.ID] = true
	}
	cards, err := assignCardIDs(set.Cards, known)
	if err != nil {
		return fmt.Errorf("kvStudySetRepository.Update: %w", err)
	}

	current.Title = set.Title
	current.Description = set.Description
	current.Cards = cards
	current.UpdatedAt = r.now()
	sets[idx] = current

	if err := r.save(ctx, owner, sets); err != nil {
		return err
	}
	*set = current
	return nil
}

func (r *kvStudySetRepository) Delete(ctx context.Context, owner, setID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sets, err := r.load(ctx, owner)
	if err != nil {
		return err
	}
	idx := indexOfSet(sets, setID)
	if idx < 0 {
		return model.ErrNotFound
	}
	sets = append(sets[:idx], sets[idx+1:]...)
	return r.save(ctx, owner, sets)
}

// ReplaceAll はリモート同期で取得した単語帳一覧で丸ごと置き換えます。
func (r *kvStudySetRepository) ReplaceAll(ctx context.Context, owner string, sets []model.StudySet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sets == nil {
		sets = []model.StudySet{}
	}
	return r.save(ctx, owner, sets)
}

func (r *kvStudySetRepository) load(ctx context.Context, owner string) ([]model.StudySet, error) {
	logger := middleware.GetLogger(ctx)
	key := NamespacedKey(owner, KeyStudySets)
	raw, found, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("kvStudySetRepository.load: %w", err)
	}
	sets := []model.StudySet{}
	if !found || len(raw) == 0 {
		return sets, nil
	}
	if err := json.Unmarshal(raw, &sets); err != nil {
		logger.Error("Stored study sets are not valid JSON", "error", err, "key", key)
		return nil, fmt.Errorf("kvStudySetRepository.load: %w", err)
	}
	return sets, nil
}

func (r *kvStudySetRepository) save(ctx context.Context, owner string, sets []model.StudySet) error {
	raw, err := json.Marshal(sets)
	if err != nil {
		return fmt.Errorf("kvStudySetRepository.save: %w", err)
	}
	if err := r.store.Put(ctx, NamespacedKey(owner, KeyStudySets), raw); err != nil {
		return fmt.Errorf("kvStudySetRepository.save: %w", err)
	}
	return nil
}

func indexOfSet(sets []model.StudySet, setID string) int {
	for i := range sets {
		if sets[i].ID == setID {
			return i
		}
	}
	return -1
}

// assignCardIDs は known に含まれるIDを残し、それ以外のカードに新しいIDを振ります。
func assignCardIDs(cards []model.Card, known map[string]bool) ([]model.Card, error) {
	out := make([]model.Card, 0, len(cards))
	seen := make(map[string]bool, len(cards))
	for _, c := range cards {
		if c.ID == "" || !known[c.ID] || seen[c.ID] {
			id, err := gonanoid.New()
			if err != nil {
				return nil, err
			}
			c.ID = id
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out, nil
}
