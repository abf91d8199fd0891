package repository

import (
	"context"
	"testing"
	"time"

	"go_5_study_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// :memory: は接続ごとに別DBになるため1本に固定する
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.KVEntry{}))
	return db
}

func newSet(title string, pairs ...string) *model.StudySet {
	set := &model.StudySet{Title: title, Description: title + " description"}
	for i := 0; i+1 < len(pairs); i += 2 {
		set.Cards = append(set.Cards, model.Card{Term: pairs[i], Definition: pairs[i+1]})
	}
	return set
}

// 両方の KVStore 実装で同じ振る舞いになることを確認する
func kvStores(t *testing.T) map[string]KVStore {
	return map[string]KVStore{
		"memory": NewMemoryKVStore(),
		"gorm":   NewGormKVStore(setupTestDB(t)),
	}
}

func TestKVStore_GetPut(t *testing.T) {
	ctx := context.Background()
	for name, store := range kvStores(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := store.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, found, "存在しないキーはエラーではなく found=false")

			require.NoError(t, store.Put(ctx, "k", []byte(`[1]`)))
			require.NoError(t, store.Put(ctx, "k", []byte(`[1,2]`)), "同じキーへの2回目の書き込みは上書き")

			got, found, err := store.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `[1,2]`, string(got))
		})
	}
}

func TestNamespacedKey(t *testing.T) {
	assert.Equal(t, "studySets", NamespacedKey("", KeyStudySets))
	assert.Equal(t, "users/u1/studySessions", NamespacedKey("u1", KeyStudySessions))
}

func TestStudySetRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	for name, store := range kvStores(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewStudySetRepository(store)

			set := newSet("Biology", "Cell", "Basic unit of life", "Atom", "Smallest unit of matter")
			require.NoError(t, repo.Create(ctx, "", set))

			assert.NotEmpty(t, set.ID)
			assert.False(t, set.CreatedAt.IsZero())
			assert.Equal(t, set.CreatedAt, set.UpdatedAt, "作成時は createdAt == updatedAt")
			for _, c := range set.Cards {
				assert.NotEmpty(t, c.ID)
			}
			assert.NotEqual(t, set.Cards[0].ID, set.Cards[1].ID)

			got, err := repo.FindByID(ctx, "", set.ID)
			require.NoError(t, err)
			assert.Equal(t, "Biology", got.Title)
			assert.Equal(t, "Biology description", got.Description)
			require.Len(t, got.Cards, 2)
			assert.Equal(t, "Cell", got.Cards[0].Term)
			assert.Equal(t, "Basic unit of life", got.Cards[0].Definition)
			assert.Equal(t, "Atom", got.Cards[1].Term)
			assert.Equal(t, "Smallest unit of matter", got.Cards[1].Definition)
			assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
		})
	}
}

func TestStudySetRepository_OwnersAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewStudySetRepository(NewMemoryKVStore())

	require.NoError(t, repo.Create(ctx, "alice", newSet("Alice", "a", "b")))
	require.NoError(t, repo.Create(ctx, "", newSet("Local", "c", "d")))

	alice, err := repo.FindAll(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, alice, 1)
	assert.Equal(t, "Alice", alice[0].Title)

	bob, err := repo.FindAll(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bob)

	local, err := repo.FindAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, "Local", local[0].Title)
}

func TestStudySetRepository_Update(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKVStore()
	repo := NewStudySetRepository(store).(*kvStudySetRepository)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return created }

	set := newSet("Chemistry", "H2O", "Water", "NaCl", "Salt")
	require.NoError(t, repo.Create(ctx, "", set))
	keptID := set.Cards[0].ID
	droppedID := set.Cards[1].ID

	updated := created.Add(time.Hour)
	repo.now = func() time.Time { return updated }

	edit := &model.StudySet{
		ID:          set.ID,
		Title:       "Chemistry 2",
		Description: "edited",
		Cards: []model.Card{
			{ID: keptID, Term: "H2O", Definition: "Water molecule"},
			{ID: "forged-id", Term: "CO2", Definition: "Carbon dioxide"},
		},
	}
	require.NoError(t, repo.Update(ctx, "", edit))

	got, err := repo.FindByID(ctx, "", set.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chemistry 2", got.Title)
	assert.Equal(t, "edited", got.Description)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.UpdatedAt.Equal(updated))
	require.Len(t, got.Cards, 2)
	assert.Equal(t, keptID, got.Cards[0].ID, "既存カードのIDは編集後も変わらない")
	assert.Equal(t, "Water molecule", got.Cards[0].Definition)
	assert.NotEqual(t, "forged-id", got.Cards[1].ID, "セットに属さないIDは採番し直す")
	assert.NotEqual(t, droppedID, got.Cards[1].ID)

	err = repo.Update(ctx, "", &model.StudySet{ID: "nope", Title: "x"})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestStudySetRepository_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKVStore()
	repo := NewStudySetRepository(store)

	first := newSet("First", "a", "b")
	second := newSet("Second", "c", "d")
	require.NoError(t, repo.Create(ctx, "", first))
	require.NoError(t, repo.Create(ctx, "", second))

	before, _, err := store.Get(ctx, KeyStudySets)
	require.NoError(t, err)

	tests := []struct {
		name    string
		id      string
		wantErr error
		wantLen int
	}{
		{name: "異常系: 存在しないIDは NotFound で保存内容は変わらない", id: "missing", wantErr: model.ErrNotFound, wantLen: 2},
		{name: "正常系: 削除", id: first.ID, wantErr: nil, wantLen: 1},
		{name: "異常系: 削除済みIDをもう一度削除", id: first.ID, wantErr: model.ErrNotFound, wantLen: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Delete(ctx, "", tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			sets, err := repo.FindAll(ctx, "")
			require.NoError(t, err)
			assert.Len(t, sets, tt.wantLen)
		})
	}

	_, err = repo.FindByID(ctx, "", first.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	// NotFound のときはストアに書き込まない
	repo2 := NewStudySetRepository(store)
	snapshot, _, _ := store.Get(ctx, KeyStudySets)
	assert.ErrorIs(t, repo2.Delete(ctx, "", "missing"), model.ErrNotFound)
	after, _, _ := store.Get(ctx, KeyStudySets)
	assert.Equal(t, snapshot, after)
	assert.NotEqual(t, before, after)
}

func TestStudySetRepository_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo := NewStudySetRepository(NewMemoryKVStore())
	require.NoError(t, repo.Create(ctx, "u1", newSet("Old", "a", "b")))

	remote := []model.StudySet{{ID: "remote-1", Title: "Remote", Cards: []model.Card{{ID: "c1", Term: "t", Definition: "d"}}}}
	require.NoError(t, repo.ReplaceAll(ctx, "u1", remote))

	got, err := repo.FindAll(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "remote-1", got[0].ID)
	assert.Equal(t, "c1", got[0].Cards[0].ID)

	require.NoError(t, repo.ReplaceAll(ctx, "u1", nil))
	got, err = repo.FindAll(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStudySetRepository_CorruptedData(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKVStore()
	require.NoError(t, store.Put(ctx, KeyStudySets, []byte("{not json")))

	_, err := NewStudySetRepository(store).FindAll(ctx, "")
	assert.Error(t, err)
}
