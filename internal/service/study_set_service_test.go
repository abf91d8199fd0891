package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go_5_study_keep/internal/cloud"
	"go_5_study_keep/internal/model"
	"go_5_study_keep/internal/repository"
	"go_5_study_keep/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_studySetService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.studySets.CreateStudySet(ctx, anonymous, &model.CreateStudySetRequest{
		Title:       "  Biology ",
		Description: "cells",
		Cards:       cardInputs("Cell", "Basic unit of life", "Atom", " Smallest unit "),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Biology", created.Title)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	require.Len(t, created.Cards, 2)
	assert.Equal(t, "Smallest unit", created.Cards[1].Definition)

	got, err := f.studySets.GetStudySet(ctx, anonymous, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Description, got.Description)
	assert.Equal(t, created.Cards, got.Cards)
}

func Test_studySetService_Validation(t *testing.T) {
	ctx := context.Background()
	mockRepo := mocks.NewStudySetRepository(t)
	svc := NewStudySetService(mockRepo, nil, testConfig())

	tests := []struct {
		name  string
		cards []model.CardInput
	}{
		{name: "カードなし", cards: nil},
		{name: "用語が空白", cards: []model.CardInput{{Term: " ", Definition: "d"}}},
		{name: "定義が空", cards: []model.CardInput{{Term: "t", Definition: ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateStudySet(ctx, anonymous, &model.CreateStudySetRequest{Title: "t", Cards: tt.cards})
			assert.ErrorIs(t, err, model.ErrInvalidInput)
		})
	}
	// リポジトリには一度も書き込まない
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func Test_studySetService_UpdateKeepsCardIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	set := f.createSet(t, anonymous, "Chem", "H", "Hydrogen", "O", "Oxygen")

	updated, err := f.studySets.UpdateStudySet(ctx, anonymous, set.ID, &model.UpdateStudySetRequest{
		Title: "Chemistry",
		Cards: []model.CardInput{
			{ID: set.Cards[1].ID, Term: "O", Definition: "Oxygen!"},
			{Term: "N", Definition: "Nitrogen"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Chemistry", updated.Title)
	assert.Equal(t, set.Cards[1].ID, updated.Cards[0].ID)
	assert.NotEmpty(t, updated.Cards[1].ID)
	assert.NotEqual(t, set.Cards[0].ID, updated.Cards[1].ID)
	assert.True(t, set.CreatedAt.Equal(updated.CreatedAt))
}

func Test_studySetService_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createSet(t, anonymous, "Keep", "a", "b")
	before, _, err := f.store.Get(ctx, repository.KeyStudySets)
	require.NoError(t, err)

	_, err = f.studySets.GetStudySet(ctx, anonymous, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = f.studySets.UpdateStudySet(ctx, anonymous, "missing", &model.UpdateStudySetRequest{Title: "x", Cards: cardInputs("a", "b")})
	assert.ErrorIs(t, err, model.ErrNotFound)

	err = f.studySets.DeleteStudySet(ctx, anonymous, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	after, _, err := f.store.Get(ctx, repository.KeyStudySets)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func Test_studySetService_Search(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createSet(t, anonymous, "Biology 101", "a", "b")
	f.createSet(t, anonymous, "History", "a", "b")
	_, err := f.studySets.CreateStudySet(ctx, anonymous, &model.CreateStudySetRequest{
		Title: "Misc", Description: "some BIOLOGY notes", Cards: cardInputs("a", "b"),
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "空のクエリは全件", query: "", want: []string{"Biology 101", "History", "Misc"}},
		{name: "大文字小文字を区別しない", query: "biology", want: []string{"Biology 101", "Misc"}},
		{name: "該当なし", query: "physics", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets, err := f.studySets.ListStudySets(ctx, anonymous, tt.query)
			require.NoError(t, err)
			titles := []string{}
			for _, s := range sets {
				titles = append(titles, s.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func Test_studySetService_SeedSampleData(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.cfg.App.SeedSampleData = true

	sets, err := f.studySets.ListStudySets(ctx, anonymous, "")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "Sample Study Set", sets[0].Title)
	assert.Len(t, sets[0].Cards, 3)

	// 2回目は追加しない
	sets, err = f.studySets.ListStudySets(ctx, anonymous, "")
	require.NoError(t, err)
	assert.Len(t, sets, 1)
}

func Test_studySetService_OwnerIsolation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createSet(t, anonymous, "Local", "a", "b")
	f.createSet(t, alice, "Alice's", "a", "b")

	local, err := f.studySets.ListStudySets(ctx, anonymous, "")
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, "Local", local[0].Title)

	mine, err := f.studySets.ListStudySets(ctx, alice, "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Alice's", mine[0].Title)
}

func Test_studySetService_SyncPushOnWrite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	set := f.createSet(t, alice, "Synced", "a", "b")

	raw, err := f.blobs.Get(ctx, BlobKey(alice.UserID))
	require.NoError(t, err)
	var blob syncBlob
	require.NoError(t, json.Unmarshal(raw, &blob))
	assert.Equal(t, "alice", blob.UserID)
	require.Len(t, blob.StudySets, 1)
	assert.Equal(t, set.ID, blob.StudySets[0].ID)

	// 匿名の書き込みはリモートに送らない
	f.createSet(t, anonymous, "Local only", "a", "b")
	_, err = f.blobs.Get(ctx, BlobKey(""))
	assert.ErrorIs(t, err, cloud.ErrBlobNotFound)
}

func Test_studySetService_PullReplacesLocal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createSet(t, alice, "Stale local", "a", "b")

	remote := syncBlob{
		UserID: "alice",
		StudySets: []model.StudySet{{
			ID: "remote-1", Title: "From another device",
			Cards:     []model.Card{{ID: "c1", Term: "t", Definition: "d"}},
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}},
	}
	raw, err := json.Marshal(remote)
	require.NoError(t, err)
	require.NoError(t, f.blobs.Put(ctx, BlobKey("alice"), raw))
	// キャッシュを経由しないよう新しいサービスで読む
	svc := NewStudySetService(f.setRepo, NewSyncService(f.blobs, nil, f.cfg), f.cfg)

	sets, err := svc.ListStudySets(ctx, alice, "")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "remote-1", sets[0].ID)

	local, err := f.setRepo.FindAll(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, "remote-1", local[0].ID)
}

func Test_studySetService_PushesLocalWhenRemoteMissing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.setRepo.Create(ctx, "alice", &model.StudySet{
		Title: "Offline", Cards: []model.Card{{Term: "a", Definition: "b"}},
	}))

	sets, err := f.studySets.ListStudySets(ctx, alice, "")
	require.NoError(t, err)
	require.Len(t, sets, 1)

	raw, err := f.blobs.Get(ctx, BlobKey("alice"))
	require.NoError(t, err)
	decoded, err := decodeSyncBlob(raw)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "Offline", decoded[0].Title)
}

func Test_studySetService_RemoteFailureFallsBackToLocal(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	repo := repository.NewStudySetRepository(repository.NewMemoryKVStore())
	remote := &failingBlobStore{getErr: errRemoteDown, putErr: errRemoteDown}
	svc := NewStudySetService(repo, NewSyncService(remote, nil, cfg), cfg)

	created, err := svc.CreateStudySet(ctx, alice, &model.CreateStudySetRequest{Title: "Still works", Cards: cardInputs("a", "b")})
	require.NoError(t, err)
	assert.Equal(t, 1, remote.puts)

	sets, err := svc.ListStudySets(ctx, alice, "")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, created.ID, sets[0].ID)
	// 読み込み失敗では初期化の書き込みをしない
	assert.Equal(t, 1, remote.puts)
}

func Test_studySetService_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := mocks.NewStudySetRepository(t)
	svc := NewStudySetService(mockRepo, nil, testConfig())
	mockRepo.On("FindAll", ctx, "").Return(nil, errors.New("disk full")).Once()

	_, err := svc.ListStudySets(ctx, anonymous, "")
	require.Error(t, err)
	var appErr *model.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", appErr.Code)
}
