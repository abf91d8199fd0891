package repository

import (
	"context"
	"testing"
	"time"

	"go_5_study_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_AppendAndFind(t *testing.T) {
	ctx := context.Background()
	for name, store := range kvStores(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewSessionRepository(store)

			all, err := repo.FindAll(ctx, "")
			require.NoError(t, err)
			assert.Empty(t, all, "未保存のときは空のログ")

			score := 75.0
			started := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
			s1 := &model.StudySession{StudySetID: "set-a", Mode: model.ModeQuiz, Score: &score, Completed: true, StartedAt: started, DifficultCards: []string{"c1"}}
			s2 := &model.StudySession{ID: "fixed-id", StudySetID: "set-b", Mode: model.ModeMatch, StartedAt: started}
			s3 := &model.StudySession{StudySetID: "set-a", Mode: model.ModeFlashcards, StartedAt: started}

			require.NoError(t, repo.Append(ctx, "", s1))
			require.NoError(t, repo.Append(ctx, "", s2))
			require.NoError(t, repo.Append(ctx, "", s3))

			assert.NotEmpty(t, s1.ID)
			assert.Equal(t, "fixed-id", s2.ID)

			all, err = repo.FindAll(ctx, "")
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, s1.ID, all[0].ID, "追記順を保つ")
			require.NotNil(t, all[0].Score)
			assert.Equal(t, 75.0, *all[0].Score)
			assert.Equal(t, []string{"c1"}, all[0].DifficultCards)
			assert.True(t, all[0].StartedAt.Equal(started))

			bySet, err := repo.FindByStudySet(ctx, "", "set-a")
			require.NoError(t, err)
			require.Len(t, bySet, 2)
			assert.Equal(t, model.ModeQuiz, bySet[0].Mode)
			assert.Equal(t, model.ModeFlashcards, bySet[1].Mode)

			other, err := repo.FindAll(ctx, "someone")
			require.NoError(t, err)
			assert.Empty(t, other)
		})
	}
}
