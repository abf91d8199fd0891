package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_5_study_keep/internal/cloud"
	"go_5_study_keep/internal/config"
	"go_5_study_keep/internal/model"
	"go_5_study_keep/internal/repository"

	"github.com/stretchr/testify/require"
)

var (
	anonymous = model.Identity{}
	alice     = model.Identity{UserID: "alice", SignedIn: true}
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.URL = "file::memory:"
	config.ApplyDefaults(cfg)
	return cfg
}

// failingBlobStore は常に失敗するリモート
type failingBlobStore struct {
	getErr error
	putErr error
	puts   int
}

func (f *failingBlobStore) Get(context.Context, string) ([]byte, error) { return nil, f.getErr }

func (f *failingBlobStore) Put(context.Context, string, []byte) error {
	f.puts++
	return f.putErr
}

var errRemoteDown = errors.New("remote down")

type fixture struct {
	cfg       *config.Config
	store     *repository.MemoryKVStore
	setRepo   repository.StudySetRepository
	blobs     *cloud.MemoryBlobStore
	sync      SyncService
	studySets StudySetService
	sessions  SessionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := testConfig()
	store := repository.NewMemoryKVStore()
	setRepo := repository.NewStudySetRepository(store)
	blobs := cloud.NewMemoryBlobStore()
	syncSvc := NewSyncService(blobs, cloud.NewMemoryCache(time.Now), cfg)
	studySets := NewStudySetService(setRepo, syncSvc, cfg)
	sessions := NewSessionService(repository.NewSessionRepository(store), studySets)
	return &fixture{
		cfg:       cfg,
		store:     store,
		setRepo:   setRepo,
		blobs:     blobs,
		sync:      syncSvc,
		studySets: studySets,
		sessions:  sessions,
	}
}

func cardInputs(pairs ...string) []model.CardInput {
	cards := make([]model.CardInput, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		cards = append(cards, model.CardInput{Term: pairs[i], Definition: pairs[i+1]})
	}
	return cards
}

func (f *fixture) createSet(t *testing.T, identity model.Identity, title string, pairs ...string) *model.StudySet {
	t.Helper()
	set, err := f.studySets.CreateStudySet(context.Background(), identity, &model.CreateStudySetRequest{
		Title: title,
		Cards: cardInputs(pairs...),
	})
	require.NoError(t, err)
	return set
}
