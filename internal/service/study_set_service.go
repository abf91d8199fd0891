//go:generate mockery --name StudySetService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"strings"

	"go_5_study_keep/internal/config"
	"go_5_study_keep/internal/middleware"
	"go_5_study_keep/internal/model"
	"go_5_study_keep/internal/repository"
)

type StudySetService interface {
	ListStudySets(ctx context.Context, identity model.Identity, query string) ([]model.StudySet, error)
	GetStudySet(ctx context.Context, identity model.Identity, setID string) (*model.StudySet, error)
	CreateStudySet(ctx context.Context, identity model.Identity, req *model.CreateStudySetRequest) (*model.StudySet, error)
	UpdateStudySet(ctx context.Context, identity model.Identity, setID string, req *model.UpdateStudySetRequest) (*model.StudySet, error)
	DeleteStudySet(ctx context.Context, identity model.Identity, setID string) error
}

type studySetService struct {
	repo repository.StudySetRepository
	sync SyncService
	cfg  *config.Config
}

func NewStudySetService(repo repository.StudySetRepository, sync SyncService, cfg *config.Config) StudySetService {
	if sync == nil {
		sync = noopSyncService{}
	}
	return &studySetService{
		repo: repo,
		sync: sync,
		cfg:  cfg,
	}
}

// ownerOf は保存領域の名前空間を返します。未ログインは共有のローカル領域です。
func ownerOf(identity model.Identity) string {
	if !identity.SignedIn {
		return ""
	}
	return identity.UserID
}

func studySetNotFound() error {
	return model.NewAppError("STUDY_SET_NOT_FOUND", "指定された単語帳が見つかりません。", "", model.ErrNotFound)
}

func (s *studySetService) ListStudySets(ctx context.Context, identity model.Identity, query string) ([]model.StudySet, error) {
	logger := middleware.GetLogger(ctx)

	sets, err := s.loadSets(ctx, identity)
	if err != nil {
		return nil, err
	}

	if len(sets) == 0 && s.cfg.App.SeedSampleData {
		sample := newSampleStudySet()
		if err := s.repo.Create(ctx, ownerOf(identity), sample); err != nil {
			logger.Error("Failed to seed sample study set", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳一覧の取得に失敗しました。", "", err)
		}
		logger.Info("Seeded sample study set", "study_set_id", sample.ID)
		sets = []model.StudySet{*sample}
		s.pushAll(ctx, identity)
	}

	filtered := filterStudySets(sets, query)
	logger.Debug("Study sets listed", "count", len(filtered), "query", query)
	return filtered, nil
}

func (s *studySetService) GetStudySet(ctx context.Context, identity model.Identity, setID string) (*model.StudySet, error) {
	sets, err := s.loadSets(ctx, identity)
	if err != nil {
		return nil, err
	}
	for i := range sets {
		if sets[i].ID == setID {
			return &sets[i], nil
		}
	}
	return nil, studySetNotFound()
}

func (s *studySetService) CreateStudySet(ctx context.Context, identity model.Identity, req *model.CreateStudySetRequest) (*model.StudySet, error) {
	logger := middleware.GetLogger(ctx)

	if err := s.validateCards(req.Cards); err != nil {
		return nil, err
	}

	set := &model.StudySet{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Cards:       toCards(req.Cards),
	}
	if err := s.repo.Create(ctx, ownerOf(identity), set); err != nil {
		logger.Error("Failed to create study set", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳の作成に失敗しました。", "", err)
	}

	logger.Info("Study set created", "study_set_id", set.ID, "cards", len(set.Cards))
	s.pushAll(ctx, identity)
	return set, nil
}

func (s *studySetService) UpdateStudySet(ctx context.Context, identity model.Identity, setID string, req *model.UpdateStudySetRequest) (*model.StudySet, error) {
	logger := middleware.GetLogger(ctx).With("study_set_id", setID)

	if err := s.validateCards(req.Cards); err != nil {
		return nil, err
	}

	// リモートの内容をローカルへ反映してから更新する
	if _, err := s.loadSets(ctx, identity); err != nil {
		return nil, err
	}

	set := &model.StudySet{
		ID:          setID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Cards:       toCards(req.Cards),
	}
	if err := s.repo.Update(ctx, ownerOf(identity), set); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Study set to update not found")
			return nil, studySetNotFound()
		}
		logger.Error("Failed to update study set", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳の更新に失敗しました。", "", err)
	}

	logger.Info("Study set updated", "cards", len(set.Cards))
	s.pushAll(ctx, identity)
	return set, nil
}

func (s *studySetService) DeleteStudySet(ctx context.Context, identity model.Identity, setID string) error {
	logger := middleware.GetLogger(ctx).With("study_set_id", setID)

	if _, err := s.loadSets(ctx, identity); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, ownerOf(identity), setID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Study set to delete not found")
			return studySetNotFound()
		}
		logger.Error("Failed to delete study set", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳の削除に失敗しました。", "", err)
	}

	logger.Info("Study set deleted")
	s.pushAll(ctx, identity)
	return nil
}

// loadSets はローカルの単語帳を返します。ログイン中はリモートを正とし、
// 取得できればローカルを置き換え、未作成ならローカルの内容で初期化します。
func (s *studySetService) loadSets(ctx context.Context, identity model.Identity) ([]model.StudySet, error) {
	logger := middleware.GetLogger(ctx)
	owner := ownerOf(identity)

	if identity.SignedIn {
		remote, status := s.sync.Pull(ctx, identity.UserID)
		if status == SyncFound {
			if err := s.repo.ReplaceAll(ctx, owner, remote); err != nil {
				logger.Warn("Failed to mirror remote study sets locally", "error", err)
			} else {
				return remote, nil
			}
		}
		if status == SyncNotInitialized {
			defer s.pushAll(ctx, identity)
		}
	}

	sets, err := s.repo.FindAll(ctx, owner)
	if err != nil {
		logger.Error("Failed to load study sets", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳の取得に失敗しました。", "", err)
	}
	return sets, nil
}

// pushAll はログイン中ならローカルの全単語帳をリモートへ送ります
func (s *studySetService) pushAll(ctx context.Context, identity model.Identity) {
	if !identity.SignedIn {
		return
	}
	sets, err := s.repo.FindAll(ctx, ownerOf(identity))
	if err != nil {
		middleware.GetLogger(ctx).Warn("Skipping sync push, local study sets unreadable", "error", err)
		return
	}
	s.sync.Push(ctx, identity.UserID, sets)
}

func (s *studySetService) validateCards(cards []model.CardInput) error {
	if len(cards) < s.cfg.App.MinSetCards {
		return model.NewAppError("VALIDATION_ERROR", "カードが足りません。", "cards", model.ErrInvalidInput)
	}
	for _, c := range cards {
		if strings.TrimSpace(c.Term) == "" || strings.TrimSpace(c.Definition) == "" {
			return model.NewAppError("VALIDATION_ERROR", "すべてのカードに用語と定義を入力してください。", "cards", model.ErrInvalidInput)
		}
	}
	return nil
}

func toCards(inputs []model.CardInput) []model.Card {
	cards := make([]model.Card, 0, len(inputs))
	for _, in := range inputs {
		cards = append(cards, model.Card{
			ID:         in.ID,
			Term:       strings.TrimSpace(in.Term),
			Definition: strings.TrimSpace(in.Definition),
		})
	}
	return cards
}

// filterStudySets はタイトルか説明に query を含む単語帳を返します（大文字小文字を区別しない）
func filterStudySets(sets []model.StudySet, query string) []model.StudySet {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return sets
	}
	filtered := make([]model.StudySet, 0, len(sets))
	for _, set := range sets {
		if strings.Contains(strings.ToLower(set.Title), query) ||
			strings.Contains(strings.ToLower(set.Description), query) {
			filtered = append(filtered, set)
		}
	}
	return filtered
}

func newSampleStudySet() *model.StudySet {
	return &model.StudySet{
		Title:       "Sample Study Set",
		Description: "This is a sample study set to get you started.",
		Cards: []model.Card{
			{Term: "Photosynthesis", Definition: "The process by which green plants and some other organisms use sunlight to synthesize foods with carbon dioxide and water."},
			{Term: "Mitosis", Definition: "A type of cell division that results in two daughter cells each having the same number and kind of chromosomes as the parent nucleus."},
			{Term: "Osmosis", Definition: "The movement of water molecules through a selectively permeable membrane from an area of high water concentration to an area of low water concentration."},
		},
	}
}
