//go:generate mockery --name SessionService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"time"

	"go_5_study_keep/internal/middleware"
	"go_5_study_keep/internal/model"
	"go_5_study_keep/internal/repository"
)

type SessionService interface {
	// RecordSession はクライアントから報告された学習結果を記録します
	RecordSession(ctx context.Context, identity model.Identity, req *model.RecordSessionRequest) (*model.StudySession, error)
	// AppendSession はサーバー側で組み立てたセッションをそのまま記録します
	AppendSession(ctx context.Context, identity model.Identity, session *model.StudySession) error
	// ListSessions は studySetID が空なら全件を返します
	ListSessions(ctx context.Context, identity model.Identity, studySetID string) ([]model.StudySession, error)
}

type sessionService struct {
	repo     repository.SessionRepository
	studySet StudySetService
	now      func() time.Time
}

func NewSessionService(repo repository.SessionRepository, studySet StudySetService) SessionService {
	return &sessionService{
		repo:     repo,
		studySet: studySet,
		now:      time.Now,
	}
}

func (s *sessionService) RecordSession(ctx context.Context, identity model.Identity, req *model.RecordSessionRequest) (*model.StudySession, error) {
	logger := middleware.GetLogger(ctx).With("study_set_id", req.StudySetID, "mode", req.Mode)

	if _, err := s.studySet.GetStudySet(ctx, identity, req.StudySetID); err != nil {
		return nil, err
	}
	if req.CorrectAnswers != nil && req.TotalQuestions != nil && *req.CorrectAnswers > *req.TotalQuestions {
		return nil, model.NewAppError("VALIDATION_ERROR", "正解数が問題数を超えています。", "correctAnswers", model.ErrInvalidInput)
	}

	now := s.now()
	session := &model.StudySession{
		StudySetID:       req.StudySetID,
		Mode:             req.Mode,
		Score:            req.Score,
		Completed:        req.Completed,
		StartedAt:        now,
		CompletedAt:      req.CompletedAt,
		CorrectAnswers:   req.CorrectAnswers,
		TotalQuestions:   req.TotalQuestions,
		TimeSpentSeconds: req.TimeSpentSeconds,
		DifficultCards:   req.DifficultCards,
	}
	if req.StartedAt != nil {
		session.StartedAt = *req.StartedAt
	}
	if session.Completed && session.CompletedAt == nil {
		session.CompletedAt = &now
	}
	if session.CompletedAt != nil && session.CompletedAt.Before(session.StartedAt) {
		return nil, model.NewAppError("VALIDATION_ERROR", "完了日時は開始日時より後にしてください。", "completedAt", model.ErrInvalidInput)
	}

	if err := s.AppendSession(ctx, identity, session); err != nil {
		return nil, err
	}
	logger.Info("Study session recorded", "session_id", session.ID, "completed", session.Completed)
	return session, nil
}

func (s *sessionService) AppendSession(ctx context.Context, identity model.Identity, session *model.StudySession) error {
	if err := s.repo.Append(ctx, ownerOf(identity), session); err != nil {
		middleware.GetLogger(ctx).Error("Failed to append study session", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "学習記録の保存に失敗しました。", "", err)
	}
	return nil
}

func (s *sessionService) ListSessions(ctx context.Context, identity model.Identity, studySetID string) ([]model.StudySession, error) {
	var (
		sessions []model.StudySession
		err      error
	)
	if studySetID == "" {
		sessions, err = s.repo.FindAll(ctx, ownerOf(identity))
	} else {
		sessions, err = s.repo.FindByStudySet(ctx, ownerOf(identity), studySetID)
	}
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to list study sessions", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習記録の取得に失敗しました。", "", err)
	}
	if sessions == nil {
		sessions = []model.StudySession{}
	}
	return sessions, nil
}
