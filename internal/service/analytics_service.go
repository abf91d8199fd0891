package service

import (
	"context"

	"go_5_study_keep/internal/middleware"
	"go_5_study_keep/internal/model"
	"go_5_study_keep/internal/study"
)

type AnalyticsService interface {
	GetAnalytics(ctx context.Context, identity model.Identity) (*model.StudyAnalytics, error)
}

type analyticsService struct {
	studySets StudySetService
	sessions  SessionService
}

func NewAnalyticsService(studySets StudySetService, sessions SessionService) AnalyticsService {
	return &analyticsService{
		studySets: studySets,
		sessions:  sessions,
	}
}

// GetAnalytics は呼び出しのたびに全セッションから集計し直します
func (s *analyticsService) GetAnalytics(ctx context.Context, identity model.Identity) (*model.StudyAnalytics, error) {
	logger := middleware.GetLogger(ctx)

	sets, err := s.studySets.ListStudySets(ctx, identity, "")
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListSessions(ctx, identity, "")
	if err != nil {
		return nil, err
	}

	analytics := study.ComputeAnalytics(sets, sessions)
	logger.Debug("Analytics computed",
		"sessions", analytics.TotalSessions,
		"study_sets", len(analytics.StudySetProgress),
		"difficult_cards", len(analytics.DifficultCards),
	)
	return &analytics, nil
}
