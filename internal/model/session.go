// internal/model/session.go
package model

import "time"

// StudyMode は学習モード
type StudyMode string

const (
	ModeFlashcards StudyMode = "flashcards"
	ModeQuiz       StudyMode = "quiz"
	ModeMatch      StudyMode = "match"
)

// Valid はサポートされているモードかどうかを返します
func (m StudyMode) Valid() bool {
	switch m {
	case ModeFlashcards, ModeQuiz, ModeMatch:
		return true
	}
	return false
}

// StudySession は1回の学習（完了・中断どちらも）の記録です。追記のみで更新はしません。
type StudySession struct {
	ID               string     `json:"id"`
	StudySetID       string     `json:"studySetId"`
	Mode             StudyMode  `json:"mode"`
	Score            *float64   `json:"score,omitempty"` // 0〜100 (%)
	Completed        bool       `json:"completed"`
	StartedAt        time.Time  `json:"startedAt"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	CorrectAnswers   *int       `json:"correctAnswers,omitempty"`
	TotalQuestions   *int       `json:"totalQuestions,omitempty"`
	TimeSpentSeconds *float64   `json:"timeSpentSeconds,omitempty"`
	DifficultCards   []string   `json:"difficultCards,omitempty"` // 間違えたカードのID
}

// StudiedAt は completedAt があればそれを、なければ startedAt を返します
func (s *StudySession) StudiedAt() time.Time {
	if s.CompletedAt != nil {
		return *s.CompletedAt
	}
	return s.StartedAt
}

// セッション記録リクエストDTO
type RecordSessionRequest struct {
	StudySetID       string     `json:"studySetId" validate:"required"`
	Mode             StudyMode  `json:"mode" validate:"required,oneof=flashcards quiz match"`
	Score            *float64   `json:"score,omitempty" validate:"omitempty,min=0,max=100"`
	Completed        bool       `json:"completed"`
	StartedAt        *time.Time `json:"startedAt,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	CorrectAnswers   *int       `json:"correctAnswers,omitempty" validate:"omitempty,min=0"`
	TotalQuestions   *int       `json:"totalQuestions,omitempty" validate:"omitempty,min=0"`
	TimeSpentSeconds *float64   `json:"timeSpentSeconds,omitempty" validate:"omitempty,min=0"`
	DifficultCards   []string   `json:"difficultCards,omitempty"`
}
