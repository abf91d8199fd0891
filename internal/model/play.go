// internal/model/play.go
package model

import "time"

// PlayStatus はプレイ（進行中の学習）の状態
type PlayStatus string

const (
	PlayActive    PlayStatus = "active"
	PlayCompleted PlayStatus = "completed"
	PlayAbandoned PlayStatus = "abandoned"
)

// プレイ操作の種類
const (
	ActionSelect   = "select"
	ActionCheck    = "check"
	ActionNext     = "next"
	ActionRestart  = "restart"
	ActionClick    = "click"
	ActionFlip     = "flip"
	ActionPrevious = "previous"
	ActionShuffle  = "shuffle"
	ActionReset    = "reset"
	ActionFinish   = "finish"
)

// プレイ開始リクエストDTO
type StartPlayRequest struct {
	Mode StudyMode `json:"mode" validate:"required,oneof=flashcards quiz match"`
}

// プレイ操作リクエストDTO
type PlayActionRequest struct {
	Action string `json:"action" validate:"required,oneof=select check next restart click flip previous shuffle reset finish"`
	Value  string `json:"value,omitempty"`
}

// QuizQuestionView は正解を含まない問題表示用DTO
type QuizQuestionView struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// QuizCheckResult は直前の答え合わせ結果
type QuizCheckResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
}

// QuizView はクイズの現在状態
type QuizView struct {
	Questions      []QuizQuestionView `json:"questions"`
	CurrentIndex   int                `json:"currentIndex"`
	SelectedAnswer string             `json:"selectedAnswer"`
	IsAnswered     bool               `json:"isAnswered"`
	Score          int                `json:"score"`
	ShowResults    bool               `json:"showResults"`
	FinalScore     int                `json:"finalScore"`
	Total          int                `json:"total"`
	Message        string             `json:"message,omitempty"`
	LastCheck      *QuizCheckResult   `json:"lastCheck,omitempty"`
}

// MatchCardView はマッチングゲームのカード表示用DTO
type MatchCardView struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Kind     string `json:"kind"`
	Matched  bool   `json:"matched"`
	Selected bool   `json:"selected"`
}

// MatchView はマッチングゲームの現在状態
type MatchView struct {
	Cards        []MatchCardView `json:"cards"`
	MatchedPairs int             `json:"matchedPairs"`
	TotalPairs   int             `json:"totalPairs"`
	State        string          `json:"state"`
	ElapsedMs    int64           `json:"elapsedMs"`
}

// FlashcardsView はフラッシュカードの現在状態
type FlashcardsView struct {
	Cards        []Card `json:"cards"`
	CurrentIndex int    `json:"currentIndex"`
	Flipped      bool   `json:"flipped"`
	Total        int    `json:"total"`
}

// PlayView はプレイ状態のレスポンスDTO
type PlayView struct {
	ID         string          `json:"id"`
	StudySetID string          `json:"studySetId"`
	Mode       StudyMode       `json:"mode"`
	Status     PlayStatus      `json:"status"`
	StartedAt  time.Time       `json:"startedAt"`
	Quiz       *QuizView       `json:"quiz,omitempty"`
	Match      *MatchView      `json:"match,omitempty"`
	Flashcards *FlashcardsView `json:"flashcards,omitempty"`
	Session    *StudySession   `json:"session,omitempty"` // 記録されたセッション
}
