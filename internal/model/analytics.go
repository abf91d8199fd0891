// internal/model/analytics.go
package model

import "time"

// MasteryLevel は習熟度の4段階ラベル
type MasteryLevel string

const (
	MasteryBeginner     MasteryLevel = "beginner"
	MasteryIntermediate MasteryLevel = "intermediate"
	MasteryAdvanced     MasteryLevel = "advanced"
	MasteryMaster       MasteryLevel = "master"
)

// UnknownSetTitle は削除済みなど、存在しない単語帳に付けるラベル
const UnknownSetTitle = "Unknown Set"

// SessionsByMode はモード別のセッション数
type SessionsByMode struct {
	Flashcards int `json:"flashcards"`
	Quiz       int `json:"quiz"`
	Match      int `json:"match"`
}

// StudySetProgress は単語帳ごとの進捗
type StudySetProgress struct {
	SetTitle      string       `json:"setTitle"`
	SessionsCount int          `json:"sessionsCount"`
	AverageScore  float64      `json:"averageScore"`
	LastStudied   *time.Time   `json:"lastStudied,omitempty"`
	MasteryLevel  MasteryLevel `json:"masteryLevel"`
}

// DifficultCard は間違いの多いカード
type DifficultCard struct {
	CardID         string `json:"cardId"`
	Term           string `json:"term"`
	Definition     string `json:"definition"`
	IncorrectCount int    `json:"incorrectCount"`
}

// StudyAnalytics は学習ログから都度計算される集計結果（永続化しない）
type StudyAnalytics struct {
	TotalSessions         int                         `json:"totalSessions"`
	TotalTimeSpentMinutes float64                     `json:"totalTimeSpentMinutes"`
	AverageScore          float64                     `json:"averageScore"`
	SessionsByMode        SessionsByMode              `json:"sessionsByMode"`
	StudySetProgress      map[string]*StudySetProgress `json:"studySetProgress"`
	RecentSessions        []StudySession              `json:"recentSessions"`
	DifficultCards        []DifficultCard             `json:"difficultCards"`
}
