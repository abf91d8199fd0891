// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "StudyKeep"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultDatabaseURL    = "study_keep.db"
	DefaultLogLevel       = "info"
	DefaultAuthEnabled    = false
	DefaultMinSetCards    = 1
	DefaultMinQuizCards   = 4
	DefaultMinMatchCards  = 3
	DefaultMismatchDelay  = 1000 * time.Millisecond
	DefaultPlayTTL        = 2 * time.Hour
	DefaultMaxUploadBytes = 10 << 20 // 10MB
	DefaultSyncPrefix     = "study-sets"
	DefaultSyncCacheTTL   = 30 * time.Second
	DefaultRedisPrefix    = "studykeep:"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultOpenAIMaxChars = 24000
	DefaultOpenAITimeout  = 60 * time.Second
)
