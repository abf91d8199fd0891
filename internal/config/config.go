// internal/config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"` // postgres://... または sqlite のファイルパス
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type AppConfig struct {
	Name           string        `mapstructure:"name"`
	SeedSampleData bool          `mapstructure:"seed_sample_data"`
	MinSetCards    int           `mapstructure:"min_set_cards"`
	MinQuizCards   int           `mapstructure:"min_quiz_cards"`
	MinMatchCards  int           `mapstructure:"min_match_cards"`
	MismatchDelay  time.Duration `mapstructure:"mismatch_delay"`
	PlayTTL        time.Duration `mapstructure:"play_ttl"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
}

type AuthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type JWTConfig struct {
	SecretKey string `mapstructure:"secret_key"`
	Issuer    string `mapstructure:"issuer"`
}

type SyncConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"` // "s3" | "gcs" | "memory" | "none"
	Bucket   string        `mapstructure:"bucket"`
	Prefix   string        `mapstructure:"prefix"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type S3Config struct {
	Region          string `mapstructure:"region"`
	AuthType        string `mapstructure:"auth_type"` // "static_credentials" | "iam_role"
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Endpoint        string `mapstructure:"endpoint"` // MinIO などS3互換ストレージ用
}

type GCSConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	EmulatorHost    string `mapstructure:"emulator_host"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type ExtractionConfig struct {
	Provider string `mapstructure:"provider"` // "mock" | "openai"
}

type OpenAIConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Model    string        `mapstructure:"model"`
	MaxChars int           `mapstructure:"max_chars"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        LogConfig        `mapstructure:"log"`
	CORS       CORSConfig       `mapstructure:"cors"`
	App        AppConfig        `mapstructure:"app"`
	Auth       AuthConfig       `mapstructure:"auth"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Sync       SyncConfig       `mapstructure:"sync"`
	S3         S3Config         `mapstructure:"s3"`
	GCS        GCSConfig        `mapstructure:"gcs"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
}

var Cfg Config

func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// 環境変数は APP_SERVER_PORT のように接頭辞をつけて上書きできる
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.BindEnv("auth.enabled", "AUTH_ENABLED")
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("redis.addr", "REDIS_ADDR")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// Auth.Enabled は明示されていなければ false (ローカル利用を想定)
	if !v.IsSet("auth.enabled") {
		log.Println("Auth enabled flag not set, defaulting to false (dev identity header)")
		cfg.Auth.Enabled = DefaultAuthEnabled
	}

	ApplyDefaults(&cfg)
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)
	log.Printf("Sync: enabled=%t provider=%s", Cfg.Sync.Enabled, Cfg.Sync.Provider)
	log.Printf("Extraction Provider: %s", Cfg.Extraction.Provider)

	return nil
}

// ApplyDefaults は未設定の項目にデフォルト値を入れます。テストからも利用します。
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Database.URL == "" {
		log.Printf("Database URL not set, using local sqlite file '%s'", DefaultDatabaseURL)
		cfg.Database.URL = DefaultDatabaseURL
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.App.Name == "" {
		cfg.App.Name = AppName
	}
	if cfg.App.MinSetCards <= 0 {
		cfg.App.MinSetCards = DefaultMinSetCards
	}
	if cfg.App.MinQuizCards <= 0 {
		cfg.App.MinQuizCards = DefaultMinQuizCards
	}
	if cfg.App.MinMatchCards <= 0 {
		cfg.App.MinMatchCards = DefaultMinMatchCards
	}
	if cfg.App.MismatchDelay <= 0 {
		cfg.App.MismatchDelay = DefaultMismatchDelay
	}
	if cfg.App.PlayTTL <= 0 {
		cfg.App.PlayTTL = DefaultPlayTTL
	}
	if cfg.App.MaxUploadBytes <= 0 {
		cfg.App.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = cfg.App.Name
	}
	if cfg.Sync.Provider == "" {
		cfg.Sync.Provider = "none"
	}
	if cfg.Sync.Prefix == "" {
		cfg.Sync.Prefix = DefaultSyncPrefix
	}
	if cfg.Sync.CacheTTL <= 0 {
		cfg.Sync.CacheTTL = DefaultSyncCacheTTL
	}
	if cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = DefaultRedisPrefix
	}
	if cfg.Extraction.Provider == "" {
		cfg.Extraction.Provider = "mock"
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = DefaultOpenAIModel
	}
	if cfg.OpenAI.MaxChars <= 0 {
		cfg.OpenAI.MaxChars = DefaultOpenAIMaxChars
	}
	if cfg.OpenAI.Timeout <= 0 {
		cfg.OpenAI.Timeout = DefaultOpenAITimeout
	}
}
