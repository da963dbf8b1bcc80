package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// GenAIConfig holds settings for the external generation services
// (speech-to-text and summarization).
type GenAIConfig struct {
	APIKey          string
	TranscribeModel string
	SummaryModel    string
	TimeoutSec      int
	MaxAudioBytes   int64
}

// AuthConfig holds settings for the external identity-verification service.
type AuthConfig struct {
	VerifyURL string
	APIKey    string
}

// PathsConfig holds the local data directories used by the CLI entry point.
type PathsConfig struct {
	AudioDir    string
	TemplateDir string
	ReportDir   string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated once from environment variables at process start and
// treated as immutable afterwards. Sensitive values are not hardcoded.
type AppConfig struct {
	Host        string
	Port        string
	FrontendURL string
	GenAI       GenAIConfig
	Auth        AuthConfig
	Database    DatabaseConfig
	MinIO       MinIOConfig
	Paths       PathsConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	maxAudioMB := getEnvInt("MAX_AUDIO_SIZE_MB", 100)

	return &AppConfig{
		Host:        getEnv("API_HOST", "0.0.0.0"),
		Port:        getEnv("API_PORT", "8000"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		GenAI: GenAIConfig{
			APIKey:          getEnv("GEMINI_API_KEY", ""),
			TranscribeModel: getEnv("GEMINI_TRANSCRIBE_MODEL", "gemini-2.5-flash"),
			SummaryModel:    getEnv("GEMINI_SUMMARY_MODEL", "gemini-2.5-flash"),
			TimeoutSec:      getEnvInt("GENAI_TIMEOUT_SEC", 600),
			MaxAudioBytes:   int64(maxAudioMB) * 1024 * 1024,
		},
		Auth: AuthConfig{
			VerifyURL: getEnv("IDENTITY_VERIFY_URL", "https://identitytoolkit.googleapis.com/v1/accounts:lookup"),
			APIKey:    getEnv("IDENTITY_API_KEY", ""),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Paths: PathsConfig{
			AudioDir:    getEnv("AUDIO_FILES_DIR", "data/audio_files"),
			TemplateDir: getEnv("REPORT_TEMPLATES_DIR", "data/report_templates"),
			ReportDir:   getEnv("REPORTS_DIR", "data/reports"),
		},
	}
}

// Validate checks that every value the API server depends on is present.
// Missing required configuration is a fatal startup error, not a per-request error.
func (c *AppConfig) Validate() error {
	var missing []string

	if c.GenAI.APIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.Auth.APIKey == "" {
		missing = append(missing, "IDENTITY_API_KEY")
	}
	if c.MinIO.Endpoint == "" {
		missing = append(missing, "MINIO_ENDPOINT")
	}
	if c.MinIO.AccessKey == "" {
		missing = append(missing, "MINIO_ACCESS_KEY")
	}
	if c.MinIO.SecretKey == "" {
		missing = append(missing, "MINIO_SECRET_KEY")
	}
	if c.MinIO.Bucket == "" {
		missing = append(missing, "MINIO_BUCKET")
	}
	if c.Database.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if c.Database.User == "" {
		missing = append(missing, "DB_USER")
	}
	if c.Database.Name == "" {
		missing = append(missing, "DB_NAME")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateLocal checks only what the CLI entry point needs: the generation
// services API key. Storage, auth and database are not involved locally.
func (c *AppConfig) ValidateLocal() error {
	if c.GenAI.APIKey == "" {
		return fmt.Errorf("missing required environment variables: GEMINI_API_KEY")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
