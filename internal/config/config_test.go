package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origKey := os.Getenv("GEMINI_API_KEY")
	defer os.Setenv("GEMINI_API_KEY", origKey)

	os.Setenv("GEMINI_API_KEY", "test-key")
	os.Setenv("MAX_AUDIO_SIZE_MB", "50")
	os.Setenv("MINIO_USE_SSL", "true")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	defer func() {
		os.Unsetenv("MAX_AUDIO_SIZE_MB")
		os.Unsetenv("MINIO_USE_SSL")
		os.Unsetenv("DB_MAX_OPEN_CONNS")
	}()

	cfg := Load()

	assert.Equal(t, "test-key", cfg.GenAI.APIKey)
	assert.Equal(t, int64(50*1024*1024), cfg.GenAI.MaxAudioBytes)
	assert.Equal(t, "gemini-2.5-flash", cfg.GenAI.TranscribeModel)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "data/reports", cfg.Paths.ReportDir)
}

func TestValidate(t *testing.T) {
	cfg := &AppConfig{
		GenAI: GenAIConfig{APIKey: "k"},
		Auth:  AuthConfig{APIKey: "k"},
		MinIO: MinIOConfig{
			Endpoint:  "localhost:9000",
			AccessKey: "a",
			SecretKey: "s",
			Bucket:    "b",
		},
		Database: DatabaseConfig{Host: "h", User: "u", Name: "n"},
	}
	assert.NoError(t, cfg.Validate())

	t.Run("missing required values are all reported", func(t *testing.T) {
		empty := &AppConfig{}
		err := empty.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
		assert.Contains(t, err.Error(), "MINIO_BUCKET")
		assert.Contains(t, err.Error(), "DB_HOST")
	})

	t.Run("local validation only needs the generation key", func(t *testing.T) {
		local := &AppConfig{GenAI: GenAIConfig{APIKey: "k"}}
		assert.NoError(t, local.ValidateLocal())

		assert.Error(t, (&AppConfig{}).ValidateLocal())
	})
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
