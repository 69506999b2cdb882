package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithEnvVars(t *testing.T) {
	os.Setenv("DRAFTSMITH_PORT", "9090")
	os.Setenv("DRAFTSMITH_DEBUG", "true")
	os.Setenv("DRAFTSMITH_DATA_DIR", "/tmp/ds-data")
	os.Setenv("DRAFTSMITH_ROOTS_FILE", "/tmp/corpus.yaml")
	os.Setenv("DRAFTSMITH_MAX_CONTENT_CHARS", "1000")
	os.Setenv("DRAFTSMITH_PREVIEW_CHARS", "100")
	os.Setenv("DRAFTSMITH_OPENAI_API_KEY", "sk-test")
	os.Setenv("DRAFTSMITH_API_TOKEN", "secret-token")
	os.Setenv("DRAFTSMITH_AUTO_INGEST_INTERVAL", "5m")
	os.Setenv("DRAFTSMITH_S3_ENDPOINT", "http://localhost:9000")
	os.Setenv("DRAFTSMITH_S3_ACCESS_KEY_ID", "key")
	os.Setenv("DRAFTSMITH_S3_SECRET_ACCESS_KEY", "secret")
	defer func() {
		os.Unsetenv("DRAFTSMITH_PORT")
		os.Unsetenv("DRAFTSMITH_DEBUG")
		os.Unsetenv("DRAFTSMITH_DATA_DIR")
		os.Unsetenv("DRAFTSMITH_ROOTS_FILE")
		os.Unsetenv("DRAFTSMITH_MAX_CONTENT_CHARS")
		os.Unsetenv("DRAFTSMITH_PREVIEW_CHARS")
		os.Unsetenv("DRAFTSMITH_OPENAI_API_KEY")
		os.Unsetenv("DRAFTSMITH_API_TOKEN")
		os.Unsetenv("DRAFTSMITH_AUTO_INGEST_INTERVAL")
		os.Unsetenv("DRAFTSMITH_S3_ENDPOINT")
		os.Unsetenv("DRAFTSMITH_S3_ACCESS_KEY_ID")
		os.Unsetenv("DRAFTSMITH_S3_SECRET_ACCESS_KEY")
	}()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/tmp/ds-data", cfg.DataDir)
	assert.Equal(t, "/tmp/corpus.yaml", cfg.RootsFile)
	assert.Equal(t, 1000, cfg.MaxContentChars)
	assert.Equal(t, 100, cfg.PreviewChars)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "secret-token", cfg.APIToken)
	assert.Equal(t, 5*time.Minute, cfg.AutoIngestInterval)
	assert.Equal(t, "http://localhost:9000", cfg.S3Endpoint)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, ".draftsmith", cfg.DataDir)
	assert.Equal(t, "corpus.yaml", cfg.RootsFile)
	assert.Equal(t, 24000, cfg.MaxContentChars)
	assert.Equal(t, 480, cfg.PreviewChars)
	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, 8, cfg.DefaultMaxItems)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, time.Duration(0), cfg.AutoIngestInterval)
	assert.True(t, cfg.ArchiveEnabled)
	assert.Equal(t, "draftsmith-archive", cfg.S3Bucket)
	assert.Equal(t, "us-east-1", cfg.S3Region)
}

func TestLoad_RejectsPreviewLargerThanCap(t *testing.T) {
	os.Setenv("DRAFTSMITH_MAX_CONTENT_CHARS", "100")
	os.Setenv("DRAFTSMITH_PREVIEW_CHARS", "500")
	defer func() {
		os.Unsetenv("DRAFTSMITH_MAX_CONTENT_CHARS")
		os.Unsetenv("DRAFTSMITH_PREVIEW_CHARS")
	}()

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "PREVIEW_CHARS")
}

func TestHasS3(t *testing.T) {
	cfg := &Config{
		S3Endpoint:  "http://localhost:9000",
		S3AccessKey: "key",
		S3SecretKey: "secret",
	}
	assert.True(t, cfg.HasS3())

	cfg.S3Endpoint = ""
	assert.False(t, cfg.HasS3())
}

func TestHasOpenAI(t *testing.T) {
	cfg := &Config{OpenAIAPIKey: "sk-test"}
	assert.True(t, cfg.HasOpenAI())

	cfg.OpenAIAPIKey = ""
	assert.False(t, cfg.HasOpenAI())
}

func TestHasAPIToken(t *testing.T) {
	cfg := &Config{APIToken: "secret"}
	assert.True(t, cfg.HasAPIToken())

	cfg.APIToken = ""
	assert.False(t, cfg.HasAPIToken())
}
