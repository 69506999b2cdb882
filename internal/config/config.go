package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	// DataDir holds the ledger, index, cache, vectors and lock files.
	DataDir   string `envconfig:"DATA_DIR" default:".draftsmith"`
	RootsFile string `envconfig:"ROOTS_FILE" default:"corpus.yaml"`

	MaxContentChars int `envconfig:"MAX_CONTENT_CHARS" default:"24000"`
	PreviewChars    int `envconfig:"PREVIEW_CHARS" default:"480"`
	BatchSize       int `envconfig:"BATCH_SIZE" default:"25"`
	DefaultMaxItems int `envconfig:"DEFAULT_MAX_ITEMS" default:"8"`

	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`
	EmbeddingModel  string `envconfig:"EMBEDDING_MODEL" default:"text-embedding-3-small"`
	CompletionModel string `envconfig:"COMPLETION_MODEL" default:"gpt-4o-mini"`

	// APIToken, when set, is required as a bearer token on every daemon
	// endpoint except /health.
	APIToken string `envconfig:"API_TOKEN"`

	// AutoIngestInterval enables periodic background ingestion in serve
	// mode. Zero disables the scheduler.
	AutoIngestInterval time.Duration `envconfig:"AUTO_INGEST_INTERVAL" default:"0"`

	// Archiving keeps an uncapped copy of every ingested file. Local by
	// default; S3-compatible storage is used when the S3 settings are set.
	ArchiveEnabled bool `envconfig:"ARCHIVE_ENABLED" default:"true"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"draftsmith-archive"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("DRAFTSMITH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.PreviewChars > cfg.MaxContentChars {
		return nil, fmt.Errorf("PREVIEW_CHARS (%d) cannot exceed MAX_CONTENT_CHARS (%d)", cfg.PreviewChars, cfg.MaxContentChars)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

func (c *Config) HasAPIToken() bool {
	return c.APIToken != ""
}
