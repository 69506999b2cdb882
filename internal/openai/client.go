// Package openai adapts the OpenAI API to the engine's two collaborator
// interfaces: the embedding service used for semantic scoring and the
// completion service used for draft generation. Both are optional; the
// engine runs without either.
package openai

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/draftsmith-ai/draftsmith/internal/service"
)

const (
	// DefaultEmbeddingModel is the OpenAI model used for preview embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
	// DefaultCompletionModel is the OpenAI model used for draft generation
	DefaultCompletionModel = openai.GPT4oMini

	draftSystemPrompt = "You are a ghostwriter. Write a draft on the given topic, " +
		"grounded strictly in the provided context material. Match the voice of any " +
		"style guide blocks in the context. Do not invent facts absent from the context."
)

var (
	// ErrEmptyText is returned when text is empty
	ErrEmptyText = errors.New("text cannot be empty")
	// ErrNoAPIKey is returned when OpenAI API key is not set
	ErrNoAPIKey = errors.New("OPENAI_API_KEY environment variable not set")
)

// EmbeddingAPI defines the interface for embedding generation
type EmbeddingAPI interface {
	CreateEmbeddings(ctx context.Context, text string) ([]float32, error)
}

// CompletionAPI defines the interface for chat completion
type CompletionAPI interface {
	CreateCompletion(ctx context.Context, system, user string) (string, error)
}

// EmbeddingClient wraps the OpenAI embeddings API behind the engine's
// EmbeddingClient interface
type EmbeddingClient struct {
	api EmbeddingAPI
}

// OpenAIAdapter calls the real OpenAI API for both embeddings and completions
type OpenAIAdapter struct {
	client          *openai.Client
	embeddingModel  openai.EmbeddingModel
	completionModel string
}

// NewOpenAIAdapter creates an adapter. Empty model names fall back to the
// defaults.
func NewOpenAIAdapter(apiKey string, embeddingModel openai.EmbeddingModel, completionModel string) *OpenAIAdapter {
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	if completionModel == "" {
		completionModel = DefaultCompletionModel
	}
	return &OpenAIAdapter{
		client:          openai.NewClient(apiKey),
		embeddingModel:  embeddingModel,
		completionModel: completionModel,
	}
}

// CreateEmbeddings calls the OpenAI API to create embeddings
func (a *OpenAIAdapter) CreateEmbeddings(ctx context.Context, text string) ([]float32, error) {
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: a.embeddingModel,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding data returned")
	}

	return resp.Data[0].Embedding, nil
}

// CreateCompletion calls the OpenAI chat completions API
func (a *OpenAIAdapter) CreateCompletion(ctx context.Context, system, user string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.completionModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// Config holds model selection for both clients
type Config struct {
	APIKey          string
	EmbeddingModel  openai.EmbeddingModel
	CompletionModel string
}

// NewEmbeddingClient creates an embedding client using defaults
func NewEmbeddingClient(apiKey string) *EmbeddingClient {
	return NewEmbeddingClientWithConfig(Config{APIKey: apiKey})
}

// NewEmbeddingClientWithConfig creates an embedding client with explicit configuration
func NewEmbeddingClientWithConfig(cfg Config) *EmbeddingClient {
	return &EmbeddingClient{
		api: NewOpenAIAdapter(cfg.APIKey, cfg.EmbeddingModel, cfg.CompletionModel),
	}
}

// NewEmbeddingClientFromEnv creates an embedding client using the
// OPENAI_API_KEY environment variable
func NewEmbeddingClientFromEnv() (*EmbeddingClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	return NewEmbeddingClient(apiKey), nil
}

// GenerateEmbedding generates an embedding for the given text
func (c *EmbeddingClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	embedding, err := c.api.CreateEmbeddings(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}

	if len(embedding) == 0 {
		return nil, errors.New("empty embedding returned")
	}

	return embedding, nil
}

// GenerationClient wraps the OpenAI chat completions API behind the engine's
// GenerationClient interface. The assembled context goes into the prompt
// verbatim; the engine never inspects the draft.
type GenerationClient struct {
	api CompletionAPI
}

// NewGenerationClient creates a generation client using defaults
func NewGenerationClient(apiKey string) *GenerationClient {
	return NewGenerationClientWithConfig(Config{APIKey: apiKey})
}

// NewGenerationClientWithConfig creates a generation client with explicit configuration
func NewGenerationClientWithConfig(cfg Config) *GenerationClient {
	return &GenerationClient{
		api: NewOpenAIAdapter(cfg.APIKey, cfg.EmbeddingModel, cfg.CompletionModel),
	}
}

// GenerateDraft asks the completion service for a draft grounded in the
// request's context
func (c *GenerationClient) GenerateDraft(ctx context.Context, req service.GenerationRequest) (string, error) {
	if req.Topic == "" {
		return "", ErrEmptyText
	}

	user := fmt.Sprintf("Topic: %s\n", req.Topic)
	if req.StyleDirectives != "" {
		user += fmt.Sprintf("Style directives: %s\n", req.StyleDirectives)
	}
	user += "\nContext material:\n\n" + req.Context

	draft, err := c.api.CreateCompletion(ctx, draftSystemPrompt, user)
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}

	return draft, nil
}
