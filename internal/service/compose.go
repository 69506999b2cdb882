package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
	"github.com/draftsmith-ai/draftsmith/internal/telemetry"
)

// GenerationRequest is everything the generation service receives. The
// assembled context goes through verbatim; drafting is entirely the
// service's concern.
type GenerationRequest struct {
	Topic           string
	StyleDirectives string
	Context         string
}

// GenerationClient defines the interface to the draft generation service
type GenerationClient interface {
	GenerateDraft(ctx context.Context, req GenerationRequest) (string, error)
}

// ContextProvider supplies grounding bundles for composition
type ContextProvider interface {
	GetContext(ctx context.Context, query domain.ContextQuery) (*domain.ContextResult, error)
}

// ComposeInput describes one composition request
type ComposeInput struct {
	Query           domain.ContextQuery
	StyleDirectives string
	// OutDir, when set, receives a per-run directory with draft.md and the
	// bundle.json that grounded it.
	OutDir string
}

// ComposeService drives the full loop: assemble context, hand it to the
// generation service, persist draft and bundle together
type ComposeService struct {
	contexts  ContextProvider
	generator GenerationClient
	uuidGen   UUIDGenerator
}

// NewComposeService creates a new ComposeService. generator may be nil, in
// which case composition reports the generation service as unavailable.
func NewComposeService(contexts ContextProvider, generator GenerationClient) *ComposeService {
	return &ComposeService{
		contexts:  contexts,
		generator: generator,
		uuidGen:   &DefaultUUIDGenerator{},
	}
}

// Compose builds the bundle for the topic and asks the generation service
// for a draft grounded in it
func (s *ComposeService) Compose(ctx context.Context, input ComposeInput) (*domain.ComposeResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ComposeService.Compose", telemetry.SpanAttributes{
		Topic:     input.Query.Topic,
		Operation: "compose",
	})
	defer span.End()

	if s.generator == nil {
		return nil, domain.ErrGenerationUnavailable
	}

	contextResult, err := s.contexts.GetContext(ctx, input.Query)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	bundle := contextResult.Bundle

	draft, err := s.generator.GenerateDraft(ctx, GenerationRequest{
		Topic:           input.Query.Topic,
		StyleDirectives: input.StyleDirectives,
		Context:         RenderBundle(bundle),
	})
	if err != nil {
		span.SetError(err)
		return nil, domain.ErrGenerationUnavailable.WithCause(err)
	}

	if input.OutDir != "" {
		if err := s.persist(input.OutDir, input.Query.Topic, draft, bundle); err != nil {
			span.SetError(err)
			return nil, err
		}
	}

	return &domain.ComposeResult{
		Success: true,
		Draft:   draft,
		Bundle:  bundle,
		Errors:  contextResult.Errors,
	}, nil
}

// persist writes the draft next to the bundle that grounded it, so any
// output can be traced back to its exact context
func (s *ComposeService) persist(outDir, topic, draft string, bundle *domain.ContextBundle) error {
	dir := filepath.Join(outDir, fmt.Sprintf("%s-%s", time.Now().UTC().Format("20060102-150405"), slugify(topic)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir %s: %w", dir, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "draft.md"), []byte(draft), 0o644); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bundle: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bundle.json"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}

	return nil
}

// RenderBundle flattens a bundle into the text handed to the generation
// service. Block text is passed through verbatim under a provenance header.
func RenderBundle(b *domain.ContextBundle) string {
	var sb strings.Builder
	for _, blk := range b.Blocks {
		fmt.Fprintf(&sb, "--- %s | %s | %s ---\n", blk.Type, blk.Reason, blk.SourceLabel)
		sb.WriteString(blk.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// slugify turns a topic into a filesystem-friendly directory suffix
func slugify(topic string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(topic) {
		switch {
		case 'a' <= r && r <= 'z' || '0' <= r && r <= '9':
			sb.WriteRune(r)
		case sb.Len() > 0 && !strings.HasSuffix(sb.String(), "-"):
			sb.WriteRune('-')
		}
	}
	slug := strings.Trim(sb.String(), "-")
	if len(slug) > 40 {
		slug = slug[:40]
	}
	if slug == "" {
		slug = "draft"
	}
	return slug
}
