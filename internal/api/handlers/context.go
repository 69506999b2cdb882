package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/draftsmith-ai/draftsmith/internal/api"
	"github.com/draftsmith-ai/draftsmith/internal/domain"
	"github.com/draftsmith-ai/draftsmith/internal/service"
)

// ContextService assembles grounding bundles and composes drafts
type ContextService interface {
	GetContext(ctx context.Context, query domain.ContextQuery) (*domain.ContextResult, error)
	Compose(ctx context.Context, input service.ComposeInput) (*domain.ComposeResult, error)
	CanCompose() bool
}

type ContextHandler struct {
	svc ContextService
}

func NewContextHandler(svc ContextService) *ContextHandler {
	return &ContextHandler{svc: svc}
}

type ContextRequest struct {
	Topic    string `json:"topic"`
	TypeHint string `json:"type_hint,omitempty"`
	MaxItems int    `json:"max_items,omitempty"`
}

type ComposeRequest struct {
	Topic           string `json:"topic"`
	TypeHint        string `json:"type_hint,omitempty"`
	MaxItems        int    `json:"max_items,omitempty"`
	StyleDirectives string `json:"style_directives,omitempty"`
}

func queryFromRequest(topic, typeHint string, maxItems int) (domain.ContextQuery, error) {
	query := domain.ContextQuery{
		Topic:    topic,
		MaxItems: maxItems,
	}
	if typeHint != "" {
		ct, err := domain.ParseContentType(typeHint)
		if err != nil {
			return domain.ContextQuery{}, err
		}
		query.TypeHint = ct
	}
	return query, nil
}

// GetContext builds a scored, quota-balanced bundle for the requested topic
func (h *ContextHandler) GetContext(w http.ResponseWriter, r *http.Request) {
	var req ContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	query, err := queryFromRequest(req.Topic, req.TypeHint, req.MaxItems)
	if err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.GetContext(r.Context(), query)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, result)
}

// Compose assembles a bundle and generates a draft grounded in it. Returns
// 503 when the daemon runs without a generation client.
func (h *ContextHandler) Compose(w http.ResponseWriter, r *http.Request) {
	if !h.svc.CanCompose() {
		api.Error(w, http.StatusServiceUnavailable, "draft generation is not configured")
		return
	}

	var req ComposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	query, err := queryFromRequest(req.Topic, req.TypeHint, req.MaxItems)
	if err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Compose(r.Context(), service.ComposeInput{
		Query:           query,
		StyleDirectives: req.StyleDirectives,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, result)
}
