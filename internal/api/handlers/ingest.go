package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/draftsmith-ai/draftsmith/internal/api"
	"github.com/draftsmith-ai/draftsmith/internal/domain"
)

// IngestService runs ingestion passes for the ingest endpoint
type IngestService interface {
	Ingest(ctx context.Context, force bool) (*domain.IngestResult, error)
}

type IngestHandler struct {
	svc IngestService
}

func NewIngestHandler(svc IngestService) *IngestHandler {
	return &IngestHandler{svc: svc}
}

type IngestRequest struct {
	Force bool `json:"force,omitempty"`
}

// Ingest runs one change-aware ingestion pass. An empty body means a normal
// (non-forced) run.
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	result, err := h.svc.Ingest(r.Context(), req.Force)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, result)
}
