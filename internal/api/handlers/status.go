package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/draftsmith-ai/draftsmith/internal/api"
	"github.com/draftsmith-ai/draftsmith/internal/domain"
	"github.com/draftsmith-ai/draftsmith/internal/pagination"
)

// StatusService reports corpus state and pages through the index
type StatusService interface {
	Status(ctx context.Context) (*domain.StatusReport, error)
	ListItems(ctx context.Context, cursor string, limit int) (*pagination.PageResult[domain.IndexRecord], error)
}

type StatusHandler struct {
	svc StatusService
}

func NewStatusHandler(svc StatusService) *StatusHandler {
	return &StatusHandler{svc: svc}
}

// Status summarizes the current index: counts per type, embedded coverage,
// last run timestamps.
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Status(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, report)
}

// ListItems pages through index records, most recently processed first
func (h *StatusHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			api.Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	page, err := h.svc.ListItems(r.Context(), cursor, limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, page)
}
