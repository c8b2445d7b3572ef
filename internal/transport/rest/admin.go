package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/twin-backend/internal/domain"
	"github.com/heartmarshall/twin-backend/internal/service/entries"
	"github.com/heartmarshall/twin-backend/internal/service/metrics"
)

type entryWriter interface {
	Create(ctx context.Context, input entries.CreateInput) (*domain.Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type metricsWriter interface {
	UpsertToday(ctx context.Context, input metrics.UpsertInput) (*domain.DailyMetrics, error)
}

// AdminHandler serves the write endpoints. Routes must be wrapped with
// middleware.AdminOnly.
type AdminHandler struct {
	entries entryWriter
	metrics metricsWriter
	log     *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(entries entryWriter, metrics metricsWriter, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		entries: entries,
		metrics: metrics,
		log:     logger.With("handler", "admin"),
	}
}

type createEntryRequest struct {
	Content  string         `json:"content"`
	Tags     []string       `json:"tags"`
	Source   string         `json:"source"`
	Metadata map[string]any `json:"metadata"`
}

// CreateEntry handles POST /api/entries.
func (h *AdminHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.entries.Create(r.Context(), entries.CreateInput{
		Content:  req.Content,
		Tags:     req.Tags,
		Source:   req.Source,
		Metadata: req.Metadata,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(e))
}

// DeleteEntry handles DELETE /api/entries/{id}.
func (h *AdminHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.entries.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type upsertMetricsRequest struct {
	Steps        *int    `json:"steps"`
	EntryCount   *int    `json:"entry_count"`
	CurrentMusic *string `json:"current_music"`
}

// UpsertTodayMetrics handles PUT /api/metrics/today. Omitted fields keep
// their stored values.
func (h *AdminHandler) UpsertTodayMetrics(w http.ResponseWriter, r *http.Request) {
	var req upsertMetricsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.metrics.UpsertToday(r.Context(), metrics.UpsertInput{
		Steps:        req.Steps,
		EntryCount:   req.EntryCount,
		CurrentMusic: req.CurrentMusic,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toMetricsResponse(m))
}
