package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

// siteReader is the read side of site.Store. Failures arrive as empty results.
type siteReader interface {
	ListEntriesBySource(ctx context.Context, source string, limit int) []domain.Entry
	ListBooks(ctx context.Context) []domain.Entry
	ListProtocols(ctx context.Context) []domain.Entry
	GetEntryByID(ctx context.Context, id uuid.UUID) *domain.Entry
	GetEntriesRelatedToParent(ctx context.Context, parentID uuid.UUID) []domain.Entry
	GetTodayMetrics(ctx context.Context) *domain.DailyMetrics
}

// ContentHandler serves the public, read-only pages data.
type ContentHandler struct {
	store siteReader
	log   *slog.Logger
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(store siteReader, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{store: store, log: logger.With("handler", "content")}
}

// ListEntries handles GET /api/entries?limit=&source=.
func (h *ContentHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			handleError(h.log, w, r, domain.NewValidationError("limit", "must be a non-negative integer"))
			return
		}
		limit = n
	}

	list := h.store.ListEntriesBySource(r.Context(), q.Get("source"), limit)
	writeJSON(w, http.StatusOK, toEntryList(list))
}

// ListBooks handles GET /api/books.
func (h *ContentHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toEntryList(h.store.ListBooks(r.Context())))
}

// ListProtocols handles GET /api/protocols.
func (h *ContentHandler) ListProtocols(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toEntryList(h.store.ListProtocols(r.Context())))
}

// GetEntry handles GET /api/entries/{id}. Malformed ids are reported as
// not found, same as ids of other sites.
func (h *ContentHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	e := h.store.GetEntryByID(r.Context(), id)
	if e == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(e))
}

// ListRelated handles GET /api/entries/{id}/related.
func (h *ContentHandler) ListRelated(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusOK, []entryResponse{})
		return
	}
	writeJSON(w, http.StatusOK, toEntryList(h.store.GetEntriesRelatedToParent(r.Context(), id)))
}

// TodayMetrics handles GET /api/metrics/today.
func (h *ContentHandler) TodayMetrics(w http.ResponseWriter, r *http.Request) {
	m := h.store.GetTodayMetrics(r.Context())
	if m == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, toMetricsResponse(m))
}
