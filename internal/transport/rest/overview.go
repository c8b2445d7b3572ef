package rest

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/twin-backend/internal/domain"
	"github.com/heartmarshall/twin-backend/internal/service/entries"
)

// OverviewLatest is the number of newest entries on the overview.
const OverviewLatest = 5

type overviewStore interface {
	GetTodayMetrics(ctx context.Context) *domain.DailyMetrics
	ListEntries(ctx context.Context, limit int) []domain.Entry
	ListBooks(ctx context.Context) []domain.Entry
	ListProtocols(ctx context.Context) []domain.Entry
}

type entryCounter interface {
	Count(ctx context.Context) (entries.Counts, error)
}

// OverviewHandler assembles the home page in a single response.
type OverviewHandler struct {
	store   overviewStore
	counter entryCounter
	log     *slog.Logger
}

// NewOverviewHandler creates an OverviewHandler.
func NewOverviewHandler(store overviewStore, counter entryCounter, logger *slog.Logger) *OverviewHandler {
	return &OverviewHandler{store: store, counter: counter, log: logger.With("handler", "overview")}
}

type overviewResponse struct {
	Metrics   *metricsResponse `json:"metrics"`
	Latest    []entryResponse  `json:"latest"`
	Books     []entryResponse  `json:"books"`
	Protocols []entryResponse  `json:"protocols"`
	Counts    *entries.Counts  `json:"counts"`
}

// Overview handles GET /api/overview. Parts are fetched concurrently and a
// failing part is returned empty (or null) without failing the others.
func (h *OverviewHandler) Overview(w http.ResponseWriter, r *http.Request) {
	var (
		resp overviewResponse
		g, _ = errgroup.WithContext(r.Context())
		ctx  = r.Context()
	)

	g.Go(func() error {
		resp.Metrics = toMetricsResponse(h.store.GetTodayMetrics(ctx))
		return nil
	})
	g.Go(func() error {
		resp.Latest = toEntryList(h.store.ListEntries(ctx, OverviewLatest))
		return nil
	})
	g.Go(func() error {
		resp.Books = toEntryList(h.store.ListBooks(ctx))
		return nil
	})
	g.Go(func() error {
		resp.Protocols = toEntryList(h.store.ListProtocols(ctx))
		return nil
	})
	g.Go(func() error {
		c, err := h.counter.Count(ctx)
		if err != nil {
			h.log.ErrorContext(ctx, "count entries", slog.String("error", err.Error()))
			return nil
		}
		resp.Counts = &c
		return nil
	})

	_ = g.Wait()

	writeJSON(w, http.StatusOK, resp)
}
