// Package site provides Store, the convenience view of the site's data that
// replaces every data error with an empty result.
package site

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/twin-backend/internal/domain"
	"github.com/heartmarshall/twin-backend/internal/service/entries"
	"github.com/heartmarshall/twin-backend/internal/service/metrics"
)

type entryService interface {
	List(ctx context.Context, input entries.ListInput) ([]domain.Entry, error)
	Books(ctx context.Context, limit int) ([]domain.Entry, error)
	Protocols(ctx context.Context, limit int) ([]domain.Entry, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	Related(ctx context.Context, parentID uuid.UUID) ([]domain.Entry, error)
	Create(ctx context.Context, input entries.CreateInput) (*domain.Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type metricsService interface {
	GetToday(ctx context.Context) (*domain.DailyMetrics, error)
	UpsertToday(ctx context.Context, input metrics.UpsertInput) (*domain.DailyMetrics, error)
}

type foldRecorder interface {
	StoreFold(op string)
}

// Store folds failures into empty slices, nil or false. Configuration errors
// are not data errors: Store panics with them.
type Store struct {
	entries entryService
	metrics metricsService
	folds   foldRecorder
	site    domain.SiteKey
	log     *slog.Logger
}

// NewStore creates a Store. folds may be nil.
func NewStore(log *slog.Logger, site domain.SiteKey, entries entryService, metrics metricsService, folds foldRecorder) *Store {
	return &Store{
		entries: entries,
		metrics: metrics,
		folds:   folds,
		site:    site,
		log:     log.With("service", "site_store", "site", site.String()),
	}
}

// fold logs and counts a swallowed error.
func (s *Store) fold(ctx context.Context, op string, err error) {
	if errors.Is(err, domain.ErrConfiguration) {
		panic(err)
	}

	if s.folds != nil {
		s.folds.StoreFold(op)
	}

	if errors.Is(err, domain.ErrNotFound) {
		s.log.DebugContext(ctx, "store: not found", slog.String("op", op))
		return
	}
	s.log.ErrorContext(ctx, "store: operation failed",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
}

func emptyIfNil(list []domain.Entry) []domain.Entry {
	if list == nil {
		return []domain.Entry{}
	}
	return list
}

// ---------------------------------------------------------------------------
// Entries
// ---------------------------------------------------------------------------

// ListEntries returns up to limit entries, newest first. A limit of zero or
// less returns every entry of the site; larger limits are capped at
// entries.MaxLimit.
func (s *Store) ListEntries(ctx context.Context, limit int) []domain.Entry {
	return s.list(ctx, "ListEntries", "", limit)
}

// ListEntriesBySource is ListEntries restricted to one source. An empty
// source matches every entry.
func (s *Store) ListEntriesBySource(ctx context.Context, source string, limit int) []domain.Entry {
	return s.list(ctx, "ListEntriesBySource", source, limit)
}

func (s *Store) list(ctx context.Context, op, source string, limit int) []domain.Entry {
	limit = max(0, min(limit, entries.MaxLimit))
	list, err := s.entries.List(ctx, entries.ListInput{Source: source, Limit: limit})
	if err != nil {
		s.fold(ctx, op, err)
		return []domain.Entry{}
	}
	return emptyIfNil(list)
}

// ListBooks returns every book entry, newest first.
func (s *Store) ListBooks(ctx context.Context) []domain.Entry {
	list, err := s.entries.Books(ctx, 0)
	if err != nil {
		s.fold(ctx, "ListBooks", err)
		return []domain.Entry{}
	}
	return emptyIfNil(list)
}

// ListProtocols returns every protocol entry, newest first.
func (s *Store) ListProtocols(ctx context.Context) []domain.Entry {
	list, err := s.entries.Protocols(ctx, 0)
	if err != nil {
		s.fold(ctx, "ListProtocols", err)
		return []domain.Entry{}
	}
	return emptyIfNil(list)
}

// GetEntryByID returns the entry or nil.
func (s *Store) GetEntryByID(ctx context.Context, id uuid.UUID) *domain.Entry {
	e, err := s.entries.Get(ctx, id)
	if err != nil {
		s.fold(ctx, "GetEntryByID", err)
		return nil
	}
	return e
}

// GetEntriesRelatedToParent returns the entries linked to parentID, oldest first.
func (s *Store) GetEntriesRelatedToParent(ctx context.Context, parentID uuid.UUID) []domain.Entry {
	list, err := s.entries.Related(ctx, parentID)
	if err != nil {
		s.fold(ctx, "GetEntriesRelatedToParent", err)
		return []domain.Entry{}
	}
	return emptyIfNil(list)
}

// CreateEntry stores a new entry and returns it, or nil on failure.
func (s *Store) CreateEntry(ctx context.Context, input entries.CreateInput) *domain.Entry {
	e, err := s.entries.Create(ctx, input)
	if err != nil {
		s.fold(ctx, "CreateEntry", err)
		return nil
	}
	return e
}

// DeleteEntry reports whether the request completed without error.
func (s *Store) DeleteEntry(ctx context.Context, id uuid.UUID) bool {
	if err := s.entries.Delete(ctx, id); err != nil {
		s.fold(ctx, "DeleteEntry", err)
		return false
	}
	return true
}

// ---------------------------------------------------------------------------
// Metrics
// ---------------------------------------------------------------------------

// GetTodayMetrics returns today's row or nil.
func (s *Store) GetTodayMetrics(ctx context.Context) *domain.DailyMetrics {
	m, err := s.metrics.GetToday(ctx)
	if err != nil {
		s.fold(ctx, "GetTodayMetrics", err)
		return nil
	}
	return m
}

// UpsertTodayMetrics writes today's row and returns it, or nil on failure.
func (s *Store) UpsertTodayMetrics(ctx context.Context, input metrics.UpsertInput) *domain.DailyMetrics {
	m, err := s.metrics.UpsertToday(ctx, input)
	if err != nil {
		s.fold(ctx, "UpsertTodayMetrics", err)
		return nil
	}
	return m
}
