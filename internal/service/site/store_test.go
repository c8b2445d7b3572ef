package site

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/twin-backend/internal/domain"
	"github.com/heartmarshall/twin-backend/internal/service/entries"
	"github.com/heartmarshall/twin-backend/internal/service/metrics"
)

var errBackend = errors.New("connection reset by peer")

func newTestStore(es entryService, ms metricsService) (*Store, *foldRecorderMock, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	folds := &foldRecorderMock{}
	return NewStore(logger, domain.MustParseSiteKey("acme_co"), es, ms, folds), folds, &buf
}

func failingEntries() *entryServiceMock {
	return &entryServiceMock{
		ListFunc: func(context.Context, entries.ListInput) ([]domain.Entry, error) { return nil, errBackend },
		BooksFunc: func(context.Context, int) ([]domain.Entry, error) { return nil, errBackend },
		ProtocolsFunc: func(context.Context, int) ([]domain.Entry, error) {
			return nil, errBackend
		},
		GetFunc:     func(context.Context, uuid.UUID) (*domain.Entry, error) { return nil, errBackend },
		RelatedFunc: func(context.Context, uuid.UUID) ([]domain.Entry, error) { return nil, errBackend },
		CreateFunc:  func(context.Context, entries.CreateInput) (*domain.Entry, error) { return nil, errBackend },
		DeleteFunc:  func(context.Context, uuid.UUID) error { return errBackend },
	}
}

func failingMetrics() *metricsServiceMock {
	return &metricsServiceMock{
		GetTodayFunc: func(context.Context) (*domain.DailyMetrics, error) { return nil, errBackend },
		UpsertTodayFunc: func(context.Context, metrics.UpsertInput) (*domain.DailyMetrics, error) {
			return nil, errBackend
		},
	}
}

// ---------------------------------------------------------------------------
// Folding
// ---------------------------------------------------------------------------

func TestStore_FoldsDataErrors(t *testing.T) {
	t.Parallel()

	store, folds, logs := newTestStore(failingEntries(), failingMetrics())
	ctx := context.Background()

	assert.Equal(t, []domain.Entry{}, store.ListEntries(ctx, 10))
	assert.Equal(t, []domain.Entry{}, store.ListBooks(ctx))
	assert.Equal(t, []domain.Entry{}, store.ListProtocols(ctx))
	assert.Nil(t, store.GetEntryByID(ctx, uuid.New()))
	assert.Equal(t, []domain.Entry{}, store.GetEntriesRelatedToParent(ctx, uuid.New()))
	assert.Nil(t, store.CreateEntry(ctx, entries.CreateInput{Content: "secret diary text"}))
	assert.False(t, store.DeleteEntry(ctx, uuid.New()))
	assert.Nil(t, store.GetTodayMetrics(ctx))
	assert.Nil(t, store.UpsertTodayMetrics(ctx, metrics.UpsertInput{}))

	assert.Equal(t, []string{
		"ListEntries", "ListBooks", "ListProtocols", "GetEntryByID", "GetEntriesRelatedToParent",
		"CreateEntry", "DeleteEntry", "GetTodayMetrics", "UpsertTodayMetrics",
	}, folds.Ops())

	out := logs.String()
	assert.Equal(t, 9, strings.Count(out, `"level":"ERROR"`))
	assert.Contains(t, out, `"site":"acme_co"`)
	assert.Contains(t, out, `"op":"CreateEntry"`)
	assert.Contains(t, out, errBackend.Error())
	assert.NotContains(t, out, "secret diary text")
}

func TestStore_NotFoundIsNotLoggedAsError(t *testing.T) {
	t.Parallel()

	es := &entryServiceMock{
		GetFunc: func(context.Context, uuid.UUID) (*domain.Entry, error) {
			return nil, domain.ErrNotFound
		},
		DeleteFunc: func(context.Context, uuid.UUID) error { return domain.ErrNotFound },
	}
	store, folds, logs := newTestStore(es, &metricsServiceMock{})

	assert.Nil(t, store.GetEntryByID(context.Background(), uuid.New()))
	assert.False(t, store.DeleteEntry(context.Background(), uuid.New()))

	assert.Len(t, folds.Ops(), 2)
	assert.NotContains(t, logs.String(), `"level":"ERROR"`)
}

func TestStore_ConfigurationErrorPanics(t *testing.T) {
	t.Parallel()

	cfgErr := &domain.ConfigurationError{Key: domain.SiteKeyEnv, Reason: "is not set"}
	es := &entryServiceMock{
		ListFunc: func(context.Context, entries.ListInput) ([]domain.Entry, error) { return nil, cfgErr },
	}
	store, _, _ := newTestStore(es, &metricsServiceMock{})

	require.PanicsWithError(t, cfgErr.Error(), func() {
		store.ListEntries(context.Background(), 0)
	})
}

func TestStore_NilFoldRecorder(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.DiscardHandler)
	store := NewStore(logger, domain.MustParseSiteKey("acme_co"), failingEntries(), failingMetrics(), nil)

	assert.NotPanics(t, func() {
		store.ListBooks(context.Background())
	})
}

// ---------------------------------------------------------------------------
// Success paths
// ---------------------------------------------------------------------------

func TestStore_ListEntries_Limit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit", 2, 2},
		{"zero means all", 0, 0},
		{"negative means all", -3, 0},
		{"capped", 10_000, entries.MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			es := &entryServiceMock{
				ListFunc: func(context.Context, entries.ListInput) ([]domain.Entry, error) { return nil, nil },
			}
			store, folds, _ := newTestStore(es, &metricsServiceMock{})

			got := store.ListEntries(context.Background(), tt.limit)

			assert.NotNil(t, got)
			require.Len(t, es.ListCalls(), 1)
			assert.Equal(t, tt.want, es.ListCalls()[0].Input.Limit)
			assert.Empty(t, folds.Ops())
		})
	}
}

func TestStore_ListEntriesBySource(t *testing.T) {
	t.Parallel()

	es := &entryServiceMock{
		ListFunc: func(context.Context, entries.ListInput) ([]domain.Entry, error) { return nil, errBackend },
	}
	store, folds, _ := newTestStore(es, &metricsServiceMock{})

	got := store.ListEntriesBySource(context.Background(), "fragment", 5)

	assert.Equal(t, []domain.Entry{}, got)
	require.Len(t, es.ListCalls(), 1)
	assert.Equal(t, entries.ListInput{Source: "fragment", Limit: 5}, es.ListCalls()[0].Input)
	assert.Equal(t, []string{"ListEntriesBySource"}, folds.Ops())
}

func TestStore_PassThrough(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	e := &domain.Entry{ID: id, SiteKey: "acme_co", Content: "A"}
	m := &domain.DailyMetrics{SiteKey: "acme_co", Steps: 10}

	es := &entryServiceMock{
		GetFunc:    func(context.Context, uuid.UUID) (*domain.Entry, error) { return e, nil },
		CreateFunc: func(context.Context, entries.CreateInput) (*domain.Entry, error) { return e, nil },
		DeleteFunc: func(context.Context, uuid.UUID) error { return nil },
	}
	ms := &metricsServiceMock{
		GetTodayFunc:    func(context.Context) (*domain.DailyMetrics, error) { return m, nil },
		UpsertTodayFunc: func(context.Context, metrics.UpsertInput) (*domain.DailyMetrics, error) { return m, nil },
	}
	store, folds, _ := newTestStore(es, ms)
	ctx := context.Background()

	assert.Equal(t, e, store.GetEntryByID(ctx, id))
	assert.Equal(t, e, store.CreateEntry(ctx, entries.CreateInput{Content: "A"}))
	assert.True(t, store.DeleteEntry(ctx, id))
	assert.Equal(t, m, store.GetTodayMetrics(ctx))
	assert.Equal(t, m, store.UpsertTodayMetrics(ctx, metrics.UpsertInput{}))
	assert.Empty(t, folds.Ops())
}
