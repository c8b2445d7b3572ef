package rest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/twin-backend/internal/domain"
	"github.com/heartmarshall/twin-backend/internal/service/auth"
	"github.com/heartmarshall/twin-backend/internal/service/entries"
	"github.com/heartmarshall/twin-backend/internal/service/metrics"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// fakeStore is an in-memory site.Store: unknown ids yield nil, lists are never nil.
type fakeStore struct {
	mu          sync.Mutex
	entries     []domain.Entry
	today       *domain.DailyMetrics
	sourceCalls []string
	limitCalls  []int
}

func (f *fakeStore) ListEntries(ctx context.Context, limit int) []domain.Entry {
	return f.ListEntriesBySource(ctx, "", limit)
}

func (f *fakeStore) ListEntriesBySource(_ context.Context, source string, limit int) []domain.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sourceCalls = append(f.sourceCalls, source)
	f.limitCalls = append(f.limitCalls, limit)

	out := []domain.Entry{}
	for _, e := range f.entries {
		if source == "" || e.Source == source {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (f *fakeStore) ListBooks(ctx context.Context) []domain.Entry {
	return f.ListEntriesBySource(ctx, domain.SourceBook, 0)
}

func (f *fakeStore) ListProtocols(ctx context.Context) []domain.Entry {
	return f.ListEntriesBySource(ctx, domain.SourceProtocol, 0)
}

func (f *fakeStore) GetEntryByID(_ context.Context, id uuid.UUID) *domain.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.entries {
		if f.entries[i].ID == id {
			e := f.entries[i]
			return &e
		}
	}
	return nil
}

func (f *fakeStore) GetEntriesRelatedToParent(_ context.Context, parentID uuid.UUID) []domain.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Entry{}
	for _, e := range f.entries {
		if e.Metadata[domain.MetaParentID] == parentID.String() {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeStore) GetTodayMetrics(context.Context) *domain.DailyMetrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.today
}

type fakeEntryService struct {
	createFn func(input entries.CreateInput) (*domain.Entry, error)
	deleteFn func(id uuid.UUID) error
	countFn  func() (entries.Counts, error)
}

func (f *fakeEntryService) Create(_ context.Context, input entries.CreateInput) (*domain.Entry, error) {
	return f.createFn(input)
}

func (f *fakeEntryService) Delete(_ context.Context, id uuid.UUID) error {
	return f.deleteFn(id)
}

func (f *fakeEntryService) Count(context.Context) (entries.Counts, error) {
	return f.countFn()
}

type fakeMetricsService struct {
	upsertFn func(input metrics.UpsertInput) (*domain.DailyMetrics, error)
}

func (f *fakeMetricsService) UpsertToday(_ context.Context, input metrics.UpsertInput) (*domain.DailyMetrics, error) {
	return f.upsertFn(input)
}

type fakeAuthService struct {
	loginFn func(input auth.LoginInput) (*auth.AuthResult, error)
}

func (f *fakeAuthService) Login(_ context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	return f.loginFn(input)
}

type fakeChatService struct {
	replyFn func(msgs []domain.ChatMessage) (string, error)
}

func (f *fakeChatService) Reply(_ context.Context, msgs []domain.ChatMessage) (string, error) {
	return f.replyFn(msgs)
}

// fakeTokens accepts exactly one token.
type fakeTokens struct {
	valid string
}

func (f fakeTokens) ValidateToken(_ context.Context, token string) (string, error) {
	if token != f.valid {
		return "", domain.ErrUnauthorized
	}
	return "acme_co", nil
}

func sampleEntry(source string, createdAt time.Time, meta map[string]any) domain.Entry {
	return domain.Entry{
		ID:        uuid.New(),
		SiteKey:   "acme_co",
		Content:   source + " content",
		Tags:      []string{},
		Source:    source,
		CreatedAt: createdAt,
		Metadata:  meta,
	}
}
