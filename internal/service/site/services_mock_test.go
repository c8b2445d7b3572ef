package site

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/twin-backend/internal/domain"
	"github.com/heartmarshall/twin-backend/internal/service/entries"
	"github.com/heartmarshall/twin-backend/internal/service/metrics"
)

var (
	_ entryService   = &entryServiceMock{}
	_ metricsService = &metricsServiceMock{}
	_ foldRecorder   = &foldRecorderMock{}
)

type entryServiceMock struct {
	ListFunc      func(ctx context.Context, input entries.ListInput) ([]domain.Entry, error)
	BooksFunc     func(ctx context.Context, limit int) ([]domain.Entry, error)
	ProtocolsFunc func(ctx context.Context, limit int) ([]domain.Entry, error)
	GetFunc       func(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	RelatedFunc   func(ctx context.Context, parentID uuid.UUID) ([]domain.Entry, error)
	CreateFunc    func(ctx context.Context, input entries.CreateInput) (*domain.Entry, error)
	DeleteFunc    func(ctx context.Context, id uuid.UUID) error

	calls struct {
		List []struct {
			Ctx   context.Context
			Input entries.ListInput
		}
	}
	lockList sync.RWMutex
}

func (mock *entryServiceMock) List(ctx context.Context, input entries.ListInput) ([]domain.Entry, error) {
	if mock.ListFunc == nil {
		panic("entryServiceMock.ListFunc: method is nil but entryService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input entries.ListInput
	}{Ctx: ctx, Input: input}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *entryServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Input entries.ListInput
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *entryServiceMock) Books(ctx context.Context, limit int) ([]domain.Entry, error) {
	if mock.BooksFunc == nil {
		panic("entryServiceMock.BooksFunc: method is nil but entryService.Books was just called")
	}
	return mock.BooksFunc(ctx, limit)
}

func (mock *entryServiceMock) Protocols(ctx context.Context, limit int) ([]domain.Entry, error) {
	if mock.ProtocolsFunc == nil {
		panic("entryServiceMock.ProtocolsFunc: method is nil but entryService.Protocols was just called")
	}
	return mock.ProtocolsFunc(ctx, limit)
}

func (mock *entryServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	if mock.GetFunc == nil {
		panic("entryServiceMock.GetFunc: method is nil but entryService.Get was just called")
	}
	return mock.GetFunc(ctx, id)
}

func (mock *entryServiceMock) Related(ctx context.Context, parentID uuid.UUID) ([]domain.Entry, error) {
	if mock.RelatedFunc == nil {
		panic("entryServiceMock.RelatedFunc: method is nil but entryService.Related was just called")
	}
	return mock.RelatedFunc(ctx, parentID)
}

func (mock *entryServiceMock) Create(ctx context.Context, input entries.CreateInput) (*domain.Entry, error) {
	if mock.CreateFunc == nil {
		panic("entryServiceMock.CreateFunc: method is nil but entryService.Create was just called")
	}
	return mock.CreateFunc(ctx, input)
}

func (mock *entryServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("entryServiceMock.DeleteFunc: method is nil but entryService.Delete was just called")
	}
	return mock.DeleteFunc(ctx, id)
}

type metricsServiceMock struct {
	GetTodayFunc    func(ctx context.Context) (*domain.DailyMetrics, error)
	UpsertTodayFunc func(ctx context.Context, input metrics.UpsertInput) (*domain.DailyMetrics, error)
}

func (mock *metricsServiceMock) GetToday(ctx context.Context) (*domain.DailyMetrics, error) {
	if mock.GetTodayFunc == nil {
		panic("metricsServiceMock.GetTodayFunc: method is nil but metricsService.GetToday was just called")
	}
	return mock.GetTodayFunc(ctx)
}

func (mock *metricsServiceMock) UpsertToday(ctx context.Context, input metrics.UpsertInput) (*domain.DailyMetrics, error) {
	if mock.UpsertTodayFunc == nil {
		panic("metricsServiceMock.UpsertTodayFunc: method is nil but metricsService.UpsertToday was just called")
	}
	return mock.UpsertTodayFunc(ctx, input)
}

type foldRecorderMock struct {
	mu  sync.Mutex
	ops []string
}

func (mock *foldRecorderMock) StoreFold(op string) {
	mock.mu.Lock()
	mock.ops = append(mock.ops, op)
	mock.mu.Unlock()
}

func (mock *foldRecorderMock) Ops() []string {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return append([]string(nil), mock.ops...)
}
