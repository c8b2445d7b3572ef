package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

var _ metricsRepo = &metricsRepoMock{}

type metricsRepoMock struct {
	GetByDateFunc func(ctx context.Context, date time.Time) (*domain.DailyMetrics, error)
	UpsertFunc    func(ctx context.Context, date time.Time, u domain.MetricsUpdate) (*domain.DailyMetrics, error)

	calls struct {
		GetByDate []struct {
			Ctx  context.Context
			Date time.Time
		}
		Upsert []struct {
			Ctx  context.Context
			Date time.Time
			U    domain.MetricsUpdate
		}
	}
	lockGetByDate sync.RWMutex
	lockUpsert    sync.RWMutex
}

func (mock *metricsRepoMock) GetByDate(ctx context.Context, date time.Time) (*domain.DailyMetrics, error) {
	if mock.GetByDateFunc == nil {
		panic("metricsRepoMock.GetByDateFunc: method is nil but metricsRepo.GetByDate was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Date time.Time
	}{Ctx: ctx, Date: date}
	mock.lockGetByDate.Lock()
	mock.calls.GetByDate = append(mock.calls.GetByDate, callInfo)
	mock.lockGetByDate.Unlock()
	return mock.GetByDateFunc(ctx, date)
}

func (mock *metricsRepoMock) GetByDateCalls() []struct {
	Ctx  context.Context
	Date time.Time
} {
	mock.lockGetByDate.RLock()
	calls := mock.calls.GetByDate
	mock.lockGetByDate.RUnlock()
	return calls
}

func (mock *metricsRepoMock) Upsert(ctx context.Context, date time.Time, u domain.MetricsUpdate) (*domain.DailyMetrics, error) {
	if mock.UpsertFunc == nil {
		panic("metricsRepoMock.UpsertFunc: method is nil but metricsRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Date time.Time
		U    domain.MetricsUpdate
	}{Ctx: ctx, Date: date, U: u}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, date, u)
}

func (mock *metricsRepoMock) UpsertCalls() []struct {
	Ctx  context.Context
	Date time.Time
	U    domain.MetricsUpdate
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}
