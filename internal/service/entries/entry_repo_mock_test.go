package entries

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

var _ entryRepo = &entryRepoMock{}

type entryRepoMock struct {
	ListFunc        func(ctx context.Context, f domain.EntryFilter) ([]domain.Entry, error)
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	ListRelatedFunc func(ctx context.Context, parentID uuid.UUID) ([]domain.Entry, error)
	CountFunc       func(ctx context.Context, source string) (int, error)
	CreateFunc      func(ctx context.Context, in domain.NewEntry) (*domain.Entry, error)
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error

	calls struct {
		List []struct {
			Ctx context.Context
			F   domain.EntryFilter
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListRelated []struct {
			Ctx      context.Context
			ParentID uuid.UUID
		}
		Count []struct {
			Ctx    context.Context
			Source string
		}
		Create []struct {
			Ctx context.Context
			In  domain.NewEntry
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockList        sync.RWMutex
	lockGetByID     sync.RWMutex
	lockListRelated sync.RWMutex
	lockCount       sync.RWMutex
	lockCreate      sync.RWMutex
	lockDelete      sync.RWMutex
}

func (mock *entryRepoMock) List(ctx context.Context, f domain.EntryFilter) ([]domain.Entry, error) {
	if mock.ListFunc == nil {
		panic("entryRepoMock.ListFunc: method is nil but entryRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.EntryFilter
	}{Ctx: ctx, F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *entryRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.EntryFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *entryRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	if mock.GetByIDFunc == nil {
		panic("entryRepoMock.GetByIDFunc: method is nil but entryRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *entryRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *entryRepoMock) ListRelated(ctx context.Context, parentID uuid.UUID) ([]domain.Entry, error) {
	if mock.ListRelatedFunc == nil {
		panic("entryRepoMock.ListRelatedFunc: method is nil but entryRepo.ListRelated was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ParentID uuid.UUID
	}{Ctx: ctx, ParentID: parentID}
	mock.lockListRelated.Lock()
	mock.calls.ListRelated = append(mock.calls.ListRelated, callInfo)
	mock.lockListRelated.Unlock()
	return mock.ListRelatedFunc(ctx, parentID)
}

func (mock *entryRepoMock) ListRelatedCalls() []struct {
	Ctx      context.Context
	ParentID uuid.UUID
} {
	mock.lockListRelated.RLock()
	calls := mock.calls.ListRelated
	mock.lockListRelated.RUnlock()
	return calls
}

func (mock *entryRepoMock) Count(ctx context.Context, source string) (int, error) {
	if mock.CountFunc == nil {
		panic("entryRepoMock.CountFunc: method is nil but entryRepo.Count was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Source string
	}{Ctx: ctx, Source: source}
	mock.lockCount.Lock()
	mock.calls.Count = append(mock.calls.Count, callInfo)
	mock.lockCount.Unlock()
	return mock.CountFunc(ctx, source)
}

func (mock *entryRepoMock) CountCalls() []struct {
	Ctx    context.Context
	Source string
} {
	mock.lockCount.RLock()
	calls := mock.calls.Count
	mock.lockCount.RUnlock()
	return calls
}

func (mock *entryRepoMock) Create(ctx context.Context, in domain.NewEntry) (*domain.Entry, error) {
	if mock.CreateFunc == nil {
		panic("entryRepoMock.CreateFunc: method is nil but entryRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  domain.NewEntry
	}{Ctx: ctx, In: in}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, in)
}

func (mock *entryRepoMock) CreateCalls() []struct {
	Ctx context.Context
	In  domain.NewEntry
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *entryRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("entryRepoMock.DeleteFunc: method is nil but entryRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *entryRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
