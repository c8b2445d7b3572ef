package chat

import (
	"context"
	"sync"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

var _ completer = &completerMock{}

type completerMock struct {
	CompleteFunc func(ctx context.Context, system string, msgs []domain.ChatMessage) (string, error)

	calls struct {
		Complete []struct {
			Ctx    context.Context
			System string
			Msgs   []domain.ChatMessage
		}
	}
	lockComplete sync.RWMutex
}

func (mock *completerMock) Complete(ctx context.Context, system string, msgs []domain.ChatMessage) (string, error) {
	if mock.CompleteFunc == nil {
		panic("completerMock.CompleteFunc: method is nil but completer.Complete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		System string
		Msgs   []domain.ChatMessage
	}{Ctx: ctx, System: system, Msgs: msgs}
	mock.lockComplete.Lock()
	mock.calls.Complete = append(mock.calls.Complete, callInfo)
	mock.lockComplete.Unlock()
	return mock.CompleteFunc(ctx, system, msgs)
}

func (mock *completerMock) CompleteCalls() []struct {
	Ctx    context.Context
	System string
	Msgs   []domain.ChatMessage
} {
	mock.lockComplete.RLock()
	calls := mock.calls.Complete
	mock.lockComplete.RUnlock()
	return calls
}

type outcomeRecorderMock struct {
	mu       sync.Mutex
	outcomes []string
}

func (mock *outcomeRecorderMock) ChatOutcome(outcome string) {
	mock.mu.Lock()
	mock.outcomes = append(mock.outcomes, outcome)
	mock.mu.Unlock()
}

func (mock *outcomeRecorderMock) Outcomes() []string {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return append([]string(nil), mock.outcomes...)
}
