package auth

import (
	"sync"
	"time"
)

var _ jwtManager = &jwtManagerMock{}

type jwtManagerMock struct {
	GenerateAccessTokenFunc func(subject string, role string) (string, error)
	ValidateAccessTokenFunc func(token string) (string, string, error)
	TTLFunc                 func() time.Duration

	calls struct {
		GenerateAccessToken []struct {
			Subject string
			Role    string
		}
		ValidateAccessToken []struct {
			Token string
		}
		TTL []struct{}
	}
	lockGenerateAccessToken sync.RWMutex
	lockValidateAccessToken sync.RWMutex
	lockTTL                 sync.RWMutex
}

func (mock *jwtManagerMock) GenerateAccessToken(subject string, role string) (string, error) {
	if mock.GenerateAccessTokenFunc == nil {
		panic("jwtManagerMock.GenerateAccessTokenFunc: method is nil but jwtManager.GenerateAccessToken was just called")
	}
	callInfo := struct {
		Subject string
		Role    string
	}{Subject: subject, Role: role}
	mock.lockGenerateAccessToken.Lock()
	mock.calls.GenerateAccessToken = append(mock.calls.GenerateAccessToken, callInfo)
	mock.lockGenerateAccessToken.Unlock()
	return mock.GenerateAccessTokenFunc(subject, role)
}

func (mock *jwtManagerMock) GenerateAccessTokenCalls() []struct {
	Subject string
	Role    string
} {
	mock.lockGenerateAccessToken.RLock()
	calls := mock.calls.GenerateAccessToken
	mock.lockGenerateAccessToken.RUnlock()
	return calls
}

func (mock *jwtManagerMock) ValidateAccessToken(token string) (string, string, error) {
	if mock.ValidateAccessTokenFunc == nil {
		panic("jwtManagerMock.ValidateAccessTokenFunc: method is nil but jwtManager.ValidateAccessToken was just called")
	}
	callInfo := struct{ Token string }{Token: token}
	mock.lockValidateAccessToken.Lock()
	mock.calls.ValidateAccessToken = append(mock.calls.ValidateAccessToken, callInfo)
	mock.lockValidateAccessToken.Unlock()
	return mock.ValidateAccessTokenFunc(token)
}

func (mock *jwtManagerMock) ValidateAccessTokenCalls() []struct{ Token string } {
	mock.lockValidateAccessToken.RLock()
	calls := mock.calls.ValidateAccessToken
	mock.lockValidateAccessToken.RUnlock()
	return calls
}

func (mock *jwtManagerMock) TTL() time.Duration {
	if mock.TTLFunc == nil {
		panic("jwtManagerMock.TTLFunc: method is nil but jwtManager.TTL was just called")
	}
	mock.lockTTL.Lock()
	mock.calls.TTL = append(mock.calls.TTL, struct{}{})
	mock.lockTTL.Unlock()
	return mock.TTLFunc()
}
