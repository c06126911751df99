package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"unistay/internal/domain"
)

type Dispatcher struct {
	mock.Mock
}

func (m *Dispatcher) ProcessPendingForUser(ctx context.Context, userID uuid.UUID) domain.DispatchResult {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.DispatchResult)
}

func (m *Dispatcher) ProcessAllPending(ctx context.Context) domain.DispatchResult {
	args := m.Called(ctx)
	return args.Get(0).(domain.DispatchResult)
}

func (m *Dispatcher) SendSMS(ctx context.Context, phoneNumber, message string) (bool, error) {
	args := m.Called(ctx, phoneNumber, message)
	return args.Bool(0), args.Error(1)
}

func (m *Dispatcher) SendTestSMS(ctx context.Context, phoneNumber, message string) (bool, error) {
	args := m.Called(ctx, phoneNumber, message)
	return args.Bool(0), args.Error(1)
}
