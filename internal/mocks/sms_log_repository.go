package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"unistay/internal/domain"
)

type SMSLogRepository struct {
	mock.Mock
}

func (m *SMSLogRepository) Create(ctx context.Context, log *domain.SMSLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *SMSLogRepository) List(ctx context.Context, filter domain.SMSLogFilter, params domain.PaginationParams) ([]domain.SMSLog, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.SMSLog), args.Get(1).(int64), args.Error(2)
}

func (m *SMSLogRepository) StatsByDateAndStatus(ctx context.Context, from time.Time, userID *uuid.UUID) ([]domain.StatusCount, error) {
	args := m.Called(ctx, from, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusCount), args.Error(1)
}

func (m *SMSLogRepository) ListOlderThan(ctx context.Context, cutoff time.Time) ([]domain.SMSLog, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SMSLog), args.Error(1)
}

func (m *SMSLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
