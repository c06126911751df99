package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"unistay/internal/queue"
)

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, job queue.DispatchJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
