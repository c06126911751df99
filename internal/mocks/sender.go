package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"unistay/internal/pkg/sms"
)

type Sender struct {
	mock.Mock
}

func (m *Sender) Send(ctx context.Context, to, body string) (*sms.Receipt, error) {
	args := m.Called(ctx, to, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sms.Receipt), args.Error(1)
}
