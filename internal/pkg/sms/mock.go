package sms

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"unistay/internal/pkg/phone"
)

// MockSender accepts every message and only logs it.
type MockSender struct {
	logger *zap.Logger
}

func NewMockSender(logger *zap.Logger) *MockSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MockSender{logger: logger}
}

func (m *MockSender) Send(ctx context.Context, to, body string) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.logger.Info("SMS sent (MOCK)",
		zap.String("to", phone.Mask(to)),
		zap.Int("length", len([]rune(body))),
	)
	return &Receipt{MessageID: "mock-" + uuid.NewString(), Status: "sent"}, nil
}
