package sms_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"unistay/internal/pkg/sms"
)

type countingSender struct {
	calls int
}

func (c *countingSender) Send(ctx context.Context, to, body string) (*sms.Receipt, error) {
	c.calls++
	return &sms.Receipt{Status: "sent"}, nil
}

func TestNewSender(t *testing.T) {
	t.Run("Mock", func(t *testing.T) {
		s, err := sms.NewSender(sms.Config{Provider: "mock"}, zap.NewNop())
		require.NoError(t, err)

		receipt, err := s.Send(context.Background(), "+233244123456", "hello")
		require.NoError(t, err)
		assert.Equal(t, "sent", receipt.Status)
		assert.False(t, receipt.Delivered())
	})

	t.Run("Twilio Missing Credentials", func(t *testing.T) {
		_, err := sms.NewSender(sms.Config{Provider: "twilio"}, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := sms.NewSender(sms.Config{Provider: "carrier-pigeon"}, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("Rate Limited", func(t *testing.T) {
		s, err := sms.NewSender(sms.Config{Provider: "mock", RatePerSec: 5}, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &sms.RateLimited{}, s)
	})
}

func TestRateLimited_CancelledContext(t *testing.T) {
	next := &countingSender{}
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	s := sms.NewRateLimited(next, limiter)

	_, err := s.Send(context.Background(), "+233244123456", "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = s.Send(ctx, "+233244123456", "second")

	assert.Error(t, err)
	assert.Equal(t, 1, next.calls)
}

func TestMockSender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sms.NewMockSender(nil).Send(ctx, "+233244123456", "hello")
	assert.ErrorIs(t, err, context.Canceled)
}
