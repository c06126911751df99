// Package sms holds the outbound SMS transports.
package sms

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// MaxLength is the single-segment limit the transports accept.
const MaxLength = 160

// Receipt is what the provider reported for an accepted message.
type Receipt struct {
	MessageID string
	// Status is the provider's own status string, e.g. "queued" or "delivered".
	Status string
}

// Delivered reports whether the provider confirmed delivery synchronously.
func (r *Receipt) Delivered() bool {
	return r != nil && r.Status == "delivered"
}

// Sender sends one message. A non-nil error means the provider did not
// accept it.
type Sender interface {
	Send(ctx context.Context, to, body string) (*Receipt, error)
}

type Config struct {
	Provider   string
	AccountSID string
	AuthToken  string
	FromNumber string
	RatePerSec float64
	Burst      int
}

// NewSender builds the configured transport, throttled when RatePerSec > 0.
func NewSender(cfg Config, logger *zap.Logger) (Sender, error) {
	var sender Sender

	switch cfg.Provider {
	case "twilio":
		if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
			return nil, fmt.Errorf("missing twilio credentials for sms provider")
		}
		sender = NewTwilioSender(cfg.AccountSID, cfg.AuthToken, cfg.FromNumber)
	case "mock", "":
		sender = NewMockSender(logger)
	default:
		return nil, fmt.Errorf("unsupported sms provider: %s", cfg.Provider)
	}

	if cfg.RatePerSec > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		sender = NewRateLimited(sender, rate.NewLimiter(rate.Limit(cfg.RatePerSec), burst))
	}
	return sender, nil
}

// RateLimited blocks each Send until the limiter admits it.
type RateLimited struct {
	next    Sender
	limiter *rate.Limiter
}

func NewRateLimited(next Sender, limiter *rate.Limiter) *RateLimited {
	return &RateLimited{next: next, limiter: limiter}
}

func (r *RateLimited) Send(ctx context.Context, to, body string) (*Receipt, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return r.next.Send(ctx, to, body)
}
