package dispatch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"unistay/internal/config"
	"unistay/internal/domain"
	"unistay/internal/metrics"
	"unistay/internal/pkg/phone"
	"unistay/internal/pkg/sms"
	"unistay/internal/pkg/smstemplate"
	"unistay/internal/repository"
	"unistay/internal/service/alert"
	"unistay/internal/service/preference"
)

type Service interface {
	ProcessPendingForUser(ctx context.Context, userID uuid.UUID) domain.DispatchResult
	ProcessAllPending(ctx context.Context) domain.DispatchResult
	SendSMS(ctx context.Context, phoneNumber, message string) (bool, error)
	SendTestSMS(ctx context.Context, phoneNumber, message string) (bool, error)
}

type Options struct {
	Locale      string
	SendTimeout time.Duration
	ClaimTTL    time.Duration
	LockTTL     time.Duration
	Concurrency int
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Locale:      cfg.SMSLocale,
		SendTimeout: cfg.SMSSendTimeout,
		ClaimTTL:    cfg.SMSClaimTTL,
		LockTTL:     cfg.DispatchLockTTL,
		Concurrency: cfg.DispatchConcurrency,
	}
}

func (o *Options) normalize() {
	if o.SendTimeout <= 0 {
		o.SendTimeout = 15 * time.Second
	}
	if o.ClaimTTL <= 0 {
		o.ClaimTTL = 5 * time.Minute
	}
	if o.LockTTL <= 0 {
		o.LockTTL = 2 * time.Minute
	}
	if o.Concurrency < 1 {
		o.Concurrency = 1
	}
}

type service struct {
	notifRepo  repository.NotificationRepository
	smsLogRepo repository.SMSLogRepository
	userRepo   repository.UserRepository
	sender     sms.Sender
	filter     preference.Filter
	redis      *redis.Client
	alerts     alert.Service
	logger     *zap.Logger
	opts       Options
}

// NewService wires the dispatcher. redis and alerts may be nil.
func NewService(
	notifRepo repository.NotificationRepository,
	smsLogRepo repository.SMSLogRepository,
	userRepo repository.UserRepository,
	sender sms.Sender,
	filter preference.Filter,
	redis *redis.Client,
	alerts alert.Service,
	logger *zap.Logger,
	opts Options,
) Service {
	opts.normalize()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		notifRepo:  notifRepo,
		smsLogRepo: smsLogRepo,
		userRepo:   userRepo,
		sender:     sender,
		filter:     filter,
		redis:      redis,
		alerts:     alerts,
		logger:     logger,
		opts:       opts,
	}
}

// outcome is one user batch: the counters plus short failure lines for the
// operator digest.
type outcome struct {
	result   domain.DispatchResult
	failures []string
}

func (o *outcome) merge(other outcome) {
	o.result.Add(other.result)
	o.failures = append(o.failures, other.failures...)
}

func (s *service) ProcessPendingForUser(ctx context.Context, userID uuid.UUID) domain.DispatchResult {
	metrics.DispatchRunsTotal.WithLabelValues("user").Inc()

	pending, err := s.notifRepo.ListPending(ctx, domain.ForUser(userID))
	if err != nil {
		s.logger.Error("failed to load pending notifications", zap.String("user_id", userID.String()), zap.Error(err))
		return domain.DispatchResult{}
	}
	if len(pending) == 0 {
		return domain.DispatchResult{}
	}

	return s.processUser(ctx, userID, pending).result
}

func (s *service) ProcessAllPending(ctx context.Context) domain.DispatchResult {
	metrics.DispatchRunsTotal.WithLabelValues("all").Inc()

	pending, err := s.notifRepo.ListPending(ctx, domain.AllUsers())
	if err != nil {
		s.logger.Error("failed to load pending notifications", zap.Error(err))
		return domain.DispatchResult{}
	}

	var (
		mu    sync.Mutex
		total outcome
	)
	g := new(errgroup.Group)
	g.SetLimit(s.opts.Concurrency)
	for _, batch := range groupByUser(pending) {
		g.Go(func() error {
			out := s.processUser(ctx, batch.userID, batch.notifications)
			mu.Lock()
			total.merge(out)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Info("processed pending notifications",
		zap.Int("processed", total.result.Processed),
		zap.Int("success", total.result.Success),
		zap.Int("failed", total.result.Failed),
	)

	if total.result.Failed > 0 && s.alerts != nil {
		digest := alert.Digest{Scope: "all users", Result: total.result, Failures: total.failures, At: time.Now()}
		if err := s.alerts.SendFailureDigest(ctx, digest); err != nil {
			s.logger.Warn("failed to send failure digest", zap.Error(err))
		}
	}

	return total.result
}

type userBatch struct {
	userID        uuid.UUID
	notifications []domain.Notification
}

// groupByUser keeps users in first-seen order and each user's notifications
// in fetch order.
func groupByUser(pending []domain.Notification) []userBatch {
	index := make(map[uuid.UUID]int)
	var batches []userBatch
	for _, n := range pending {
		i, ok := index[n.UserID]
		if !ok {
			i = len(batches)
			index[n.UserID] = i
			batches = append(batches, userBatch{userID: n.UserID})
		}
		batches[i].notifications = append(batches[i].notifications, n)
	}
	return batches
}

func (s *service) processUser(ctx context.Context, userID uuid.UUID, pending []domain.Notification) outcome {
	var out outcome
	log := s.logger.With(zap.String("user_id", userID.String()))

	unlock, ok := s.lockUser(ctx, userID)
	if !ok {
		log.Debug("dispatch already running for user")
		return out
	}
	defer unlock()

	pref, err := s.userRepo.GetPreference(ctx, userID)
	if err != nil {
		log.Error("failed to load sms preference", zap.Error(err))
		return out
	}
	if pref == nil {
		return out
	}

	var to string
	for i := range pending {
		if ctx.Err() != nil {
			break
		}
		n := &pending[i]

		decision := s.filter.Check(*pref, n.Type)
		if !decision.Eligible {
			metrics.SMSSkippedTotal.WithLabelValues(decision.Reason).Inc()
			continue
		}
		if to == "" {
			if to, err = phone.ToE164(pref.Phone()); err != nil {
				log.Warn("unusable phone number", zap.String("phone", phone.Mask(pref.Phone())), zap.Error(err))
				return out
			}
		}

		claimed, err := s.notifRepo.Claim(ctx, n.ID, s.opts.ClaimTTL)
		if err != nil {
			log.Error("failed to claim notification", zap.String("notification_id", n.ID.String()), zap.Error(err))
			continue
		}
		if !claimed {
			metrics.SMSSkippedTotal.WithLabelValues("claimed").Inc()
			continue
		}

		body := smstemplate.Render(s.opts.Locale, n)
		out.result.Processed++

		notifID := n.ID
		entry := &domain.SMSLog{ID: uuid.New(), NotificationID: &notifID, PhoneNumber: to, Message: body}

		receipt, err := s.send(ctx, to, body)
		if err != nil {
			out.result.Failed++
			reason := err.Error()
			entry.Status = domain.SMSFailed
			entry.ErrorMessage = &reason
			s.writeLog(ctx, entry)
			out.failures = append(out.failures, fmt.Sprintf("%s: %s", phone.Mask(to), reason))

			if err := s.notifRepo.Release(ctx, n.ID); err != nil {
				log.Error("failed to release claim", zap.String("notification_id", n.ID.String()), zap.Error(err))
			}
			continue
		}

		out.result.Success++
		entry.Status = statusOf(receipt)
		s.writeLog(ctx, entry)

		if err := s.notifRepo.MarkDelivered(ctx, n.ID); err != nil {
			log.Error("failed to mark notification delivered", zap.String("notification_id", n.ID.String()), zap.Error(err))
		}
	}

	return out
}

func (s *service) SendSMS(ctx context.Context, phoneNumber, message string) (bool, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return false, domain.ErrEmptyMessage
	}
	to, err := phone.ToE164(phoneNumber)
	if err != nil {
		return false, domain.ErrInvalidPhoneNumber
	}

	body := smstemplate.Truncate(message, sms.MaxLength)
	entry := &domain.SMSLog{ID: uuid.New(), PhoneNumber: to, Message: body}

	receipt, err := s.send(ctx, to, body)
	if err != nil {
		reason := err.Error()
		entry.Status = domain.SMSFailed
		entry.ErrorMessage = &reason
		s.writeLog(ctx, entry)
		return false, nil
	}

	entry.Status = statusOf(receipt)
	s.writeLog(ctx, entry)
	return true, nil
}

func (s *service) SendTestSMS(ctx context.Context, phoneNumber, message string) (bool, error) {
	if strings.TrimSpace(message) == "" {
		message = smstemplate.TestMessage(s.opts.Locale)
	}
	return s.SendSMS(ctx, phoneNumber, message)
}

// send calls the transport under the per-send timeout. A panicking transport
// is reported as a failed send.
func (s *service) send(ctx context.Context, to, body string) (receipt *sms.Receipt, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.SendTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sms transport panic: %v", r)
		}
		status := "sent"
		if err != nil {
			status = "failed"
		}
		metrics.SMSSendTotal.WithLabelValues(status).Inc()
		metrics.SMSSendDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	}()

	return s.sender.Send(ctx, to, body)
}

func statusOf(receipt *sms.Receipt) domain.SMSStatus {
	if receipt.Delivered() {
		return domain.SMSDelivered
	}
	return domain.SMSSent
}

// writeLog is best effort. A failed insert never re-sends the message.
func (s *service) writeLog(ctx context.Context, entry *domain.SMSLog) {
	if err := s.smsLogRepo.Create(ctx, entry); err != nil {
		s.logger.Error("failed to write sms log",
			zap.String("phone", phone.Mask(entry.PhoneNumber)),
			zap.String("status", string(entry.Status)),
			zap.Error(err),
		)
	}
}
