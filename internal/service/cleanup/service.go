package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"unistay/internal/domain"
	"unistay/internal/repository"
)

type Service interface {
	CleanupOlderThan(ctx context.Context, days int) (domain.CleanupResult, error)
}

type service struct {
	notifRepo  repository.NotificationRepository
	smsLogRepo repository.SMSLogRepository
	archiver   Archiver
	logger     *zap.Logger
	now        func() time.Time
}

// NewService builds the retention service. archiver may be nil, in which
// case logs are deleted without a copy.
func NewService(notifRepo repository.NotificationRepository, smsLogRepo repository.SMSLogRepository, archiver Archiver, logger *zap.Logger, now func() time.Time) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &service{
		notifRepo:  notifRepo,
		smsLogRepo: smsLogRepo,
		archiver:   archiver,
		logger:     logger,
		now:        now,
	}
}

// CleanupOlderThan deletes notifications and SMS logs created before the
// cutoff. Only an invalid retention is returned as an error; storage
// failures are reported through Success.
func (s *service) CleanupOlderThan(ctx context.Context, days int) (domain.CleanupResult, error) {
	if !domain.IsValidRetention(days) {
		return domain.CleanupResult{}, domain.ErrInvalidRetention
	}

	cutoff := s.now().AddDate(0, 0, -days)
	result := domain.CleanupResult{Days: days, Cutoff: cutoff}
	log := s.logger.With(zap.Int("days", days), zap.Time("cutoff", cutoff))

	if s.archiver != nil {
		logs, err := s.smsLogRepo.ListOlderThan(ctx, cutoff)
		if err != nil {
			log.Error("failed to load sms logs for archive", zap.Error(err))
			return result, nil
		}
		if len(logs) > 0 {
			name := fmt.Sprintf("sms-logs/%s-%d.jsonl", cutoff.Format(domain.DateLayout), s.now().Unix())
			location, err := s.archiver.Archive(ctx, name, logs)
			if err != nil {
				log.Error("failed to archive sms logs", zap.Error(err))
				return result, nil
			}
			result.Archived = location
		}
	}

	smsDeleted, err := s.smsLogRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Error("failed to delete sms logs", zap.Error(err))
		return result, nil
	}
	result.SMSLogs = smsDeleted

	notifDeleted, err := s.notifRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Error("failed to delete notifications", zap.Error(err))
		return result, nil
	}
	result.Notifications = notifDeleted
	result.Success = true

	log.Info("retention cleanup finished",
		zap.Int64("sms_logs", smsDeleted),
		zap.Int64("notifications", notifDeleted),
		zap.String("archive", result.Archived),
	)
	return result, nil
}
