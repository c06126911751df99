package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"unistay/internal/domain"
	"unistay/internal/repository"
)

const (
	DefaultDays = 7
	MaxDays     = 365

	todayCacheTTL = time.Minute
)

type Service interface {
	GetStats(ctx context.Context, userID *uuid.UUID, days int) []domain.StatusCount
	Trend(ctx context.Context, userID *uuid.UUID, days int) []domain.DailyBucket
	TodaySummary(ctx context.Context) domain.TodaySummary
	ListLogs(ctx context.Context, filter domain.SMSLogFilter, params domain.PaginationParams) ([]domain.SMSLog, int64, error)
}

type service struct {
	smsLogRepo repository.SMSLogRepository
	redis      *redis.Client
	logger     *zap.Logger
	now        func() time.Time
}

// NewService builds the reporting service. redis may be nil; now defaults to
// the current UTC time.
func NewService(smsLogRepo repository.SMSLogRepository, redis *redis.Client, logger *zap.Logger, now func() time.Time) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		smsLogRepo: smsLogRepo,
		redis:      redis,
		logger:     logger,
		now:        now,
	}
}

func clampDays(days int) int {
	if days <= 0 {
		return DefaultDays
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}

// window returns the dates of the last days calendar days, oldest first,
// ending today.
func (s *service) window(days int) (time.Time, []string) {
	today := domain.DayStart(s.now())
	start := today.AddDate(0, 0, -(days - 1))

	dates := make([]string, 0, days)
	for d := 0; d < days; d++ {
		dates = append(dates, start.AddDate(0, 0, d).Format(domain.DateLayout))
	}
	return start, dates
}

// counts loads grouped rows for the window and indexes them by date. Rows
// outside the window or with unknown statuses are dropped.
func (s *service) counts(ctx context.Context, userID *uuid.UUID, days int) []domain.DailyBucket {
	start, dates := s.window(days)

	buckets := make([]domain.DailyBucket, len(dates))
	byDate := make(map[string]int, len(dates))
	for i, date := range dates {
		buckets[i] = domain.DailyBucket{Date: date, Counts: make(map[domain.SMSStatus]int64, len(domain.SMSStatuses))}
		for _, status := range domain.SMSStatuses {
			buckets[i].Counts[status] = 0
		}
		byDate[date] = i
	}

	rows, err := s.smsLogRepo.StatsByDateAndStatus(ctx, start, userID)
	if err != nil {
		s.logger.Error("failed to load sms stats", zap.Error(err))
		return buckets
	}

	for _, row := range rows {
		i, ok := byDate[row.Date]
		if !ok || !row.Status.IsValid() {
			continue
		}
		buckets[i].Counts[row.Status] += row.Count
	}
	return buckets
}

func (s *service) GetStats(ctx context.Context, userID *uuid.UUID, days int) []domain.StatusCount {
	buckets := s.counts(ctx, userID, clampDays(days))

	stats := make([]domain.StatusCount, 0, len(buckets)*len(domain.SMSStatuses))
	for _, b := range buckets {
		for _, status := range domain.SMSStatuses {
			stats = append(stats, domain.StatusCount{Date: b.Date, Status: status, Count: b.Counts[status]})
		}
	}
	return stats
}

func (s *service) Trend(ctx context.Context, userID *uuid.UUID, days int) []domain.DailyBucket {
	return s.counts(ctx, userID, clampDays(days))
}

func (s *service) TodaySummary(ctx context.Context) domain.TodaySummary {
	today := s.now().Format(domain.DateLayout)
	cacheKey := fmt.Sprintf("sms:stats:today:%s", today)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var summary domain.TodaySummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return summary
			}
		}
	}

	summary := domain.TodaySummary{Date: today}
	for status, count := range s.counts(ctx, nil, 1)[0].Counts {
		summary.Add(status, count)
	}

	if s.redis != nil {
		if data, err := json.Marshal(summary); err == nil {
			_ = s.redis.Set(ctx, cacheKey, data, todayCacheTTL).Err()
		}
	}

	return summary
}

func (s *service) ListLogs(ctx context.Context, filter domain.SMSLogFilter, params domain.PaginationParams) ([]domain.SMSLog, int64, error) {
	params.Validate()
	return s.smsLogRepo.List(ctx, filter, params)
}
