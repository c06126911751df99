package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"unistay/internal/domain"
	"unistay/internal/mocks"
	"unistay/internal/service/report"
)

var fixedNow = time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestGetStats_ZeroFill(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.SMSLogRepository)
	svc := report.NewService(repo, nil, nil, clock)

	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	repo.On("StatsByDateAndStatus", ctx, start, (*uuid.UUID)(nil)).Return([]domain.StatusCount{
		{Date: "2024-03-05", Status: domain.SMSSent, Count: 4},
		{Date: "2024-03-10", Status: domain.SMSFailed, Count: 1},
		{Date: "2024-03-10", Status: domain.SMSSent, Count: 2},
	}, nil)

	stats := svc.GetStats(ctx, nil, 7)

	require.Len(t, stats, 7*len(domain.SMSStatuses))
	dates := map[string]bool{}
	var nonZero int
	for _, s := range stats {
		dates[s.Date] = true
		if s.Count > 0 {
			nonZero++
		}
	}
	assert.Len(t, dates, 7)
	assert.Equal(t, 3, nonZero)
	assert.Equal(t, "2024-03-04", stats[0].Date)
	assert.Equal(t, "2024-03-10", stats[len(stats)-1].Date)
}

func TestTrend(t *testing.T) {
	ctx := context.Background()

	t.Run("Exactly Days Buckets With Every Status", func(t *testing.T) {
		repo := new(mocks.SMSLogRepository)
		svc := report.NewService(repo, nil, nil, clock)
		userID := uuid.New()

		repo.On("StatsByDateAndStatus", ctx, mock.Anything, &userID).Return([]domain.StatusCount{
			{Date: "2024-03-09", Status: domain.SMSDelivered, Count: 3},
			{Date: "2024-03-09", Status: domain.SMSStatus("bogus"), Count: 9},
			{Date: "2023-01-01", Status: domain.SMSSent, Count: 9},
		}, nil)

		trend := svc.Trend(ctx, &userID, 7)

		require.Len(t, trend, 7)
		for _, b := range trend {
			assert.Len(t, b.Counts, len(domain.SMSStatuses))
		}
		assert.Equal(t, int64(3), trend[5].Counts[domain.SMSDelivered])
		assert.Equal(t, int64(0), trend[6].Counts[domain.SMSSent])
	})

	t.Run("Default Window", func(t *testing.T) {
		repo := new(mocks.SMSLogRepository)
		svc := report.NewService(repo, nil, nil, clock)
		repo.On("StatsByDateAndStatus", ctx, mock.Anything, mock.Anything).Return([]domain.StatusCount{}, nil)

		assert.Len(t, svc.Trend(ctx, nil, 0), report.DefaultDays)
	})

	t.Run("Store Error Returns Zeros", func(t *testing.T) {
		repo := new(mocks.SMSLogRepository)
		svc := report.NewService(repo, nil, nil, clock)
		repo.On("StatsByDateAndStatus", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		trend := svc.Trend(ctx, nil, 3)

		require.Len(t, trend, 3)
		for _, b := range trend {
			for _, count := range b.Counts {
				assert.Zero(t, count)
			}
		}
	})
}

func TestTodaySummary(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.SMSLogRepository)
	svc := report.NewService(repo, nil, nil, clock)

	repo.On("StatsByDateAndStatus", ctx, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), (*uuid.UUID)(nil)).Return([]domain.StatusCount{
		{Date: "2024-03-10", Status: domain.SMSSent, Count: 5},
		{Date: "2024-03-10", Status: domain.SMSDelivered, Count: 2},
		{Date: "2024-03-10", Status: domain.SMSFailed, Count: 1},
	}, nil)

	summary := svc.TodaySummary(ctx)

	assert.Equal(t, domain.TodaySummary{Date: "2024-03-10", Sent: 5, Delivered: 2, Failed: 1, Total: 8}, summary)
}
