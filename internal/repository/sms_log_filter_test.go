package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"unistay/internal/domain"
)

func TestWhereClause(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		where, args := whereClause(domain.SMSLogFilter{})
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("All Filters", func(t *testing.T) {
		status := domain.SMSFailed
		phoneNumber := "0244123456"
		notifID := uuid.New()
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 7)

		where, args := whereClause(domain.SMSLogFilter{
			Status:         &status,
			PhoneNumber:    &phoneNumber,
			NotificationID: &notifID,
			From:           &from,
			To:             &to,
		})

		assert.Equal(t, " WHERE status = $1 AND phone_number = $2 AND notification_id = $3 AND created_at >= $4 AND created_at < $5", where)
		assert.Equal(t, []interface{}{"failed", phoneNumber, notifID, from, to}, args)
	})

	t.Run("Input Is Never Interpolated", func(t *testing.T) {
		phoneNumber := "'; DROP TABLE sms_logs; --"
		where, args := whereClause(domain.SMSLogFilter{PhoneNumber: &phoneNumber})

		assert.NotContains(t, where, "DROP")
		assert.Equal(t, []interface{}{phoneNumber}, args)
	})
}
