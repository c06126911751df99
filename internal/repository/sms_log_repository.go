package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"unistay/internal/domain"
)

type SMSLogRepository interface {
	Create(ctx context.Context, log *domain.SMSLog) error
	List(ctx context.Context, filter domain.SMSLogFilter, params domain.PaginationParams) ([]domain.SMSLog, int64, error)
	StatsByDateAndStatus(ctx context.Context, from time.Time, userID *uuid.UUID) ([]domain.StatusCount, error)
	ListOlderThan(ctx context.Context, cutoff time.Time) ([]domain.SMSLog, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type smsLogRepository struct {
	db *sqlx.DB
}

func NewSMSLogRepository(db *sqlx.DB) SMSLogRepository {
	return &smsLogRepository{db: db}
}

func (r *smsLogRepository) Create(ctx context.Context, log *domain.SMSLog) error {
	query := `
		INSERT INTO sms_logs (id, notification_id, phone_number, message, status, error_message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ID, log.NotificationID, log.PhoneNumber, log.Message, log.Status, log.ErrorMessage,
	).Scan(&log.CreatedAt)
}

// whereClause turns the typed filter into a parameterized WHERE clause.
func whereClause(filter domain.SMSLogFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != nil {
		add("status = $%d", string(*filter.Status))
	}
	if filter.PhoneNumber != nil {
		add("phone_number = $%d", *filter.PhoneNumber)
	}
	if filter.NotificationID != nil {
		add("notification_id = $%d", *filter.NotificationID)
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at < $%d", *filter.To)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *smsLogRepository) List(ctx context.Context, filter domain.SMSLogFilter, params domain.PaginationParams) ([]domain.SMSLog, int64, error) {
	params.Validate()

	where, args := whereClause(filter)

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM sms_logs`+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT * FROM sms_logs%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	logs := []domain.SMSLog{}
	err := r.db.SelectContext(ctx, &logs, query, append(args, params.PageSize, params.Offset())...)
	return logs, total, err
}

// StatsByDateAndStatus counts log rows per calendar day and status since
// from. With a user id only rows linked to that user's notifications count.
func (r *smsLogRepository) StatsByDateAndStatus(ctx context.Context, from time.Time, userID *uuid.UUID) ([]domain.StatusCount, error) {
	query := `
		SELECT TO_CHAR(l.created_at, 'YYYY-MM-DD') AS date, l.status, COUNT(*) AS count
		FROM sms_logs l`
	args := []interface{}{from}

	if userID != nil {
		query += `
		JOIN notifications n ON n.id = l.notification_id
		WHERE l.created_at >= $1 AND n.user_id = $2`
		args = append(args, *userID)
	} else {
		query += `
		WHERE l.created_at >= $1`
	}
	query += `
		GROUP BY 1, 2
		ORDER BY 1, 2`

	counts := []domain.StatusCount{}
	err := r.db.SelectContext(ctx, &counts, query, args...)
	return counts, err
}

func (r *smsLogRepository) ListOlderThan(ctx context.Context, cutoff time.Time) ([]domain.SMSLog, error) {
	logs := []domain.SMSLog{}
	query := `SELECT * FROM sms_logs WHERE created_at < $1 ORDER BY created_at`
	err := r.db.SelectContext(ctx, &logs, query, cutoff)
	return logs, err
}

func (r *smsLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sms_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
