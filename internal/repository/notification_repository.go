package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"unistay/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListPending(ctx context.Context, scope domain.PendingScope) ([]domain.Notification, error)
	Claim(ctx context.Context, id uuid.UUID, staleAfter time.Duration) (bool, error)
	Release(ctx context.Context, id uuid.UUID) error
	MarkDelivered(ctx context.Context, id uuid.UUID) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, property_id, admin_id, payment_id, message, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.UserID, notif.PropertyID, notif.AdminID, notif.PaymentID, notif.Message, notif.Type,
	).Scan(&notif.CreatedAt)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT * FROM notifications WHERE id = $1`

	err := r.db.GetContext(ctx, &notif, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	where := `WHERE user_id = $1`
	if unreadOnly {
		where += ` AND is_read = false`
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications `+where, userID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM notifications ` + where + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	notifications := []domain.Notification{}
	err := r.db.SelectContext(ctx, &notifications, query, userID, params.PageSize, params.Offset())
	return notifications, total, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// ListPending returns undelivered notifications whose owner has a phone
// number on file, oldest first.
func (r *notificationRepository) ListPending(ctx context.Context, scope domain.PendingScope) ([]domain.Notification, error) {
	query := `
		SELECT n.*, p.name AS property_name
		FROM notifications n
		JOIN users u ON u.id = n.user_id
		LEFT JOIN properties p ON p.id = n.property_id
		WHERE n.delivered = false
			AND u.phone_number IS NOT NULL
			AND TRIM(u.phone_number) <> ''`

	args := []interface{}{}
	if scope.UserID != nil {
		query += ` AND n.user_id = $1`
		args = append(args, *scope.UserID)
	}
	query += ` ORDER BY n.created_at, n.id`

	notifications := []domain.Notification{}
	err := r.db.SelectContext(ctx, &notifications, query, args...)
	return notifications, err
}

// Claim marks a pending notification as in flight. It reports false when the
// row is already delivered or another dispatcher claimed it within staleAfter.
func (r *notificationRepository) Claim(ctx context.Context, id uuid.UUID, staleAfter time.Duration) (bool, error) {
	query := `
		UPDATE notifications SET claimed_at = NOW()
		WHERE id = $1
			AND delivered = false
			AND (claimed_at IS NULL OR claimed_at < NOW() - make_interval(secs => $2))`

	res, err := r.db.ExecContext(ctx, query, id, staleAfter.Seconds())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *notificationRepository) Release(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE notifications SET claimed_at = NULL WHERE id = $1 AND delivered = false`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *notificationRepository) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET delivered = true, delivered_at = COALESCE(delivered_at, NOW()), claimed_at = NULL
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *notificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
