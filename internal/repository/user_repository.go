package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"unistay/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListIDs(ctx context.Context, role *domain.UserRole) ([]uuid.UUID, error)
	GetPreference(ctx context.Context, userID uuid.UUID) (*domain.SMSPreference, error)
	UpdatePreference(ctx context.Context, pref *domain.SMSPreference) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, email, full_name, role, phone_number, created_at FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListIDs(ctx context.Context, role *domain.UserRole) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if role != nil {
		err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users WHERE role = $1 ORDER BY created_at`, string(*role))
		return ids, err
	}
	err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users ORDER BY created_at`)
	return ids, err
}

func (r *userRepository) GetPreference(ctx context.Context, userID uuid.UUID) (*domain.SMSPreference, error) {
	var pref domain.SMSPreference
	query := `
		SELECT id, phone_number, sms_notifications, sms_booking_updates,
			sms_payment_alerts, sms_maintenance_updates, sms_announcements
		FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &pref, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *userRepository) UpdatePreference(ctx context.Context, pref *domain.SMSPreference) error {
	query := `
		UPDATE users
		SET phone_number = :phone_number, sms_notifications = :sms_notifications,
			sms_booking_updates = :sms_booking_updates, sms_payment_alerts = :sms_payment_alerts,
			sms_maintenance_updates = :sms_maintenance_updates, sms_announcements = :sms_announcements
		WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, query, pref)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
