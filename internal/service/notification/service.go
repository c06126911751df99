package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"unistay/internal/domain"
	"unistay/internal/queue"
	"unistay/internal/repository"
)

type Service interface {
	Create(ctx context.Context, adminID *uuid.UUID, input domain.CreateNotificationInput) (*domain.Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	NotifyBookingUpdate(ctx context.Context, userID, propertyID uuid.UUID, status string) error
	NotifyPaymentReceived(ctx context.Context, userID, paymentID uuid.UUID, propertyID *uuid.UUID, amount decimal.Decimal) error
	NotifyMaintenanceUpdate(ctx context.Context, userID, propertyID uuid.UUID, status string) error
	NotifyMaintenanceMessage(ctx context.Context, userID, propertyID uuid.UUID, message string) error
	NotifySystemAlert(ctx context.Context, userID, adminID uuid.UUID, message string) error
	BroadcastAnnouncement(ctx context.Context, adminID uuid.UUID, message string, role *domain.UserRole) (int, error)
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	publisher queue.Publisher
	logger    *zap.Logger
}

// NewService builds the notification service. publisher may be nil, in which
// case notifications wait for the next sweep or page load.
func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, publisher queue.Publisher, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *service) Create(ctx context.Context, adminID *uuid.UUID, input domain.CreateNotificationInput) (*domain.Notification, error) {
	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidNotification
	}
	notif := &domain.Notification{
		ID:         uuid.New(),
		UserID:     input.UserID,
		PropertyID: input.PropertyID,
		PaymentID:  input.PaymentID,
		AdminID:    adminID,
		Message:    strings.TrimSpace(input.Message),
		Type:       input.Type,
	}
	if notif.Message == "" {
		return nil, domain.ErrEmptyMessage
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if err := s.insert(ctx, notif); err != nil {
		return nil, err
	}
	return notif, nil
}

// insert stores the notification and asks the worker to dispatch it.
func (s *service) insert(ctx context.Context, notif *domain.Notification) error {
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	s.publish(ctx, queue.UserJob(notif.UserID))
	return nil
}

func (s *service) publish(ctx context.Context, job queue.DispatchJob) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, job); err != nil {
		s.logger.Warn("failed to enqueue dispatch job", zap.String("key", job.Key()), zap.Error(err))
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notif == nil {
		return nil, domain.ErrNotificationNotFound
	}
	return notif, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	params.Validate()
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.notifRepo.Delete(ctx, id)
}

func (s *service) NotifyBookingUpdate(ctx context.Context, userID, propertyID uuid.UUID, status string) error {
	return s.insert(ctx, &domain.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		PropertyID: &propertyID,
		Type:       domain.NotifBookingUpdate,
		Message:    fmt.Sprintf("Your booking has been %s", strings.ToLower(strings.TrimSpace(status))),
	})
}

func (s *service) NotifyPaymentReceived(ctx context.Context, userID, paymentID uuid.UUID, propertyID *uuid.UUID, amount decimal.Decimal) error {
	return s.insert(ctx, &domain.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		PropertyID: propertyID,
		PaymentID:  &paymentID,
		Type:       domain.NotifPaymentReceived,
		Message:    fmt.Sprintf("Payment of GHS %s received", FormatAmount(amount)),
	})
}

// FormatAmount drops trailing zero decimals: 500 stays "500", 12.5 becomes
// "12.50".
func FormatAmount(amount decimal.Decimal) string {
	if amount.Equal(amount.Truncate(0)) {
		return amount.Truncate(0).String()
	}
	return amount.StringFixed(2)
}

func (s *service) NotifyMaintenanceUpdate(ctx context.Context, userID, propertyID uuid.UUID, status string) error {
	return s.insert(ctx, &domain.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		PropertyID: &propertyID,
		Type:       domain.NotifMaintenance,
		Message:    fmt.Sprintf("Your maintenance request is now %s", strings.ToLower(strings.TrimSpace(status))),
	})
}

func (s *service) NotifyMaintenanceMessage(ctx context.Context, userID, propertyID uuid.UUID, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.ErrEmptyMessage
	}
	return s.insert(ctx, &domain.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		PropertyID: &propertyID,
		Type:       domain.NotifMaintenanceMessage,
		Message:    message,
	})
}

func (s *service) NotifySystemAlert(ctx context.Context, userID, adminID uuid.UUID, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.ErrEmptyMessage
	}
	return s.insert(ctx, &domain.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		AdminID: &adminID,
		Type:    domain.NotifSystemAlert,
		Message: message,
	})
}

// BroadcastAnnouncement creates one announcement per user, optionally limited
// to a role, and returns how many were created. A failed insert is logged and
// the fan-out continues.
func (s *service) BroadcastAnnouncement(ctx context.Context, adminID uuid.UUID, message string, role *domain.UserRole) (int, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return 0, domain.ErrEmptyMessage
	}

	userIDs, err := s.userRepo.ListIDs(ctx, role)
	if err != nil {
		return 0, fmt.Errorf("failed to list recipients: %w", err)
	}

	created := 0
	for _, userID := range userIDs {
		if userID == adminID {
			continue
		}
		notif := &domain.Notification{
			ID:      uuid.New(),
			UserID:  userID,
			AdminID: &adminID,
			Type:    domain.NotifAnnouncement,
			Message: message,
		}
		if err := s.notifRepo.Create(ctx, notif); err != nil {
			s.logger.Warn("failed to create announcement", zap.String("user_id", userID.String()), zap.Error(err))
			continue
		}
		created++
	}

	if created > 0 {
		s.publish(ctx, queue.AllUsersJob())
	}
	return created, nil
}
