package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"unistay/internal/domain"
	"unistay/internal/mocks"
	"unistay/internal/queue"
	"unistay/internal/service/notification"
)

func newService() (notification.Service, *mocks.NotificationRepository, *mocks.UserRepository, *mocks.Publisher) {
	notifRepo := new(mocks.NotificationRepository)
	userRepo := new(mocks.UserRepository)
	publisher := new(mocks.Publisher)
	return notification.NewService(notifRepo, userRepo, publisher, nil), notifRepo, userRepo, publisher
}

func userJob(userID uuid.UUID) interface{} {
	return mock.MatchedBy(func(job queue.DispatchJob) bool {
		return job.UserID != nil && *job.UserID == userID
	})
}

func TestNotifyPaymentReceived(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, notifRepo, _, publisher := newService()
		userID, paymentID := uuid.New(), uuid.New()

		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == userID && n.Type == domain.NotifPaymentReceived &&
				n.Message == "Payment of GHS 500 received" && *n.PaymentID == paymentID
		})).Return(nil)
		publisher.On("Publish", ctx, userJob(userID)).Return(nil)

		err := svc.NotifyPaymentReceived(ctx, userID, paymentID, nil, decimal.NewFromInt(500))

		require.NoError(t, err)
		notifRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("Publish Failure Is Not Fatal", func(t *testing.T) {
		svc, notifRepo, _, publisher := newService()
		userID := uuid.New()

		notifRepo.On("Create", ctx, mock.Anything).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down"))

		assert.NoError(t, svc.NotifyPaymentReceived(ctx, userID, uuid.New(), nil, decimal.RequireFromString("12.5")))
	})

	t.Run("Insert Failure Skips Publish", func(t *testing.T) {
		svc, notifRepo, _, publisher := newService()

		notifRepo.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

		assert.Error(t, svc.NotifyPaymentReceived(ctx, uuid.New(), uuid.New(), nil, decimal.NewFromInt(1)))
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "500", notification.FormatAmount(decimal.NewFromInt(500)))
	assert.Equal(t, "12.50", notification.FormatAmount(decimal.RequireFromString("12.5")))
	assert.Equal(t, "0.99", notification.FormatAmount(decimal.RequireFromString("0.989")))
}

func TestProducers(t *testing.T) {
	ctx := context.Background()
	userID, propertyID, adminID := uuid.New(), uuid.New(), uuid.New()

	cases := []struct {
		name    string
		call    func(notification.Service) error
		typ     domain.NotificationType
		message string
	}{
		{"Booking", func(s notification.Service) error {
			return s.NotifyBookingUpdate(ctx, userID, propertyID, "Approved")
		}, domain.NotifBookingUpdate, "Your booking has been approved"},
		{"Maintenance", func(s notification.Service) error {
			return s.NotifyMaintenanceUpdate(ctx, userID, propertyID, "In Progress")
		}, domain.NotifMaintenance, "Your maintenance request is now in progress"},
		{"Maintenance Message", func(s notification.Service) error {
			return s.NotifyMaintenanceMessage(ctx, userID, propertyID, " Technician arrives at 10am ")
		}, domain.NotifMaintenanceMessage, "Technician arrives at 10am"},
		{"System Alert", func(s notification.Service) error {
			return s.NotifySystemAlert(ctx, userID, adminID, "Account review required")
		}, domain.NotifSystemAlert, "Account review required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, notifRepo, _, publisher := newService()
			notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
				return n.UserID == userID && n.Type == tc.typ && n.Message == tc.message
			})).Return(nil)
			publisher.On("Publish", ctx, userJob(userID)).Return(nil)

			require.NoError(t, tc.call(svc))
			notifRepo.AssertExpectations(t)
		})
	}

	t.Run("Empty Message", func(t *testing.T) {
		svc, _, _, _ := newService()
		assert.ErrorIs(t, svc.NotifySystemAlert(ctx, userID, adminID, "  "), domain.ErrEmptyMessage)
	})
}

func TestBroadcastAnnouncement(t *testing.T) {
	ctx := context.Background()
	svc, notifRepo, userRepo, publisher := newService()
	adminID := uuid.New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	userRepo.On("ListIDs", ctx, (*domain.UserRole)(nil)).Return([]uuid.UUID{adminID, a, b, c}, nil)
	notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool { return n.UserID == b })).Return(errors.New("constraint"))
	notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID != b && n.Type == domain.NotifAnnouncement && *n.AdminID == adminID
	})).Return(nil)
	publisher.On("Publish", ctx, mock.MatchedBy(func(job queue.DispatchJob) bool { return job.UserID == nil })).Return(nil).Once()

	created, err := svc.BroadcastAnnouncement(ctx, adminID, "Water outage on Friday", nil)

	require.NoError(t, err)
	assert.Equal(t, 2, created)
	notifRepo.AssertNumberOfCalls(t, "Create", 3)
	publisher.AssertExpectations(t)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Invalid Type", func(t *testing.T) {
		svc, _, _, _ := newService()
		_, err := svc.Create(ctx, nil, domain.CreateNotificationInput{UserID: uuid.New(), Message: "x", Type: "promo"})
		assert.ErrorIs(t, err, domain.ErrInvalidNotification)
	})

	t.Run("Unknown User", func(t *testing.T) {
		svc, _, userRepo, _ := newService()
		userID := uuid.New()
		userRepo.On("GetByID", ctx, userID).Return(nil, nil)

		_, err := svc.Create(ctx, nil, domain.CreateNotificationInput{UserID: userID, Message: "Hello", Type: domain.NotifAnnouncement})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		svc, notifRepo, userRepo, publisher := newService()
		userID, adminID := uuid.New(), uuid.New()
		userRepo.On("GetByID", ctx, userID).Return(&domain.User{ID: userID}, nil)
		notifRepo.On("Create", ctx, mock.Anything).Return(nil)
		publisher.On("Publish", ctx, userJob(userID)).Return(nil)

		notif, err := svc.Create(ctx, &adminID, domain.CreateNotificationInput{UserID: userID, Message: " Rent due ", Type: domain.NotifSystemAlert})

		require.NoError(t, err)
		assert.Equal(t, "Rent due", notif.Message)
		assert.Equal(t, &adminID, notif.AdminID)
	})
}
