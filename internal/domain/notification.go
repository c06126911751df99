package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	UserID      uuid.UUID        `json:"user_id" db:"user_id"`
	PropertyID  *uuid.UUID       `json:"property_id,omitempty" db:"property_id"`
	AdminID     *uuid.UUID       `json:"admin_id,omitempty" db:"admin_id"`
	PaymentID   *uuid.UUID       `json:"payment_id,omitempty" db:"payment_id"`
	Message     string           `json:"message" db:"message"`
	Type        NotificationType `json:"type" db:"type"`
	IsRead      bool             `json:"is_read" db:"is_read"`
	Delivered   bool             `json:"delivered" db:"delivered"`
	ClaimedAt   *time.Time       `json:"-" db:"claimed_at"`
	DeliveredAt *time.Time       `json:"delivered_at,omitempty" db:"delivered_at"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`

	// Populated by pending queries only.
	PropertyName *string `json:"property_name,omitempty" db:"property_name"`
}

type NotificationType string

const (
	NotifPaymentReceived    NotificationType = "payment_received"
	NotifBookingUpdate      NotificationType = "booking_update"
	NotifSystemAlert        NotificationType = "system_alert"
	NotifMaintenance        NotificationType = "maintenance"
	NotifAnnouncement       NotificationType = "announcement"
	NotifMaintenanceMessage NotificationType = "maintenance_message"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifPaymentReceived, NotifBookingUpdate, NotifSystemAlert,
		NotifMaintenance, NotifAnnouncement, NotifMaintenanceMessage:
		return true
	default:
		return false
	}
}

// PendingScope selects whose undelivered notifications to load. A nil UserID
// means every user.
type PendingScope struct {
	UserID *uuid.UUID
}

func AllUsers() PendingScope {
	return PendingScope{}
}

func ForUser(userID uuid.UUID) PendingScope {
	return PendingScope{UserID: &userID}
}

type CreateNotificationInput struct {
	UserID     uuid.UUID        `json:"user_id" validate:"required"`
	PropertyID *uuid.UUID       `json:"property_id,omitempty"`
	PaymentID  *uuid.UUID       `json:"payment_id,omitempty"`
	Message    string           `json:"message" validate:"required"`
	Type       NotificationType `json:"type" validate:"required"`
}

type AnnouncementInput struct {
	Message string `json:"message" validate:"required"`
}
