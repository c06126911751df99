package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	FullName    string    `json:"full_name" db:"full_name"`
	Role        string    `json:"role" db:"role"`
	PhoneNumber *string   `json:"phone_number,omitempty" db:"phone_number"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// SMSPreference mirrors the sms_* columns of users.
type SMSPreference struct {
	UserID             uuid.UUID `json:"user_id" db:"id"`
	PhoneNumber        *string   `json:"phone_number" db:"phone_number"`
	Enabled            bool      `json:"sms_notifications" db:"sms_notifications"`
	BookingUpdates     bool      `json:"sms_booking_updates" db:"sms_booking_updates"`
	PaymentAlerts      bool      `json:"sms_payment_alerts" db:"sms_payment_alerts"`
	MaintenanceUpdates bool      `json:"sms_maintenance_updates" db:"sms_maintenance_updates"`
	Announcements      bool      `json:"sms_announcements" db:"sms_announcements"`
}

func (p SMSPreference) Phone() string {
	if p.PhoneNumber == nil {
		return ""
	}
	return *p.PhoneNumber
}

// DefaultSMSPreference matches the column defaults applied at user creation.
func DefaultSMSPreference(userID uuid.UUID) SMSPreference {
	return SMSPreference{
		UserID:             userID,
		Enabled:            true,
		BookingUpdates:     true,
		PaymentAlerts:      true,
		MaintenanceUpdates: true,
		Announcements:      true,
	}
}

type UpdateSMSPreferenceInput struct {
	PhoneNumber        *string `json:"phone_number,omitempty"`
	Enabled            *bool   `json:"sms_notifications,omitempty"`
	BookingUpdates     *bool   `json:"sms_booking_updates,omitempty"`
	PaymentAlerts      *bool   `json:"sms_payment_alerts,omitempty"`
	MaintenanceUpdates *bool   `json:"sms_maintenance_updates,omitempty"`
	Announcements      *bool   `json:"sms_announcements,omitempty"`
}

func (in UpdateSMSPreferenceInput) Apply(p *SMSPreference) {
	if in.PhoneNumber != nil {
		p.PhoneNumber = in.PhoneNumber
	}
	if in.Enabled != nil {
		p.Enabled = *in.Enabled
	}
	if in.BookingUpdates != nil {
		p.BookingUpdates = *in.BookingUpdates
	}
	if in.PaymentAlerts != nil {
		p.PaymentAlerts = *in.PaymentAlerts
	}
	if in.MaintenanceUpdates != nil {
		p.MaintenanceUpdates = *in.MaintenanceUpdates
	}
	if in.Announcements != nil {
		p.Announcements = *in.Announcements
	}
}

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleOwner   UserRole = "owner"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleOwner, RoleAdmin:
		return true
	default:
		return false
	}
}

func (u *User) HasRole(requiredRole string) bool {
	switch requiredRole {
	case "admin":
		return u.Role == "admin"
	case "owner":
		return u.Role == "owner" || u.Role == "admin"
	case "student":
		return u.Role == "student" || u.Role == "owner" || u.Role == "admin"
	default:
		return false
	}
}

// RequestContext is the authenticated caller, resolved once per request by
// the auth middleware and handed to handlers explicitly.
type RequestContext struct {
	UserID uuid.UUID
	Role   UserRole
}

func (rc RequestContext) IsAdmin() bool {
	return rc.Role == RoleAdmin
}
