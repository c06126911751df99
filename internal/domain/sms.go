package domain

import (
	"time"

	"github.com/google/uuid"
)

type SMSStatus string

const (
	SMSPending   SMSStatus = "pending"
	SMSSent      SMSStatus = "sent"
	SMSDelivered SMSStatus = "delivered"
	SMSFailed    SMSStatus = "failed"
	SMSError     SMSStatus = "error"
)

// SMSStatuses lists every log status in display order.
var SMSStatuses = []SMSStatus{SMSSent, SMSDelivered, SMSFailed, SMSPending, SMSError}

func (s SMSStatus) IsValid() bool {
	switch s {
	case SMSPending, SMSSent, SMSDelivered, SMSFailed, SMSError:
		return true
	default:
		return false
	}
}

// SMSLog is one dispatch attempt. Rows are never updated after insert.
type SMSLog struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	NotificationID *uuid.UUID `json:"notification_id,omitempty" db:"notification_id"`
	PhoneNumber    string     `json:"phone_number" db:"phone_number"`
	Message        string     `json:"message" db:"message"`
	Status         SMSStatus  `json:"status" db:"status"`
	ErrorMessage   *string    `json:"error_message,omitempty" db:"error_message"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// SMSLogFilter enumerates the filters the admin log view accepts.
type SMSLogFilter struct {
	Status         *SMSStatus
	PhoneNumber    *string
	NotificationID *uuid.UUID
	From           *time.Time
	To             *time.Time
}

type DispatchResult struct {
	Processed int `json:"processed"`
	Success   int `json:"success"`
	Failed    int `json:"failed"`
}

func (r *DispatchResult) Add(other DispatchResult) {
	r.Processed += other.Processed
	r.Success += other.Success
	r.Failed += other.Failed
}

type SendSMSInput struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Message     string `json:"message"`
}

type CleanupInput struct {
	Days int `json:"days" validate:"required,oneof=30 60 90 180 365"`
}

type CleanupResult struct {
	Days          int       `json:"days"`
	Cutoff        time.Time `json:"cutoff"`
	Notifications int64     `json:"notifications_deleted"`
	SMSLogs       int64     `json:"sms_logs_deleted"`
	Archived      string    `json:"archived,omitempty"`
	Success       bool      `json:"success"`
}

// RetentionDays are the cleanup windows an administrator may choose.
var RetentionDays = []int{30, 60, 90, 180, 365}

func IsValidRetention(days int) bool {
	for _, d := range RetentionDays {
		if d == days {
			return true
		}
	}
	return false
}
