package domain

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidPhoneNumber   = errors.New("invalid phone number")
	ErrEmptyMessage         = errors.New("message is required")
	ErrInvalidRetention     = errors.New("retention must be one of 30, 60, 90, 180 or 365 days")
	ErrInvalidNotification  = errors.New("invalid notification type")
	ErrForbidden            = errors.New("insufficient permissions")
)
