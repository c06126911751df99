package preference

import (
	"fmt"
	"strings"

	"unistay/internal/domain"
	"unistay/internal/pkg/phone"
)

// Policy decides what happens to notification types that no preference
// toggle covers.
type Policy string

const (
	PolicyFailOpen   Policy = "allow"
	PolicyFailClosed Policy = "block"
)

func ParsePolicy(value string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(value))) {
	case "", PolicyFailOpen:
		return PolicyFailOpen, nil
	case PolicyFailClosed:
		return PolicyFailClosed, nil
	default:
		return "", fmt.Errorf("unknown unmapped category policy %q", value)
	}
}

// Skip reasons, also used as metric labels.
const (
	ReasonDisabled = "disabled"
	ReasonNoPhone  = "invalid_phone"
	ReasonOptedOut = "opted_out"
	ReasonUnmapped = "unmapped_category"
)

type Decision struct {
	Eligible bool
	Reason   string
}

type Filter struct {
	Policy Policy
}

func NewFilter(policy Policy) Filter {
	return Filter{Policy: policy}
}

// Check applies the master switch, the phone check and the per-category
// toggle, in that order.
func (f Filter) Check(pref domain.SMSPreference, category domain.NotificationType) Decision {
	if !pref.Enabled {
		return Decision{Reason: ReasonDisabled}
	}
	if !phone.Valid(pref.Phone()) {
		return Decision{Reason: ReasonNoPhone}
	}

	toggle, mapped := categoryToggle(pref, category)
	if !mapped {
		if f.Policy == PolicyFailClosed {
			return Decision{Reason: ReasonUnmapped}
		}
		return Decision{Eligible: true}
	}
	if !toggle {
		return Decision{Reason: ReasonOptedOut}
	}
	return Decision{Eligible: true}
}

func (f Filter) Eligible(pref domain.SMSPreference, category domain.NotificationType) bool {
	return f.Check(pref, category).Eligible
}

func categoryToggle(pref domain.SMSPreference, category domain.NotificationType) (bool, bool) {
	switch category {
	case domain.NotifBookingUpdate:
		return pref.BookingUpdates, true
	case domain.NotifPaymentReceived:
		return pref.PaymentAlerts, true
	case domain.NotifMaintenance, domain.NotifMaintenanceMessage:
		return pref.MaintenanceUpdates, true
	case domain.NotifAnnouncement, domain.NotifSystemAlert:
		return pref.Announcements, true
	default:
		return false, false
	}
}
