package domain

import "time"

const DateLayout = "2006-01-02"

type StatusCount struct {
	Date   string    `json:"date" db:"date"`
	Status SMSStatus `json:"status" db:"status"`
	Count  int64     `json:"count" db:"count"`
}

type DailyBucket struct {
	Date   string              `json:"date"`
	Counts map[SMSStatus]int64 `json:"counts"`
}

type TodaySummary struct {
	Date      string `json:"date"`
	Sent      int64  `json:"sent"`
	Delivered int64  `json:"delivered"`
	Failed    int64  `json:"failed"`
	Pending   int64  `json:"pending"`
	Error     int64  `json:"error"`
	Total     int64  `json:"total"`
}

func (s *TodaySummary) Add(status SMSStatus, count int64) {
	switch status {
	case SMSSent:
		s.Sent += count
	case SMSDelivered:
		s.Delivered += count
	case SMSFailed:
		s.Failed += count
	case SMSPending:
		s.Pending += count
	case SMSError:
		s.Error += count
	default:
		return
	}
	s.Total += count
}

// DayStart truncates t to midnight in its own location.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
