package dispatch_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"unistay/internal/domain"
)

// memStore is a small in-memory stand-in for the three repositories the
// dispatcher touches. It honours claims the way the SQL does.
type memStore struct {
	mu            sync.Mutex
	notifications []*domain.Notification
	prefs         map[uuid.UUID]*domain.SMSPreference
	logs          []domain.SMSLog
}

func newMemStore() *memStore {
	return &memStore{prefs: make(map[uuid.UUID]*domain.SMSPreference)}
}

func (m *memStore) addUser(phoneNumber string) uuid.UUID {
	id := uuid.New()
	pref := domain.DefaultSMSPreference(id)
	if phoneNumber != "" {
		pref.PhoneNumber = &phoneNumber
	}
	m.prefs[id] = &pref
	return id
}

func (m *memStore) addNotification(userID uuid.UUID, typ domain.NotificationType, message string) *domain.Notification {
	n := &domain.Notification{ID: uuid.New(), UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	m.notifications = append(m.notifications, n)
	return n
}

func (m *memStore) logsWithStatus(status domain.SMSStatus) []domain.SMSLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.SMSLog
	for _, l := range m.logs {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out
}

func (m *memStore) find(id uuid.UUID) *domain.Notification {
	for _, n := range m.notifications {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// NotificationRepository

func (m *memStore) Create(ctx context.Context, notif *domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, notif)
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(id), nil
}

func (m *memStore) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	return nil, 0, nil
}

func (m *memStore) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error { return nil }
func (m *memStore) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error  { return nil }
func (m *memStore) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}
func (m *memStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (m *memStore) ListPending(ctx context.Context, scope domain.PendingScope) ([]domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Notification
	for _, n := range m.notifications {
		if n.Delivered {
			continue
		}
		if scope.UserID != nil && *scope.UserID != n.UserID {
			continue
		}
		if pref := m.prefs[n.UserID]; pref == nil || pref.Phone() == "" {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

func (m *memStore) Claim(ctx context.Context, id uuid.UUID, staleAfter time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.find(id)
	if n == nil || n.Delivered {
		return false, nil
	}
	if n.ClaimedAt != nil && time.Since(*n.ClaimedAt) < staleAfter {
		return false, nil
	}
	now := time.Now()
	n.ClaimedAt = &now
	return true, nil
}

func (m *memStore) Release(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := m.find(id); n != nil && !n.Delivered {
		n.ClaimedAt = nil
	}
	return nil
}

func (m *memStore) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := m.find(id); n != nil {
		n.Delivered = true
		n.ClaimedAt = nil
	}
	return nil
}

func (m *memStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

// smsLogs adapts memStore to the SMS log repository.
type smsLogs struct{ *memStore }

func (s smsLogs) Create(ctx context.Context, log *domain.SMSLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, *log)
	return nil
}

func (s smsLogs) List(ctx context.Context, filter domain.SMSLogFilter, params domain.PaginationParams) ([]domain.SMSLog, int64, error) {
	return nil, 0, nil
}

func (s smsLogs) StatsByDateAndStatus(ctx context.Context, from time.Time, userID *uuid.UUID) ([]domain.StatusCount, error) {
	return nil, nil
}

func (s smsLogs) ListOlderThan(ctx context.Context, cutoff time.Time) ([]domain.SMSLog, error) {
	return nil, nil
}

func (s smsLogs) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

// users adapts memStore to the user repository.
type users struct{ *memStore }

func (u users) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) { return nil, nil }

func (u users) ListIDs(ctx context.Context, role *domain.UserRole) ([]uuid.UUID, error) {
	return nil, nil
}

func (u users) GetPreference(ctx context.Context, userID uuid.UUID) (*domain.SMSPreference, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	pref, ok := u.prefs[userID]
	if !ok {
		return nil, nil
	}
	copied := *pref
	return &copied, nil
}

func (u users) UpdatePreference(ctx context.Context, pref *domain.SMSPreference) error { return nil }
