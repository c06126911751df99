package smstemplate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unistay/internal/domain"
	"unistay/internal/pkg/smstemplate"
)

func strPtr(s string) *string { return &s }

func TestRender(t *testing.T) {
	t.Run("Payment", func(t *testing.T) {
		n := &domain.Notification{Type: domain.NotifPaymentReceived, Message: "Payment of GHS 500 received"}
		assert.Equal(t, "UniStay payment alert: Payment of GHS 500 received", smstemplate.Render("en", n))
	})

	t.Run("Booking With Property", func(t *testing.T) {
		n := &domain.Notification{
			Type:         domain.NotifBookingUpdate,
			Message:      "Your booking was approved",
			PropertyName: strPtr("Sunrise Hostel"),
		}
		assert.Equal(t, "UniStay booking update at Sunrise Hostel: Your booking was approved", smstemplate.Render("en", n))
	})

	t.Run("Booking Without Property", func(t *testing.T) {
		n := &domain.Notification{Type: domain.NotifBookingUpdate, Message: "Your booking was approved"}
		assert.Equal(t, "UniStay booking update: Your booking was approved", smstemplate.Render("en", n))
	})

	t.Run("Unknown Type Uses Default", func(t *testing.T) {
		n := &domain.Notification{Type: "rent_reminder", Message: "Rent is due"}
		assert.Equal(t, "UniStay: Rent is due", smstemplate.Render("en", n))
	})

	t.Run("Unknown Locale Falls Back", func(t *testing.T) {
		n := &domain.Notification{Type: domain.NotifAnnouncement, Message: "Water outage on Friday"}
		assert.Equal(t, "UniStay announcement: Water outage on Friday", smstemplate.Render("tw", n))
	})

	t.Run("Long Message Is Capped", func(t *testing.T) {
		n := &domain.Notification{Type: domain.NotifSystemAlert, Message: strings.Repeat("x", 400)}
		body := smstemplate.Render("en", n)
		assert.Equal(t, 160, utf8.RuneCountInString(body))
		assert.True(t, strings.HasSuffix(body, "..."))
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", smstemplate.Truncate("short", 160))
	assert.Equal(t, "abcdefg...", smstemplate.Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", smstemplate.Truncate("abcdef", 2))
	assert.Equal(t, 10, utf8.RuneCountInString(smstemplate.Truncate(strings.Repeat("₵", 50), 10)))
}

func TestLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fr"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "fr", "sms.yaml"),
		[]byte("SMS:\n  announcement: \"UniStay annonce: {message}\"\n"),
		0o644,
	))

	require.NoError(t, smstemplate.LoadTemplates(dir))

	n := &domain.Notification{Type: domain.NotifAnnouncement, Message: "Bonjour"}
	assert.Equal(t, "UniStay annonce: Bonjour", smstemplate.Render("fr", n))

	n.Type = domain.NotifPaymentReceived
	assert.Equal(t, "UniStay payment alert: Bonjour", smstemplate.Render("fr", n))
}

func TestTestMessage(t *testing.T) {
	assert.Contains(t, smstemplate.TestMessage("en"), "test message")
}
