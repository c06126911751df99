package handler

import (
	"github.com/gofiber/fiber/v2"

	"unistay/internal/domain"
	"unistay/internal/middleware"
	"unistay/internal/service/auth"
)

func SetupRoutes(app *fiber.App, h *Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")
	protected := v1.Group("", middleware.AuthRequired(authService))

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	me := protected.Group("/users/me")
	me.Get("/sms-preferences", h.Preference.Get)
	me.Put("/sms-preferences", h.Preference.Update)
	me.Post("/sms-test", h.Preference.SendTest)

	admin := protected.Group("/admin", middleware.RequireRole(domain.RoleAdmin))

	sms := admin.Group("/sms")
	sms.Post("/process-pending", h.SMS.ProcessPending)
	sms.Post("/test", h.SMS.SendTest)
	sms.Get("/stats", h.SMS.Stats)
	sms.Get("/trend", h.SMS.Trend)
	sms.Get("/today", h.SMS.Today)
	sms.Get("/logs", h.SMS.Logs)

	admin.Post("/maintenance/cleanup", h.SMS.Cleanup)
	admin.Post("/notifications", h.Notification.Create)
	admin.Delete("/notifications/:id", h.Notification.Delete)
	admin.Post("/announcements", h.Notification.Announce)
}
