package handler

import (
	"github.com/gofiber/fiber/v2"

	"unistay/internal/domain"
	"unistay/internal/middleware"
	"unistay/internal/service/dispatch"
	"unistay/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
	dispatcher   dispatch.Service
}

func NewNotificationHandler(notifService notification.Service, dispatcher dispatch.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService, dispatcher: dispatcher}
}

// List returns the caller's inbox. Opening the inbox also sends any SMS
// still pending for the caller.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	rc, err := middleware.GetRequestContext(c)
	if err != nil {
		return err
	}

	dispatched := h.dispatcher.ProcessPendingForUser(c.UserContext(), rc.UserID)

	unreadOnly := c.Query("unread_only") == "true"
	result, err := h.notifService.List(c.UserContext(), rc.UserID, unreadOnly, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"notifications": result,
		"sms":           dispatched,
	})
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	rc, err := middleware.GetRequestContext(c)
	if err != nil {
		return err
	}

	count, err := h.notifService.GetUnreadCount(c.UserContext(), rc.UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	rc, err := middleware.GetRequestContext(c)
	if err != nil {
		return err
	}

	notifID, err := parseUUIDParam(c, "id", "notification ID")
	if err != nil {
		return err
	}

	if err := h.notifService.MarkAsRead(c.UserContext(), notifID, rc.UserID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	rc, err := middleware.GetRequestContext(c)
	if err != nil {
		return err
	}

	if err := h.notifService.MarkAllAsRead(c.UserContext(), rc.UserID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	rc, err := middleware.GetRequestContext(c)
	if err != nil {
		return err
	}

	var input domain.CreateNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	notif, err := h.notifService.Create(c.UserContext(), &rc.UserID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(notif)
}

type announcementRequest struct {
	domain.AnnouncementInput
	Role *domain.UserRole `json:"role,omitempty"`
}

func (h *NotificationHandler) Announce(c *fiber.Ctx) error {
	rc, err := middleware.GetRequestContext(c)
	if err != nil {
		return err
	}

	var input announcementRequest
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Role != nil && !input.Role.IsValid() {
		return middleware.BadRequest("Invalid role")
	}

	created, err := h.notifService.BroadcastAnnouncement(c.UserContext(), rc.UserID, input.Message, input.Role)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"created": created,
	})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	notifID, err := parseUUIDParam(c, "id", "notification ID")
	if err != nil {
		return err
	}

	if err := h.notifService.Delete(c.UserContext(), notifID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
