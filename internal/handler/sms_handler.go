package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"unistay/internal/domain"
	"unistay/internal/middleware"
	"unistay/internal/service/cleanup"
	"unistay/internal/service/dispatch"
	"unistay/internal/service/report"
)

type SMSHandler struct {
	dispatcher dispatch.Service
	reports    report.Service
	cleanup    cleanup.Service
}

func NewSMSHandler(dispatcher dispatch.Service, reports report.Service, cleanup cleanup.Service) *SMSHandler {
	return &SMSHandler{dispatcher: dispatcher, reports: reports, cleanup: cleanup}
}

func dispatchMessage(result domain.DispatchResult) string {
	return fmt.Sprintf("Processed %d notifications. Success: %d, Failed: %d", result.Processed, result.Success, result.Failed)
}

// ProcessPending dispatches for one user when user_id is given, otherwise for
// everyone.
func (h *SMSHandler) ProcessPending(c *fiber.Ctx) error {
	userID, err := optionalUUIDQuery(c, "user_id")
	if err != nil {
		return err
	}

	var result domain.DispatchResult
	if userID != nil {
		result = h.dispatcher.ProcessPendingForUser(c.UserContext(), *userID)
	} else {
		result = h.dispatcher.ProcessAllPending(c.UserContext())
	}

	return c.Status(fiber.StatusOK).JSON(dispatchResponse(result))
}

func (h *SMSHandler) SendTest(c *fiber.Ctx) error {
	var input domain.SendSMSInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	ok, err := h.dispatcher.SendTestSMS(c.UserContext(), input.PhoneNumber, input.Message)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": ok,
	})
}

func (h *SMSHandler) Stats(c *fiber.Ctx) error {
	userID, err := optionalUUIDQuery(c, "user_id")
	if err != nil {
		return err
	}

	stats := h.reports.GetStats(c.UserContext(), userID, c.QueryInt("days", report.DefaultDays))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": stats,
	})
}

func (h *SMSHandler) Trend(c *fiber.Ctx) error {
	userID, err := optionalUUIDQuery(c, "user_id")
	if err != nil {
		return err
	}

	trend := h.reports.Trend(c.UserContext(), userID, c.QueryInt("days", report.DefaultDays))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": trend,
	})
}

func (h *SMSHandler) Today(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.reports.TodaySummary(c.UserContext()))
}

func (h *SMSHandler) Logs(c *fiber.Ctx) error {
	filter, err := parseLogFilter(c)
	if err != nil {
		return err
	}

	params := getPaginationParams(c)
	logs, total, err := h.reports.ListLogs(c.UserContext(), filter, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total))
}

func parseLogFilter(c *fiber.Ctx) (domain.SMSLogFilter, error) {
	var filter domain.SMSLogFilter

	if raw := c.Query("status"); raw != "" {
		status := domain.SMSStatus(raw)
		if !status.IsValid() {
			return filter, middleware.BadRequest("Invalid status")
		}
		filter.Status = &status
	}
	if raw := c.Query("phone_number"); raw != "" {
		filter.PhoneNumber = &raw
	}

	notifID, err := optionalUUIDQuery(c, "notification_id")
	if err != nil {
		return filter, err
	}
	filter.NotificationID = notifID

	for name, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(domain.DateLayout, raw)
		if err != nil {
			return filter, middleware.BadRequest(fmt.Sprintf("Invalid %s date, expected YYYY-MM-DD", name))
		}
		*dst = &t
	}

	return filter, nil
}

func (h *SMSHandler) Cleanup(c *fiber.Ctx) error {
	var input domain.CleanupInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.cleanup.CleanupOlderThan(c.UserContext(), input.Days)
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if !result.Success {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(result)
}
