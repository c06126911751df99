package handler

import (
	"github.com/gofiber/fiber/v2"

	"unistay/internal/domain"
	"unistay/internal/middleware"
	"unistay/internal/service/dispatch"
	"unistay/internal/service/preference"
)

type PreferenceHandler struct {
	prefService preference.Service
	dispatcher  dispatch.Service
}

func NewPreferenceHandler(prefService preference.Service, dispatcher dispatch.Service) *PreferenceHandler {
	return &PreferenceHandler{prefService: prefService, dispatcher: dispatcher}
}

func (h *PreferenceHandler) Get(c *fiber.Ctx) error {
	rc, err := middleware.GetRequestContext(c)
	if err != nil {
		return err
	}

	pref, err := h.prefService.Get(c.UserContext(), rc.UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(pref)
}

func (h *PreferenceHandler) Update(c *fiber.Ctx) error {
	rc, err := middleware.GetRequestContext(c)
	if err != nil {
		return err
	}

	var input domain.UpdateSMSPreferenceInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	pref, err := h.prefService.Update(c.UserContext(), rc.UserID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(pref)
}

// SendTest sends a test message to the caller's own number.
func (h *PreferenceHandler) SendTest(c *fiber.Ctx) error {
	rc, err := middleware.GetRequestContext(c)
	if err != nil {
		return err
	}

	pref, err := h.prefService.Get(c.UserContext(), rc.UserID)
	if err != nil {
		return err
	}
	if pref.Phone() == "" {
		return middleware.BadRequest("Add a phone number before sending a test message")
	}

	ok, err := h.dispatcher.SendTestSMS(c.UserContext(), pref.Phone(), "")
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": ok,
	})
}
