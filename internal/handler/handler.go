package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"unistay/internal/domain"
	"unistay/internal/middleware"
	"unistay/internal/service"
)

type Handlers struct {
	Notification *NotificationHandler
	Preference   *PreferenceHandler
	SMS          *SMSHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Notification: NewNotificationHandler(services.Notification, services.Dispatch),
		Preference:   NewPreferenceHandler(services.Preference, services.Dispatch),
		SMS:          NewSMSHandler(services.Dispatch, services.Report, services.Cleanup),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}

func parseUUIDParam(c *fiber.Ctx, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + label)
	}
	return id, nil
}

// optionalUUIDQuery parses an optional query parameter; empty means nil.
func optionalUUIDQuery(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, middleware.BadRequest("Invalid " + name)
	}
	return &id, nil
}

func dispatchResponse(result domain.DispatchResult) fiber.Map {
	return fiber.Map{
		"result":  result,
		"message": dispatchMessage(result),
	}
}
