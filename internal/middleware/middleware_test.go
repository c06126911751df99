package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"unistay/internal/domain"
	"unistay/internal/middleware"
	"unistay/internal/mocks"
	"unistay/internal/service/auth"
)

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.NewErrorHandler(zap.NewNop())})
}

func decode(t *testing.T, body io.Reader) middleware.ErrorResponse {
	var resp middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("wrap: %w", domain.ErrInvalidPhoneNumber), fiber.StatusBadRequest, "BAD_REQUEST"},
		{domain.ErrNotificationNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{middleware.Forbidden("nope"), fiber.StatusForbidden, "FORBIDDEN"},
		{errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			app := newApp()
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decode(t, resp.Body).Code)
		})
	}
}

func TestAuthRequired(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	authSvc := auth.NewService(userRepo, "secret")
	student := &domain.User{ID: uuid.New(), Role: string(domain.RoleStudent)}
	admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}
	userRepo.On("GetByID", mock.Anything, student.ID).Return(student, nil)
	userRepo.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)

	app := newApp()
	app.Use(middleware.AuthRequired(authSvc))
	app.Get("/me", func(c *fiber.Ctx) error {
		rc, err := middleware.GetRequestContext(c)
		if err != nil {
			return err
		}
		return c.SendString(rc.UserID.String())
	})
	app.Get("/admin", middleware.RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	bearer := func(u *domain.User) string {
		token, err := authSvc.IssueAccessToken(u, time.Minute)
		require.NoError(t, err)
		return "Bearer " + token
	}

	t.Run("Missing Header", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Valid Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", bearer(student))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Admin Only", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", bearer(student))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		req = httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", bearer(admin))
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	})
}
