package preference_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"unistay/internal/domain"
	"unistay/internal/mocks"
	"unistay/internal/service/preference"
)

func boolPtr(b bool) *bool { return &b }

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := preference.NewService(userRepo)
		userID := uuid.New()
		current := domain.DefaultSMSPreference(userID)

		userRepo.On("GetPreference", ctx, userID).Return(&current, nil)
		userRepo.On("UpdatePreference", ctx, mock.MatchedBy(func(p *domain.SMSPreference) bool {
			return p.Phone() == "+233244123456" && !p.PaymentAlerts && p.BookingUpdates
		})).Return(nil)

		pref, err := svc.Update(ctx, userID, domain.UpdateSMSPreferenceInput{
			PhoneNumber:   strPtr(" +233244123456 "),
			PaymentAlerts: boolPtr(false),
		})

		require.NoError(t, err)
		assert.False(t, pref.PaymentAlerts)
		userRepo.AssertExpectations(t)
	})

	t.Run("Invalid Phone", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := preference.NewService(userRepo)

		_, err := svc.Update(ctx, uuid.New(), domain.UpdateSMSPreferenceInput{PhoneNumber: strPtr("555-0100")})

		assert.ErrorIs(t, err, domain.ErrInvalidPhoneNumber)
		userRepo.AssertNotCalled(t, "GetPreference", mock.Anything, mock.Anything)
	})

	t.Run("Empty Phone Clears It", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := preference.NewService(userRepo)
		userID := uuid.New()
		current := domain.DefaultSMSPreference(userID)
		current.PhoneNumber = strPtr("0244123456")

		userRepo.On("GetPreference", ctx, userID).Return(&current, nil)
		userRepo.On("UpdatePreference", ctx, mock.MatchedBy(func(p *domain.SMSPreference) bool {
			return p.PhoneNumber == nil
		})).Return(nil)

		pref, err := svc.Update(ctx, userID, domain.UpdateSMSPreferenceInput{PhoneNumber: strPtr("  ")})

		require.NoError(t, err)
		assert.Nil(t, pref.PhoneNumber)
	})

	t.Run("Unknown User", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := preference.NewService(userRepo)
		userID := uuid.New()

		userRepo.On("GetPreference", ctx, userID).Return(nil, nil)

		_, err := svc.Update(ctx, userID, domain.UpdateSMSPreferenceInput{Enabled: boolPtr(false)})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
