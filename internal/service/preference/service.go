package preference

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"unistay/internal/domain"
	"unistay/internal/pkg/phone"
	"unistay/internal/repository"
)

type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.SMSPreference, error)
	Update(ctx context.Context, userID uuid.UUID, input domain.UpdateSMSPreferenceInput) (*domain.SMSPreference, error)
}

type service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*domain.SMSPreference, error) {
	pref, err := s.userRepo.GetPreference(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		return nil, domain.ErrUserNotFound
	}
	return pref, nil
}

// Update applies the provided fields. An empty phone number clears it; any
// other value must be a valid Ghana number and is stored as entered.
func (s *service) Update(ctx context.Context, userID uuid.UUID, input domain.UpdateSMSPreferenceInput) (*domain.SMSPreference, error) {
	clearPhone := false
	if input.PhoneNumber != nil {
		number := strings.TrimSpace(*input.PhoneNumber)
		if number == "" {
			clearPhone = true
			input.PhoneNumber = nil
		} else if !phone.Valid(number) {
			return nil, domain.ErrInvalidPhoneNumber
		} else {
			input.PhoneNumber = &number
		}
	}

	pref, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	input.Apply(pref)
	if clearPhone {
		pref.PhoneNumber = nil
	}

	if err := s.userRepo.UpdatePreference(ctx, pref); err != nil {
		return nil, err
	}
	return pref, nil
}
