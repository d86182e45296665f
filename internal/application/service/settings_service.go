package service

import (
	"context"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
)

// SettingsService handles the single company settings row
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// SettingsInput represents the update settings input
type SettingsInput struct {
	Name          *string
	Address       *string
	Phone         *string
	Email         *string
	TaxNumber     *string
	Currency      *string
	Logo          *string
	ReceiptFooter *string
}

// GetSettings returns the company settings, created with defaults when missing
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.CompanySettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettings updates the company settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *SettingsInput) (*entity.CompanySettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != "" {
		settings.Name = *input.Name
	}
	if input.Address != nil {
		settings.Address = input.Address
	}
	if input.Phone != nil {
		settings.Phone = input.Phone
	}
	if input.Email != nil {
		settings.Email = input.Email
	}
	if input.TaxNumber != nil {
		settings.TaxNumber = input.TaxNumber
	}
	if input.Currency != nil && *input.Currency != "" {
		settings.Currency = *input.Currency
	}
	if input.Logo != nil {
		settings.Logo = input.Logo
	}
	if input.ReceiptFooter != nil {
		settings.ReceiptFooter = input.ReceiptFooter
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
