package service

import (
	"context"

	"github.com/cekapguard/agency-api/internal/domain/entity"
	"github.com/cekapguard/agency-api/internal/domain/repository"
)

// ConfigService owns the singleton system configuration.
type ConfigService struct {
	configRepo repository.SystemConfigRepository
}

// NewConfigService creates a new config service
func NewConfigService(configRepo repository.SystemConfigRepository) *ConfigService {
	return &ConfigService{configRepo: configRepo}
}

// Get retrieves the configuration, initializing the documented default
// on first load.
func (s *ConfigService) Get(ctx context.Context) (*entity.SystemConfig, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = entity.DefaultSystemConfig()
		if err := s.configRepo.Create(ctx, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// UpdateConfigInput represents the update config input
type UpdateConfigInput struct {
	CompanyName   string
	Address       string
	Contact       string
	Logo          string
	FooterNotes   string
	InvoicePrefix string
	ReceiptPrefix string
}

// Update replaces the configuration. Reached only through the owner's
// settings screen.
func (s *ConfigService) Update(ctx context.Context, input *UpdateConfigInput) (*entity.SystemConfig, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	cfg.CompanyName = input.CompanyName
	cfg.Address = input.Address
	cfg.Contact = input.Contact
	cfg.Logo = input.Logo
	cfg.FooterNotes = input.FooterNotes
	cfg.InvoicePrefix = input.InvoicePrefix
	cfg.ReceiptPrefix = input.ReceiptPrefix

	if err := s.configRepo.Update(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
