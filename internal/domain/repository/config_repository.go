package repository

import (
	"context"

	"github.com/cekapguard/agency-api/internal/domain/entity"
)

// SystemConfigRepository defines the interface for the singleton
// configuration row.
type SystemConfigRepository interface {
	// Get returns the configuration, or nil when none has been
	// initialized yet.
	Get(ctx context.Context) (*entity.SystemConfig, error)
	Create(ctx context.Context, cfg *entity.SystemConfig) error
	Update(ctx context.Context, cfg *entity.SystemConfig) error
}
