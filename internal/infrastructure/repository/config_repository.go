package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cekapguard/agency-api/internal/domain/entity"
	domainRepo "github.com/cekapguard/agency-api/internal/domain/repository"
	"github.com/cekapguard/agency-api/internal/infrastructure/stream"
)

type systemConfigRepository struct {
	db     *gorm.DB
	broker *stream.Broker
}

// NewSystemConfigRepository creates a new system config repository
func NewSystemConfigRepository(db *gorm.DB, broker *stream.Broker) domainRepo.SystemConfigRepository {
	return &systemConfigRepository{db: db, broker: broker}
}

func (r *systemConfigRepository) Get(ctx context.Context) (*entity.SystemConfig, error) {
	var cfg entity.SystemConfig
	err := r.db.WithContext(ctx).First(&cfg, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cfg, err
}

func (r *systemConfigRepository) Create(ctx context.Context, cfg *entity.SystemConfig) error {
	cfg.ID = 1
	return r.db.WithContext(ctx).Create(cfg).Error
}

func (r *systemConfigRepository) Update(ctx context.Context, cfg *entity.SystemConfig) error {
	cfg.ID = 1
	if err := r.db.WithContext(ctx).Save(cfg).Error; err != nil {
		return err
	}
	r.broker.Publish(stream.Event{Collection: "settings", Action: "updated", ID: "config"})
	return nil
}
