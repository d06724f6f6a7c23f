package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cekapguard/agency-api/internal/domain/entity"
	domainRepo "github.com/cekapguard/agency-api/internal/domain/repository"
	"github.com/cekapguard/agency-api/internal/infrastructure/stream"
	"github.com/cekapguard/agency-api/pkg/pagination"
)

type activityLogRepository struct {
	db     *gorm.DB
	broker *stream.Broker
}

// NewActivityLogRepository creates a new activity log repository. The
// implementation is append-only by construction: it exposes no update
// or delete.
func NewActivityLogRepository(db *gorm.DB, broker *stream.Broker) domainRepo.ActivityLogRepository {
	return &activityLogRepository{db: db, broker: broker}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *entity.ActivityLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return err
	}
	r.broker.Publish(stream.Event{Collection: "logs", Action: "created", ID: entry.ID.String()})
	return nil
}

func (r *activityLogRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.ActivityLog, int64, error) {
	var logs []entity.ActivityLog
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ActivityLog{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("timestamp DESC").
		Find(&logs).Error

	return logs, total, err
}

func (r *activityLogRepository) ListRecent(ctx context.Context, limit int) ([]entity.ActivityLog, error) {
	var logs []entity.ActivityLog
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
