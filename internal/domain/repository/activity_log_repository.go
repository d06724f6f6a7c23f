package repository

import (
	"context"

	"github.com/cekapguard/agency-api/internal/domain/entity"
	"github.com/cekapguard/agency-api/pkg/pagination"
)

// ActivityLogRepository defines the interface for audit log operations.
// The log is append-only: no update or delete exists.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *entity.ActivityLog) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.ActivityLog, int64, error)
	ListRecent(ctx context.Context, limit int) ([]entity.ActivityLog, error)
}
