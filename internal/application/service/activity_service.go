package service

import (
	"context"
	"log"
	"time"

	"github.com/cekapguard/agency-api/internal/domain/entity"
	"github.com/cekapguard/agency-api/internal/domain/repository"
	"github.com/cekapguard/agency-api/pkg/pagination"
)

// ActivityService appends immutable audit records for staff actions.
// Recording is fire-and-forget: a failed log write never blocks or
// rolls back the business operation it describes.
type ActivityService struct {
	logRepo repository.ActivityLogRepository
	clock   func() time.Time
}

// NewActivityService creates a new activity service
func NewActivityService(logRepo repository.ActivityLogRepository) *ActivityService {
	return &ActivityService{logRepo: logRepo, clock: time.Now}
}

// WithClock overrides the time source, for tests.
func (s *ActivityService) WithClock(clock func() time.Time) *ActivityService {
	s.clock = clock
	return s
}

// Record appends an audit entry. Failures are logged locally and
// swallowed.
func (s *ActivityService) Record(ctx context.Context, staffName, action string, docRef *string) {
	entry := &entity.ActivityLog{
		Timestamp: s.clock().UTC(),
		StaffName: staffName,
		Action:    action,
		DocRef:    docRef,
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		log.Printf("activity log write failed (action=%q): %v", action, err)
	}
}

// ListLogs returns audit entries, newest first.
func (s *ActivityService) ListLogs(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.ActivityLog], error) {
	logs, total, err := s.logRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(logs, pag), nil
}
