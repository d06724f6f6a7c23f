package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/cekapguard/agency-api/internal/domain/entity"
	"github.com/cekapguard/agency-api/internal/domain/repository"
	"github.com/cekapguard/agency-api/pkg/apperror"
)

// StaffService manages the staff registry consulted at login.
type StaffService struct {
	staffRepo repository.StaffRepository
}

// NewStaffService creates a new staff service
func NewStaffService(staffRepo repository.StaffRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo}
}

// ListStaff returns the whole registry.
func (s *StaffService) ListStaff(ctx context.Context) ([]entity.StaffMember, error) {
	return s.staffRepo.List(ctx)
}

// CreateStaffInput represents the create staff input
type CreateStaffInput struct {
	Name  string
	Email string
	Phone string
}

// CreateStaff adds a member to the registry.
func (s *StaffService) CreateStaff(ctx context.Context, input *CreateStaffInput) (*entity.StaffMember, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Staff member already registered")
	}

	member := &entity.StaffMember{
		Name:  input.Name,
		Email: email,
		Phone: NormalizePhone(input.Phone),
	}
	if err := s.staffRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// DeleteStaff removes a member from the registry, revoking their access
// at the next login.
func (s *StaffService) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if member == nil {
		return apperror.NewNotFoundError("Staff member")
	}
	return s.staffRepo.Delete(ctx, id)
}
