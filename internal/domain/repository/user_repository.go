package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/cekapguard/agency-api/internal/domain/entity"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
}

// StaffRepository defines the interface for the staff registry
type StaffRepository interface {
	Create(ctx context.Context, member *entity.StaffMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StaffMember, error)
	GetByEmail(ctx context.Context, email string) (*entity.StaffMember, error)
	List(ctx context.Context) ([]entity.StaffMember, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
