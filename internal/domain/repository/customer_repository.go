package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/cekapguard/agency-api/internal/domain/entity"
	"github.com/cekapguard/agency-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations.
// There is deliberately no Delete: customers are never removed through
// the core.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// GetByIC returns the customer whose identity-card number matches
	// exactly, or nil when none does.
	GetByIC(ctx context.Context, ic string) (*entity.Customer, error)
	// GetByName returns the first customer whose name matches
	// case-insensitively, or nil.
	GetByName(ctx context.Context, name string) (*entity.Customer, error)
	// GetByNameAndPhone returns the customer matching name
	// (case-insensitive) and phone (exact), or nil.
	GetByNameAndPhone(ctx context.Context, name, phone string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	Count(ctx context.Context) (int64, error)
}
