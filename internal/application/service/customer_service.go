package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cekapguard/agency-api/internal/domain/entity"
	"github.com/cekapguard/agency-api/internal/domain/enum"
	"github.com/cekapguard/agency-api/internal/domain/repository"
	"github.com/cekapguard/agency-api/pkg/apperror"
	"github.com/cekapguard/agency-api/pkg/pagination"
)

// CustomerService resolves customer identities and guards against
// duplicate records. The duplicate check is advisory at data-entry time
// (FindDuplicate) and authoritative at finalize time (ResolveOrCreate).
type CustomerService struct {
	customerRepo repository.CustomerRepository
	clock        func() time.Time
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, clock: time.Now}
}

// WithClock overrides the time source, for tests.
func (s *CustomerService) WithClock(clock func() time.Time) *CustomerService {
	s.clock = clock
	return s
}

// CustomerCandidate is the identity a draft document points at, before
// it has been resolved against the registry.
type CustomerCandidate struct {
	CustomerID    *uuid.UUID
	Name          string
	Phone         string
	IC            string
	Email         *string
	IsCompany     bool
	AssetType     enum.AssetType
	AssetRegNo    string
	PolicyType    enum.PolicyType
	OthersDefault *enum.OthersCategory
}

// NormalizePhone rewrites a Malaysian phone number into the single
// +60XX-XXXXXXX form used for storage and exact-match comparison.
func NormalizePhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if strings.HasPrefix(d, "60") {
		d = d[2:]
	} else if strings.HasPrefix(d, "0") {
		d = d[1:]
	}
	if d == "" {
		return ""
	}
	formatted := "+60" + d
	if len(formatted) > 5 {
		formatted = formatted[:5] + "-" + formatted[5:]
	}
	if len(formatted) > 15 {
		formatted = formatted[:15]
	}
	return formatted
}

// FormatIC rewrites an identity-card number into the standard
// XXXXXX-XX-XXXX form.
func FormatIC(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	formatted := digits.String()
	if len(formatted) > 6 {
		formatted = formatted[:6] + "-" + formatted[6:]
	}
	if len(formatted) > 9 {
		formatted = formatted[:9] + "-" + formatted[9:]
	}
	if len(formatted) > 14 {
		formatted = formatted[:14]
	}
	return formatted
}

// FindDuplicate runs the advisory duplicate check, first match wins:
// an IC match when the candidate has no assigned customer yet and a
// plausible IC, then a case-insensitive name match. Companies skip the
// IC path since they may legitimately have none. The result is a
// warning the operator can accept or dismiss, never a hard error.
func (s *CustomerService) FindDuplicate(ctx context.Context, candidate *CustomerCandidate) (*entity.Customer, error) {
	if candidate.CustomerID != nil {
		return nil, nil
	}

	if !candidate.IsCompany && len(candidate.IC) >= 12 {
		match, err := s.customerRepo.GetByIC(ctx, candidate.IC)
		if err != nil {
			return nil, err
		}
		if match != nil {
			return match, nil
		}
	}

	if len(candidate.Name) > 3 {
		match, err := s.customerRepo.GetByName(ctx, candidate.Name)
		if err != nil {
			return nil, err
		}
		if match != nil {
			return match, nil
		}
	}

	return nil, nil
}

// ResolveOrCreate is the authoritative identity resolution run at
// finalize time. It re-checks with stricter rules: exact IC match when
// an IC is present, otherwise name (case-insensitive) plus exact phone.
// A match is updated in place with the candidate's current contact and
// policy details; otherwise a fresh customer record is created.
func (s *CustomerService) ResolveOrCreate(ctx context.Context, candidate *CustomerCandidate) (*entity.Customer, error) {
	phone := NormalizePhone(candidate.Phone)

	if candidate.CustomerID != nil {
		existing, err := s.customerRepo.GetByID(ctx, *candidate.CustomerID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, apperror.NewInvalidStateError("Linked customer no longer exists")
		}
		s.applyCandidate(existing, candidate, phone, false)
		if err := s.customerRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	var existing *entity.Customer
	var err error
	if candidate.IC != "" {
		existing, err = s.customerRepo.GetByIC(ctx, candidate.IC)
		if err != nil {
			return nil, err
		}
	}
	if existing == nil {
		existing, err = s.customerRepo.GetByNameAndPhone(ctx, candidate.Name, phone)
		if err != nil {
			return nil, err
		}
	}

	if existing != nil {
		s.applyCandidate(existing, candidate, phone, true)
		if err := s.customerRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	customer := &entity.Customer{
		Name:          candidate.Name,
		Phone:         phone,
		IC:            candidate.IC,
		Email:         candidate.Email,
		IsCompany:     candidate.IsCompany,
		AssetType:     candidate.AssetType,
		AssetRegNo:    candidate.AssetRegNo,
		PolicyType:    candidate.PolicyType,
		OthersDefault: candidate.OthersDefault,
		LastUpdated:   s.clock(),
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// applyCandidate refreshes a matched customer's mutable fields. The
// name is only overwritten when the match was found by IC or phone, not
// when the operator explicitly linked a record.
func (s *CustomerService) applyCandidate(c *entity.Customer, candidate *CustomerCandidate, phone string, updateName bool) {
	if updateName && candidate.Name != "" {
		c.Name = candidate.Name
	}
	if phone != "" {
		c.Phone = phone
	}
	if candidate.IC != "" {
		c.IC = candidate.IC
	}
	if candidate.AssetRegNo != "" {
		c.AssetRegNo = candidate.AssetRegNo
	}
	if candidate.PolicyType != "" {
		c.PolicyType = candidate.PolicyType
	}
	if candidate.OthersDefault != nil {
		c.OthersDefault = candidate.OthersDefault
	}
	c.LastUpdated = s.clock()
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with optional search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID            uuid.UUID
	Name          *string
	Phone         *string
	IC            *string
	Email         *string
	AssetRegNo    *string
	PolicyType    *enum.PolicyType
	OthersDefault *enum.OthersCategory
}

// UpdateCustomer updates a customer's mutable fields from the
// management screen.
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = NormalizePhone(*input.Phone)
	}
	if input.IC != nil {
		customer.IC = *input.IC
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.AssetRegNo != nil {
		customer.AssetRegNo = *input.AssetRegNo
	}
	if input.PolicyType != nil {
		customer.PolicyType = *input.PolicyType
	}
	if input.OthersDefault != nil {
		customer.OthersDefault = input.OthersDefault
	}
	customer.LastUpdated = s.clock()

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}
