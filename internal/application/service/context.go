package service

import "github.com/cekapguard/agency-api/internal/domain/enum"

// StaffContext identifies the staff member performing an operation.
// It is passed explicitly into every service call rather than read from
// ambient session state so the core stays deterministic under test.
type StaffContext struct {
	ID   string
	Name string
	Role enum.UserRole
}
