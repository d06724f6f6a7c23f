package enum

// UserRole is the access level of a staff login.
type UserRole string

const (
	UserRoleOwner UserRole = "Owner"
	UserRoleStaff UserRole = "Staff"
)

// Valid reports whether the value is a known role.
func (r UserRole) Valid() bool {
	return r == UserRoleOwner || r == UserRoleStaff
}
