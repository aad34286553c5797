package domain

import dErrors "ticketd/pkg/domain-errors"

// Role identifies a privilege level within the ledger.
//
// Usage: construct via ParseRole at trust boundaries to enforce the allowlist.
type Role string

// Supported roles. Owner administers pausing and role grants; Venue mints
// directly and withdraws the treasury.
const (
	RoleOwner Role = "owner"
	RoleVenue Role = "venue"
)

// validRoles is the single source of truth for supported roles.
var validRoles = map[Role]bool{
	RoleOwner: true,
	RoleVenue: true,
}

// ParseRole constructs a Role from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role cannot be empty")
	}
	r := Role(s)
	if !validRoles[r] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid role")
	}
	return r, nil
}

// IsValid checks if the role is one of the supported values.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}
