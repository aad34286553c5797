package ledger

import (
	dErrors "ticketd/pkg/domain-errors"
	"ticketd/pkg/domain"
)

// AccessController holds the role assignment set and authorizes privileged
// operations. Exactly one identity holds the owner role for the ledger's
// lifetime; any number may hold the venue role. The primary venue is the
// settlement target for vendor transfers and is fixed at construction, so
// granting the venue role to further identities never redirects settlement.
type AccessController struct {
	owner        domain.Address
	primaryVenue domain.Address
	venues       map[domain.Address]struct{}
}

func newAccessController(owner, primaryVenue domain.Address) *AccessController {
	return &AccessController{
		owner:        owner,
		primaryVenue: primaryVenue,
		venues:       map[domain.Address]struct{}{primaryVenue: {}},
	}
}

// HasRole reports whether identity holds the given role. Pure read; unknown
// roles simply report false.
func (c *AccessController) HasRole(identity domain.Address, role domain.Role) bool {
	switch role {
	case domain.RoleOwner:
		return identity == c.owner
	case domain.RoleVenue:
		_, ok := c.venues[identity]
		return ok
	default:
		return false
	}
}

// Owner returns the owning identity.
func (c *AccessController) Owner() domain.Address {
	return c.owner
}

// PrimaryVenue returns the canonical settlement address for vendor transfers.
func (c *AccessController) PrimaryVenue() domain.Address {
	return c.primaryVenue
}

// GrantVenueRole adds identity to the venue role set. Granting an identity
// that already holds the role is a no-op and emits nothing, so repeated
// grants cannot duplicate entries or fail.
func (c *AccessController) GrantVenueRole(caller, identity domain.Address) ([]Event, error) {
	if err := c.requireOwner(caller); err != nil {
		return nil, err
	}
	if identity.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "cannot grant role to the zero address")
	}
	if _, ok := c.venues[identity]; ok {
		return nil, nil
	}
	c.venues[identity] = struct{}{}
	return []Event{RoleGranted{Identity: identity, Role: domain.RoleVenue}}, nil
}

func (c *AccessController) requireOwner(caller domain.Address) error {
	if caller != c.owner {
		return dErrors.New(dErrors.CodeUnauthorized, "caller does not hold the owner role")
	}
	return nil
}

func (c *AccessController) requireVenue(caller domain.Address) error {
	if _, ok := c.venues[caller]; !ok {
		return dErrors.New(dErrors.CodeUnauthorized, "caller does not hold the venue role")
	}
	return nil
}
