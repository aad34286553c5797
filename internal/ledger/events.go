package ledger

import (
	"github.com/shopspring/decimal"

	"ticketd/pkg/domain"
)

// Event kinds emitted by ledger transitions.
const (
	EventKindRoleGranted       = "role_granted"
	EventKindPaused            = "paused"
	EventKindUnpaused          = "unpaused"
	EventKindTicketPurchased   = "ticket_purchased"
	EventKindTicketTransferred = "ticket_transferred"
	EventKindTicketBurned      = "ticket_burned"
	EventKindWithdrawn         = "withdrawn"
)

// Event is a fact recorded by a successful state transition. The ledger
// returns events to the caller instead of pushing them anywhere itself, so
// the execution environment decides how to fan them out.
type Event interface {
	Kind() string
}

// RoleGranted is emitted when the owner grants the venue role to a new
// identity. No event is emitted when the grant is a no-op.
type RoleGranted struct {
	Identity domain.Address
	Role     domain.Role
}

func (RoleGranted) Kind() string { return EventKindRoleGranted }

// Paused is emitted when the owner engages the pause gate.
type Paused struct{}

func (Paused) Kind() string { return EventKindPaused }

// Unpaused is emitted when the owner releases the pause gate.
type Unpaused struct{}

func (Unpaused) Kind() string { return EventKindUnpaused }

// TicketPurchased is emitted once per successful purchase.
type TicketPurchased struct {
	Buyer    domain.Address
	TicketID domain.TicketID
	Count    int64
}

func (TicketPurchased) Kind() string { return EventKindTicketPurchased }

// TicketTransferred is emitted when balance moves between holders against a
// valid ticket record.
type TicketTransferred struct {
	From     domain.Address
	To       domain.Address
	TicketID domain.TicketID
	Amount   decimal.Decimal
}

func (TicketTransferred) Kind() string { return EventKindTicketTransferred }

// TicketBurned is emitted when an expired ticket's remaining balance is
// written off.
type TicketBurned struct {
	TicketID domain.TicketID
}

func (TicketBurned) Kind() string { return EventKindTicketBurned }

// Withdrawn is emitted when the venue drains the treasury.
type Withdrawn struct {
	To     domain.Address
	Amount decimal.Decimal
}

func (Withdrawn) Kind() string { return EventKindWithdrawn }
