// Package ledger implements the ticketing ledger's state-transition logic:
// holder balances, ticket records, role assignments, the pause gate, and the
// treasury, with purchase, transfer, expiry-burn, and withdrawal transitions
// over them.
//
// The ledger is a deterministic single-writer state machine. It takes the
// current time as an explicit argument on every time-sensitive operation,
// holds no locks, and performs no I/O; callers serialize operations and fan
// out the returned events. Every operation either fully applies or rejects
// with a coded error leaving state unchanged.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	dErrors "ticketd/pkg/domain-errors"
	"ticketd/pkg/domain"
)

// Ledger is the single owned state struct behind all operations. Construct
// with New and thread it explicitly; there is no package-level state.
type Ledger struct {
	access    *AccessController
	gate      *PauseGate
	books     *TicketLedger
	purchases *PurchaseProcessor
	transfers *TransferProcessor
	reaper    *ExpiryReaper
	treasury  *Treasury
}

// New creates a zeroed ledger with the given owner and the primary venue
// identity, which also receives the venue role.
func New(owner, primaryVenue domain.Address) (*Ledger, error) {
	if owner.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "owner address cannot be zero")
	}
	if primaryVenue.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "venue address cannot be zero")
	}
	access := newAccessController(owner, primaryVenue)
	gate := newPauseGate(access)
	books := newTicketLedger(access, gate)
	treasury := newTreasury(access)
	return &Ledger{
		access:    access,
		gate:      gate,
		books:     books,
		purchases: newPurchaseProcessor(gate, books, treasury),
		transfers: newTransferProcessor(access, gate, books),
		reaper:    newExpiryReaper(books),
		treasury:  treasury,
	}, nil
}

// GrantVenueRole authorizes identity to mint and withdraw. Owner only.
func (l *Ledger) GrantVenueRole(caller, identity domain.Address) ([]Event, error) {
	return l.access.GrantVenueRole(caller, identity)
}

// HasRole reports whether identity holds role.
func (l *Ledger) HasRole(identity domain.Address, role domain.Role) bool {
	return l.access.HasRole(identity, role)
}

// Pause blocks value-moving operations until Unpause. Owner only.
func (l *Ledger) Pause(caller domain.Address) ([]Event, error) {
	return l.gate.Pause(caller)
}

// Unpause re-enables value-moving operations. Owner only.
func (l *Ledger) Unpause(caller domain.Address) ([]Event, error) {
	return l.gate.Unpause(caller)
}

// IsPaused reports the pause gate state.
func (l *Ledger) IsPaused() bool {
	return l.gate.IsPaused()
}

// Mint credits `to` without an associated ticket record. Venue only.
func (l *Ledger) Mint(caller, to domain.Address, amount decimal.Decimal) ([]Event, error) {
	return l.books.Mint(caller, to, amount)
}

// BalanceOf returns the holder's current balance in ticket units.
func (l *Ledger) BalanceOf(holder domain.Address) decimal.Decimal {
	return l.books.BalanceOf(holder)
}

// Ticket returns the record for the given id.
func (l *Ledger) Ticket(id domain.TicketID) (TicketRecord, error) {
	return l.books.Ticket(id)
}

// BuyTickets purchases count tickets for the buyer at now.
func (l *Ledger) BuyTickets(buyer domain.Address, count int64, paid decimal.Decimal, now time.Time) (PurchaseResult, []Event, error) {
	return l.purchases.BuyTickets(buyer, count, paid, now)
}

// Transfer moves amount between holders against a ticket's validity window.
func (l *Ledger) Transfer(from, to domain.Address, amount decimal.Decimal, ticketID domain.TicketID, now time.Time) ([]Event, error) {
	return l.transfers.Transfer(from, to, amount, ticketID, now)
}

// TransferToVendor settles amount to the primary venue.
func (l *Ledger) TransferToVendor(from domain.Address, amount decimal.Decimal, ticketID domain.TicketID, now time.Time) ([]Event, error) {
	return l.transfers.TransferToVendor(from, amount, ticketID, now)
}

// BurnExpiredTicket forfeits the remaining balance of an expired ticket.
func (l *Ledger) BurnExpiredTicket(ticketID domain.TicketID, now time.Time) ([]Event, error) {
	return l.reaper.BurnExpiredTicket(ticketID, now)
}

// Withdraw drains the treasury to the caller. Venue only; works while paused.
func (l *Ledger) Withdraw(caller domain.Address) (decimal.Decimal, []Event, error) {
	return l.treasury.Withdraw(caller)
}

// TreasuryBalance returns the accumulated, unwithdrawn payment total.
func (l *Ledger) TreasuryBalance() decimal.Decimal {
	return l.treasury.Balance()
}

// PrimaryVenue returns the canonical vendor settlement address.
func (l *Ledger) PrimaryVenue() domain.Address {
	return l.access.PrimaryVenue()
}

// Owner returns the owning identity.
func (l *Ledger) Owner() domain.Address {
	return l.access.Owner()
}
