package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	dErrors "ticketd/pkg/domain-errors"
	"ticketd/pkg/domain"
)

// TicketRecord captures the provenance of a purchase: when the ticket was
// issued, to whom, and how many units it credited. IssuedAt and
// OriginalHolder are never rewritten on transfer; validity is tied to the
// issuance event, not the current holder.
type TicketRecord struct {
	ID             domain.TicketID
	IssuedAt       time.Time
	OriginalHolder domain.Address
	Quantity       decimal.Decimal
	Burned         bool
}

// TicketLedger owns the holder balance table and the ticket record table.
// It exposes the mint entry point and the internal primitives the processors
// compose; all amounts are fixed-point decimals in ticket units.
type TicketLedger struct {
	access *AccessController
	gate   *PauseGate

	balances map[domain.Address]decimal.Decimal
	tickets  map[domain.TicketID]*TicketRecord
	nextID   domain.TicketID
}

func newTicketLedger(access *AccessController, gate *PauseGate) *TicketLedger {
	return &TicketLedger{
		access:   access,
		gate:     gate,
		balances: make(map[domain.Address]decimal.Decimal),
		tickets:  make(map[domain.TicketID]*TicketRecord),
		nextID:   1,
	}
}

// Mint credits `to` without creating a ticket record: directly minted balance
// has no issuance event and therefore never expires. Venue only, blocked
// while paused.
func (l *TicketLedger) Mint(caller, to domain.Address, amount decimal.Decimal) ([]Event, error) {
	if err := l.access.requireVenue(caller); err != nil {
		return nil, err
	}
	if err := l.gate.requireActive(); err != nil {
		return nil, err
	}
	if to.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "cannot mint to the zero address")
	}
	if !amount.IsPositive() {
		return nil, dErrors.New(dErrors.CodeInvalidAmount, "mint amount must be positive")
	}
	l.credit(to, amount)
	return nil, nil
}

// BalanceOf returns the holder's current balance. Pure read; unknown holders
// report zero.
func (l *TicketLedger) BalanceOf(holder domain.Address) decimal.Decimal {
	if b, ok := l.balances[holder]; ok {
		return b
	}
	return decimal.Zero
}

// Ticket returns a copy of the record for the given id.
func (l *TicketLedger) Ticket(id domain.TicketID) (TicketRecord, error) {
	rec, ok := l.tickets[id]
	if !ok {
		return TicketRecord{}, dErrors.Newf(dErrors.CodeNotFound, "ticket %d does not exist", id)
	}
	return *rec, nil
}

// creditPurchase allocates the next ticket id, stores the record, and credits
// the buyer. Only the purchase processor calls this; authorization and
// payment validation happen there.
func (l *TicketLedger) creditPurchase(buyer domain.Address, quantity decimal.Decimal, issuedAt time.Time) domain.TicketID {
	id := l.nextID
	l.nextID++
	l.tickets[id] = &TicketRecord{
		ID:             id,
		IssuedAt:       issuedAt,
		OriginalHolder: buyer,
		Quantity:       quantity,
	}
	l.credit(buyer, quantity)
	return id
}

// debitCredit moves amount from one holder to another. The referenced ticket
// record is left untouched; it denotes provenance, not current ownership.
func (l *TicketLedger) debitCredit(from, to domain.Address, amount decimal.Decimal) error {
	if l.BalanceOf(from).LessThan(amount) {
		return dErrors.New(dErrors.CodeInsufficientBalance, "holder balance is below the transfer amount")
	}
	l.balances[from] = l.balances[from].Sub(amount)
	l.credit(to, amount)
	return nil
}

// writeOff removes amount from the holder without crediting anyone. Only the
// expiry reaper calls this; the caller clamps amount to the holder's balance.
func (l *TicketLedger) writeOff(holder domain.Address, amount decimal.Decimal) {
	l.balances[holder] = l.balances[holder].Sub(amount)
}

func (l *TicketLedger) credit(to domain.Address, amount decimal.Decimal) {
	l.balances[to] = l.BalanceOf(to).Add(amount)
}
