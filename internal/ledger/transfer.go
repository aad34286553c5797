package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	dErrors "ticketd/pkg/domain-errors"
	"ticketd/pkg/domain"
)

// ExpiryWindow is how long after issuance a ticket remains transferable.
// Beyond it the ticket can only leave the ledger through the burn path.
const ExpiryWindow = 30 * 24 * time.Hour

// TransferProcessor validates ticket-bound transfers and moves balance
// between holders.
type TransferProcessor struct {
	access *AccessController
	gate   *PauseGate
	books  *TicketLedger
}

func newTransferProcessor(access *AccessController, gate *PauseGate, books *TicketLedger) *TransferProcessor {
	return &TransferProcessor{access: access, gate: gate, books: books}
}

// Transfer moves amount from one holder to another against the validity
// window of the referenced ticket record.
func (t *TransferProcessor) Transfer(from, to domain.Address, amount decimal.Decimal, ticketID domain.TicketID, now time.Time) ([]Event, error) {
	if to.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "recipient address cannot be zero")
	}
	return t.move(from, to, amount, ticketID, now)
}

// TransferToVendor settles amount to the primary venue address designated at
// construction. The role set is not consulted for the destination; settlement
// always lands on the one canonical vendor.
func (t *TransferProcessor) TransferToVendor(from domain.Address, amount decimal.Decimal, ticketID domain.TicketID, now time.Time) ([]Event, error) {
	return t.move(from, t.access.PrimaryVenue(), amount, ticketID, now)
}

func (t *TransferProcessor) move(from, to domain.Address, amount decimal.Decimal, ticketID domain.TicketID, now time.Time) ([]Event, error) {
	if err := t.gate.requireActive(); err != nil {
		return nil, err
	}
	rec, err := t.books.Ticket(ticketID)
	if err != nil {
		return nil, err
	}
	if expired(rec, now) {
		return nil, dErrors.Newf(dErrors.CodeExpired, "ticket %d expired and can only be burned", ticketID)
	}
	if !amount.IsPositive() {
		return nil, dErrors.New(dErrors.CodeInvalidAmount, "transfer amount must be positive")
	}
	if err := t.books.debitCredit(from, to, amount); err != nil {
		return nil, err
	}
	return []Event{TicketTransferred{From: from, To: to, TicketID: ticketID, Amount: amount}}, nil
}

// expired reports whether the record's validity window has passed at now.
// The boundary instant itself is still valid.
func expired(rec TicketRecord, now time.Time) bool {
	return now.Sub(rec.IssuedAt) > ExpiryWindow
}
