package ledger

import (
	"time"

	dErrors "ticketd/pkg/domain-errors"
	"ticketd/pkg/domain"
)

// ExpiryReaper burns expired, unclaimed tickets on demand. Burning is the
// only path that removes balance without crediting another holder: the
// written-off units are forfeited, not refunded.
type ExpiryReaper struct {
	books *TicketLedger
}

func newExpiryReaper(books *TicketLedger) *ExpiryReaper {
	return &ExpiryReaper{books: books}
}

// BurnExpiredTicket writes off whatever remains of the ticket's original
// credit from the original holder and marks the record consumed. The write-
// off is clamped to the holder's current balance, so units the holder already
// transferred away stay where they are. Burning is permitted while paused;
// it moves no value between holders.
func (r *ExpiryReaper) BurnExpiredTicket(ticketID domain.TicketID, now time.Time) ([]Event, error) {
	rec, ok := r.books.tickets[ticketID]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "ticket %d does not exist", ticketID)
	}
	if rec.Burned {
		return nil, dErrors.Newf(dErrors.CodeAlreadyBurned, "ticket %d was already burned", ticketID)
	}
	if !expired(*rec, now) {
		return nil, dErrors.Newf(dErrors.CodeNotExpired, "ticket %d is still within its validity window", ticketID)
	}

	remaining := rec.Quantity
	if balance := r.books.BalanceOf(rec.OriginalHolder); balance.LessThan(remaining) {
		remaining = balance
	}
	r.books.writeOff(rec.OriginalHolder, remaining)
	rec.Burned = true

	return []Event{TicketBurned{TicketID: ticketID}}, nil
}
