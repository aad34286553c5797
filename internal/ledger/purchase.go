package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	dErrors "ticketd/pkg/domain-errors"
	"ticketd/pkg/domain"
)

// UnitPrice is the fixed cost of one ticket in native currency units.
var UnitPrice = decimal.New(1, -2) // 0.01

// MaxPurchaseCount bounds a single purchase. Cost arithmetic is arbitrary
// precision so it cannot wrap, but an absurd count is still rejected as an
// invalid quantity.
const MaxPurchaseCount = 1_000_000

// PurchaseResult reports the outcome of a successful purchase. Refund is the
// overpayment the execution environment must return to the buyer; if that
// return cannot complete, the environment must discard the whole transition.
type PurchaseResult struct {
	TicketID domain.TicketID
	Refund   decimal.Decimal
}

// PurchaseProcessor prices purchases, validates payment, and routes the net
// proceeds into the treasury.
type PurchaseProcessor struct {
	gate     *PauseGate
	books    *TicketLedger
	treasury *Treasury
}

func newPurchaseProcessor(gate *PauseGate, books *TicketLedger, treasury *Treasury) *PurchaseProcessor {
	return &PurchaseProcessor{gate: gate, books: books, treasury: treasury}
}

// BuyTickets credits the buyer with count ticket units, records a new ticket
// issued at now, and deposits the required cost into the treasury. All
// validation happens before any mutation so a rejection leaves state
// untouched.
func (p *PurchaseProcessor) BuyTickets(buyer domain.Address, count int64, paid decimal.Decimal, now time.Time) (PurchaseResult, []Event, error) {
	if err := p.gate.requireActive(); err != nil {
		return PurchaseResult{}, nil, err
	}
	if buyer.IsZero() {
		return PurchaseResult{}, nil, dErrors.New(dErrors.CodeInvalidInput, "buyer address cannot be zero")
	}
	if count < 1 || count > MaxPurchaseCount {
		return PurchaseResult{}, nil, dErrors.Newf(dErrors.CodeInvalidAmount, "ticket count must be between 1 and %d", MaxPurchaseCount)
	}
	if paid.IsNegative() {
		return PurchaseResult{}, nil, dErrors.New(dErrors.CodeInvalidAmount, "payment cannot be negative")
	}

	required := UnitPrice.Mul(decimal.NewFromInt(count))
	if paid.LessThan(required) {
		return PurchaseResult{}, nil, dErrors.Newf(dErrors.CodeInsufficientPayment, "payment %s is below the required cost %s", paid, required)
	}
	refund := paid.Sub(required)

	p.treasury.deposit(required)
	ticketID := p.books.creditPurchase(buyer, decimal.NewFromInt(count), now)

	events := []Event{TicketPurchased{Buyer: buyer, TicketID: ticketID, Count: count}}
	return PurchaseResult{TicketID: ticketID, Refund: refund}, events, nil
}
