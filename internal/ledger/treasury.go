package ledger

import (
	"github.com/shopspring/decimal"

	"ticketd/pkg/domain"
)

// Treasury accumulates the native currency collected from purchases. Only
// the venue role may drain it. Withdrawal is deliberately allowed while the
// ledger is paused: the pause gate freezes ticket value movement, and
// trapping collected funds during an emergency would hurt exactly the party
// that needs them.
type Treasury struct {
	access  *AccessController
	balance decimal.Decimal
}

func newTreasury(access *AccessController) *Treasury {
	return &Treasury{access: access, balance: decimal.Zero}
}

// Balance returns the accumulated amount. Pure read.
func (t *Treasury) Balance() decimal.Decimal {
	return t.balance
}

// Withdraw zeroes the treasury and returns the prior balance for the
// execution environment to pay out to the caller.
func (t *Treasury) Withdraw(caller domain.Address) (decimal.Decimal, []Event, error) {
	if err := t.access.requireVenue(caller); err != nil {
		return decimal.Zero, nil, err
	}
	amount := t.balance
	t.balance = decimal.Zero
	return amount, []Event{Withdrawn{To: caller, Amount: amount}}, nil
}

// deposit is the purchase processor's entry point for collected payment.
func (t *Treasury) deposit(amount decimal.Decimal) {
	t.balance = t.balance.Add(amount)
}
