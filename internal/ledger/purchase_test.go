package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ticketd/pkg/domain-errors"
	"ticketd/pkg/domain"
)

func TestBuyTickets(t *testing.T) {
	t.Run("two tickets at exact payment", func(t *testing.T) {
		l := newTestLedger(t)

		result, events, err := l.BuyTickets(alice, 2, dec("0.02"), issueTime)
		require.NoError(t, err)

		assert.Equal(t, domain.TicketID(1), result.TicketID)
		assert.True(t, result.Refund.IsZero(), "refund %s", result.Refund)
		assert.True(t, l.BalanceOf(alice).Equal(dec("2")))
		assert.True(t, l.TreasuryBalance().Equal(dec("0.02")))

		require.Len(t, events, 1)
		assert.Equal(t, TicketPurchased{Buyer: alice, TicketID: 1, Count: 2}, events[0])
	})

	t.Run("overpayment is returned as refund", func(t *testing.T) {
		l := newTestLedger(t)

		result, _, err := l.BuyTickets(alice, 1, dec("0.02"), issueTime)
		require.NoError(t, err)

		assert.True(t, result.Refund.Equal(dec("0.01")))
		assert.True(t, l.BalanceOf(alice).Equal(dec("1")))
		// Only the required cost lands in the treasury.
		assert.True(t, l.TreasuryBalance().Equal(dec("0.01")))
	})

	t.Run("underpayment rejects and leaves state unchanged", func(t *testing.T) {
		l := newTestLedger(t)

		_, _, err := l.BuyTickets(alice, 3, dec("0.02"), issueTime)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInsufficientPayment))
		assert.True(t, l.BalanceOf(alice).IsZero())
		assert.True(t, l.TreasuryBalance().IsZero())

		_, err = l.Ticket(1)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("zero count rejected", func(t *testing.T) {
		l := newTestLedger(t)

		_, _, err := l.BuyTickets(alice, 0, dec("0.01"), issueTime)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidAmount))
	})

	t.Run("negative count rejected", func(t *testing.T) {
		l := newTestLedger(t)

		_, _, err := l.BuyTickets(alice, -5, dec("1"), issueTime)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidAmount))
	})

	t.Run("count above the purchase bound rejected", func(t *testing.T) {
		l := newTestLedger(t)

		_, _, err := l.BuyTickets(alice, MaxPurchaseCount+1, dec("1000000"), issueTime)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidAmount))
	})

	t.Run("ticket ids are sequential from 1", func(t *testing.T) {
		l := newTestLedger(t)

		for want := domain.TicketID(1); want <= 3; want++ {
			result, _, err := l.BuyTickets(alice, 1, dec("0.01"), issueTime)
			require.NoError(t, err)
			assert.Equal(t, want, result.TicketID)
		}
	})

	t.Run("id is not reused after a failed purchase", func(t *testing.T) {
		l := newTestLedger(t)

		result, _, err := l.BuyTickets(alice, 1, dec("0.01"), issueTime)
		require.NoError(t, err)
		assert.Equal(t, domain.TicketID(1), result.TicketID)

		_, _, err = l.BuyTickets(bob, 1, dec("0.001"), issueTime)
		require.Error(t, err)

		result, _, err = l.BuyTickets(bob, 1, dec("0.01"), issueTime)
		require.NoError(t, err)
		assert.Equal(t, domain.TicketID(2), result.TicketID)
	})

	t.Run("record captures issue time and original holder", func(t *testing.T) {
		l := newTestLedger(t)

		result, _, err := l.BuyTickets(alice, 4, dec("0.04"), issueTime)
		require.NoError(t, err)

		rec, err := l.Ticket(result.TicketID)
		require.NoError(t, err)
		assert.Equal(t, issueTime, rec.IssuedAt)
		assert.Equal(t, alice, rec.OriginalHolder)
		assert.True(t, rec.Quantity.Equal(dec("4")))
		assert.False(t, rec.Burned)
	})

	t.Run("treasury accumulates across purchases", func(t *testing.T) {
		l := newTestLedger(t)

		_, _, err := l.BuyTickets(alice, 2, dec("0.02"), issueTime)
		require.NoError(t, err)
		_, _, err = l.BuyTickets(bob, 3, dec("0.05"), issueTime)
		require.NoError(t, err)

		assert.True(t, l.TreasuryBalance().Equal(dec("0.05")))
	})
}
