package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ticketd/pkg/domain-errors"
)

func TestBurnExpiredTicket(t *testing.T) {
	afterExpiry := issueTime.Add(ExpiryWindow + time.Second)

	t.Run("burns the full remaining credit", func(t *testing.T) {
		l := newTestLedger(t)
		result, _, err := l.BuyTickets(alice, 2, dec("0.02"), issueTime)
		require.NoError(t, err)

		events, err := l.BurnExpiredTicket(result.TicketID, afterExpiry)
		require.NoError(t, err)

		assert.True(t, l.BalanceOf(alice).IsZero())
		require.Len(t, events, 1)
		assert.Equal(t, TicketBurned{TicketID: result.TicketID}, events[0])

		rec, err := l.Ticket(result.TicketID)
		require.NoError(t, err)
		assert.True(t, rec.Burned)
	})

	t.Run("second burn fails already burned", func(t *testing.T) {
		l := newTestLedger(t)
		result, _, err := l.BuyTickets(alice, 1, dec("0.01"), issueTime)
		require.NoError(t, err)

		_, err = l.BurnExpiredTicket(result.TicketID, afterExpiry)
		require.NoError(t, err)

		_, err = l.BurnExpiredTicket(result.TicketID, afterExpiry)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeAlreadyBurned))
	})

	t.Run("unknown ticket", func(t *testing.T) {
		l := newTestLedger(t)

		_, err := l.BurnExpiredTicket(7, afterExpiry)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("unexpired ticket cannot be burned", func(t *testing.T) {
		l := newTestLedger(t)
		result, _, err := l.BuyTickets(alice, 1, dec("0.01"), issueTime)
		require.NoError(t, err)

		_, err = l.BurnExpiredTicket(result.TicketID, issueTime.Add(ExpiryWindow))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotExpired))
		assert.True(t, l.BalanceOf(alice).Equal(dec("1")))
	})

	t.Run("write-off is clamped to what the holder still has", func(t *testing.T) {
		l := newTestLedger(t)
		result, _, err := l.BuyTickets(alice, 3, dec("0.03"), issueTime)
		require.NoError(t, err)

		// Alice passes one unit on before the ticket expires.
		_, err = l.Transfer(alice, bob, dec("1"), result.TicketID, issueTime.Add(time.Hour))
		require.NoError(t, err)

		_, err = l.BurnExpiredTicket(result.TicketID, afterExpiry)
		require.NoError(t, err)

		assert.True(t, l.BalanceOf(alice).IsZero())
		// Bob's unit is untouched; burn never reaches past the original holder.
		assert.True(t, l.BalanceOf(bob).Equal(dec("1")))
	})

	t.Run("minted balance survives a burn", func(t *testing.T) {
		l := newTestLedger(t)
		result, _, err := l.BuyTickets(alice, 1, dec("0.01"), issueTime)
		require.NoError(t, err)
		_, err = l.Mint(venue, alice, dec("10"))
		require.NoError(t, err)

		_, err = l.BurnExpiredTicket(result.TicketID, afterExpiry)
		require.NoError(t, err)

		// Only the ticket's own quantity is written off.
		assert.True(t, l.BalanceOf(alice).Equal(dec("10")))
	})

	t.Run("burn works while paused", func(t *testing.T) {
		l := newTestLedger(t)
		result, _, err := l.BuyTickets(alice, 1, dec("0.01"), issueTime)
		require.NoError(t, err)

		_, err = l.Pause(owner)
		require.NoError(t, err)

		_, err = l.BurnExpiredTicket(result.TicketID, afterExpiry)
		require.NoError(t, err)
		assert.True(t, l.BalanceOf(alice).IsZero())
	})

	t.Run("expired then burned sequence", func(t *testing.T) {
		l := newTestLedger(t)
		result, _, err := l.BuyTickets(alice, 1, dec("0.01"), issueTime)
		require.NoError(t, err)

		_, err = l.Transfer(alice, bob, dec("1"), result.TicketID, afterExpiry)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeExpired))

		_, err = l.BurnExpiredTicket(result.TicketID, afterExpiry)
		require.NoError(t, err)
		assert.True(t, l.BalanceOf(alice).IsZero())

		_, err = l.BurnExpiredTicket(result.TicketID, afterExpiry)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeAlreadyBurned))
	})
}
