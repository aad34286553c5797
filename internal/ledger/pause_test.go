package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ticketd/pkg/domain-errors"
)

func TestPauseGate(t *testing.T) {
	t.Run("owner toggles the gate", func(t *testing.T) {
		l := newTestLedger(t)

		events, err := l.Pause(owner)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, Paused{}, events[0])
		assert.True(t, l.IsPaused())

		events, err = l.Unpause(owner)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, Unpaused{}, events[0])
		assert.False(t, l.IsPaused())
	})

	t.Run("redundant pause is an explicit error", func(t *testing.T) {
		l := newTestLedger(t)

		_, err := l.Pause(owner)
		require.NoError(t, err)

		_, err = l.Pause(owner)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
		assert.True(t, l.IsPaused())
	})

	t.Run("redundant unpause is an explicit error", func(t *testing.T) {
		l := newTestLedger(t)

		_, err := l.Unpause(owner)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	t.Run("non-owner cannot toggle", func(t *testing.T) {
		l := newTestLedger(t)

		_, err := l.Pause(venue)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		assert.False(t, l.IsPaused())

		_, err = l.Pause(owner)
		require.NoError(t, err)
		_, err = l.Unpause(venue)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		assert.True(t, l.IsPaused())
	})
}

func TestPause_BlocksValueMovingOperations(t *testing.T) {
	l := newTestLedger(t)

	// Seed a ticket so transfer paths get past lookup when unpaused.
	result, _, err := l.BuyTickets(alice, 2, dec("0.02"), issueTime)
	require.NoError(t, err)

	_, err = l.Pause(owner)
	require.NoError(t, err)

	t.Run("buy fails paused", func(t *testing.T) {
		_, _, err := l.BuyTickets(bob, 1, dec("0.01"), issueTime)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodePaused))
	})

	t.Run("transfer fails paused", func(t *testing.T) {
		_, err := l.Transfer(alice, bob, dec("1"), result.TicketID, issueTime)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodePaused))
	})

	t.Run("vendor settlement fails paused", func(t *testing.T) {
		_, err := l.TransferToVendor(alice, dec("1"), result.TicketID, issueTime)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodePaused))
	})

	t.Run("mint fails paused", func(t *testing.T) {
		_, err := l.Mint(venue, alice, dec("1"))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodePaused))
	})

	t.Run("state is untouched by blocked operations", func(t *testing.T) {
		assert.True(t, l.BalanceOf(alice).Equal(dec("2")))
		assert.True(t, l.BalanceOf(bob).IsZero())
		assert.True(t, l.TreasuryBalance().Equal(dec("0.02")))
	})
}
