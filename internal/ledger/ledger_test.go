package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ticketd/pkg/domain-errors"
	"ticketd/pkg/domain"
)

var (
	owner = testAddr(0x01)
	venue = testAddr(0x02)
	alice = testAddr(0x0a)
	bob   = testAddr(0x0b)
	carol = testAddr(0x0c)

	issueTime = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
)

func testAddr(b byte) domain.Address {
	var a domain.Address
	a[domain.AddressLength-1] = b
	return a
}

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := New(owner, venue)
	require.NoError(t, err)
	return l
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNew_RejectsZeroAddresses(t *testing.T) {
	_, err := New(domain.Address{}, venue)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = New(owner, domain.Address{})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestNew_InitialState(t *testing.T) {
	l := newTestLedger(t)

	assert.True(t, l.HasRole(owner, domain.RoleOwner))
	assert.True(t, l.HasRole(venue, domain.RoleVenue))
	assert.False(t, l.HasRole(venue, domain.RoleOwner))
	assert.False(t, l.IsPaused())
	assert.True(t, l.TreasuryBalance().IsZero())
	assert.True(t, l.BalanceOf(alice).IsZero())
	assert.Equal(t, venue, l.PrimaryVenue())
}
