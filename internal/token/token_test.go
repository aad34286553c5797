package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ticketd/pkg/domain-errors"
	"ticketd/pkg/domain"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewService("test-signing-key", "ticketd-test")
	addr, err := domain.ParseAddress("0x" + strings.Repeat("ab", domain.AddressLength))
	require.NoError(t, err)

	signed, err := svc.Issue(addr, time.Hour)
	require.NoError(t, err)

	got, err := svc.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, addr, got)
}

func TestValidate_Rejections(t *testing.T) {
	svc := NewService("test-signing-key", "ticketd-test")
	addr, err := domain.ParseAddress("0x" + strings.Repeat("ab", domain.AddressLength))
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Validate("not.a.token")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewService("different-key", "ticketd-test")
		signed, err := other.Issue(addr, time.Hour)
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("expired token", func(t *testing.T) {
		signed, err := svc.Issue(addr, -time.Minute)
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
