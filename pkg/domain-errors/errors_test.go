package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("direct code", func(t *testing.T) {
		err := New(CodePaused, "ledger is paused")
		assert.True(t, HasCode(err, CodePaused))
		assert.False(t, HasCode(err, CodeExpired))
	})

	t.Run("wrapped cause keeps the inner code visible", func(t *testing.T) {
		inner := New(CodeNotFound, "ticket 3 does not exist")
		outer := Wrap(inner, CodeInternal, "burn failed")
		assert.True(t, HasCode(outer, CodeInternal))
		assert.True(t, HasCode(outer, CodeNotFound))
	})

	t.Run("plain errors have no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})

	t.Run("code survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", New(CodeUnauthorized, "nope"))
		assert.True(t, HasCode(err, CodeUnauthorized))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("unwrap reaches the cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, CodeInternal, "append audit event")
		assert.True(t, errors.Is(err, cause))
	})
}

func TestCodeOf(t *testing.T) {
	require.Equal(t, CodeExpired, CodeOf(New(CodeExpired, "too late")))
	require.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}
