package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsAppError_FindsWrappedSentinel(t *testing.T) {
	err := fmt.Errorf("find user 7: %w", ErrUserNotFound)

	ae := AsAppError(err)
	assert.Equal(t, KindNotFound, ae.Kind)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestAsAppError_UnknownForPlainErrors(t *testing.T) {
	cause := errors.New("boom")

	ae := AsAppError(cause)
	require.Equal(t, KindUnknown, ae.Kind)
	assert.False(t, ae.IsOperational())
	assert.ErrorIs(t, ae, cause)
}

func TestIsOperational(t *testing.T) {
	cases := map[ErrorKind]bool{
		KindUnauthenticated: true,
		KindForbidden:       true,
		KindValidation:      true,
		KindNotFound:        true,
		KindConflict:        true,
		KindTooManyRequests: true,
		KindUpstream:        true,
		KindPersistence:     false,
		KindUnknown:         false,
	}
	for kind, want := range cases {
		assert.Equal(t, want, (&AppError{Kind: kind}).IsOperational(), kind.String())
	}
}

func TestAppError_ErrorIncludesCause(t *testing.T) {
	err := Persistence("save prompt", errors.New("connection reset"))
	assert.Equal(t, "save prompt: connection reset", err.Error())
	assert.Equal(t, "phone number already registered", ErrPhoneTaken.Error())
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	r, ok = ParseRole(" User ")
	assert.True(t, ok)
	assert.Equal(t, RoleUser, r)

	_, ok = ParseRole("guest")
	assert.False(t, ok)
}
