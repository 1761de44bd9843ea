package credential

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing(t *testing.T) {
	r := New(keyring.NewArrayKeyring(nil))

	_, err := r.Get("token")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.Set("token", "secret"))
	v, err := r.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "secret", v)

	require.NoError(t, r.Delete("token"))
	require.NoError(t, r.Delete("token"))

	_, err = r.Get("token")
	assert.ErrorIs(t, err, ErrNotFound)
}
