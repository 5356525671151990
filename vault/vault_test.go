package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPassphraseThenLockThenUnlock(t *testing.T) {
	c := New()

	salt, check, ekeyEnc, err := c.SetPassphrase("foo")
	require.NoError(t, err)
	assert.False(t, c.IsLocked())

	c.Lock()
	assert.True(t, c.IsLocked())

	fresh := New()
	require.NoError(t, fresh.Load(salt, check, ekeyEnc))
	assert.True(t, fresh.IsLocked())

	require.NoError(t, fresh.Unlock("foo"))
	assert.False(t, fresh.IsLocked())
}

func TestUnlockWrongPassphraseFails(t *testing.T) {
	c := New()
	salt, check, ekeyEnc, err := c.SetPassphrase("foo")
	require.NoError(t, err)
	c.Lock()

	fresh := New()
	require.NoError(t, fresh.Load(salt, check, ekeyEnc))

	err = fresh.Unlock("bar")
	assert.ErrorIs(t, err, ErrAuthFailed)
	assert.True(t, fresh.IsLocked())
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c := New()
	_, _, _, err := c.SetPassphrase("correct horse battery staple")
	require.NoError(t, err)

	plain := []byte("extended private key bytes go here")
	cipher, err := c.Encrypt(plain)
	require.NoError(t, err)
	assert.NotEqual(t, plain, cipher)

	roundTripped, err := c.Decrypt(cipher)
	require.NoError(t, err)
	assert.Equal(t, plain, roundTripped)
}

func TestEncryptFailsWhenLocked(t *testing.T) {
	c := New()
	_, _, _, err := c.SetPassphrase("pw")
	require.NoError(t, err)
	c.Lock()

	_, err = c.Encrypt([]byte("secret"))
	assert.ErrorIs(t, err, ErrLocked)

	_, err = c.Decrypt([]byte("012345678901234567890123")) // nonce-only
	assert.ErrorIs(t, err, ErrLocked)
}

func TestLoadRejectsUndersizedFields(t *testing.T) {
	c := New()
	err := c.Load([]byte("short"), []byte("short"), []byte("short"))
	assert.ErrorIs(t, err, ErrMissingParam)
}
