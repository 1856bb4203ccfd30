package crypt

import (
	"testing"

	"github.com/adnanxsalim/tool-vault/pkg/core/status"
	"github.com/adnanxsalim/tool-vault/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKeyDeterministic(t *testing.T) {
	k1, err := DeriveKey("correct horse battery staple")
	require.NoError(t, err)
	k2, err := DeriveKey("correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, k1, k2)

	k3, err := DeriveKey("correct horse battery stable")
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)
}

func TestDeriveKeyRejectsEmptyPassphrase(t *testing.T) {
	_, err := DeriveKey("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrEmptyPassphrase))
}

func TestEncryptDecryptRoundtrip(t *testing.T) {
	c := New()
	key, err := DeriveKey("hunter2")
	require.NoError(t, err)

	plain := []byte("the quick brown fox")
	sealed, err := c.Encrypt(plain, key)
	require.NoError(t, err)
	assert.NotEqual(t, plain, sealed)

	got, err := c.Decrypt(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	c := New()
	key, err := DeriveKey("hunter2")
	require.NoError(t, err)

	a, err := c.Encrypt([]byte("same input"), key)
	require.NoError(t, err)
	b, err := c.Encrypt([]byte("same input"), key)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "fresh nonce per file")
}

func TestDecryptWrongKey(t *testing.T) {
	c := New()
	key, err := DeriveKey("right")
	require.NoError(t, err)
	wrong, err := DeriveKey("wrong")
	require.NoError(t, err)

	sealed, err := c.Encrypt([]byte("secret"), key)
	require.NoError(t, err)

	_, err = c.Decrypt(sealed, wrong)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrDecryption))
}

func TestDecryptPlaintextInput(t *testing.T) {
	c := New()
	key, err := DeriveKey("whatever")
	require.NoError(t, err)

	_, err = c.Decrypt([]byte("never encrypted content"), key)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrDecryption))

	_, err = c.Decrypt([]byte("short"), key)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrDecryption))
}
