package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsIdentity(t *testing.T) {
	sentinel := New("something went missing")
	cause := fmt.Errorf("open /tmp/x: no such file")

	wrapped := sentinel.Wrap(cause)
	require.True(t, Is(wrapped, sentinel))
	require.Equal(t, cause, wrapped.Unwrap())
	assert.Contains(t, wrapped.Error(), "something went missing")
	assert.Contains(t, wrapped.Error(), "no such file")
}

func TestWrapDoesNotMutateSentinel(t *testing.T) {
	sentinel := New("boom")
	_ = sentinel.Wrap(fmt.Errorf("cause"))
	require.NoError(t, sentinel.Unwrap())
	assert.Equal(t, "boom", sentinel.Error())
}

func TestIsMatchesCause(t *testing.T) {
	cause := New("inner")
	outer := New("outer").Wrap(cause)
	assert.True(t, Is(outer, cause))
	assert.False(t, Is(outer, New("unrelated")))
}
