package input

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeySourceHoldsWhileRepeating(t *testing.T) {
	t.Parallel()

	k := NewKeySource("fj", 0.5)
	require.Nil(t, k.Press('x', 1))

	events := k.Press('f', 1)
	require.Len(t, events, 1)
	require.Equal(t, Press, events[0].Action)
	require.False(t, events[0].Positional)

	require.Empty(t, k.Press('f', 1.3), "auto repeat keeps the key down")
	require.Empty(t, k.Expire(1.7))

	lifted := k.Expire(1.9)
	require.Len(t, lifted, 1)
	require.Equal(t, Release, lifted[0].Action)
	require.Equal(t, events[0].Pointer, lifted[0].Pointer)

	again := k.Press('f', 2)
	require.Len(t, again, 1)
}

func TestKeySourceKeysAreSeparatePointers(t *testing.T) {
	t.Parallel()

	k := NewKeySource("fj", 0.5)
	f := k.Press('f', 1)
	j := k.Press('j', 1)
	require.NotEqual(t, f[0].Pointer, j[0].Pointer)

	require.Len(t, k.ReleaseAll(1.05), 2)
	require.Len(t, k.Press('f', 1.1), 1)
}

func TestKeySourceReleaseAll(t *testing.T) {
	t.Parallel()

	k := NewKeySource("dfjk", 0.1)
	k.Press('j', 1)
	k.Press('d', 1.05)
	lifted := k.ReleaseAll(1.06)
	require.Len(t, lifted, 2)
	require.Equal(t, keyPointerBase, lifted[0].Pointer)
	require.Equal(t, keyPointerBase+2, lifted[1].Pointer)
	require.Equal(t, Release, lifted[1].Action)
	require.Empty(t, k.Expire(5))
}
