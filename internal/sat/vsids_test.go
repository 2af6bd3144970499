package sat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVSIDSPopMaxOrdersByActivity(t *testing.T) {
	v := NewVSIDS(4)
	v.Insert(0)
	v.Insert(1)
	v.Insert(2)

	v.Bump(2)
	v.Bump(2)
	v.Bump(1)

	top, ok := v.PopMax()
	require.True(t, ok)
	require.Equal(t, Var(2), top)
	require.False(t, v.Contains(2))

	top, ok = v.PopMax()
	require.True(t, ok)
	require.Equal(t, Var(1), top)

	top, ok = v.PopMax()
	require.True(t, ok)
	require.Equal(t, Var(0), top)

	_, ok = v.PopMax()
	require.False(t, ok)
}

func TestVSIDSBumpReordersHeap(t *testing.T) {
	v := NewVSIDS(2)
	v.Insert(0)
	v.Insert(1)

	top, _ := v.Peek()
	require.Equal(t, Var(0), top)

	v.Bump(1)
	top, _ = v.Peek()
	require.Equal(t, Var(1), top)
}

func TestVSIDSDecayIncreasesFutureBumpEffect(t *testing.T) {
	v := NewVSIDS(2)
	v.Insert(0)
	v.Insert(1)

	v.Bump(0)
	before := v.Activity(0)

	v.Decay()
	v.Bump(1)
	after := v.Activity(1)

	require.Greater(t, after, before)
}

func TestVSIDSInsertIsIdempotent(t *testing.T) {
	v := NewVSIDS(1)
	v.Insert(0)
	v.Insert(0)
	_, ok := v.PopMax()
	require.True(t, ok)
	_, ok = v.PopMax()
	require.False(t, ok)
}
