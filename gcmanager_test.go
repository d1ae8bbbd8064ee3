// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type wrapper struct{ n Node }

func TestGcReferenceManagerSaturatedIsStrong(t *testing.T) {
	b, err := New(3)
	require.NoError(t, err)
	m := NewGcReferenceManager(b)

	lit := b.Ithvar(0)
	created := 0
	v1 := m.Get(lit, func() interface{} {
		created++
		return &wrapper{n: lit}
	})
	v2 := m.Get(lit, func() interface{} {
		created++
		return &wrapper{n: lit}
	})
	require.Equal(t, 1, created, "saturated node's wrapper should be built once and kept strongly")
	require.Same(t, v1, v2)
	require.Contains(t, m.strong, int(lit))
}

func TestGcReferenceManagerNonSaturatedTracksWeakly(t *testing.T) {
	b, err := New(3)
	require.NoError(t, err)
	m := NewGcReferenceManager(b)

	f := b.And(b.Ithvar(0), b.Ithvar(1))
	require.Equal(t, int32(-1), b.ReferenceCount(b.Ithvar(0))) // sanity: literal saturated

	v := m.Get(f, func() interface{} { return &wrapper{n: f} })
	require.NotNil(t, v)
	require.Contains(t, m.weakMap, int(f))
	require.NotContains(t, m.strong, int(f))
}
