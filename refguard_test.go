// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReferenceGuard(t *testing.T) {
	b, err := New(3)
	require.NoError(t, err)
	f := b.And(b.Ithvar(0), b.Ithvar(1))
	before := b.ReferenceCount(f)

	g := Guard(b, f)
	require.Equal(t, before+1, b.ReferenceCount(f))
	g.Release()
	require.Equal(t, before, b.ReferenceCount(f))

	// Release is idempotent.
	g.Release()
	require.Equal(t, before, b.ReferenceCount(f))
}

func TestReferenceCountSaturated(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	require.Equal(t, int32(-1), b.ReferenceCount(b.Ithvar(0)))
	require.Equal(t, int32(-1), b.ReferenceCount(b.True()))
}
