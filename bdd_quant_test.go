// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExistsForall(t *testing.T) {
	b, err := New(3)
	require.NoError(t, err)
	// f = x0 & x1 | !x0 & x2; nodes held across calls are referenced so a
	// garbage collection in a later call cannot reclaim them.
	g := b.AddRef(b.And(b.Ithvar(0), b.Ithvar(1)))
	h := b.AddRef(b.And(b.Not(b.Ithvar(0)), b.Ithvar(2)))
	f := b.AddRef(b.Or(g, h))
	varset := b.AddRef(b.Makeset([]int{0}))

	// exists x0 . f == x1 | x2
	require.Equal(t, b.AddRef(b.Or(b.Ithvar(1), b.Ithvar(2))), b.Exists(f, varset))
	// forall x0 . f == x1 & x2
	require.Equal(t, b.AddRef(b.And(b.Ithvar(1), b.Ithvar(2))), b.Forall(f, varset))
}

func TestRelationalProduct(t *testing.T) {
	b, err := New(4)
	require.NoError(t, err)
	n1 := b.Makeset([]int{0})
	n2 := b.Ithvar(1)
	direct := b.Exists(b.And(n1, n2), n1)
	product := b.RelationalProduct(n1, n2, opAnd, n1)
	require.Equal(t, direct, product)
}

func TestMDDExists(t *testing.T) {
	m, err := NewMDD([]int{3, 2})
	require.NoError(t, err)
	// f = (v0 == 1) | (v0 == 2 & v1 == 0)
	f := m.Or(m.VariableNode(0, 1), m.And(m.VariableNode(0, 2), m.VariableNode(1, 0)))
	varset := m.QuantifierSet([]int{0})
	// exists v0 . f == true whenever v1 can be 0 or when v0==1 regardless of v1;
	// for v1==0, v0=1 and v0=2 satisfy f (v0=0 fails); for v1==1 only v0=1.
	// so exists v0 . f is the constant True (there is always a v0 satisfying f for any v1).
	require.Equal(t, m.True(), m.Exists(f, varset))
}
