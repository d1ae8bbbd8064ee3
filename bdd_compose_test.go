// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRestrict(t *testing.T) {
	b, err := New(3)
	require.NoError(t, err)
	// f = x0 & x1 | x2
	f := b.Or(b.And(b.Ithvar(0), b.Ithvar(1)), b.Ithvar(2))
	restricted := b.Restrict(f, []int{2}, []bool{false})
	// with x2 fixed to false, f reduces to x0 & x1
	require.Equal(t, b.And(b.Ithvar(0), b.Ithvar(1)), restricted)
}

func TestReplace(t *testing.T) {
	b, err := New(4)
	require.NoError(t, err)
	f := b.And(b.Ithvar(0), b.Not(b.Ithvar(1)))
	g := b.Replace(f, []int{0, 1}, []int{2, 3})
	require.Equal(t, b.And(b.Ithvar(2), b.Not(b.Ithvar(3))), g)
}

func TestReplaceRejectsConflict(t *testing.T) {
	b, err := New(3)
	require.NoError(t, err)
	f := b.Ithvar(0)
	res := b.Replace(f, []int{0, 1}, []int{1, 2})
	require.Equal(t, Node(invalidNode), res)
	require.True(t, b.Errored())
}

func TestCompose(t *testing.T) {
	b, err := New(3)
	require.NoError(t, err)
	f := b.And(b.Ithvar(0), b.Ithvar(1))
	g := b.Ithvar(2)
	c, err := b.NewComposer([]int{0}, []Node{g})
	require.NoError(t, err)
	// substituting x0 by x2 in (x0 & x1) yields (x2 & x1)
	require.Equal(t, b.And(g, b.Ithvar(1)), b.Compose(f, c))
}
