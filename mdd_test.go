// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMDDVariableNodeEvaluate(t *testing.T) {
	m, err := NewMDD([]int{3, 4})
	require.NoError(t, err)
	n := m.VariableNode(0, 2)
	ok, err := m.Evaluate(n, []int{2, 0})
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = m.Evaluate(n, []int{1, 0})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMDDApplyAndNot(t *testing.T) {
	m, err := NewMDD([]int{2, 2})
	require.NoError(t, err)
	// with binary domains, MDD apply must agree with BDD apply's truth table.
	a := m.VariableNode(0, 1)
	b := m.VariableNode(1, 1)
	and := m.And(a, b)
	ok, err := m.Evaluate(and, []int{1, 1})
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = m.Evaluate(and, []int{1, 0})
	require.NoError(t, err)
	require.False(t, ok)

	notA := m.Not(a)
	require.Equal(t, m.VariableNode(0, 0), notA)
}

func TestMDDRestrict(t *testing.T) {
	m, err := NewMDD([]int{3, 2})
	require.NoError(t, err)
	f := m.Or(m.VariableNode(0, 2), m.VariableNode(1, 1))
	restricted := m.Restrict(f, []int{0}, []int{0})
	// v0 fixed to 0 (not 2), so f reduces to "v1 == 1"
	require.Equal(t, m.VariableNode(1, 1), restricted)
}

func TestMDDCreateVariable(t *testing.T) {
	m, err := NewMDD([]int{3})
	require.NoError(t, err)
	v, err := m.CreateVariable(5)
	require.NoError(t, err)
	require.Equal(t, 1, v)
	require.Equal(t, 5, m.DomainOf(1))
	n := m.VariableNode(1, 4)
	ok, err := m.Evaluate(n, []int{0, 4})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMDDCountSatisfyingAssignments(t *testing.T) {
	m, err := NewMDD([]int{3, 2})
	require.NoError(t, err)
	// f = (v0 == 0), true regardless of v1 -> 2 satisfying assignments
	f := m.VariableNode(0, 0)
	count := m.CountSatisfyingAssignments(f)
	require.Equal(t, int64(2), count.Int64())
}
