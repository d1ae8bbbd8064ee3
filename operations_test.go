// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMin3(t *testing.T) {
	tests := []struct {
		p, q, r  int32
		expected int32
	}{
		{3, 2, 3, 2},
		{4, 4, 4, 4},
		{2, 3, 3, 2},
		{3, 2, 2, 2},
		{3, 3, 2, 2},
		{1, 2, 3, 1},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, min3(tt.p, tt.q, tt.r))
	}
}

// TestIteIdentity checks that Ite(f,g,h) agrees with (f AND g) OR (NOT f AND
// h), both via the recursive and iterative implementations, and that the two
// implementations produce identical hash-consed node ids.
func TestIteIdentity(t *testing.T) {
	b, err := New(4, WithInitialSize(5000))
	require.NoError(t, err)
	n1 := b.Makeset([]int{0, 2, 3})
	n2 := b.Makeset([]int{0, 3})

	expanded := b.Or(b.And(n1, n2), b.And(b.Not(n1), b.Not(n2)))
	require.Equal(t, b.True(), b.Biimp(b.Ite(n1, n2, b.Not(n2)), expanded))

	// Iterative Ite/Apply/Not must produce identical node ids, since
	// hash-consing is canonical regardless of construction order.
	require.Equal(t, b.Ite(n1, n2, b.Not(n2)), b.IteIter(n1, n2, b.NotIter(n2)))
	require.Equal(t, b.And(n1, n2), b.ApplyIter(n1, n2, opAnd))
}

// TestIteIdentityGC is TestIteIdentity's counterpart on the default-sized
// table, where collections run between the operations: with no
// WithInitialSize option the table (17 slots, 3 of them free after the
// literals) fills while n2 is built, which forces a collection and a resize,
// and the recursive And runs a second collection that also clears the
// operation caches. The iterative results must still be valid and equal to
// the recursive ones. With this sizing no collection runs inside an
// iterative call itself. n1 and n2 are referenced so that neither is
// reclaimed by those collections.
func TestIteIdentityGC(t *testing.T) {
	b, err := New(6)
	require.NoError(t, err)

	n1 := b.AddRef(b.Makeset([]int{0, 2, 4}))
	n2 := b.AddRef(b.Makeset([]int{1, 3, 5}))

	recursiveIte := b.Ite(n1, n2, b.Not(n2))
	iterativeIte := b.IteIter(n1, n2, b.NotIter(n2))
	require.NotEqual(t, Node(invalidNode), iterativeIte)
	require.Equal(t, recursiveIte, iterativeIte)

	recursiveAnd := b.And(n1, n2)
	iterativeAnd := b.ApplyIter(n1, n2, opAnd)
	require.NotEqual(t, Node(invalidNode), iterativeAnd)
	require.Equal(t, recursiveAnd, iterativeAnd)

	recursiveNot := b.Not(recursiveAnd)
	iterativeNot := b.NotIter(iterativeAnd)
	require.NotEqual(t, Node(invalidNode), iterativeNot)
	require.Equal(t, recursiveNot, iterativeNot)
}

// TestOperations mirrors the classic bddtest "all satisfying assignments"
// check: Allsat must enumerate a set of assignments whose disjunction
// reconstructs the original node exactly, and subtracting every enumerated
// assignment from the node must leave False.
func TestOperations(t *testing.T) {
	b, err := New(4, WithInitialSize(1000))
	require.NoError(t, err)
	varnum := 4

	check := func(x Node) {
		allsatBDD := x
		allsatSum := b.False()
		err := b.Allsat(x, func(varset []int) error {
			assignment := b.True()
			for k, v := range varset {
				switch v {
				case 0:
					assignment = b.And(assignment, b.NIthvar(k))
				case 1:
					assignment = b.And(assignment, b.Ithvar(k))
				}
			}
			allsatSum = b.Or(allsatSum, assignment)
			allsatBDD = b.Diff(allsatBDD, assignment)
			return nil
		})
		require.NoError(t, err)
		require.True(t, b.Equal(allsatSum, x), "Allsat sum does not reconstruct the original node")
		require.True(t, b.Equal(allsatBDD, b.False()), "Allsat did not exhaust the original node")
	}

	a := b.Ithvar(0)
	bb := b.Ithvar(1)
	c := b.Ithvar(2)
	d := b.Ithvar(3)
	na := b.NIthvar(0)
	nb := b.NIthvar(1)
	nc := b.NIthvar(2)
	nd := b.NIthvar(3)

	check(b.True())
	check(b.False())
	check(b.Or(b.And(a, bb), b.And(na, nb)))
	check(b.Or(b.And(a, bb), b.And(c, d)))
	check(b.Or(b.And(a, nb), b.And(a, nd), b.And(a, bb, nc)))

	for i := 0; i < varnum; i++ {
		check(b.Ithvar(i))
		check(b.NIthvar(i))
	}

	set := b.True()
	for i := 0; i < 50; i++ {
		v := rand.Intn(varnum)
		if rand.Intn(2) == 0 {
			set = b.And(set, b.Ithvar(v))
		} else {
			set = b.And(set, b.NIthvar(v))
		}
		check(set)
	}
}
