// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import (
	"math/big"
	"testing"
)

// milner computes the reachable state space of a system of varnum cyclic
// processes communicating through a shared token, adapted from the Buddy
// distribution's milner example. For this system there is a closed-form
// expression for the size of the reachable state space, letting the test
// check the fixpoint computation exactly instead of just smoke-testing it.
func milner(tb testing.TB, fast bool, varnum int, opts ...Option) (*BDD, Node) {
	b, err := New(varnum*6, opts...)
	if err != nil {
		tb.Fatal(err)
	}
	c := make([]Node, varnum)
	cp := make([]Node, varnum)
	tvar := make([]Node, varnum)
	tp := make([]Node, varnum)
	h := make([]Node, varnum)
	hp := make([]Node, varnum)

	for n := 0; n < varnum; n++ {
		c[n] = b.Ithvar(n * 6)
		cp[n] = b.Ithvar(n*6 + 1)
		tvar[n] = b.Ithvar(n*6 + 2)
		tp[n] = b.Ithvar(n*6 + 3)
		h[n] = b.Ithvar(n*6 + 4)
		hp[n] = b.Ithvar(n*6 + 5)
	}

	nvar := make([]int, varnum*3)
	pvar := make([]int, varnum*3)
	for n := 0; n < varnum*3; n++ {
		nvar[n] = n * 2
		pvar[n] = n*2 + 1
	}

	// keep references next and releases prev, so partial results held across
	// calls survive a garbage collection triggered by a later call.
	keep := func(prev, next Node) Node {
		b.AddRef(next)
		b.DelRef(prev)
		return next
	}
	release := func(n ...Node) {
		for _, x := range n {
			b.DelRef(x)
		}
	}

	I := b.AddRef(b.And(c[0], b.Not(h[0]), b.Not(tvar[0])))
	for i := 1; i < varnum; i++ {
		I = keep(I, b.And(I, b.Not(c[i]), b.Not(h[i]), b.Not(tvar[i])))
	}

	// unchangedExcept returns a referenced node; the caller releases it.
	unchangedExcept := func(x, y []Node, z int) Node {
		res := b.True()
		for i := 0; i < varnum; i++ {
			if i != z {
				res = keep(res, b.And(res, b.Biimp(x[i], y[i])))
			}
		}
		return res
	}

	T := b.False()
	for i := 0; i < varnum; i++ {
		u1, u2, u3 := unchangedExcept(c, cp, i), unchangedExcept(tvar, tp, i), unchangedExcept(h, hp, i)
		p1 := b.AddRef(b.And(c[i], b.Not(cp[i]), tp[i], b.Not(tvar[i]), hp[i], u1, u2, u3))
		release(u1, u2, u3)
		u1, u2, u3 = unchangedExcept(c, cp, (i+1)%varnum), unchangedExcept(h, hp, i), unchangedExcept(tvar, tp, varnum)
		p2 := b.AddRef(b.And(h[i], b.Not(hp[i]), cp[(i+1)%varnum], u1, u2, u3))
		release(u1, u2, u3)
		u1, u2, u3 = unchangedExcept(tvar, tp, i), unchangedExcept(h, hp, varnum), unchangedExcept(c, cp, varnum)
		e := b.AddRef(b.And(tvar[i], b.Not(tp[i]), u1, u2, u3))
		release(u1, u2, u3)
		pe := b.AddRef(b.Or(p2, e))
		T = keep(T, b.Or(T, p1, pe))
		release(p1, p2, e, pe)
	}

	R := b.AddRef(I)
	normvar := b.AddRef(b.Makeset(nvar))
	for {
		prev := R
		if fast {
			R = keep(R, b.Or(b.Replace(b.RelationalProduct(R, T, opAnd, normvar), pvar, nvar), R))
		} else {
			R = keep(R, b.Or(b.Replace(b.Exists(b.And(R, T), normvar), pvar, nvar), R))
		}
		if prev == R {
			break
		}
	}
	return b, R
}

func expectedMilnerStates(n int) *big.Int {
	expected := big.NewInt(int64(n))
	pow := big.NewInt(0)
	pow.SetBit(pow, 4*n+1, 1)
	return expected.Mul(expected, pow)
}

func TestMilnerSlow(t *testing.T) {
	for _, n := range []int{4, 5, 7} {
		fast, rFast := milner(t, true, n, WithInitialSize(100), WithMaxNodeIncrease(1<<16))
		slow, rSlow := milner(t, false, n, WithInitialSize(100), WithMaxNodeIncrease(1<<16))
		expected := expectedMilnerStates(n)
		fastResult := fast.CountSatisfyingAssignments(rFast)
		slowResult := slow.CountSatisfyingAssignments(rSlow)
		if fastResult.Cmp(expected) != 0 || slowResult.Cmp(expected) != 0 {
			t.Errorf("milner(%d): expected %s, got %s (fast) and %s (slow)", n, expected, fastResult, slowResult)
		}
	}
}

func TestMilner(t *testing.T) {
	for _, n := range []int{16, 20} {
		b, r := milner(t, true, n, WithInitialSize(100000))
		expected := expectedMilnerStates(n)
		result := b.CountSatisfyingAssignments(r)
		if result.Cmp(expected) != 0 {
			t.Errorf("milner(%d): expected %s, got %s", n, expected, result)
		}
	}
}

func BenchmarkMilner150(b *testing.B) {
	for n := 0; n < b.N; n++ {
		milner(b, true, 150, WithInitialSize(1000000))
	}
}
