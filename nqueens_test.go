// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import (
	"math/big"
	"testing"
)

// nqueens computes the number of solutions for the N-Queens problem using a
// BDD with NxN variables, one per board square, laid out column-major:
//
//	 0 4  8 12
//	 1 5  9 13
//	 2 6 10 14
//	 3 7 11 15
//
// A satisfying assignment with squares 2, 4, 11, 13 set means a queen
// belongs on each of those four squares.
func nqueens(N int) *big.Int {
	b, _ := New(N*N, WithInitialSize(N*N*256), WithCacheDividers(30, 30, 30, 30))
	// keep references next and releases prev, so partial results held across
	// calls survive a garbage collection triggered by a later call.
	keep := func(prev, next Node) Node {
		b.AddRef(next)
		b.DelRef(prev)
		return next
	}
	queen := b.True()
	x := make([][]Node, N)
	for i := range x {
		x[i] = make([]Node, N)
		for j := range x[i] {
			x[i][j] = b.Ithvar(i*N + j)
		}
	}
	for i := 0; i < N; i++ {
		e := b.False()
		for j := 0; j < N; j++ {
			e = keep(e, b.Or(e, x[i][j]))
		}
		queen = keep(queen, b.And(queen, e))
		b.DelRef(e)
	}

	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			column := b.True()
			for k := 0; k < N; k++ {
				if k != j {
					column = keep(column, b.And(column, b.Imp(x[i][j], b.Not(x[i][k]))))
				}
			}
			row := b.True()
			for k := 0; k < N; k++ {
				if k != i {
					row = keep(row, b.And(row, b.Imp(x[i][j], b.Not(x[k][j]))))
				}
			}
			upRight := b.True()
			for k := 0; k < N; k++ {
				ll := k - i + j
				if ll >= 0 && ll < N && k != i {
					upRight = keep(upRight, b.And(upRight, b.Imp(x[i][j], b.Not(x[k][ll]))))
				}
			}
			downRight := b.True()
			for k := 0; k < N; k++ {
				ll := i + j - k
				if ll >= 0 && ll < N && k != i {
					downRight = keep(downRight, b.And(downRight, b.Imp(x[i][j], b.Not(x[k][ll]))))
				}
			}
			queen = keep(queen, b.And(queen, column, row, upRight, downRight))
			b.DelRef(column)
			b.DelRef(row)
			b.DelRef(upRight)
			b.DelRef(downRight)
		}
	}
	return b.CountSatisfyingAssignments(queen)
}

func TestNQueens(t *testing.T) {
	tests := []struct {
		n        int
		expected int64
	}{
		{4, 2},
		{8, 92},
		{9, 352},
	}
	for _, tt := range tests {
		actual := nqueens(tt.n)
		if actual.Cmp(big.NewInt(tt.expected)) != 0 {
			t.Errorf("nqueens(%d): expected %d solutions, got %s", tt.n, tt.expected, actual)
		}
	}
}

func BenchmarkNQueens(b *testing.B) {
	for n := 0; n < b.N; n++ {
		nqueens(8)
	}
}
