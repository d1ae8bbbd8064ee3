// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import (
	"fmt"
	"math/big"
)

// Support returns the set of variables appearing on any root->TRUE path of
// n. Reuses table.supportWalk verbatim: marking and the children walk are
// already arity-agnostic.
func (m *MDD) Support(n Node) *bitset {
	return m.SupportFiltered(n, nil)
}

// SupportFiltered is Support restricted to the variables for which mask
// reports true, or every variable when mask is nil.
func (m *MDD) SupportFiltered(n Node, mask *bitset) *bitset {
	res := newBitset(int(m.t.varnum))
	if m.checkptr(n) != nil {
		return res
	}
	m.t.supportWalk(int(n), res)
	m.t.unmarkall()
	if mask != nil {
		for i := 0; i < res.Len(); i++ {
			if res.test(i) && !mask.test(i) {
				res.clear(i)
			}
		}
	}
	return res
}

// CountSatisfyingAssignments returns the number of value assignments (over
// every declared variable, using each variable's own domain size) that
// evaluate n to true, generalizing BDD.CountSatisfyingAssignments' 2^skip
// factor to the product of the skipped variables' domains.
func (m *MDD) CountSatisfyingAssignments(n Node) *big.Int {
	if m.checkptr(n) != nil {
		return big.NewInt(0)
	}
	res := big.NewInt(1)
	for v := 0; v < int(m.t.level(int(n))); v++ {
		res.Mul(res, big.NewInt(int64(m.t.domains[v])))
	}
	memo := make(map[int]*big.Int)
	return res.Mul(res, m.t.mddSatcount(int(n), memo))
}

func (t *table) mddSatcount(n int, memo map[int]*big.Int) *big.Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	if res, ok := memo[n]; ok {
		return res
	}
	level := t.level(n)
	res := big.NewInt(0)
	for _, c := range t.children(n) {
		weight := big.NewInt(1)
		for v := level + 1; v < t.level(c); v++ {
			weight.Mul(weight, big.NewInt(int64(t.domains[v])))
		}
		term := big.NewInt(0).Mul(weight, t.mddSatcount(c, memo))
		res.Add(res, term)
	}
	memo[n] = res
	return res
}

// GetSatisfyingAssignment returns one satisfying assignment of n as a slice
// of length NumberOfVariables, with the chosen value for a forced variable
// and -1 for a don't-care.
func (m *MDD) GetSatisfyingAssignment(n Node) ([]int, error) {
	if m.checkptr(n) != nil {
		return nil, ErrInvalidNode
	}
	if n == FalseNode {
		return nil, fmt.Errorf("decido: no satisfying assignment of False")
	}
	prof := make([]int, m.t.varnum)
	for i := range prof {
		prof[i] = -1
	}
	cur := int(n)
	for cur > 1 {
		children := m.t.children(cur)
		for val, c := range children {
			if c != 0 {
				prof[m.t.level(cur)] = val
				cur = c
				break
			}
		}
	}
	return prof, nil
}

// ForEachPath calls action once for every root->TRUE path of n, passing the
// chosen value for every variable fixed along that path (-1 elsewhere) and
// the set of variables the path actually constrains.
func (m *MDD) ForEachPath(n Node, action func(assignment []int, support *bitset)) error {
	if m.checkptr(n) != nil {
		return ErrInvalidNode
	}
	assignment := make([]int, m.t.varnum)
	for i := range assignment {
		assignment[i] = -1
	}
	support := newBitset(int(m.t.varnum))
	m.t.mddForEachPath(int(n), assignment, support, action)
	return nil
}

func (t *table) mddForEachPath(n int, assignment []int, support *bitset, action func([]int, *bitset)) {
	if n == 0 {
		return
	}
	if n == 1 {
		action(assignment, support)
		return
	}
	level := int(t.level(n))
	for val, c := range t.children(n) {
		if c == 0 {
			continue
		}
		support.set(level)
		assignment[level] = val
		t.mddForEachPath(c, assignment, support, action)
		assignment[level] = -1
	}
	support.clear(level)
}

// ForEachSolution calls action once for every satisfying assignment over
// support (a subset of variable indices), filling in every don't-care
// position of each path with every value in its domain.
func (m *MDD) ForEachSolution(n Node, support []int, action func(assignment []int)) error {
	type pathRec struct {
		assignment []int
		support    *bitset
	}
	var paths []pathRec
	if err := m.ForEachPath(n, func(assignment []int, pathSupport *bitset) {
		paths = append(paths, pathRec{assignment: append([]int(nil), assignment...), support: pathSupport.Clone()})
	}); err != nil {
		return err
	}
	for _, p := range paths {
		dcVars := []int{}
		for _, v := range support {
			if !p.support.test(v) {
				dcVars = append(dcVars, v)
			}
		}
		var expand func(idx int)
		res := make([]int, len(support))
		for i, v := range support {
			res[i] = p.assignment[v]
		}
		expand = func(idx int) {
			if idx == len(dcVars) {
				out := append([]int(nil), res...)
				action(out)
				return
			}
			v := dcVars[idx]
			for val := 0; val < m.DomainOf(v); val++ {
				for i, s := range support {
					if s == v {
						res[i] = val
					}
				}
				expand(idx + 1)
			}
		}
		expand(0)
	}
	return nil
}

// Allnodes applies f to every node reachable from n (or every live node if n
// is empty), passing (id, level, children); visiting order is unspecified.
func (m *MDD) Allnodes(f func(id int, level int32, children []int) error, n ...Node) error {
	for _, v := range n {
		if err := m.checkptr(v); err != nil {
			return fmt.Errorf("decido: wrong node in call to Allnodes: %w", err)
		}
	}
	if len(n) == 0 {
		return m.t.mddAllnodes(f)
	}
	seen := make(map[int]bool)
	for _, v := range n {
		if err := m.t.mddAllnodesFrom(f, int(v), seen); err != nil {
			return err
		}
	}
	return nil
}

func (t *table) mddAllnodes(f func(id int, level int32, children []int) error) error {
	for id := 2; id < len(t.nodes); id++ {
		if !t.refs[id].valid {
			continue
		}
		if err := f(id, t.level(id), t.children(id)); err != nil {
			return err
		}
	}
	return nil
}

func (t *table) mddAllnodesFrom(f func(id int, level int32, children []int) error, n int, seen map[int]bool) error {
	if n < 2 || seen[n] {
		return nil
	}
	seen[n] = true
	if err := f(n, t.level(n), t.children(n)); err != nil {
		return err
	}
	for _, c := range t.children(n) {
		if err := t.mddAllnodesFrom(f, c, seen); err != nil {
			return err
		}
	}
	return nil
}
