// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import (
	"fmt"
	"math/big"
)

// Support returns the set of variables appearing on any root->TRUE path of n.
// It marks every visited node via the node table's mark bit during a DFS
// (supportWalk) and unmarks everything in a post-pass (unmarkall).
func (b *BDD) Support(n Node) *bitset {
	return b.SupportFiltered(n, nil)
}

// SupportFiltered is Support restricted to the variables for which mask
// reports true, or every variable when mask is nil.
func (b *BDD) SupportFiltered(n Node, mask *bitset) *bitset {
	res := newBitset(int(b.t.varnum))
	if b.checkptr(n) != nil {
		return res
	}
	b.t.supportWalk(int(n), res)
	b.t.unmarkall()
	if mask != nil {
		for i := 0; i < res.Len(); i++ {
			if res.test(i) && !mask.test(i) {
				res.clear(i)
			}
		}
	}
	return res
}

func (t *table) supportWalk(n int, res *bitset) {
	if n < 2 || t.nodes[n].marked() {
		return
	}
	t.nodes[n].mark()
	res.set(int(t.level(n)))
	for _, c := range t.nodes[n].children {
		t.supportWalk(c, res)
	}
}

// CountSatisfyingAssignments returns the number of satisfying assignments of
// n over all declared variables, using an arbitrary-precision per-call memo.
func (b *BDD) CountSatisfyingAssignments(n Node) *big.Int {
	res := big.NewInt(0)
	if b.checkptr(n) != nil {
		return res
	}
	res.SetBit(res, int(b.t.level(int(n))), 1)
	memo := make(map[int]*big.Int)
	return res.Mul(res, b.t.satcount(int(n), memo))
}

// CountSatisfyingAssignmentsOver is countSatisfyingAssignments(n, support)
//: the count restricted to the given support,
// obtained by dividing the full count by 2^(varnum-|support|).
func (b *BDD) CountSatisfyingAssignmentsOver(n Node, support []int) *big.Int {
	full := b.CountSatisfyingAssignments(n)
	shift := int(b.t.varnum) - len(support)
	if shift <= 0 {
		return full
	}
	divisor := big.NewInt(1)
	divisor.Lsh(divisor, uint(shift))
	res := big.NewInt(0)
	res.Div(full, divisor)
	return res
}

func (t *table) satcount(n int, memo map[int]*big.Int) *big.Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	if res, ok := memo[n]; ok {
		return res
	}
	level := t.level(n)
	low, high := t.low(n), t.high(n)

	res := big.NewInt(0)
	two := big.NewInt(0)
	two.SetBit(two, int(t.level(low)-level-1), 1)
	res.Add(res, two.Mul(two, t.satcount(low, memo)))
	two = big.NewInt(0)
	two.SetBit(two, int(t.level(high)-level-1), 1)
	res.Add(res, two.Mul(two, t.satcount(high, memo)))
	memo[n] = res
	return res
}

// GetSatisfyingAssignment returns one satisfying assignment of n as a slice
// of length Varnum, with 0/1 for a forced value and -1 for a don't-care
//; it is an error to call this on
// False.
func (b *BDD) GetSatisfyingAssignment(n Node) ([]int, error) {
	if b.checkptr(n) != nil {
		return nil, ErrInvalidNode
	}
	if n == FalseNode {
		return nil, fmt.Errorf("decido: no satisfying assignment of False")
	}
	prof := make([]int, b.t.varnum)
	for i := range prof {
		prof[i] = -1
	}
	cur := int(n)
	for cur > 1 {
		low, high := b.t.low(cur), b.t.high(cur)
		if high != 0 {
			prof[b.t.level(cur)] = 1
			cur = high
		} else {
			prof[b.t.level(cur)] = 0
			cur = low
		}
	}
	return prof, nil
}

// ForEachPath calls action once for every root->TRUE path of n, in
// lexicographic ascending order of variable index. path and pathSupport are reused across calls; callers that
// need to retain a snapshot must Clone it.
func (b *BDD) ForEachPath(n Node, action func(path, pathSupport *bitset)) error {
	if b.checkptr(n) != nil {
		return ErrInvalidNode
	}
	path := newBitset(int(b.t.varnum))
	support := newBitset(int(b.t.varnum))
	b.t.forEachPath(int(n), path, support, action)
	return nil
}

func (t *table) forEachPath(n int, path, support *bitset, action func(path, pathSupport *bitset)) {
	if n == 0 {
		return
	}
	if n == 1 {
		action(path, support)
		return
	}
	level := int(t.level(n))
	if low := t.low(n); low != 0 {
		support.set(level)
		path.clear(level)
		t.forEachPath(low, path, support, action)
		support.clear(level)
	}
	if high := t.high(n); high != 0 {
		support.set(level)
		path.set(level)
		t.forEachPath(high, path, support, action)
		support.clear(level)
		path.clear(level)
	}
}

// SolutionIter enumerates every assignment over a fixed support that
// satisfies a node, in a two-level order: an outer walk
// over root->TRUE paths, and for each path an inner ascending binary counter
// over the don't-care positions in support that are not already fixed by the
// path.
type SolutionIter struct {
	b       *BDD
	support []int
	paths   []pathRecord
	pathIdx int
	counter uint64
	limit   uint64
	dcBits  []int // variables of support that are don't-care positions for paths[pathIdx]
}

type pathRecord struct {
	path, pathSupport *bitset
}

// SolutionIterator returns an iterator over every assignment over support
// that evaluates n to true.
func (b *BDD) SolutionIterator(n Node, support []int) (*SolutionIter, error) {
	if b.checkptr(n) != nil {
		return nil, ErrInvalidNode
	}
	it := &SolutionIter{b: b, support: support}
	if err := b.ForEachPath(n, func(path, pathSupport *bitset) {
		it.paths = append(it.paths, pathRecord{path: path.Clone(), pathSupport: pathSupport.Clone()})
	}); err != nil {
		return nil, err
	}
	it.prepare()
	return it, nil
}

func (it *SolutionIter) prepare() {
	it.counter = 0
	it.limit = 0
	it.dcBits = it.dcBits[:0]
	if it.pathIdx >= len(it.paths) {
		return
	}
	rec := it.paths[it.pathIdx]
	for _, v := range it.support {
		if !rec.pathSupport.test(v) {
			it.dcBits = append(it.dcBits, v)
		}
	}
	it.limit = uint64(1) << uint(len(it.dcBits))
}

// HasNext reports whether Next would return another assignment, without
// advancing the iterator.
func (it *SolutionIter) HasNext() bool {
	for it.pathIdx < len(it.paths) {
		if it.counter < it.limit {
			return true
		}
		it.pathIdx++
		it.prepare()
	}
	return false
}

// Next returns the next assignment over support as 0/1 values, in
// SolutionIter's established order.
func (it *SolutionIter) Next() ([]int, bool) {
	if !it.HasNext() {
		return nil, false
	}
	rec := it.paths[it.pathIdx]
	res := make([]int, len(it.support))
	for i, v := range it.support {
		res[i] = 0
		if rec.path.test(v) {
			res[i] = 1
		}
	}
	for bit, v := range it.dcBits {
		if it.counter&(uint64(1)<<uint(bit)) != 0 {
			for i, s := range it.support {
				if s == v {
					res[i] = 1
				}
			}
		}
	}
	it.counter++
	return res, true
}

// ForEachSolution calls action once for every satisfying assignment over
// support, in the ascending order SolutionIterator establishes.
func (b *BDD) ForEachSolution(n Node, support []int, action func(assignment []int)) error {
	it, err := b.SolutionIterator(n, support)
	if err != nil {
		return err
	}
	for {
		assignment, ok := it.Next()
		if !ok {
			return nil
		}
		action(assignment)
	}
}

// Allsat iterates through every legal variable assignment for n and calls f
// on each of them, using -1 for don't-care positions.
func (b *BDD) Allsat(n Node, f func([]int) error) error {
	if b.checkptr(n) != nil {
		return fmt.Errorf("decido: wrong node in call to Allsat (%d)", n)
	}
	prof := make([]int, b.t.varnum)
	for k := range prof {
		prof[k] = -1
	}
	return b.t.allsat(int(n), prof, f)
}

func (t *table) allsat(n int, prof []int, f func([]int) error) error {
	if n == 1 {
		return f(prof)
	}
	if n == 0 {
		return nil
	}
	if low := t.low(n); low != 0 {
		prof[t.level(n)] = 0
		for v := t.level(low) - 1; v > t.level(n); v-- {
			prof[v] = -1
		}
		if err := t.allsat(low, prof, f); err != nil {
			return err
		}
	}
	if high := t.high(n); high != 0 {
		prof[t.level(n)] = 1
		for v := t.level(high) - 1; v > t.level(n); v-- {
			prof[v] = -1
		}
		if err := t.allsat(high, prof, f); err != nil {
			return err
		}
	}
	return nil
}

// Allnodes applies f to every node reachable from n (or from every live node
// if n is empty), passing (id, level, low, high); visiting order is
// unspecified.
func (b *BDD) Allnodes(f func(id, level, low, high int) error, n ...Node) error {
	for _, v := range n {
		if err := b.checkptr(v); err != nil {
			return fmt.Errorf("decido: wrong node in call to Allnodes: %w", err)
		}
	}
	if len(n) == 0 {
		return b.t.allnodes(f)
	}
	seen := make(map[int]bool)
	for _, v := range n {
		if err := b.t.allnodesfrom(f, int(v), seen); err != nil {
			return err
		}
	}
	return nil
}

func (t *table) allnodes(f func(id, level, low, high int) error) error {
	for id := 2; id < len(t.nodes); id++ {
		if !t.refs[id].valid {
			continue
		}
		if err := f(id, int(t.level(id)), t.low(id), t.high(id)); err != nil {
			return err
		}
	}
	return nil
}

func (t *table) allnodesfrom(f func(id, level, low, high int) error, n int, seen map[int]bool) error {
	if n < 2 || seen[n] {
		return nil
	}
	seen[n] = true
	if err := f(n, int(t.level(n)), t.low(n), t.high(n)); err != nil {
		return err
	}
	for _, c := range t.nodes[n].children {
		if err := t.allnodesfrom(f, c, seen); err != nil {
			return err
		}
	}
	return nil
}
