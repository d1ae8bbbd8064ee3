// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import "sort"

// QuantifierSet builds the marker cube Exists/Forall expect as their varset
// argument: a chain of single-child-1 nodes, one per quantified variable,
// ordered by ascending level so the quantification cache's buildQuantSet can
// walk it exactly like a BDD cube. Unlike a BDD cube it is never meant to be combined with
// Apply; it only names which levels are being summed out.
func (m *MDD) QuantifierSet(vars []int) Node {
	sorted := append([]int(nil), vars...)
	sort.Ints(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			m.fail(ErrInvalidArgument, "duplicate variable %d in quantifier set", sorted[i])
			return Node(invalidNode)
		}
	}
	t := m.t
	t.initref()
	res := int(TrueNode)
	for i := len(sorted) - 1; i >= 0; i-- {
		v := sorted[i]
		if v < 0 || v >= int(t.varnum) {
			m.fail(ErrInvalidArgument, "variable %d out of range", v)
			return Node(invalidNode)
		}
		t.pushref(res)
		n, err := t.makenode(int32(v), []int{0, res}, nil)
		t.popref(1)
		if err != nil && err != errReset && err != errResize {
			return Node(invalidNode)
		}
		t.pushref(n)
		res = n
	}
	return Node(res)
}

// Exists returns the existential quantification of n over the variables
// named by varset: every cofactor of a quantified variable is folded
// together with Or instead of rebuilding a node for it.
func (m *MDD) Exists(n, varset Node) Node {
	return m.quantify(n, varset, true)
}

// Forall returns the universal quantification of n over varset, folding
// cofactors with And instead.
func (m *MDD) Forall(n, varset Node) Node {
	return m.quantify(n, varset, false)
}

func (m *MDD) quantify(n, varset Node, exists bool) Node {
	if m.checkptr(n) != nil || m.checkptr(varset) != nil {
		return Node(invalidNode)
	}
	if int(varset) < 2 {
		return n
	}
	m.t.quantBegin(int(varset), exists)
	m.t.initref()
	m.t.pushref(int(n))
	m.t.pushref(int(varset))
	var op Operator
	if exists {
		op = opOr
	} else {
		op = opAnd
	}
	res := m.t.mddQuant(int(n), op)
	m.t.popref(2)
	return Node(res)
}

// mddQuant generalizes BDD's quant to arbitrary fan-out: instead of a single
// Or/And over the two BDD cofactors, it folds op over however many cofactors
// the quantified variable's domain has.
func (t *table) mddQuant(n int, op Operator) int {
	if n < 2 || t.level(n) > t.quantlast {
		return n
	}
	if res, ok := t.quantLookup(n); ok {
		return res
	}
	children := t.children(n)
	cofactors := make([]int, len(children))
	pushes := 0
	for i, c := range children {
		cofactors[i] = t.pushref(t.mddQuant(c, op))
		pushes++
	}
	var out int
	if t.inQuantSet(t.level(n)) {
		out = cofactors[0]
		for i := 1; i < len(cofactors); i++ {
			out = t.pushref(t.mddApply(op, out, cofactors[i]))
			pushes++
		}
	} else {
		var err error
		out, err = t.makenode(t.level(n), cofactors, nil)
		if err != nil && err != errReset && err != errResize {
			out = invalidNode
		}
	}
	t.popref(pushes)
	return t.quantStore(n, out)
}

// RelationalProduct computes Exists(Apply(n1, n2, op), varset), mirroring
// BDD.RelationalProduct: built from the already-cached Apply and Exists
// passes rather than a dedicated fused traversal.
func (m *MDD) RelationalProduct(n1, n2 Node, op Operator, varset Node) Node {
	return m.Exists(m.Apply(n1, n2, op), varset)
}
