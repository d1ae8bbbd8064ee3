// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

// Exists returns the existential quantification of n over the variables
// named by varset, a cube built with Makeset. It
// collapses every pair of cofactors on a quantified variable with Or.
func (b *BDD) Exists(n, varset Node) Node {
	return b.quantify(n, varset, true)
}

// Forall returns the universal quantification of n over varset. It
// collapses cofactors with And instead of Or.
func (b *BDD) Forall(n, varset Node) Node {
	return b.quantify(n, varset, false)
}

func (b *BDD) quantify(n, varset Node, exists bool) Node {
	if b.checkptr(n) != nil {
		return Node(invalidNode)
	}
	if b.checkptr(varset) != nil {
		return Node(invalidNode)
	}
	if int(varset) < 2 {
		return n
	}
	b.t.quantBegin(int(varset), exists)
	b.t.initref()
	b.t.pushref(int(n))
	b.t.pushref(int(varset))
	var op Operator
	if exists {
		op = opOr
	} else {
		op = opAnd
	}
	res := b.t.quant(int(n), op)
	b.t.popref(2)
	return Node(res)
}

// quant is the shared recursive core of Exists/Forall: it descends
// unconditionally down to the lowest quantified level (t.quantlast), then
// folds the two cofactors of each quantified variable with op instead of
// rebuilding a node for it.
func (t *table) quant(n int, op Operator) int {
	if n < 2 || t.level(n) > t.quantlast {
		return n
	}
	if res, ok := t.quantLookup(n); ok {
		return res
	}
	low := t.pushref(t.quant(t.low(n), op))
	high := t.pushref(t.quant(t.high(n), op))
	var res int
	if t.inQuantSet(t.level(n)) {
		res = t.apply(op, low, high)
	} else {
		var err error
		res, err = t.makenode(t.level(n), []int{low, high}, nil)
		if err != nil && err != errReset && err != errResize {
			res = invalidNode
		}
	}
	t.popref(2)
	return t.quantStore(n, res)
}

// Conjunction returns the cube (AND) of the given variables in their
// positive form; equivalent to Makeset but named for use where the result
// is meant to be combined via And rather than passed to Exists/Forall.
func (b *BDD) Conjunction(vars []int) Node {
	return b.Makeset(vars)
}

// Disjunction returns the OR of the given variables in their positive form.
func (b *BDD) Disjunction(vars []int) Node {
	res := FalseNode
	for _, v := range vars {
		lit := b.Ithvar(v)
		if lit == Node(invalidNode) {
			return Node(invalidNode)
		}
		res = b.Or(res, lit)
	}
	return res
}

// RelationalProduct computes Exists(Apply(n1, n2, op), varset) -- the image
// of a transition relation quantified over its input variables -- by plain
// composition of the already-cached Apply and Exists passes. A fused
// apply-and-quantify traversal that interleaves the two so only one pass is
// needed is deliberately not implemented: RelationalProduct is built from
// Apply and Exists rather than carrying its own cache family for an
// operation with no Construction primitive of its own.
func (b *BDD) RelationalProduct(n1, n2 Node, op Operator, varset Node) Node {
	return b.Exists(b.Apply(n1, n2, op), varset)
}
