// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

// Restrict fixes the listed variables to concrete domain values and
// simplifies n accordingly, generalizing BDD.Restrict to arbitrary fan-out.
// Unlike Compose/Replace, restricting to a constant value never needs the
// ite-based cofactor-selection trick BDD's Composer relies on: the fixed
// level is simply replaced by the one child it forces.
func (m *MDD) Restrict(n Node, vars []int, values []int) Node {
	if len(vars) != len(values) {
		m.fail(ErrInvalidArgument, "mismatched slice lengths in Restrict (%d vars, %d values)", len(vars), len(values))
		return Node(invalidNode)
	}
	t := m.t
	fixed := make([]int, t.varnum)
	for i := range fixed {
		fixed[i] = noImage
	}
	last := int32(-1)
	for k, v := range vars {
		if v < 0 || v >= int(t.varnum) {
			m.fail(ErrInvalidArgument, "variable %d out of range in Restrict", v)
			return Node(invalidNode)
		}
		val := values[k]
		if val < 0 || val >= t.domains[v] {
			m.fail(ErrInvalidArgument, "value %d out of range for variable %d", val, v)
			return Node(invalidNode)
		}
		fixed[v] = val
		if int32(v) > last {
			last = int32(v)
		}
	}
	if m.checkptr(n) != nil {
		return Node(invalidNode)
	}
	t.initref()
	t.pushref(int(n))
	t.composeGen++
	t.composeCache.reset()
	res := t.mddRestrict(int(n), fixed, last)
	t.popref(1)
	return Node(res)
}

func (t *table) mddRestrict(n int, fixed []int, last int32) int {
	if n < 2 {
		return n
	}
	lvl := t.level(n)
	if lvl > last {
		return n
	}
	if res, ok := t.composeLookup(n); ok {
		return res
	}
	children := t.children(n)
	var res int
	if val := fixed[lvl]; val != noImage {
		res = t.mddRestrict(children[val], fixed, last)
	} else {
		out := make([]int, len(children))
		for i, c := range children {
			out[i] = t.pushref(t.mddRestrict(c, fixed, last))
		}
		var err error
		res, err = t.makenode(lvl, out, nil)
		t.popref(len(children))
		if err != nil && err != errReset && err != errResize {
			res = invalidNode
		}
	}
	return t.composeStore(n, res)
}
