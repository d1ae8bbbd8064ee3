// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import pkgerrors "github.com/pkg/errors"

// BDD is a binary decision diagram engine: every variable has exactly
// two children, low (false branch) and high (true branch). A BDD owns its
// own node table, caches and variable set independently of any other BDD or
// MDD instance.
type BDD struct {
	t      *table
	varset [][2]int // [negative, positive] literal node per variable
	name   string
}

// New returns a BDD engine with varnum boolean variables. Variables are
// numbered 0..varnum-1 and ordered by that
// index by default (level i == variable i).
func New(varnum int, opts ...Option) (*BDD, error) {
	if varnum < 1 || varnum > int(_MAXVAR) {
		return nil, pkgerrors.Wrapf(ErrInvalidArgument, "bad number of variables (%d)", varnum)
	}
	cfg := buildConfig(opts)
	domains := make([]int, varnum)
	for i := range domains {
		domains[i] = 2
	}
	t := newTable(domains, cfg)
	logger := cfg.Logger
	t.log = &logger

	b := &BDD{t: t, varset: make([][2]int, varnum)}
	t.initref()
	for k := 0; k < varnum; k++ {
		v0, err := t.makenode(int32(k), []int{1, 0}, nil)
		if err != nil && err != errReset && err != errResize {
			return nil, err
		}
		t.refs[v0].refcount = _MAXREFCOUNT
		t.refs[v0].saturated = true
		t.pushref(v0)
		v1, err := t.makenode(int32(k), []int{0, 1}, nil)
		if err != nil && err != errReset && err != errResize {
			return nil, err
		}
		t.refs[v1].refcount = _MAXREFCOUNT
		t.refs[v1].saturated = true
		t.popref(1)
		b.varset[k] = [2]int{v0, v1}
	}
	if cfg.LogStatisticsOnShutdown {
		globalShutdownRegistry.register(b.name, b.Statistics)
	}
	return b, nil
}

// Name sets the label of this engine. The process-wide shutdown registry
// records the label when the engine is created, before Name can be called,
// so a label set here does not appear there; no log output uses the label.
func (b *BDD) Name(name string) *BDD {
	b.name = name
	return b
}

// Error returns the error status of the engine, or the empty string if there
// has been no error since creation or the last ClearError.
func (b *BDD) Error() string { return b.t.Error() }

// Errored reports whether the engine is in an error state.
func (b *BDD) Errored() bool { return b.t.Errored() }

// ClearError clears a recoverable error, allowing the engine to be reused.
func (b *BDD) ClearError() { b.t.ClearError() }

// Varnum returns the number of declared variables.
func (b *BDD) Varnum() int { return int(b.t.varnum) }

// SetVarnum extends the number of variables; it can only increase it,
// since variable declaration is monotonic.
func (b *BDD) SetVarnum(num int) error {
	if num < 1 || num > int(_MAXVAR) {
		return b.fail(ErrInvalidArgument, "bad number of variables (%d)", num)
	}
	if num < int(b.t.varnum) {
		return b.fail(ErrInvalidArgument, "cannot decrease varnum (from %d to %d)", b.t.varnum, num)
	}
	if num == int(b.t.varnum) {
		return nil
	}
	oldvarnum := b.t.varnum
	varset := make([][2]int, num)
	copy(varset, b.varset)
	b.t.nodes[0].level = int32(num)
	b.t.nodes[1].level = int32(num)
	b.t.refstack = make([]int, 0, 2*num+4)
	b.t.initref()
	for ; b.t.varnum < int32(num); b.t.varnum++ {
		k := b.t.varnum
		v0, err := b.t.makenode(k, []int{1, 0}, nil)
		if err != nil && err != errReset && err != errResize {
			b.t.varnum = oldvarnum
			return err
		}
		b.t.pushref(v0)
		v1, err := b.t.makenode(k, []int{0, 1}, nil)
		if err != nil && err != errReset && err != errResize {
			b.t.varnum = oldvarnum
			return err
		}
		b.t.popref(1)
		varset[k] = [2]int{v0, v1}
		b.t.refs[v0].refcount = _MAXREFCOUNT
		b.t.refs[v0].saturated = true
		b.t.refs[v1].refcount = _MAXREFCOUNT
		b.t.refs[v1].saturated = true
	}
	b.varset = varset
	b.t.quantset = make([]int32, b.t.varnum)
	b.t.quantsetID = 0
	return nil
}

func (b *BDD) fail(sentinel error, format string, args ...interface{}) error {
	b.t.seterror(sentinel, format, args...)
	return sentinel
}

// checkptr validates that n names a live node of this engine.
func (b *BDD) checkptr(n Node) error {
	if int(n) < 0 || int(n) >= len(b.t.nodes) {
		return b.fail(ErrInvalidNode, "node %d out of range", n)
	}
	if int(n) >= 2 && !b.t.refs[n].valid {
		return b.fail(ErrInvalidNode, "node %d is not live", n)
	}
	return nil
}

// True returns the constant true node.
func (b *BDD) True() Node { return TrueNode }

// False returns the constant false node.
func (b *BDD) False() Node { return FalseNode }

// From returns True or False depending on v.
func (b *BDD) From(v bool) Node {
	if v {
		return TrueNode
	}
	return FalseNode
}

// Ithvar returns the node for the i'th variable in its positive form.
func (b *BDD) Ithvar(i int) Node {
	if i < 0 || i >= len(b.varset) {
		b.fail(ErrInvalidArgument, "variable %d out of range", i)
		return Node(invalidNode)
	}
	return Node(b.varset[i][1])
}

// NIthvar returns the node for the negation of the i'th variable.
func (b *BDD) NIthvar(i int) Node {
	if i < 0 || i >= len(b.varset) {
		b.fail(ErrInvalidArgument, "variable %d out of range", i)
		return Node(invalidNode)
	}
	return Node(b.varset[i][0])
}

// VariableOf returns the variable index a non-terminal node branches on.
func (b *BDD) VariableOf(n Node) int { return int(b.t.level(int(n))) }

// IsLeaf reports whether n is a terminal node.
func (b *BDD) IsLeaf(n Node) bool { return int(n) < 2 }

// IsVariable reports whether n is the positive literal of some variable,
// i.e. its low branch is False and its high branch is True.
func (b *BDD) IsVariable(n Node) bool {
	if b.checkptr(n) != nil || b.IsLeaf(n) {
		return false
	}
	return b.t.low(int(n)) == 0 && b.t.high(int(n)) == 1
}

// IsVariableNegated reports whether n is the negated literal of some
// variable, i.e. its low branch is True and its high branch is False.
func (b *BDD) IsVariableNegated(n Node) bool {
	if b.checkptr(n) != nil || b.IsLeaf(n) {
		return false
	}
	return b.t.low(int(n)) == 1 && b.t.high(int(n)) == 0
}

// IsVariableOrNegated reports whether n is a literal, positive or negated,
// of some variable.
func (b *BDD) IsVariableOrNegated(n Node) bool {
	return b.IsVariable(n) || b.IsVariableNegated(n)
}

// Low returns the false branch of n.
func (b *BDD) Low(n Node) Node {
	if b.checkptr(n) != nil || b.IsLeaf(n) {
		return Node(invalidNode)
	}
	return Node(b.t.low(int(n)))
}

// High returns the true branch of n.
func (b *BDD) High(n Node) Node {
	if b.checkptr(n) != nil || b.IsLeaf(n) {
		return Node(invalidNode)
	}
	return Node(b.t.high(int(n)))
}

// ReferenceCount returns n's current manual reference count, or -1 if n is
// saturated (permanently live) or does not name a live node.
func (b *BDD) ReferenceCount(n Node) int32 { return b.t.referenceCount(int(n)) }

// AddRef increases the manual reference count of n; see table.AddRef.
func (b *BDD) AddRef(n Node) Node { return Node(b.t.AddRef(int(n))) }

// DelRef decreases the manual reference count of n; see table.DelRef.
func (b *BDD) DelRef(n Node) Node { return Node(b.t.DelRef(int(n))) }

// GC forces an immediate garbage collection pass.
func (b *BDD) GC() { b.t.gbc(nil) }

// Makeset returns the cube (conjunction of positive literals) naming the
// given variables, such that Scanset(Makeset(vars)) reproduces vars in
// ascending order.
func (b *BDD) Makeset(vars []int) Node {
	res := TrueNode
	for _, v := range vars {
		lit := b.Ithvar(v)
		if lit == Node(invalidNode) {
			return FalseNode
		}
		res = b.And(res, lit)
	}
	return res
}

// Scanset returns the variables named by a cube built with Makeset, in
// ascending order.
func (b *BDD) Scanset(n Node) []int {
	if b.checkptr(n) != nil || int(n) < 2 {
		return nil
	}
	res := []int{}
	for i := int(n); i > 1; i = b.t.high(i) {
		res = append(res, int(b.t.level(i)))
	}
	return res
}

// Statistics returns a human-readable summary of the engine's node table, caches
// and GC history.
func (b *BDD) Statistics() string { return b.t.statistics("BDD") }
