// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import pkgerrors "github.com/pkg/errors"

// MDD is a multi-valued decision diagram engine: every variable has its
// own domain size (fan-out), generalizing BDD's fixed two-way branching. An
// MDD owns its own node table, caches and variable set independently of any
// other BDD or MDD instance, sharing the same underlying table type.
type MDD struct {
	t        *table
	varnodes [][]int // varnodes[v][val] is the indicator node for "variable v == val"
	name     string
}

// NewMDD returns an MDD engine with one variable per entry of domains, each
// ranging over 0..domains[i]-1. Variables are
// numbered 0..len(domains)-1 and ordered by that index by default.
func NewMDD(domains []int, opts ...Option) (*MDD, error) {
	if len(domains) < 1 {
		return nil, pkgerrors.Wrap(ErrInvalidArgument, "MDD needs at least one variable")
	}
	for i, d := range domains {
		if d < 2 {
			return nil, pkgerrors.Wrapf(ErrInvalidArgument, "variable %d has invalid domain size %d", i, d)
		}
	}
	cfg := buildConfig(opts)
	t := newTable(domains, cfg)
	logger := cfg.Logger
	t.log = &logger

	m := &MDD{t: t, varnodes: make([][]int, len(domains))}
	t.initref()
	for v, d := range domains {
		nodes, err := m.buildIndicators(int32(v), d)
		if err != nil {
			return nil, err
		}
		m.varnodes[v] = nodes
	}
	if cfg.LogStatisticsOnShutdown {
		globalShutdownRegistry.register(m.name, m.Statistics)
	}
	return m, nil
}

// buildIndicators constructs, for variable level v of the given domain size,
// one node per value: the indicator node for value k has False in every
// child but k, which holds True.
func (m *MDD) buildIndicators(v int32, domain int) ([]int, error) {
	t := m.t
	nodes := make([]int, domain)
	saved := 0
	for val := 0; val < domain; val++ {
		children := make([]int, domain)
		for i := range children {
			children[i] = 0
		}
		children[val] = 1
		n, err := t.makenode(v, children, nil)
		if err != nil && err != errReset && err != errResize {
			return nil, err
		}
		t.refs[n].refcount = _MAXREFCOUNT
		t.refs[n].saturated = true
		t.pushref(n)
		saved++
		nodes[val] = n
	}
	t.popref(saved)
	return nodes, nil
}

// Name sets the label of this engine. The process-wide shutdown registry
// records the label when the engine is created, before Name can be called,
// so a label set here does not appear there; no log output uses the label.
func (m *MDD) Name(name string) *MDD {
	m.name = name
	return m
}

// Error returns the error status of the engine, or the empty string if there
// has been no error since creation or the last ClearError.
func (m *MDD) Error() string { return m.t.Error() }

// Errored reports whether the engine is in an error state.
func (m *MDD) Errored() bool { return m.t.Errored() }

// ClearError clears a recoverable error, allowing the engine to be reused.
func (m *MDD) ClearError() { m.t.ClearError() }

// NumberOfVariables returns the number of declared variables.
func (m *MDD) NumberOfVariables() int { return int(m.t.varnum) }

// DomainOf returns the domain size (fan-out) of variable v.
func (m *MDD) DomainOf(v int) int {
	if v < 0 || v >= len(m.t.domains) {
		return 0
	}
	return m.t.domains[v]
}

// CreateVariable appends one new variable of the given domain size, returning
// its index. Like BDD.SetVarnum, variable declaration is monotonic: existing
// variables keep their index and level.
func (m *MDD) CreateVariable(domain int) (int, error) {
	if domain < 2 {
		return -1, m.fail(ErrInvalidArgument, "invalid domain size %d", domain)
	}
	t := m.t
	oldvarnum := t.varnum
	v := int(t.varnum)
	t.domains = append(t.domains, domain)
	t.nodes[0].level = t.varnum + 1
	t.nodes[1].level = t.varnum + 1
	t.refstack = make([]int, 0, 2*len(t.domains)+4)
	t.initref()
	t.varnum++
	nodes, err := m.buildIndicators(int32(v), domain)
	if err != nil {
		t.varnum = oldvarnum
		t.domains = t.domains[:len(t.domains)-1]
		return -1, err
	}
	m.varnodes = append(m.varnodes, nodes)
	t.quantset = make([]int32, t.varnum)
	t.quantsetID = 0
	return v, nil
}

// CreateVariables appends several new variables in order, returning their
// indices.
func (m *MDD) CreateVariables(domains []int) ([]int, error) {
	res := make([]int, len(domains))
	for i, d := range domains {
		v, err := m.CreateVariable(d)
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

func (m *MDD) fail(sentinel error, format string, args ...interface{}) error {
	m.t.seterror(sentinel, format, args...)
	return sentinel
}

// checkptr validates that n names a live node of this engine.
func (m *MDD) checkptr(n Node) error {
	if int(n) < 0 || int(n) >= len(m.t.nodes) {
		return m.fail(ErrInvalidNode, "node %d out of range", n)
	}
	if int(n) >= 2 && !m.t.refs[n].valid {
		return m.fail(ErrInvalidNode, "node %d is not live", n)
	}
	return nil
}

// True returns the constant true node.
func (m *MDD) True() Node { return TrueNode }

// False returns the constant false node.
func (m *MDD) False() Node { return FalseNode }

// From returns True or False depending on v.
func (m *MDD) From(v bool) Node {
	if v {
		return TrueNode
	}
	return FalseNode
}

// VariableNode returns the indicator node for "variable v equals val": True
// along the val branch, False along every other branch.
func (m *MDD) VariableNode(v, val int) Node {
	if v < 0 || v >= len(m.varnodes) || val < 0 || val >= len(m.varnodes[v]) {
		m.fail(ErrInvalidArgument, "variable/value out of range (%d, %d)", v, val)
		return Node(invalidNode)
	}
	return Node(m.varnodes[v][val])
}

// VariableOf returns the variable index a non-terminal node branches on.
func (m *MDD) VariableOf(n Node) int { return int(m.t.level(int(n))) }

// IsLeaf reports whether n is a terminal node.
func (m *MDD) IsLeaf(n Node) bool { return int(n) < 2 }

// Follow returns the child of n reached by setting its branching variable to
// val, generalizing BDD.Low/BDD.High to arbitrary
// fan-out.
func (m *MDD) Follow(n Node, val int) Node {
	if m.checkptr(n) != nil || m.IsLeaf(n) {
		return Node(invalidNode)
	}
	children := m.t.children(int(n))
	if val < 0 || val >= len(children) {
		m.fail(ErrInvalidArgument, "value %d out of range for node %d", val, n)
		return Node(invalidNode)
	}
	return Node(children[val])
}

// ReferenceCount returns n's current manual reference count, or -1 if n is
// saturated (permanently live) or does not name a live node.
func (m *MDD) ReferenceCount(n Node) int32 { return m.t.referenceCount(int(n)) }

// AddRef increases the manual reference count of n; see table.AddRef.
func (m *MDD) AddRef(n Node) Node { return Node(m.t.AddRef(int(n))) }

// DelRef decreases the manual reference count of n; see table.DelRef.
func (m *MDD) DelRef(n Node) Node { return Node(m.t.DelRef(int(n))) }

// GC forces an immediate garbage collection pass.
func (m *MDD) GC() { m.t.gbc(nil) }

// Statistics returns a human-readable summary of the engine's node table,
// caches and GC history.
func (m *MDD) Statistics() string { return m.t.statistics("MDD") }
