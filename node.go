// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import "github.com/rs/zerolog"

// nodeRecord is the node half of a node-table slot: the variable it branches
// on and its children. children has length 2 for a BDD (low, high) and
// domain(variable) for an MDD.
//
// The mark bit used by mark-sweep GC and by DFS-based enumeration (support,
// Allnodes, Print) is folded into the high bits of level.
type nodeRecord struct {
	level    int32
	children []int
}

func (n *nodeRecord) marked() bool    { return n.level&markBit != 0 }
func (n *nodeRecord) mark()           { n.level |= markBit }
func (n *nodeRecord) unmark()         { n.level &^= markBit }
func (n *nodeRecord) variable() int32 { return n.level & levelMask }

// refRecord is the reference half of a node-table slot: hash-chain linkage,
// manual refcount and the saturation/validity flags.
type refRecord struct {
	hashHead  int   // head of the hash-bucket chain rooted at this slot
	next      int   // next node in *this node's own* chain, or next free slot
	refcount  int32
	saturated bool
	valid     bool
}

// table is the shared node table + operation caches + bookkeeping used by
// both the BDD and the MDD engine. Each BDD or MDD instance owns an
// independent table; nothing is shared across instances.
type table struct {
	nodes []nodeRecord
	refs  []refRecord

	freepos int
	freenum int
	produced int

	varnum  int32
	domains []int // domain(v) for each variable; always 2 for a BDD

	refstack []int // work stack: in-flight node ids, rooted during GC

	err error
	log *zerolog.Logger

	cfg Config

	caches

	// access checking (optional, Config.CheckAccess)
	inCall bool

	// GC / growth statistics
	gcHistory []gcPoint
	setFinalizers    uint64
	calledFinalizers uint64

	// debug-build-only unicity table counters
	uniqueAccess, uniqueChain, uniqueHit, uniqueMiss int
}

type gcPoint struct {
	nodes, freeNodes int
}

// newTable allocates a fresh table with `varnum` variables, each with the
// given domain (constant 2 for BDD callers; variable for MDD). It does not
// create any per-variable literal/helper nodes; that is the caller's (bdd.go
// / mdd.go) responsibility since the two engines shape those differently.
func newTable(domains []int, cfg Config) *table {
	t := &table{
		varnum:  int32(len(domains)),
		domains: append([]int(nil), domains...),
		cfg:     cfg,
	}
	size := primeGte(cfg.initialSize(len(domains)))
	t.nodes = make([]nodeRecord, size)
	t.refs = make([]refRecord, size)
	for k := range t.refs {
		t.refs[k] = refRecord{next: k + 1}
	}
	t.refs[size-1].next = chainEnd
	t.freepos = 2
	t.freenum = size - 2
	// terminals occupy slots 0 and 1; they are saturated, self-looped, and
	// never linked into a hash chain.
	t.nodes[0] = nodeRecord{level: t.varnum, children: []int{0, 0}}
	t.nodes[1] = nodeRecord{level: t.varnum, children: []int{1, 1}}
	t.refs[0] = refRecord{refcount: _MAXREFCOUNT, saturated: true, valid: true}
	t.refs[1] = refRecord{refcount: _MAXREFCOUNT, saturated: true, valid: true}
	t.refstack = make([]int, 0, 2*len(domains)+4)
	t.initCaches(cfg)
	return t
}

func (t *table) size() int { return len(t.nodes) }

func (t *table) level(n int) int32 { return t.nodes[n].variable() }

func (t *table) low(n int) int  { return t.nodes[n].children[0] }
func (t *table) high(n int) int { return t.nodes[n].children[1] }

func (t *table) children(n int) []int { return t.nodes[n].children }

func (t *table) ismarked(n int) bool { return t.nodes[n].marked() }
func (t *table) marknode(n int)      { t.nodes[n].mark() }
func (t *table) unmarknode(n int)    { t.nodes[n].unmark() }
