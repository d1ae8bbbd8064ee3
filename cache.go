// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import "math/big"

// cacheSlot is one entry of a fixed-size, hash-indexed operation cache:
// collisions replace rather than chain.
type cacheSlot struct {
	valid      bool
	a, b, c, d int
	res        int
}

// genCache is a single fixed-size cache family, shared by apply/ite/quant
// style operations, parameterised by a per-family divider used to size it
// relative to the node table.
type genCache struct {
	table   []cacheSlot
	divider int
	hit     int
	miss    int
}

func (g *genCache) init(tableSize, divider int, cfg Config) {
	g.divider = divider
	g.table = make([]cacheSlot, cfg.cacheSize(tableSize, divider))
}

func (g *genCache) resize(tableSize int, cfg Config) {
	g.table = make([]cacheSlot, cfg.cacheSize(tableSize, g.divider))
}

func (g *genCache) reset() {
	for i := range g.table {
		g.table[i].valid = false
	}
}

func (g *genCache) lookup(h, a, b, c, d int) (int, bool) {
	e := &g.table[h%len(g.table)]
	if e.valid && e.a == a && e.b == b && e.c == c && e.d == d {
		if debugBuild {
			g.hit++
		}
		return e.res, true
	}
	if debugBuild {
		g.miss++
	}
	return 0, false
}

func (g *genCache) store(h, a, b, c, d, res int) {
	g.table[h%len(g.table)] = cacheSlot{valid: true, a: a, b: b, c: c, d: d, res: res}
}

// caches groups every operation-cache family, embedded
// directly into table so BDD and MDD algorithms can reach them without an
// extra indirection.
type caches struct {
	notCache     genCache // unary negation, keyed by the operand
	applyCache   genCache // symmetric + asymmetric binary ops, keyed by (op, a, b)
	impliesCache genCache // the IMPLIES predicate, keyed by (a, b)
	iteCache     genCache // if-then-else, keyed by (f, g, h)
	composeCache genCache // compose/restrict, keyed by (node, generation)
	quantCache   genCache // exists/forall, keyed by (node, generation)

	composeGen     int
	lastComposerID int

	quantGen     int
	lastQuantKey int
	quantset     []int32 // per-level membership marker for the active quantified set
	quantsetID   int32
	quantlast    int32 // highest quantified level; descent can stop once past it

	satcountCache map[int]*big.Int // not used: satisfaction counts use a per-call memo
}

func (t *table) initCaches(cfg Config) {
	size := len(t.nodes)
	t.notCache.init(size, cfg.CacheApplyDivider, cfg)
	t.applyCache.init(size, cfg.CacheApplyDivider, cfg)
	t.impliesCache.init(size, cfg.CacheApplyDivider, cfg)
	t.iteCache.init(size, cfg.CacheIteDivider, cfg)
	t.composeCache.init(size, cfg.CacheComposeDivider, cfg)
	t.quantCache.init(size, cfg.CacheQuantDivider, cfg)
	t.quantset = make([]int32, t.varnum)
	t.lastComposerID = -1
	t.lastQuantKey = -1
}

// cacheReset invalidates every family, used after a GC pass since node ids
// may have been reused for different formulas.
func (t *table) cacheReset() {
	t.notCache.reset()
	t.applyCache.reset()
	t.impliesCache.reset()
	t.iteCache.reset()
	t.composeCache.reset()
	t.quantCache.reset()
	t.lastComposerID = -1
	t.lastQuantKey = -1
}

// cacheResize reallocates every family relative to the current (post-growth)
// node table size.
func (t *table) cacheResize() {
	size := len(t.nodes)
	t.notCache.resize(size, t.cfg)
	t.applyCache.resize(size, t.cfg)
	t.impliesCache.resize(size, t.cfg)
	t.iteCache.resize(size, t.cfg)
	t.composeCache.resize(size, t.cfg)
	t.quantCache.resize(size, t.cfg)
}

// *** Negation cache: hash is simply n.

func (t *table) notLookup(n int) (int, bool) {
	return t.notCache.lookup(n, n, 0, 0, 0)
}

func (t *table) notStore(n, res int) int {
	t.notCache.store(n, n, 0, 0, 0, res)
	return res
}

// *** Apply cache: hash is #(a, b, op). Symmetric operators canonicalize
// their operand order before calling (see canonicalOrder in operator.go) so
// AND/OR/XOR/NAND/EQUIV share commutative slots.

func (t *table) applyLookup(op, a, b int) (int, bool) {
	h := _TRIPLE(a, b, op, len(t.applyCache.table))
	return t.applyCache.lookup(h, a, b, op, 0)
}

func (t *table) applyStore(op, a, b, res int) int {
	h := _TRIPLE(a, b, op, len(t.applyCache.table))
	t.applyCache.store(h, a, b, op, 0, res)
	return res
}

// *** Implies predicate cache: hash is #(a, b); kept separate from the apply
// cache because IMPLIES is asymmetric and its predicate form never
// materializes a Node.

func (t *table) impliesLookup(a, b int) (int, bool) {
	h := _PAIR(a, b, len(t.impliesCache.table))
	return t.impliesCache.lookup(h, a, b, 0, 0)
}

func (t *table) impliesStore(a, b, res int) int {
	h := _PAIR(a, b, len(t.impliesCache.table))
	t.impliesCache.store(h, a, b, 0, 0, res)
	return res
}

// *** ITE cache: hash is #(f, g, h).

func (t *table) iteLookup(f, g, h int) (int, bool) {
	idx := _TRIPLE(f, g, h, len(t.iteCache.table))
	return t.iteCache.lookup(idx, f, g, h, 0)
}

func (t *table) iteStore(f, g, h, res int) int {
	idx := _TRIPLE(f, g, h, len(t.iteCache.table))
	t.iteCache.store(idx, f, g, h, 0, res)
	return res
}

// *** Compose/restrict cache: hash is simply the input node; the parameter
// record (the replacement array and its highest replaced variable) is
// remembered out of band via composeGen, bumped only when the active
// Composer changes.

func (t *table) composeBegin(c *Composer) {
	if t.lastComposerID == c.id {
		return
	}
	t.lastComposerID = c.id
	t.composeGen++
	t.composeCache.reset()
}

func (t *table) composeLookup(n int) (int, bool) {
	h := n % len(t.composeCache.table)
	return t.composeCache.lookup(h, n, t.composeGen, 0, 0)
}

func (t *table) composeStore(n, res int) int {
	h := n % len(t.composeCache.table)
	t.composeCache.store(h, n, t.composeGen, 0, 0, res)
	return res
}

// *** Quantification cache: hash is simply the input node; the parameter
// record is the quantified variable set (identified by the canonical cube
// Node that names it, unique by hash-consing) together with a tag
// distinguishing exists from forall.

func (t *table) quantBegin(varset int, exists bool) {
	tag := 0
	if !exists {
		tag = 1
	}
	key := varset*2 + tag
	if t.lastQuantKey == key {
		return
	}
	t.lastQuantKey = key
	t.quantGen++
	t.quantCache.reset()
	t.buildQuantSet(varset)
}

// buildQuantSet marks, in t.quantset, every level appearing in the cube Node
// varset, and records the highest such level in t.quantlast so recursive
// descent can stop early once past it.
func (t *table) buildQuantSet(varset int) {
	t.quantsetID++
	if t.quantsetID == 1<<30 {
		t.quantset = make([]int32, t.varnum)
		t.quantsetID = 1
	}
	t.quantlast = -1
	for i := varset; i > 1; i = t.high(i) {
		t.quantset[t.level(i)] = t.quantsetID
		t.quantlast = t.level(i)
	}
}

func (t *table) inQuantSet(level int32) bool {
	return t.quantset[level] == t.quantsetID
}

func (t *table) quantLookup(n int) (int, bool) {
	h := n % len(t.quantCache.table)
	return t.quantCache.lookup(h, n, t.quantGen, 0, 0)
}

func (t *table) quantStore(n, res int) int {
	h := n % len(t.quantCache.table)
	t.quantCache.store(h, n, t.quantGen, 0, 0, res)
	return res
}
