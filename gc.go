// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

// AddRef increases the reference count on node n and returns n so calls can
// be chained. A call to AddRef never raises an error, even against an
// unused node or a value outside the table's range: reference counting is
// manual and only meaningful for externally-held nodes.
func (t *table) AddRef(n int) int {
	if n < 2 || n >= len(t.nodes) || !t.refs[n].valid {
		return n
	}
	if t.refs[n].refcount < _MAXREFCOUNT {
		t.refs[n].refcount++
	} else {
		t.refs[n].saturated = true
	}
	return n
}

// DelRef decreases the reference count on node n and returns n so calls can
// be chained. Like AddRef, it never raises an error. A node whose refcount
// saturated at _MAXREFCOUNT (every BDD/MDD literal, and any node an
// application marked permanently live) never drops below that ceiling
// again, since those nodes must remain reachable for the lifetime of the engine.
func (t *table) DelRef(n int) int {
	if n < 0 || n >= len(t.nodes) || !t.refs[n].valid {
		return n
	}
	if t.refs[n].saturated {
		return n
	}
	if t.refs[n].refcount > 0 {
		t.refs[n].refcount--
	}
	return n
}

// referenceCount returns the current manual refcount of n, or -1 if n does
// not name a live node or is saturated: external callers observe saturated
// nodes as reference count = -1.
func (t *table) referenceCount(n int) int32 {
	if n < 0 || n >= len(t.nodes) || !t.refs[n].valid {
		return -1
	}
	if t.refs[n].saturated {
		return -1
	}
	return t.refs[n].refcount
}

// *** Work stack: roots transient, in-flight node ids during construction so
// a GC triggered mid-Apply cannot reclaim them.

func (t *table) initref() {
	t.refstack = t.refstack[:0]
}

func (t *table) pushref(n int) int {
	t.refstack = append(t.refstack, n)
	return n
}

func (t *table) popref(a int) {
	checkconsistency(a <= len(t.refstack), "work stack underflow (pop %d of %d)", a, len(t.refstack))
	t.refstack = t.refstack[:len(t.refstack)-a]
}

// *** Mark-sweep GC.

// gbc reclaims every node that is neither rooted in refstack (nodes still
// under construction) nor positively referenced. Surviving nodes do not move; the operation caches are
// invalidated afterwards since reclaimed ids may be reused for unrelated
// formulas.
func (t *table) gbc(refstack []int) {
	if !t.cfg.UseGarbageCollection {
		return
	}
	if t.log != nil {
		t.log.Debug().Int("nodes", len(t.nodes)).Int("free", t.freenum).Msg("starting gc")
	}
	t.gcHistory = append(t.gcHistory, gcPoint{nodes: len(t.nodes), freeNodes: t.freenum})

	for _, r := range t.refstack {
		t.markrec(r)
	}
	for _, r := range refstack {
		t.markrec(r)
	}
	for k := range t.nodes {
		if t.refs[k].valid && t.refs[k].refcount > 0 {
			t.markrec(k)
		}
		t.refs[k].hashHead = chainEnd
	}
	t.freepos = chainEnd
	t.freenum = 0
	for n := len(t.nodes) - 1; n > 1; n-- {
		if t.nodes[n].marked() && t.refs[n].valid {
			t.nodes[n].unmark()
			h := t.ptrhash(n)
			t.refs[n].next = t.refs[h].hashHead
			t.refs[h].hashHead = n
		} else {
			t.refs[n].valid = false
			t.refs[n].saturated = false
			t.refs[n].refcount = 0
			t.refs[n].next = t.freepos
			t.freepos = n
			t.freenum++
		}
	}
	t.cacheReset()
	if t.log != nil {
		t.log.Debug().Int("free", t.freenum).Msg("finished gc")
	}
}

func (t *table) markrec(n int) {
	if n < 2 || !t.refs[n].valid || t.nodes[n].marked() {
		return
	}
	t.nodes[n].mark()
	for _, c := range t.nodes[n].children {
		t.markrec(c)
	}
}

func (t *table) unmarkall() {
	for k := range t.nodes {
		if k < 2 || !t.refs[k].valid || !t.nodes[k].marked() {
			continue
		}
		t.nodes[k].unmark()
	}
}
