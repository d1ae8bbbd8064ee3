// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import "github.com/pkg/errors"

// errResize and errReset are internal sentinels makenode uses to tell its
// caller a GC pass, or a GC pass followed by a resize, happened during node
// construction.
var errResize = errors.New("node table resized")
var errReset = errors.New("node table garbage collected")

// makenode is the single hash-consing entry point shared by the BDD and MDD
// engines: given a variable level and its children, it returns the existing
// canonical node if one already has that (level, children) pair, or builds a
// fresh one. refstack roots, in addition to t.refstack, any node ids the
// caller is mid-construction on (so a GC triggered by this very call cannot
// reclaim them).
//
// The elimination rule for a BDD ("if children are identical, return the
// shared child") is actually caller-visible for any domain size: when every
// child slice element is equal, the node can never distinguish an outcome on
// this variable and is skipped, generalizing the `low == high` check of a
// strictly binary node table to arbitrary fan-out.
func (t *table) makenode(level int32, children []int, refstack []int) (int, error) {
	if debugBuild {
		t.uniqueAccess++
	}
	if allEqual(children) {
		return children[0], nil
	}
	hash := t.nodehash(level, children)
	res := t.refs[hash].hashHead
	for res != chainEnd {
		if t.nodes[res].variable() == level && sameChildren(t.nodes[res].children, children) {
			if debugBuild {
				t.uniqueHit++
			}
			return res, nil
		}
		res = t.refs[res].next
		if debugBuild {
			t.uniqueChain++
		}
	}
	if debugBuild {
		t.uniqueMiss++
	}
	var err error
	if t.freepos == chainEnd {
		t.gbc(refstack)
		err = errReset
		if (t.freenum*100)/len(t.nodes) <= t.cfg.MinimumFreeNodePercentageAfterGC {
			err = t.noderesize()
			if err != errResize {
				t.seterror(ErrCapacityExhausted, "cannot resize node table beyond %d nodes", len(t.nodes))
				return invalidNode, ErrCapacityExhausted
			}
			hash = t.nodehash(level, children)
		}
		if t.freepos == chainEnd {
			t.seterror(ErrCapacityExhausted, "node table exhausted")
			return invalidNode, ErrCapacityExhausted
		}
	}
	res = t.freepos
	t.freepos = t.refs[t.freepos].next
	t.freenum--
	t.produced++
	t.nodes[res] = nodeRecord{level: level, children: append([]int(nil), children...)}
	t.refs[res].next = t.refs[hash].hashHead
	t.refs[res].valid = true
	t.refs[res].refcount = 0
	t.refs[res].saturated = false
	t.refs[hash].hashHead = res
	return res, err
}

func allEqual(children []int) bool {
	for i := 1; i < len(children); i++ {
		if children[i] != children[0] {
			return false
		}
	}
	return true
}

func sameChildren(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// noderesize grows the node table: the new size is
// GrowthFactor times the old one (clamped by MaxNodeIncrease and
// MaxNodeSize), every slot is rehashed, and every cache family is
// reallocated to track the new size. Returns errResize on success so
// makenode can tell a grow apart from a plain GC, or an error describing why
// growth was refused.
func (t *table) noderesize() error {
	if t.log != nil {
		t.log.Debug().Int("from", len(t.nodes)).Msg("resizing node table")
	}
	oldsize := len(t.nodes)
	if t.cfg.MaxNodeSize > 0 && oldsize >= t.cfg.MaxNodeSize {
		t.seterror(ErrCapacityExhausted, "node table already at its configured maximum (%d nodes)", t.cfg.MaxNodeSize)
		return ErrCapacityExhausted
	}
	newsize := int(float64(oldsize) * t.cfg.GrowthFactor)
	if newsize <= oldsize {
		newsize = oldsize + 1
	}
	if t.cfg.MaxNodeIncrease > 0 && newsize > oldsize+t.cfg.MaxNodeIncrease {
		newsize = oldsize + t.cfg.MaxNodeIncrease
	}
	if t.cfg.MaxNodeSize > 0 && newsize > t.cfg.MaxNodeSize {
		newsize = t.cfg.MaxNodeSize
	}
	newsize = primeLte(newsize)
	if newsize <= oldsize {
		t.seterror(ErrCapacityExhausted, "unable to grow node table past %d nodes", oldsize)
		return ErrCapacityExhausted
	}

	nodes := make([]nodeRecord, newsize)
	refs := make([]refRecord, newsize)
	copy(nodes, t.nodes)
	copy(refs, t.refs)
	t.nodes = nodes
	t.refs = refs

	for n := oldsize; n < newsize; n++ {
		t.refs[n] = refRecord{next: n + 1}
	}
	t.refs[newsize-1].next = chainEnd

	for n := range t.refs {
		t.refs[n].hashHead = chainEnd
	}
	t.freepos = chainEnd
	t.freenum = 0
	for n := newsize - 1; n > 1; n-- {
		if t.refs[n].valid {
			h := t.ptrhash(n)
			t.refs[n].next = t.refs[h].hashHead
			t.refs[h].hashHead = n
		} else {
			t.refs[n].next = t.freepos
			t.freepos = n
			t.freenum++
		}
	}
	t.cacheResize()
	if t.log != nil {
		t.log.Debug().Int("to", len(t.nodes)).Msg("resized node table")
	}
	return errResize
}
