// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import (
	"runtime"
	"sync"
	"weak"
)

// GcReferenceManager maps node ids to external wrapper objects, so a client
// that builds its own rich type around a Node (a formula AST node, a
// transition-relation state, ...) never has to reason about engine-level
// reference counting itself. Saturated nodes (terminals and variable
// literals) are kept in a strong map since they are never collected, while
// every other node is tracked through a weak.Pointer with a
// runtime.AddCleanup callback standing in for the release notification.
type GcReferenceManager struct {
	b *BDD

	mu      sync.Mutex
	strong  map[int]interface{}
	weakMap map[int]weak.Pointer[wrapperBox]
	pending []int
}

type wrapperBox struct {
	value interface{}
}

// NewGcReferenceManager returns a manager bound to b.
func NewGcReferenceManager(b *BDD) *GcReferenceManager {
	return &GcReferenceManager{
		b:       b,
		strong:  make(map[int]interface{}),
		weakMap: make(map[int]weak.Pointer[wrapperBox]),
	}
}

// Get returns the wrapper associated with n, building a fresh one with
// create if none is currently alive: check the strong map, then the weak
// map; if neither has a live wrapper,
// drain the release queue, make sure n carries exactly one reference, build
// the wrapper, and track it (strongly if n is saturated, weakly otherwise).
func (m *GcReferenceManager) Get(n Node, create func() interface{}) interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := int(n)
	if v, ok := m.strong[id]; ok {
		return v
	}
	if wp, ok := m.weakMap[id]; ok {
		if box := wp.Value(); box != nil {
			return box.value
		}
	}

	// A pending release for id is dropped by drainLocked, so the reference
	// it would have released is kept for the new wrapper.
	pending := false
	for _, p := range m.pending {
		if p == id {
			pending = true
			break
		}
	}
	m.drainLocked(id)
	if !pending {
		m.b.AddRef(n)
	}
	value := create()

	if m.b.t.referenceCount(id) < 0 { // saturated: -1 as reported to callers
		m.strong[id] = value
		return value
	}

	box := &wrapperBox{value: value}
	m.weakMap[id] = weak.Make(box)
	runtime.AddCleanup(box, m.enqueue, id)
	return value
}

// enqueue is the runtime.AddCleanup callback: it never touches the engine
// directly (it may run on a GC-owned goroutine with no synchronisation
// guarantees beyond m.mu), it only records that n's wrapper was collected.
func (m *GcReferenceManager) enqueue(n int) {
	m.mu.Lock()
	m.pending = append(m.pending, n)
	m.mu.Unlock()
}

// drainLocked processes the release queue, dereferencing every collected
// node except protect (the node currently being fetched by Get, whose
// existing reference is kept for its new wrapper instead of being dropped).
// Caller must hold m.mu.
func (m *GcReferenceManager) drainLocked(protect int) {
	for _, n := range m.pending {
		if n == protect {
			continue
		}
		m.b.DelRef(Node(n))
		delete(m.weakMap, n)
	}
	m.pending = m.pending[:0]
}

// Drain forces processing of the release queue outside of a Get call, e.g.
// after a GC pass the caller knows freed a batch of wrappers.
func (m *GcReferenceManager) Drain() {
	m.mu.Lock()
	m.drainLocked(-1)
	m.mu.Unlock()
}
