// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"sync"
	"unsafe"
)

// uniqueTable is a per-kind, per-level hash-consing table for ddNodes,
// modeled on rudd's map-based unique table (hudd.go's tables.unique): a Go
// map keyed by a hash of a node's children, with exact equality checked on
// lookup to resolve collisions. One uniqueTable instance exists for vector
// nodes and one for matrix nodes; each keeps one bucket map per register
// level so that structurally distinct levels never collide.
type uniqueTable struct {
	mu      sync.RWMutex
	buckets []map[uint64][]*ddNode // indexed by varIndex
	count   int
}

func newUniqueTable(levels int) *uniqueTable {
	t := &uniqueTable{buckets: make([]map[uint64][]*ddNode, levels)}
	for i := range t.buckets {
		t.buckets[i] = make(map[uint64][]*ddNode)
	}
	return t
}

func hashChildren(children []Edge) uint64 {
	var h uint64
	for i, c := range children {
		ch := hashPointer(unsafe.Pointer(c.node))
		ch = combineHash(ch, hashPointer(unsafe.Pointer(c.weight.real)))
		ch = combineHash(ch, hashPointer(unsafe.Pointer(c.weight.imag)))
		if c.weight.negReal {
			ch = combineHash(ch, 0x1)
		}
		if c.weight.negImag {
			ch = combineHash(ch, 0x2)
		}
		h = combineHash(h, combineHash(ch, uint64(i)))
	}
	return h
}

func sameChildren(a, b []Edge) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].node != b[i].node || !a[i].weight.Equal(b[i].weight) {
			return false
		}
	}
	return true
}

// lookup returns an existing structurally-identical node at the given
// level, if any.
func (t *uniqueTable) lookup(varIndex int, children []Edge) *ddNode {
	h := hashChildren(children)
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, n := range t.buckets[varIndex][h] {
		if sameChildren(n.children, children) {
			return n
		}
	}
	return nil
}

// insert adds a freshly built node to its level's bucket. The caller must
// already have confirmed (via lookup) that no structurally identical node
// exists.
func (t *uniqueTable) insert(n *ddNode) {
	h := hashChildren(n.children)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buckets[n.varIndex][h] = append(t.buckets[n.varIndex][h], n)
	t.count++
}

// sweepCascade reclaims every node whose reference count has dropped to
// zero, scanning levels from the topmost variable down to the lowest so
// that a cascaded release of a child's reference (via release, called once
// per reclaimed node's children) is always visible by the time that
// child's own level comes up for sweeping later in the very same pass.
// Returns the number of nodes reclaimed; see Package.GarbageCollect.
func (t *uniqueTable) sweepCascade(release func(Edge)) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	reclaimed := 0
	for lvl := len(t.buckets) - 1; lvl >= 0; lvl-- {
		bucket := t.buckets[lvl]
		for h, nodes := range bucket {
			kept := nodes[:0]
			for _, n := range nodes {
				if n.refCount == 0 {
					reclaimed++
					t.count--
					for _, c := range n.children {
						release(c)
					}
					continue
				}
				kept = append(kept, n)
			}
			if len(kept) == 0 {
				delete(bucket, h)
			} else {
				bucket[h] = kept
			}
		}
	}
	return reclaimed
}

func (t *uniqueTable) size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.count
}
