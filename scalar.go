// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"math"
	"sync"
)

// scalarEntry is a single hash-consed real number. Canonical entries (ones
// reachable through scalarTable.lookup) are shared and reference counted;
// scratch entries returned by getTemporary/getCached are private, mutable,
// and never inserted into the table.
type scalarEntry struct {
	value    float64
	refCount int32
}

// scalarTable is the scalar store described informally as the package's
// hash-consing table for Edge-weight components: every distinct (up to
// tolerance) nonnegative float64 magnitude is represented by exactly one
// *scalarEntry, so equal magnitudes always compare equal by pointer. The
// sign of a weight component is carried alongside the pointer to its
// magnitude (see Complex in complex.go) rather than folded into the
// pointer bits themselves, since Go pointers cannot safely be tagged
// without defeating the garbage collector.
//
// This is the Go-idiomatic analogue of rudd's map-based unique table
// (hudd.go's tables.unique), applied to scalars instead of BDD nodes.
type scalarTable struct {
	mu        sync.RWMutex
	buckets   map[int64][]*scalarEntry
	tolerance float64
	count     int

	zero *scalarEntry
	one  *scalarEntry
}

func newScalarTable(tolerance float64, size int) *scalarTable {
	t := &scalarTable{
		buckets:   make(map[int64][]*scalarEntry, primeGte(size)),
		tolerance: tolerance,
		zero:      &scalarEntry{value: 0, refCount: _MAXREFCOUNT},
		one:       &scalarEntry{value: 1, refCount: _MAXREFCOUNT},
	}
	return t
}

func (t *scalarTable) bucketKey(v float64) int64 {
	return int64(math.Round(v / t.tolerance))
}

// lookup returns the canonical entry for a nonnegative magnitude v, within
// the table's tolerance, creating one if none exists. Values within
// tolerance of 0 or 1 are mapped onto the shared, pinned Zero/One entries
// (avoiding both a -0.0 and a near-1 duplicate), mirroring the original
// package's lookup(fp,fp) special-casing of those two constants.
func (t *scalarTable) lookup(v float64) *scalarEntry {
	if v < t.tolerance {
		return t.zero
	}
	if math.Abs(v-1) < t.tolerance {
		return t.one
	}
	key := t.bucketKey(v)
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, k := range [3]int64{key - 1, key, key + 1} {
		for _, e := range t.buckets[k] {
			if math.Abs(e.value-v) < t.tolerance {
				return e
			}
		}
	}
	e := &scalarEntry{value: v}
	t.buckets[key] = append(t.buckets[key], e)
	t.count++
	return e
}

func (t *scalarTable) incRef(e *scalarEntry) {
	if e == nil || e == t.zero || e == t.one {
		return
	}
	if e.refCount < _MAXREFCOUNT {
		e.refCount++
	}
}

// decRef mirrors incRef's saturation check: once a refcount has pinned at
// _MAXREFCOUNT we no longer know its true magnitude, so we stop decrementing
// it too rather than risk releasing an entry still held elsewhere.
func (t *scalarTable) decRef(e *scalarEntry) {
	if e == nil || e == t.zero || e == t.one {
		return
	}
	if e.refCount > 0 && e.refCount < _MAXREFCOUNT {
		e.refCount--
	}
}

// garbageCollect sweeps every bucket, reclaiming entries whose reference
// count has dropped to zero, and reports how many were reclaimed. The
// pinned Zero and One entries are never swept. Callers decide, based on
// their own policy (see Package.GarbageCollect), whether the table is
// crowded enough to be worth sweeping at all.
func (t *scalarTable) garbageCollect() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	reclaimed := 0
	for k, bucket := range t.buckets {
		kept := bucket[:0]
		for _, e := range bucket {
			if e.refCount == 0 {
				reclaimed++
				t.count--
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(t.buckets, k)
		} else {
			t.buckets[k] = kept
		}
	}
	return reclaimed
}

// size reports the number of non-pinned canonical entries currently held.
func (t *scalarTable) size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.count
}
