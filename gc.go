// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// IncRef protects Edge e against reclamation by GarbageCollect, incrementing
// the reference count of its node and of both components of its weight. It
// mirrors rudd's AddRef (gc.go): a caller that wants to keep a top-level
// result alive across a collection must call IncRef on it explicitly, since
// a freshly built Edge does not yet carry any reference of its own — only
// the Edges a node holds as children are counted automatically, at
// construction time (see refChildren in build.go). IncRef returns e so
// calls can be chained, as AddRef does.
func (p *Package) IncRef(e Edge) Edge {
	incRefNode(e.node)
	p.cn.incRef(e.weight)
	return e
}

// DecRef releases a reference previously established by IncRef (or by the
// construction pipeline itself). It never reclaims anything immediately: a
// node whose count reaches zero only becomes eligible for the next
// GarbageCollect pass, mirroring rudd's DelRef.
func (p *Package) DecRef(e Edge) Edge {
	decRefNode(e.node)
	p.cn.decRef(e.weight)
	return e
}

// GarbageCollect sweeps both node unique tables and the scalar store,
// reclaiming every entry whose reference count has fallen to zero, and
// reports how many entries were freed in total. Reclaiming a node releases
// the reference it held on each of its children — both the child node's
// count and its weight's scalar counts drop by one — which can cascade
// further reclamation one level down in the very same pass, since each
// uniqueTable is swept from its topmost variable down to its lowest.
// Sweeping the two node tables, in turn, may drop scalar refcounts to zero,
// so the scalar store is only swept once both node tables have reached a
// fixed point.
//
// The identity cache is left intact by design: its entries hold their own
// IncRef (see makeIdentity in build.go) so they always survive a
// collection. Every compute table, by contrast, is unconditionally
// invalidated afterwards regardless of whether
// anything was actually reclaimed, since a stale entry could otherwise
// resurrect a pointer to a node this very call just freed (see DESIGN.md
// and the non-negotiable invariant on this in spec §4.6).
//
// If force is false, the sweep is skipped unless MaxNodeTableSize is
// configured and the combined node count has reached it, following rudd's
// policy (gbc is only invoked from makenode on table exhaustion, never
// speculatively).
func (p *Package) GarbageCollect(force bool) (int, error) {
	if !force && !p.needsCollection() {
		return 0, nil
	}
	reclaimedNodes := 0
	for {
		n := p.vUnique.sweepCascade(p.releaseChild)
		n += p.mUnique.sweepCascade(p.releaseChild)
		reclaimedNodes += n
		if n == 0 {
			break
		}
	}
	reclaimedScalars := p.cn.garbageCollect()
	p.resetComputeTables()
	return reclaimedNodes + reclaimedScalars, nil
}

// needsCollection reports whether the combined live node count has reached
// the configured ceiling. With no ceiling configured (the default),
// GarbageCollect(false) is always a no-op, matching spec §5's "operations
// complete or the process fails" model: nothing forces a sweep unless the
// caller opted into a size limit or asks for one directly.
func (p *Package) needsCollection() bool {
	if p.cfg.maxNodeTableSize <= 0 {
		return false
	}
	return p.vUnique.size()+p.mUnique.size() >= p.cfg.maxNodeTableSize
}

// reserveNodeSlot is consulted by makeDDNode right before it allocates a
// genuinely new node. With no MaxNodeTableSize configured it is always a
// no-op. Otherwise, once the combined node count has reached the ceiling it
// first tries an unforced collection to make room; if the ceiling is still
// reached afterwards, node construction fails with an AllocationError
// rather than growing the tables without bound.
func (p *Package) reserveNodeSlot() error {
	if p.cfg.maxNodeTableSize <= 0 {
		return nil
	}
	if p.vUnique.size()+p.mUnique.size() < p.cfg.maxNodeTableSize {
		return nil
	}
	if _, err := p.GarbageCollect(false); err != nil {
		return err
	}
	if p.vUnique.size()+p.mUnique.size() >= p.cfg.maxNodeTableSize {
		return allocationError("node unique tables exhausted at configured limit %d", p.cfg.maxNodeTableSize)
	}
	return nil
}

// releaseChild is invoked once for every child Edge of a node the sweep is
// about to reclaim: that node no longer holds a reference to the child, so
// both the child node's count (unless it is a terminal) and its weight's
// scalar counts drop by one.
func (p *Package) releaseChild(c Edge) {
	if !c.isTerminal() {
		decRefNode(c.node)
	}
	p.cn.decRef(c.weight)
}
