// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// Add returns the memoized sum of two same-kind (both vector or both
// matrix) edges, following the short-circuit order of the original
// package's add2: a zero-weight operand passes the other straight
// through, identical child pointers fold the weights directly, otherwise
// the compute table is consulted before recursing level by level and
// rebuilding through makeDDNode.
func (p *Package) Add(x, y Edge) (Edge, error) {
	p.clearerror()
	if x.node == nil || y.node == nil {
		return Edge{}, p.fail(invalidArgument("add: nil operand"))
	}
	if x.node.kind != y.node.kind {
		return Edge{}, p.fail(invalidArgument("add: operands must be the same kind"))
	}
	return p.add(x.node.kind, x, y)
}

func (p *Package) add(kind nodeKind, x, y Edge) (Edge, error) {
	tol := p.tolerance
	if x.weight.approximatelyZero(tol) {
		return y, nil
	}
	if y.weight.approximatelyZero(tol) {
		return x, nil
	}
	if x.node == y.node {
		w := p.cn.lookup(p.cn.add(x.weight, y.weight))
		if w.approximatelyZero(tol) {
			return p.zeroEdge(kind), nil
		}
		return Edge{node: x.node, weight: w}, nil
	}
	// The compute-table key factors out a common scalar — x's own weight —
	// so that two calls scaled by the same overall phase/magnitude share a
	// cache entry: add(c*x0, c*y0) == c*add(x0, y0) for any nonzero c,
	// since addition distributes over scalar multiplication. Only the
	// *ratio* y.weight/x.weight needs to be carried in the key; x.weight
	// itself is reapplied to whatever the cache returns.
	xKey := Edge{node: x.node, weight: p.cn.One()}
	yKey := Edge{node: y.node, weight: p.cn.lookup(p.cn.div(y.weight, x.weight))}
	if res, ok := p.addCache.lookup(xKey, yKey); ok {
		w := p.cn.lookup(p.cn.mul(res.weight, x.weight))
		if w.approximatelyZero(tol) {
			return p.zeroEdge(kind), nil
		}
		return Edge{node: res.node, weight: w}, nil
	}

	varIndex := int(x.node.varIndex)
	if int(y.node.varIndex) > varIndex {
		varIndex = int(y.node.varIndex)
	}
	radix := p.radixOf(kind, varIndex)
	children := make([]Edge, radix)
	for i := 0; i < radix; i++ {
		xi := p.descend(x, varIndex, i)
		yi := p.descend(y, varIndex, i)
		c, err := p.add(kind, xi, yi)
		if err != nil {
			return Edge{}, err
		}
		children[i] = c
	}
	res, err := p.makeDDNode(kind, varIndex, children)
	if err != nil {
		return Edge{}, err
	}
	stored := p.cn.lookup(p.cn.div(res.weight, x.weight))
	p.addCache.insert(xKey, yKey, Edge{node: res.node, weight: stored})
	return res, nil
}

// descend returns the i-th child of e once e has been pushed down to
// level varIndex, scaling the child's weight by e's own weight. If e does
// not reach this level (it is shallower, or terminal), e is returned
// unchanged: for addition, an operand whose diagram does not branch on
// register varIndex necessarily carries the same value at every index of
// that register, by the reduced-diagram invariant.
func (p *Package) descend(e Edge, varIndex, i int) Edge {
	if e.isTerminal() || int(e.node.varIndex) < varIndex {
		return e
	}
	c := e.node.children[i]
	w := p.cn.lookup(p.cn.mul(e.weight, c.weight))
	return Edge{node: c.node, weight: w}
}
