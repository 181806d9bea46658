// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// Kronecker computes the tensor product x ⊗ y, treating y as occupying
// the lowest registers (0 through its topmost level) and x as occupying
// the registers immediately above them. x is first relabeled upward by
// y's register count (shiftUp), then the result is built by descending
// through the relabeled x's structure and attaching y at each of its
// terminals — the same two-phase approach (index shift, then structural recursion)
// as the original package's kronecker/kronecker2, minus its identity-node
// lifting special case, which is a performance optimization we forgo for
// clarity; see DESIGN.md.
func (p *Package) Kronecker(x, y Edge) (Edge, error) {
	p.clearerror()
	if x.node == nil || y.node == nil {
		return Edge{}, p.fail(invalidArgument("kronecker: nil operand"))
	}
	if x.node.kind != y.node.kind {
		return Edge{}, p.fail(invalidArgument("kronecker: operands must be the same kind"))
	}
	kind := x.node.kind
	offset := levelOf(y) + 1
	shiftedX, err := p.shiftUp(x, offset)
	if err != nil {
		return Edge{}, p.fail(err)
	}
	return p.kronecker(kind, shiftedX, y)
}

func (p *Package) kronecker(kind nodeKind, shiftedX, y Edge) (Edge, error) {
	if shiftedX.isTerminal() {
		w := p.cn.lookup(p.cn.mul(shiftedX.weight, y.weight))
		if w.approximatelyZero(p.tolerance) {
			return p.zeroEdge(kind), nil
		}
		return Edge{node: y.node, weight: w}, nil
	}
	// Kronecker is bilinear like Multiply: the cached node depends only on
	// (shiftedX.node, y.node), with both operand weights factored out of
	// the key and reapplied to the cached/stored result.
	xKey := Edge{node: shiftedX.node, weight: p.cn.One()}
	yKey := Edge{node: y.node, weight: p.cn.One()}
	if res, ok := p.kronCache.lookup(xKey, yKey); ok {
		w := p.cn.lookup(p.cn.mul(p.cn.mul(res.weight, shiftedX.weight), y.weight))
		if w.approximatelyZero(p.tolerance) {
			return p.zeroEdge(kind), nil
		}
		return Edge{node: res.node, weight: w}, nil
	}
	varIndex := int(shiftedX.node.varIndex)
	radix := p.radixOf(kind, varIndex)
	children := make([]Edge, radix)
	for i := 0; i < radix; i++ {
		c := shiftedX.node.children[i]
		xc := Edge{node: c.node, weight: p.cn.lookup(p.cn.mul(shiftedX.weight, c.weight))}
		rc, err := p.kronecker(kind, xc, y)
		if err != nil {
			return Edge{}, err
		}
		children[i] = rc
	}
	res, err := p.makeDDNode(kind, varIndex, children)
	if err != nil {
		return Edge{}, err
	}
	stored := p.cn.lookup(p.cn.div(p.cn.div(res.weight, shiftedX.weight), y.weight))
	p.kronCache.insert(xKey, yKey, Edge{node: res.node, weight: stored})
	return res, nil
}

// Extend places Edge e (which occupies registers [0, regcount(e)-1])
// between l freshly-padded identity registers below it and h freshly
// padded identity registers above it, following the original package's
// extend(e, h, l) = kronecker(makeIdent(h), kronecker(e, makeIdent(l))).
func (p *Package) Extend(e Edge, h, l int) (Edge, error) {
	p.clearerror()
	if e.node == nil || e.node.kind != matrixNode {
		return Edge{}, p.fail(invalidArgument("extend: operand must be a matrix (gate) Edge"))
	}
	lo, err := p.makeIdentity(l - 1)
	if err != nil {
		return Edge{}, err
	}
	inner, err := p.Kronecker(e, lo)
	if err != nil {
		return Edge{}, err
	}
	hi, err := p.makeIdentity(h - 1)
	if err != nil {
		return Edge{}, err
	}
	return p.Kronecker(hi, inner)
}
