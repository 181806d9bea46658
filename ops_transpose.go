// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// Transpose returns the structural transpose of a matrix Edge: entry (i, j)
// of the result is entry (j, i) of e. A node already flagged symmetric (see
// checkSpecialMatrices) is returned as-is, since its transpose is itself by
// construction.
func (p *Package) Transpose(e Edge) (Edge, error) {
	p.clearerror()
	if e.node == nil || e.node.kind != matrixNode {
		return Edge{}, p.fail(invalidArgument("transpose: operand must be a matrix"))
	}
	return p.transpose(e)
}

func (p *Package) transpose(e Edge) (Edge, error) {
	if e.isTerminal() || e.node.symmetric {
		return e, nil
	}
	key := Edge{node: e.node, weight: p.cn.One()}
	if res, ok := p.transposeCache.lookup(key); ok {
		return Edge{node: res.node, weight: p.cn.lookup(p.cn.mul(res.weight, e.weight))}, nil
	}

	varIndex := int(e.node.varIndex)
	d := p.Radices[varIndex]
	children := make([]Edge, d*d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			c := e.node.children[j*d+i]
			t, err := p.transpose(c)
			if err != nil {
				return Edge{}, err
			}
			children[i*d+j] = t
		}
	}
	res, err := p.makeDDNode(matrixNode, varIndex, children)
	if err != nil {
		return Edge{}, err
	}
	p.transposeCache.insert(key, res)
	return Edge{node: res.node, weight: p.cn.lookup(p.cn.mul(res.weight, e.weight))}, nil
}

// ConjugateTranspose returns the Hermitian adjoint of a matrix Edge: entry
// (i, j) of the result is conj(entry (j, i) of e). Unlike plain Transpose,
// there is no symmetric-node shortcut here: a structurally symmetric matrix
// can still hold complex entries whose conjugate differs from the original,
// so every level must still be visited.
func (p *Package) ConjugateTranspose(e Edge) (Edge, error) {
	p.clearerror()
	if e.node == nil || e.node.kind != matrixNode {
		return Edge{}, p.fail(invalidArgument("conjugateTranspose: operand must be a matrix"))
	}
	return p.conjugateTranspose(e)
}

func (p *Package) conjugateTranspose(e Edge) (Edge, error) {
	if e.isTerminal() {
		return Edge{node: e.node, weight: conj(e.weight)}, nil
	}
	key := Edge{node: e.node, weight: p.cn.One()}
	if res, ok := p.conjTransposeCache.lookup(key); ok {
		return Edge{node: res.node, weight: p.cn.lookup(p.cn.mul(res.weight, conj(e.weight)))}, nil
	}

	varIndex := int(e.node.varIndex)
	d := p.Radices[varIndex]
	children := make([]Edge, d*d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			c := e.node.children[j*d+i]
			t, err := p.conjugateTranspose(c)
			if err != nil {
				return Edge{}, err
			}
			children[i*d+j] = t
		}
	}
	res, err := p.makeDDNode(matrixNode, varIndex, children)
	if err != nil {
		return Edge{}, err
	}
	p.conjTransposeCache.insert(key, res)
	return Edge{node: res.node, weight: p.cn.lookup(p.cn.mul(res.weight, conj(e.weight)))}, nil
}
