// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// Multiply computes x * y, where x must be a matrix Edge and y may be
// either a matrix Edge (operator composition) or a vector Edge (applying
// the operator to a state), returning an Edge of y's kind.
func (p *Package) Multiply(x, y Edge) (Edge, error) {
	p.clearerror()
	if x.node == nil || y.node == nil {
		return Edge{}, p.fail(invalidArgument("multiply: nil operand"))
	}
	if x.node.kind != matrixNode {
		return Edge{}, p.fail(invalidArgument("multiply: left operand must be a matrix"))
	}
	if y.node.kind == vectorNode {
		return p.multiplyMV(x, y)
	}
	return p.multiplyMM(x, y)
}

func levelOf(e Edge) int {
	if e.isTerminal() {
		return -1
	}
	return int(e.node.varIndex)
}

// xEntry returns the (i, k) entry of matrix Edge x once pushed down to
// level varIndex: its actual child scaled by x's weight if x reaches this
// level, identity (itself, on the diagonal) if x is shallower — a matrix
// diagram that does not branch on a register is, by construction
// (makeIdentity/checkSpecialMatrices), the identity there.
func (p *Package) xEntry(x Edge, varIndex, i, k int) Edge {
	if !x.isTerminal() && int(x.node.varIndex) == varIndex {
		d := p.Radices[varIndex]
		c := x.node.children[i*d+k]
		return Edge{node: c.node, weight: p.cn.lookup(p.cn.mul(x.weight, c.weight))}
	}
	if i == k {
		return x
	}
	return p.zeroEdge(matrixNode)
}

// vEntry returns the k-th entry of vector Edge y once pushed down to
// level varIndex: its actual child scaled by y's weight if y reaches this
// level, itself (broadcast) if y is shallower.
func (p *Package) vEntry(y Edge, varIndex, k int) Edge {
	if !y.isTerminal() && int(y.node.varIndex) == varIndex {
		c := y.node.children[k]
		return Edge{node: c.node, weight: p.cn.lookup(p.cn.mul(y.weight, c.weight))}
	}
	return y
}

func (p *Package) multiplyMV(x, y Edge) (Edge, error) {
	if !x.isTerminal() && x.node.identity {
		w := p.cn.lookup(p.cn.mul(x.weight, y.weight))
		if w.approximatelyZero(p.tolerance) {
			return p.zeroEdge(vectorNode), nil
		}
		return Edge{node: y.node, weight: w}, nil
	}
	if x.weight.approximatelyZero(p.tolerance) || y.weight.approximatelyZero(p.tolerance) {
		return p.zeroEdge(vectorNode), nil
	}
	// Matrix-vector multiplication is bilinear, so the cached node depends
	// only on (x.node, y.node): multiply(c*x0, c'*y0) == c*c' *
	// multiply(x0, y0) for any nonzero c, c'. Both operand weights are
	// factored out of the key and reapplied to the cached/stored result,
	// following the original package's multiply2 cache discipline.
	xKey := Edge{node: x.node, weight: p.cn.One()}
	yKey := Edge{node: y.node, weight: p.cn.One()}
	if res, ok := p.mulCache.lookup(xKey, yKey); ok {
		w := p.cn.lookup(p.cn.mul(p.cn.mul(res.weight, x.weight), y.weight))
		if w.approximatelyZero(p.tolerance) {
			return p.zeroEdge(vectorNode), nil
		}
		return Edge{node: res.node, weight: w}, nil
	}

	varIndex := levelOf(x)
	if levelOf(y) > varIndex {
		varIndex = levelOf(y)
	}
	if varIndex < 0 {
		w := p.cn.lookup(p.cn.mul(x.weight, y.weight))
		return Edge{node: vTerminal, weight: w}, nil
	}

	d := p.Radices[varIndex]
	children := make([]Edge, d)
	for i := 0; i < d; i++ {
		var sum Edge = p.zeroEdge(vectorNode)
		for k := 0; k < d; k++ {
			xi := p.xEntry(x, varIndex, i, k)
			yi := p.vEntry(y, varIndex, k)
			term, err := p.multiplyMV(xi, yi)
			if err != nil {
				return Edge{}, err
			}
			sum, err = p.add(vectorNode, sum, term)
			if err != nil {
				return Edge{}, err
			}
		}
		children[i] = sum
	}
	res, err := p.makeDDNode(vectorNode, varIndex, children)
	if err != nil {
		return Edge{}, err
	}
	stored := p.cn.lookup(p.cn.div(p.cn.div(res.weight, x.weight), y.weight))
	p.mulCache.insert(xKey, yKey, Edge{node: res.node, weight: stored})
	return res, nil
}

// yEntry returns the (k, j) entry of matrix Edge y once pushed down to
// level varIndex (see xEntry).
func (p *Package) yEntry(y Edge, varIndex, k, j int) Edge {
	if !y.isTerminal() && int(y.node.varIndex) == varIndex {
		d := p.Radices[varIndex]
		c := y.node.children[k*d+j]
		return Edge{node: c.node, weight: p.cn.lookup(p.cn.mul(y.weight, c.weight))}
	}
	if k == j {
		return y
	}
	return p.zeroEdge(matrixNode)
}

func (p *Package) multiplyMM(x, y Edge) (Edge, error) {
	if !x.isTerminal() && x.node.identity {
		w := p.cn.lookup(p.cn.mul(x.weight, y.weight))
		if w.approximatelyZero(p.tolerance) {
			return p.zeroEdge(matrixNode), nil
		}
		return Edge{node: y.node, weight: w}, nil
	}
	if !y.isTerminal() && y.node.identity {
		w := p.cn.lookup(p.cn.mul(x.weight, y.weight))
		if w.approximatelyZero(p.tolerance) {
			return p.zeroEdge(matrixNode), nil
		}
		return Edge{node: x.node, weight: w}, nil
	}
	if x.weight.approximatelyZero(p.tolerance) || y.weight.approximatelyZero(p.tolerance) {
		return p.zeroEdge(matrixNode), nil
	}
	// See multiplyMV: matrix-matrix multiplication is likewise bilinear, so
	// both operand weights are factored out of the cache key and reapplied
	// to the cached/stored result.
	xKey := Edge{node: x.node, weight: p.cn.One()}
	yKey := Edge{node: y.node, weight: p.cn.One()}
	if res, ok := p.mulCache.lookup(xKey, yKey); ok {
		w := p.cn.lookup(p.cn.mul(p.cn.mul(res.weight, x.weight), y.weight))
		if w.approximatelyZero(p.tolerance) {
			return p.zeroEdge(matrixNode), nil
		}
		return Edge{node: res.node, weight: w}, nil
	}

	varIndex := levelOf(x)
	if levelOf(y) > varIndex {
		varIndex = levelOf(y)
	}
	if varIndex < 0 {
		w := p.cn.lookup(p.cn.mul(x.weight, y.weight))
		return Edge{node: mTerminal, weight: w}, nil
	}

	d := p.Radices[varIndex]
	children := make([]Edge, d*d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			var sum Edge = p.zeroEdge(matrixNode)
			for k := 0; k < d; k++ {
				xi := p.xEntry(x, varIndex, i, k)
				yi := p.yEntry(y, varIndex, k, j)
				term, err := p.multiplyMM(xi, yi)
				if err != nil {
					return Edge{}, err
				}
				sum, err = p.add(matrixNode, sum, term)
				if err != nil {
					return Edge{}, err
				}
			}
			children[i*d+j] = sum
		}
	}
	res, err := p.makeDDNode(matrixNode, varIndex, children)
	if err != nil {
		return Edge{}, err
	}
	stored := p.cn.lookup(p.cn.div(p.cn.div(res.weight, x.weight), y.weight))
	p.mulCache.insert(xKey, yKey, Edge{node: res.node, weight: stored})
	return res, nil
}
